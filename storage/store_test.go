package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassthrough(t *testing.T) {
	u, err := Passthrough{}.ResolveURL(context.Background(), "videos/intro.mp4")
	require.NoError(t, err)
	assert.Equal(t, "videos/intro.mp4", u.URL)
	assert.Nil(t, u.ExpiresAt)
}

func TestGCSPassesAbsoluteURLs(t *testing.T) {
	g := &GCS{bucket: "media"}
	u, err := g.ResolveURL(context.Background(), "https://cdn.example.com/a.mp4")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/a.mp4", u.URL)
}

func TestIsAbsoluteURL(t *testing.T) {
	assert.True(t, IsAbsoluteURL("http://x"))
	assert.False(t, IsAbsoluteURL("videos/x.mp4"))
	assert.False(t, IsAbsoluteURL("gs://media/x.mp4"))
}
