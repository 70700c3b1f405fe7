// Package storage resolves stored lesson media references to URLs a
// browser can play.
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type SignedURL struct {
	URL       string     `json:"url"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

type Store interface {
	// ResolveURL turns a stored video reference into a playable URL.
	ResolveURL(ctx context.Context, ref string) (*SignedURL, error)
}

// IsAbsoluteURL reports refs that already point at a public location.
func IsAbsoluteURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// Passthrough returns references unchanged. Used when no bucket is configured.
type Passthrough struct{}

func (Passthrough) ResolveURL(_ context.Context, ref string) (*SignedURL, error) {
	return &SignedURL{URL: ref}, nil
}

// GCS signs short-lived GET URLs for object keys in one bucket. Absolute
// URLs are passed through untouched.
type GCS struct {
	client *storage.Client
	bucket string
	ttl    time.Duration
	now    func() time.Time
}

func NewGCS(ctx context.Context, bucket, credentialsFile string, ttl time.Duration) (*GCS, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	opts = append(opts, option.WithScopes(storage.ScopeReadOnly))

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &GCS{client: client, bucket: bucket, ttl: ttl, now: time.Now}, nil
}

func (g *GCS) ResolveURL(_ context.Context, ref string) (*SignedURL, error) {
	if IsAbsoluteURL(ref) {
		return &SignedURL{URL: ref}, nil
	}
	key := strings.TrimPrefix(ref, "gs://"+g.bucket+"/")
	key = strings.TrimPrefix(key, "/")

	expires := g.now().Add(g.ttl)
	url, err := g.client.Bucket(g.bucket).SignedURL(key, &storage.SignedURLOptions{
		Method:  "GET",
		Expires: expires,
		Scheme:  storage.SigningSchemeV4,
	})
	if err != nil {
		return nil, fmt.Errorf("sign %q: %w", key, err)
	}
	return &SignedURL{URL: url, ExpiresAt: &expires}, nil
}

func (g *GCS) Close() error {
	return g.client.Close()
}
