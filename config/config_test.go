package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	d, err := ParseDuration("7d")
	require.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, d)

	d, err = ParseDuration("90m")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, d)

	_, err = ParseDuration("xd")
	assert.Error(t, err)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ADMIN_EMAIL", "")
	t.Setenv("JWT_EXPIRES_IN", "2d")
	t.Setenv("COMPLETION_POLICY", "COUNT")
	t.Setenv("SALT_ROUND", "not-a-number")

	LoadConfig()

	assert.Equal(t, "5000", AppConfig.Port)
	assert.Equal(t, 48*time.Hour, AppConfig.JWTExpiresIn)
	assert.Equal(t, "count", AppConfig.CompletionPolicy)
	assert.Equal(t, 10, AppConfig.SaltRound)
	assert.Equal(t, "admin@learnhub.com", AppConfig.AdminEmail)
}
