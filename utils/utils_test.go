package utils

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"learnhub/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateResetToken(t *testing.T) {
	a, err := GenerateResetToken()
	require.NoError(t, err)
	b, err := GenerateResetToken()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestReceiptID(t *testing.T) {
	r := ReceiptID(time.UnixMilli(1700000000000))
	assert.Equal(t, "rcpt_1700000000000", r)
	assert.LessOrEqual(t, len(r), 40)
}

func TestPasswordResetEmailEscapesLink(t *testing.T) {
	content := PasswordResetEmail("http://x/reset-password?token=a&email=b%40c.d")
	assert.Equal(t, "Password Reset Link", content.Subject)
	assert.True(t, strings.Contains(content.HTML, "token=a&amp;email=b%40c.d"))
}

func TestResetTokenSchedulerRejectsBadSpec(t *testing.T) {
	_, err := InitializeResetTokenScheduler("not a schedule", func(context.Context) (int64, error) { return 0, nil }, logger.Nop())
	assert.Error(t, err)
}

func TestResetTokenSchedulerRuns(t *testing.T) {
	var calls atomic.Int32
	c, err := InitializeResetTokenScheduler("@every 1s", func(context.Context) (int64, error) {
		calls.Add(1)
		return 1, nil
	}, logger.Nop())
	require.NoError(t, err)
	defer c.Stop()

	assert.Eventually(t, func() bool { return calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}
