package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestNoop(t *testing.T) {
	var c Cache = Noop{}
	var dst map[string]any
	assert.ErrorIs(t, c.Get(context.Background(), "k", &dst), ErrMiss)
	assert.NoError(t, c.Set(context.Background(), "k", 1))
	assert.NoError(t, c.DeletePrefix(context.Background(), "k"))
}

func TestNewRedisUnreachable(t *testing.T) {
	_, err := NewRedis("127.0.0.1:1", "", time.Minute)
	assert.Error(t, err)
}

func TestRedisGetUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	c := NewRedisWithClient(client, time.Minute)
	defer c.Close()

	var dst string
	err := c.Get(context.Background(), "k", &dst)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrMiss)
}
