package utils

import (
	"context"
	"time"

	"learnhub/logger"

	"github.com/robfig/cron/v3"
)

// PurgeFunc clears expired state and reports how many rows it touched.
type PurgeFunc func(ctx context.Context) (int64, error)

// InitializeResetTokenScheduler runs purge on schedule (a cron expression or
// descriptor such as "@every 1h"). The caller stops the returned cron.
func InitializeResetTokenScheduler(schedule string, purge PurgeFunc, log *logger.Logger) (*cron.Cron, error) {
	log = log.With("component", "reset-token-scheduler")

	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		n, err := purge(ctx)
		if err != nil {
			log.Error("Failed to clear expired reset tokens", "error", err)
			return
		}
		if n > 0 {
			log.Info("Cleared expired reset tokens", "count", n)
		}
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	log.Info("Reset token scheduler started", "schedule", schedule)
	return c, nil
}
