package workers

import (
	"context"
	"log/slog"
	"time"
)

type ConversationSweeper interface {
	SweepExpired() int
}

type conversationJanitor struct {
	sweeper  ConversationSweeper
	interval time.Duration
}

func NewConversationJanitor(sweeper ConversationSweeper, interval time.Duration) *conversationJanitor {
	return &conversationJanitor{
		sweeper:  sweeper,
		interval: interval,
	}
}

func (c *conversationJanitor) Name() string { return "conversation_janitor" }

func (c *conversationJanitor) Start(ctx context.Context) error {
	slog.Info("Starting worker", "name", c.Name(), "interval", c.interval)
	defer slog.Info("Worker stopped", "name", c.Name())

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := c.sweeper.SweepExpired(); n > 0 {
				slog.Debug("Swept expired conversations", "count", n)
			}
		}
	}
}
