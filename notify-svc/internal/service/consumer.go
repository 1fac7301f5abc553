package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"canteen/notify-svc/internal/domain"
)

type Consumer struct {
	Reader MessageReader
	Store  BoardStoreInterface
	Logger *slog.Logger
}

func NewConsumer(reader MessageReader, store BoardStoreInterface, logger *slog.Logger) *Consumer {
	return &Consumer{
		Reader: reader,
		Store:  store,
		Logger: logger,
	}
}

// Start reads order events until ctx is cancelled. Bad messages are logged and skipped.
func (c *Consumer) Start(ctx context.Context) {
	c.logger().Info("starting order event consumer")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if ctx.Err() != nil {
			c.logger().Info("order event consumer stopped")
			return
		}
		if err != nil {
			c.logger().Error("error reading message", "error", err)
			continue
		}

		var event domain.OrderEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			c.logger().Warn("error unmarshaling message", "offset", message.Offset, "error", err)
			continue
		}

		if err := c.ProcessEvent(ctx, event); err != nil {
			c.logger().Error("error updating pickup board", "token", event.Token, "status", event.Status, "error", err)
		}
	}
}

// ProcessEvent keeps the board in step with an order: ready puts the token up,
// completed or cancelled takes it down. Everything else is ignored.
func (c *Consumer) ProcessEvent(ctx context.Context, event domain.OrderEvent) error {
	if event.Type != domain.EventOrderStatusChanged {
		return nil
	}

	switch event.Status {
	case domain.StatusReady:
		if err := c.Store.MarkReady(ctx, event.Token, event.Timestamp); err != nil {
			return err
		}
		c.logger().Info("token ready for pickup", "token", event.Token)
	case domain.StatusCompleted, domain.StatusCancelled:
		if err := c.Store.Remove(ctx, event.Token); err != nil {
			return err
		}
		c.logger().Info("token removed from board", "token", event.Token, "status", event.Status)
	}
	return nil
}

func (c *Consumer) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

var _ ConsumerInterface = (*Consumer)(nil)
