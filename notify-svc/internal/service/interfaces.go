package service

import (
	"context"
	"time"

	"canteen/notify-svc/internal/domain"
	"canteen/notify-svc/internal/storage"

	"github.com/segmentio/kafka-go"
)

type BoardStoreInterface interface {
	MarkReady(ctx context.Context, token string, at time.Time) error
	Remove(ctx context.Context, token string) error
	ReadyTokens(ctx context.Context, day string) ([]domain.BoardEntry, error)
}

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type ConsumerInterface interface {
	Start(ctx context.Context)
	ProcessEvent(ctx context.Context, event domain.OrderEvent) error
}

type BoardServiceInterface interface {
	Board(ctx context.Context, day string) (*domain.Board, error)
}

var (
	_ BoardStoreInterface = (*storage.BoardStore)(nil)
	_ MessageReader       = (*kafka.Reader)(nil)
)
