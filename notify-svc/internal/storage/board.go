package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"canteen/notify-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	boardKeyPrefix = "pickup:ready:"
	boardTTL       = 48 * time.Hour
)

type BoardStore struct {
	rdb *redis.Client
}

func NewBoardStore(rdb *redis.Client) *BoardStore {
	return &BoardStore{rdb: rdb}
}

// TokenDay returns the YYYYMMDD part of a TKN-YYYYMMDD-NNNN token.
func TokenDay(token string) (string, error) {
	parts := strings.Split(token, "-")
	if len(parts) != 3 || parts[0] != "TKN" || len(parts[1]) != 8 {
		return "", fmt.Errorf("malformed token %q", token)
	}
	return parts[1], nil
}

func BoardKey(day string) string {
	return boardKeyPrefix + day
}

// MarkReady puts the token on its day's board, scored by when it became ready.
func (s *BoardStore) MarkReady(ctx context.Context, token string, at time.Time) error {
	day, err := TokenDay(token)
	if err != nil {
		return err
	}
	key := BoardKey(day)
	if err := s.rdb.ZAdd(ctx, key, redis.Z{Score: float64(at.Unix()), Member: token}).Err(); err != nil {
		return err
	}
	return s.rdb.Expire(ctx, key, boardTTL).Err()
}

func (s *BoardStore) Remove(ctx context.Context, token string) error {
	day, err := TokenDay(token)
	if err != nil {
		return err
	}
	return s.rdb.ZRem(ctx, BoardKey(day), token).Err()
}

// ReadyTokens lists the day's board, longest waiting first.
func (s *BoardStore) ReadyTokens(ctx context.Context, day string) ([]domain.BoardEntry, error) {
	members, err := s.rdb.ZRangeWithScores(ctx, BoardKey(day), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	entries := make([]domain.BoardEntry, 0, len(members))
	for _, m := range members {
		token, _ := m.Member.(string)
		entries = append(entries, domain.BoardEntry{
			Token:      token,
			ReadySince: time.Unix(int64(m.Score), 0).UTC(),
		})
	}
	return entries, nil
}
