package service

import (
	"context"
	"fmt"
	"time"

	"canteen/notify-svc/internal/domain"
)

type BoardService struct {
	store BoardStoreInterface
	loc   *time.Location
	now   func() time.Time
}

func NewBoardService(store BoardStoreInterface, loc *time.Location, now func() time.Time) *BoardService {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &BoardService{store: store, loc: loc, now: now}
}

// Board returns the ready tokens for day (YYYY-MM-DD), defaulting to today.
func (s *BoardService) Board(ctx context.Context, day string) (*domain.Board, error) {
	date := s.now().In(s.loc)
	if day != "" {
		parsed, err := time.ParseInLocation("2006-01-02", day, s.loc)
		if err != nil {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidDate)
		}
		date = parsed
	}

	entries, err := s.store.ReadyTokens(ctx, date.Format("20060102"))
	if err != nil {
		return nil, err
	}
	return &domain.Board{Day: date.Format("2006-01-02"), Entries: entries}, nil
}

var _ BoardServiceInterface = (*BoardService)(nil)
