package service

import (
	"context"
	"strings"
	"time"

	"canteen/canteen-svc/internal/domain"
)

type LocationService struct {
	repo LocationRepository
	now  func() time.Time
}

func NewLocationService(repo LocationRepository) *LocationService {
	return &LocationService{repo: repo, now: time.Now}
}

func (s *LocationService) Get(ctx context.Context) (*domain.ShopLocation, error) {
	loc, err := s.repo.GetLocation(ctx)
	if err != nil {
		return nil, storageError("load location", err)
	}
	if loc == nil {
		return nil, ErrLocationNotSet
	}
	return loc, nil
}

func (s *LocationService) Set(ctx context.Context, loc domain.ShopLocation) (*domain.ShopLocation, error) {
	loc.Name = strings.TrimSpace(loc.Name)
	loc.Address = strings.TrimSpace(loc.Address)
	if loc.Name == "" {
		return nil, validationError("name is required")
	}
	if loc.Address == "" {
		return nil, validationError("address is required")
	}
	loc.UpdatedAt = s.now()
	if err := s.repo.SaveLocation(ctx, loc); err != nil {
		return nil, storageError("save location", err)
	}
	return &loc, nil
}

var _ LocationServiceInterface = (*LocationService)(nil)
