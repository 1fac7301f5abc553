package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"canteen/canteen-svc/internal/domain"

	"github.com/shopspring/decimal"
)

type MenuItemInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	Available   *bool           `json:"available"`
}

func (in MenuItemInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return validationError("name is required")
	}
	if !in.Price.IsPositive() {
		return validationError("price must be greater than zero")
	}
	return nil
}

type MenuService struct {
	mu    sync.Mutex
	repo  MenuRepository
	now   func() time.Time
	newID func() string
}

func NewMenuService(repo MenuRepository) *MenuService {
	return &MenuService{repo: repo, now: time.Now, newID: NewID}
}

func (s *MenuService) Create(ctx context.Context, in MenuItemInput) (*domain.MenuItem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.repo.ListMenuItems(ctx)
	if err != nil {
		return nil, storageError("load menu", err)
	}

	now := s.now()
	item := domain.MenuItem{
		ID:          s.newID(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Category:    in.Category,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
		Available:   in.Available == nil || *in.Available,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.SaveMenuItems(ctx, append(items, item)); err != nil {
		return nil, storageError("save menu", err)
	}
	return &item, nil
}

func (s *MenuService) List(ctx context.Context) ([]domain.MenuItem, error) {
	items, err := s.repo.ListMenuItems(ctx)
	if err != nil {
		return nil, storageError("load menu", err)
	}
	if items == nil {
		items = []domain.MenuItem{}
	}
	return items, nil
}

func (s *MenuService) ListAvailable(ctx context.Context) ([]domain.MenuItem, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	available := []domain.MenuItem{}
	for _, item := range items {
		if item.Available {
			available = append(available, item)
		}
	}
	return available, nil
}

func (s *MenuService) Get(ctx context.Context, id string) (*domain.MenuItem, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.ID == id {
			return &item, nil
		}
	}
	return nil, ErrMenuItemNotFound
}

func (s *MenuService) Update(ctx context.Context, id string, in MenuItemInput) (*domain.MenuItem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	return s.modify(ctx, id, func(item *domain.MenuItem) {
		item.Name = strings.TrimSpace(in.Name)
		item.Description = in.Description
		item.Category = in.Category
		item.Price = in.Price
		item.ImageURL = in.ImageURL
		if in.Available != nil {
			item.Available = *in.Available
		}
	})
}

func (s *MenuService) SetAvailability(ctx context.Context, id string, available bool) (*domain.MenuItem, error) {
	return s.modify(ctx, id, func(item *domain.MenuItem) {
		item.Available = available
	})
}

func (s *MenuService) modify(ctx context.Context, id string, change func(*domain.MenuItem)) (*domain.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.repo.ListMenuItems(ctx)
	if err != nil {
		return nil, storageError("load menu", err)
	}
	for i := range items {
		if items[i].ID != id {
			continue
		}
		change(&items[i])
		items[i].UpdatedAt = s.now()
		if err := s.repo.SaveMenuItems(ctx, items); err != nil {
			return nil, storageError("save menu", err)
		}
		item := items[i]
		return &item, nil
	}
	return nil, ErrMenuItemNotFound
}

// Delete removes the item from the catalog. Orders keep their own copy of it.
func (s *MenuService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.repo.ListMenuItems(ctx)
	if err != nil {
		return storageError("load menu", err)
	}
	kept := make([]domain.MenuItem, 0, len(items))
	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return ErrMenuItemNotFound
	}
	if err := s.repo.SaveMenuItems(ctx, kept); err != nil {
		return storageError("save menu", err)
	}
	return nil
}

var _ MenuServiceInterface = (*MenuService)(nil)
