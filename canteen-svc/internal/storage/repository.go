package storage

import (
	"context"

	"canteen/canteen-svc/internal/domain"
)

const (
	KeyOrders       = "orders"
	KeyMenuItems    = "menu_items"
	KeyStaff        = "staff"
	KeyShopLocation = "shop_location"
	cartKeyPrefix   = "cart:"
)

func CartKey(userID string) string {
	return cartKeyPrefix + userID
}

// KVRepository maps each collection onto a single key of the backing store.
// Collections are always read and written whole.
type KVRepository struct {
	Store KeyValueStore
}

func NewKVRepository(store KeyValueStore) *KVRepository {
	return &KVRepository{Store: store}
}

func (r *KVRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if _, err := r.Store.Get(ctx, KeyOrders, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *KVRepository) SaveOrders(ctx context.Context, orders []domain.Order) error {
	return r.Store.Set(ctx, KeyOrders, orders)
}

func (r *KVRepository) ListMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	var items []domain.MenuItem
	if _, err := r.Store.Get(ctx, KeyMenuItems, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *KVRepository) SaveMenuItems(ctx context.Context, items []domain.MenuItem) error {
	return r.Store.Set(ctx, KeyMenuItems, items)
}

func (r *KVRepository) ListStaff(ctx context.Context) ([]domain.StaffMember, error) {
	var staff []domain.StaffMember
	if _, err := r.Store.Get(ctx, KeyStaff, &staff); err != nil {
		return nil, err
	}
	return staff, nil
}

func (r *KVRepository) SaveStaff(ctx context.Context, staff []domain.StaffMember) error {
	return r.Store.Set(ctx, KeyStaff, staff)
}

// GetLocation returns nil when no location has been saved yet.
func (r *KVRepository) GetLocation(ctx context.Context) (*domain.ShopLocation, error) {
	var loc domain.ShopLocation
	found, err := r.Store.Get(ctx, KeyShopLocation, &loc)
	if err != nil || !found {
		return nil, err
	}
	return &loc, nil
}

func (r *KVRepository) SaveLocation(ctx context.Context, loc domain.ShopLocation) error {
	return r.Store.Set(ctx, KeyShopLocation, loc)
}

func (r *KVRepository) GetCart(ctx context.Context, userID string) ([]domain.CartLine, error) {
	var lines []domain.CartLine
	if _, err := r.Store.Get(ctx, CartKey(userID), &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *KVRepository) SaveCart(ctx context.Context, userID string, lines []domain.CartLine) error {
	return r.Store.Set(ctx, CartKey(userID), lines)
}

func (r *KVRepository) ClearCart(ctx context.Context, userID string) error {
	return r.Store.Remove(ctx, CartKey(userID))
}
