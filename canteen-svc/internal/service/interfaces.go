package service

import (
	"context"
	"time"

	"canteen/canteen-svc/internal/domain"
	"canteen/canteen-svc/internal/storage"
)

type OrderRepository interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
	SaveOrders(ctx context.Context, orders []domain.Order) error
}

type MenuRepository interface {
	ListMenuItems(ctx context.Context) ([]domain.MenuItem, error)
	SaveMenuItems(ctx context.Context, items []domain.MenuItem) error
}

type CartRepository interface {
	GetCart(ctx context.Context, userID string) ([]domain.CartLine, error)
	SaveCart(ctx context.Context, userID string, lines []domain.CartLine) error
	ClearCart(ctx context.Context, userID string) error
}

type StaffRepository interface {
	ListStaff(ctx context.Context) ([]domain.StaffMember, error)
	SaveStaff(ctx context.Context, staff []domain.StaffMember) error
}

type LocationRepository interface {
	GetLocation(ctx context.Context) (*domain.ShopLocation, error)
	SaveLocation(ctx context.Context, loc domain.ShopLocation) error
}

type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}

type OrderServiceInterface interface {
	Create(ctx context.Context, cart []domain.CartLine, customer *domain.Identity) (*domain.Order, error)
	GetAll(ctx context.Context) ([]domain.Order, error)
	GetByToken(ctx context.Context, token string) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	GetByUser(ctx context.Context, userID string) ([]domain.Order, error)
	GetByStatus(ctx context.Context, status domain.Status) ([]domain.Order, error)
	GetActive(ctx context.Context) ([]domain.Order, error)
	Transition(ctx context.Context, orderID string, status domain.Status, note string) (*domain.Order, error)
}

type ReportServiceInterface interface {
	DailyReport(ctx context.Context, date string) (*domain.DailyReport, error)
	DashboardStats(ctx context.Context, ref time.Time) (*domain.DashboardStats, error)
}

type CartServiceInterface interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	AddItem(ctx context.Context, userID, itemID string, quantity int) (*domain.Cart, error)
	UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, userID, itemID string) (*domain.Cart, error)
	Clear(ctx context.Context, userID string) error
	Checkout(ctx context.Context, customer *domain.Identity) (*domain.Order, error)
}

type MenuServiceInterface interface {
	Create(ctx context.Context, in MenuItemInput) (*domain.MenuItem, error)
	List(ctx context.Context) ([]domain.MenuItem, error)
	ListAvailable(ctx context.Context) ([]domain.MenuItem, error)
	Get(ctx context.Context, id string) (*domain.MenuItem, error)
	Update(ctx context.Context, id string, in MenuItemInput) (*domain.MenuItem, error)
	SetAvailability(ctx context.Context, id string, available bool) (*domain.MenuItem, error)
	Delete(ctx context.Context, id string) error
}

type StaffServiceInterface interface {
	Create(ctx context.Context, in StaffInput) (*domain.StaffMember, error)
	List(ctx context.Context) ([]domain.StaffMember, error)
	Delete(ctx context.Context, id string) error
}

type LocationServiceInterface interface {
	Get(ctx context.Context) (*domain.ShopLocation, error)
	Set(ctx context.Context, loc domain.ShopLocation) (*domain.ShopLocation, error)
}

type IdentityProvider interface {
	Issue(identity domain.Identity) (string, error)
	Parse(raw string) (*domain.Identity, error)
}

var (
	_ OrderRepository    = (*storage.KVRepository)(nil)
	_ MenuRepository     = (*storage.KVRepository)(nil)
	_ CartRepository     = (*storage.KVRepository)(nil)
	_ StaffRepository    = (*storage.KVRepository)(nil)
	_ LocationRepository = (*storage.KVRepository)(nil)
	_ EventPublisher     = (*storage.KafkaPublisher)(nil)
)
