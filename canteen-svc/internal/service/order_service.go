package service

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"canteen/canteen-svc/internal/domain"

	"github.com/shopspring/decimal"
)

type OrderServiceConfig struct {
	Policy   TransitionPolicy
	TaxRate  decimal.Decimal
	Location *time.Location
	Now      func() time.Time
	NewID    func() string
	Logger   *slog.Logger
}

// OrderService owns the order collection. Every mutation reloads the whole collection,
// changes it and writes it back while holding mu, so this process is the single writer.
type OrderService struct {
	mu        sync.Mutex
	repo      OrderRepository
	publisher EventPublisher
	lifecycle Lifecycle
	taxRate   decimal.Decimal
	loc       *time.Location
	now       func() time.Time
	newID     func() string
	logger    *slog.Logger
}

func NewOrderService(repo OrderRepository, publisher EventPublisher, cfg OrderServiceConfig) *OrderService {
	s := &OrderService{
		repo:      repo,
		publisher: publisher,
		lifecycle: Lifecycle{Policy: cfg.Policy},
		taxRate:   cfg.TaxRate,
		loc:       cfg.Location,
		now:       cfg.Now,
		newID:     cfg.NewID,
		logger:    cfg.Logger,
	}
	if s.lifecycle.Policy == "" {
		s.lifecycle.Policy = PolicyStrict
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = NewID
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

func (s *OrderService) Create(ctx context.Context, cart []domain.CartLine, customer *domain.Identity) (*domain.Order, error) {
	if len(cart) == 0 {
		return nil, ErrEmptyCart
	}
	if customer == nil || customer.UserID == "" {
		return nil, ErrNotAuthenticated
	}

	items, subtotal, err := snapshotLines(cart)
	if err != nil {
		return nil, err
	}
	tax := subtotal.Mul(s.taxRate).Round(2)

	order, err := s.insert(ctx, customer, items, subtotal, tax)
	if err != nil {
		return nil, err
	}

	s.logger.Info("order created", "order_id", order.ID, "token", order.Token, "user_id", order.UserID, "total", order.Total.String())
	s.publish(ctx, domain.EventOrderCreated, *order, "")
	return order, nil
}

// insert assigns the token and appends the order. Publishing happens after mu is released.
func (s *OrderService) insert(ctx context.Context, customer *domain.Identity, items []domain.OrderItem, subtotal, tax decimal.Decimal) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		return nil, storageError("load orders", err)
	}

	now := s.now()
	order := domain.Order{
		ID:        s.newID(),
		Token:     NewToken(now.In(s.loc), ordersOnDay(orders, dayKey(now, s.loc), s.loc)),
		UserID:    customer.UserID,
		UserName:  customer.Name,
		UserEmail: customer.Email,
		Items:     items,
		Subtotal:  subtotal,
		Tax:       tax,
		Total:     subtotal.Add(tax),
		Status:    domain.StatusPending,
		StatusHistory: []domain.StatusEntry{{
			Status:    domain.StatusPending,
			Timestamp: now,
			Note:      DefaultNote(domain.StatusPending),
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.SaveOrders(ctx, append(orders, order)); err != nil {
		return nil, storageError("save orders", err)
	}
	return &order, nil
}

func snapshotLines(cart []domain.CartLine) ([]domain.OrderItem, decimal.Decimal, error) {
	items := make([]domain.OrderItem, 0, len(cart))
	subtotal := decimal.Zero
	for i, line := range cart {
		if line.ItemID == "" || line.Name == "" {
			return nil, decimal.Zero, validationError("line %d: item id and name are required", i+1)
		}
		if line.Quantity < 1 {
			return nil, decimal.Zero, validationError("line %d: quantity must be at least 1", i+1)
		}
		if line.UnitPrice.IsNegative() {
			return nil, decimal.Zero, validationError("line %d: price must not be negative", i+1)
		}
		lineSubtotal := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		items = append(items, domain.OrderItem{
			ItemID:       line.ItemID,
			Name:         line.Name,
			UnitPrice:    line.UnitPrice,
			Quantity:     line.Quantity,
			LineSubtotal: lineSubtotal,
		})
		subtotal = subtotal.Add(lineSubtotal)
	}
	return items, subtotal, nil
}

func (s *OrderService) Transition(ctx context.Context, orderID string, status domain.Status, note string) (*domain.Order, error) {
	order, err := s.update(ctx, orderID, status, note)
	if err != nil {
		return nil, err
	}

	last := order.StatusHistory[len(order.StatusHistory)-1]
	s.logger.Info("order status changed", "order_id", order.ID, "token", order.Token, "status", order.Status)
	s.publish(ctx, domain.EventOrderStatusChanged, *order, last.Note)
	return order, nil
}

func (s *OrderService) update(ctx context.Context, orderID string, status domain.Status, note string) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		return nil, storageError("load orders", err)
	}

	idx := -1
	for i := range orders {
		if orders[i].ID == orderID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrOrderNotFound
	}

	order := orders[idx]
	if err := s.lifecycle.Check(order.Status, status); err != nil {
		return nil, err
	}
	// Copy the history so a failed save leaves the loaded collection untouched.
	order.StatusHistory = append([]domain.StatusEntry(nil), order.StatusHistory...)
	s.lifecycle.Apply(&order, status, note, s.now())

	updated := make([]domain.Order, len(orders))
	copy(updated, orders)
	updated[idx] = order
	if err := s.repo.SaveOrders(ctx, updated); err != nil {
		return nil, storageError("save orders", err)
	}
	return &order, nil
}

func (s *OrderService) publish(ctx context.Context, eventType string, order domain.Order, note string) {
	if s.publisher == nil {
		return
	}
	event := domain.OrderEvent{
		Type:      eventType,
		OrderID:   order.ID,
		Token:     order.Token,
		UserID:    order.UserID,
		Status:    order.Status,
		Total:     order.Total,
		Note:      note,
		Timestamp: order.UpdatedAt,
	}
	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish order event", "type", eventType, "order_id", order.ID, "error", err)
	}
}

func (s *OrderService) GetAll(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		return nil, storageError("load orders", err)
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

func (s *OrderService) GetByToken(ctx context.Context, token string) (*domain.Order, error) {
	return s.find(ctx, func(o domain.Order) bool { return o.Token == token })
}

func (s *OrderService) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	return s.find(ctx, func(o domain.Order) bool { return o.ID == id })
}

func (s *OrderService) find(ctx context.Context, match func(domain.Order) bool) (*domain.Order, error) {
	orders, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, order := range orders {
		if match(order) {
			return &order, nil
		}
	}
	return nil, ErrOrderNotFound
}

// GetByUser returns the customer's orders, newest first.
func (s *OrderService) GetByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, err := s.filter(ctx, func(o domain.Order) bool { return o.UserID == userID })
	if err != nil {
		return nil, err
	}
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders, nil
}

// GetByStatus returns matching orders, oldest first.
func (s *OrderService) GetByStatus(ctx context.Context, status domain.Status) ([]domain.Order, error) {
	if !status.Valid() {
		return nil, validationError("unknown status %q", status)
	}
	orders, err := s.filter(ctx, func(o domain.Order) bool { return o.Status == status })
	if err != nil {
		return nil, err
	}
	sortOldestFirst(orders)
	return orders, nil
}

// GetActive is the kitchen queue: pending, preparing and ready orders, oldest first.
func (s *OrderService) GetActive(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.filter(ctx, func(o domain.Order) bool { return o.Status.Active() })
	if err != nil {
		return nil, err
	}
	sortOldestFirst(orders)
	return orders, nil
}

func (s *OrderService) filter(ctx context.Context, keep func(domain.Order) bool) ([]domain.Order, error) {
	orders, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	matched := []domain.Order{}
	for _, order := range orders {
		if keep(order) {
			matched = append(matched, order)
		}
	}
	return matched, nil
}

func sortOldestFirst(orders []domain.Order) {
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].CreatedAt.Before(orders[j].CreatedAt) })
}

var _ OrderServiceInterface = (*OrderService)(nil)
