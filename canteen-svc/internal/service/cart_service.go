package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"canteen/canteen-svc/internal/domain"

	"github.com/shopspring/decimal"
)

type MenuReader interface {
	Get(ctx context.Context, id string) (*domain.MenuItem, error)
}

type OrderCreator interface {
	Create(ctx context.Context, cart []domain.CartLine, customer *domain.Identity) (*domain.Order, error)
}

// CartService serializes each user's cart read-modify-writes, checkout included, so a
// double submit finds the cart already empty.
type CartService struct {
	locks  sync.Map
	carts  CartRepository
	menu   MenuReader
	orders OrderCreator
	logger *slog.Logger
}

func NewCartService(carts CartRepository, menu MenuReader, orders OrderCreator, logger *slog.Logger) *CartService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CartService{carts: carts, menu: menu, orders: orders, logger: logger}
}

func (s *CartService) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	lines, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return buildCart(userID, lines), nil
}

func (s *CartService) AddItem(ctx context.Context, userID, itemID string, quantity int) (*domain.Cart, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	if quantity < 1 {
		return nil, validationError("quantity must be at least 1")
	}
	item, err := s.availableItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	defer s.lock(userID)()

	lines, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	merged := false
	for i := range lines {
		if lines[i].ItemID == itemID {
			lines[i].Quantity += quantity
			lines[i].UnitPrice = item.Price
			lines[i].Name = item.Name
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, domain.CartLine{ItemID: item.ID, Name: item.Name, UnitPrice: item.Price, Quantity: quantity})
	}
	return s.save(ctx, userID, lines)
}

// UpdateQuantity sets the line's quantity; zero or less drops the line.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) (*domain.Cart, error) {
	defer s.lock(userID)()

	if quantity <= 0 {
		return s.removeItem(ctx, userID, itemID)
	}
	lines, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range lines {
		if lines[i].ItemID == itemID {
			lines[i].Quantity = quantity
			return s.save(ctx, userID, lines)
		}
	}
	return nil, ErrCartItemNotFound
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID string) (*domain.Cart, error) {
	defer s.lock(userID)()
	return s.removeItem(ctx, userID, itemID)
}

func (s *CartService) removeItem(ctx context.Context, userID, itemID string) (*domain.Cart, error) {
	lines, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	kept := make([]domain.CartLine, 0, len(lines))
	for _, line := range lines {
		if line.ItemID != itemID {
			kept = append(kept, line)
		}
	}
	if len(kept) == len(lines) {
		return nil, ErrCartItemNotFound
	}
	return s.save(ctx, userID, kept)
}

func (s *CartService) Clear(ctx context.Context, userID string) error {
	defer s.lock(userID)()

	if err := s.carts.ClearCart(ctx, userID); err != nil {
		return storageError("clear cart", err)
	}
	return nil
}

// Checkout re-validates every line against the current menu, places the order and
// empties the cart. The order stands even if clearing the cart fails.
func (s *CartService) Checkout(ctx context.Context, customer *domain.Identity) (*domain.Order, error) {
	if customer == nil || customer.UserID == "" {
		return nil, ErrNotAuthenticated
	}

	defer s.lock(customer.UserID)()

	lines, err := s.load(ctx, customer.UserID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	priced := make([]domain.CartLine, 0, len(lines))
	for _, line := range lines {
		item, err := s.availableItem(ctx, line.ItemID)
		if err != nil {
			if errors.Is(err, ErrMenuItemNotFound) {
				return nil, fmt.Errorf("%w: %s was removed from the menu", ErrItemUnavailable, line.Name)
			}
			return nil, err
		}
		priced = append(priced, domain.CartLine{ItemID: item.ID, Name: item.Name, UnitPrice: item.Price, Quantity: line.Quantity})
	}

	order, err := s.orders.Create(ctx, priced, customer)
	if err != nil {
		return nil, err
	}
	if err := s.carts.ClearCart(ctx, customer.UserID); err != nil {
		s.logger.Warn("order placed but cart was not cleared", "order_id", order.ID, "user_id", customer.UserID, "error", err)
	}
	return order, nil
}

func (s *CartService) lock(userID string) func() {
	mu, _ := s.locks.LoadOrStore(userID, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

func (s *CartService) availableItem(ctx context.Context, itemID string) (*domain.MenuItem, error) {
	item, err := s.menu.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.Available {
		return nil, fmt.Errorf("%w: %s", ErrItemUnavailable, item.Name)
	}
	return item, nil
}

func (s *CartService) load(ctx context.Context, userID string) ([]domain.CartLine, error) {
	lines, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, storageError("load cart", err)
	}
	return lines, nil
}

func (s *CartService) save(ctx context.Context, userID string, lines []domain.CartLine) (*domain.Cart, error) {
	if err := s.carts.SaveCart(ctx, userID, lines); err != nil {
		return nil, storageError("save cart", err)
	}
	return buildCart(userID, lines), nil
}

func buildCart(userID string, lines []domain.CartLine) *domain.Cart {
	cart := &domain.Cart{UserID: userID, Lines: []domain.CartLine{}, Subtotal: decimal.Zero}
	for _, line := range lines {
		cart.Lines = append(cart.Lines, line)
		cart.Subtotal = cart.Subtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
		cart.ItemCount += line.Quantity
	}
	return cart
}

var _ CartServiceInterface = (*CartService)(nil)
