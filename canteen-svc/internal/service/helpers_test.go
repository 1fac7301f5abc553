package service_test

import (
	"fmt"
	"testing"
	"time"

	"canteen/canteen-svc/internal/domain"
	"canteen/canteen-svc/internal/service"
	"canteen/canteen-svc/internal/storage"
	"canteen/logging"

	"github.com/shopspring/decimal"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

var testDay = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

func newTestOrderService(t *testing.T, clock *fakeClock, policy service.TransitionPolicy) (*service.OrderService, *storage.KVRepository) {
	t.Helper()
	repo := storage.NewKVRepository(storage.NewMemoryStore())
	svc := service.NewOrderService(repo, nil, service.OrderServiceConfig{
		Policy:   policy,
		Location: time.UTC,
		Now:      clock.Now,
		NewID:    sequentialIDs("order"),
		Logger:   logging.Discard(),
	})
	return svc, repo
}

func price(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func sampleCart() []domain.CartLine {
	return []domain.CartLine{
		{ItemID: "A", Name: "Masala Dosa", UnitPrice: price("350"), Quantity: 2},
		{ItemID: "B", Name: "Filter Coffee", UnitPrice: price("280"), Quantity: 1},
	}
}

var customer = &domain.Identity{UserID: "U1", Name: "Asha", Email: "asha@example.com", Role: domain.RoleCustomer}
