package mocks

import (
	"context"

	"canteen/canteen-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

// OrderServiceInterface is a mock type for the OrderServiceInterface type
type OrderServiceInterface struct {
	mock.Mock
}

func (_m *OrderServiceInterface) order(ret mock.Arguments) (*domain.Order, error) {
	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderServiceInterface) orders(ret mock.Arguments) ([]domain.Order, error) {
	var r0 []domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Order)
	}
	return r0, ret.Error(1)
}

// Create provides a mock function with given fields: ctx, cart, customer
func (_m *OrderServiceInterface) Create(ctx context.Context, cart []domain.CartLine, customer *domain.Identity) (*domain.Order, error) {
	return _m.order(_m.Called(ctx, cart, customer))
}

// GetAll provides a mock function with given fields: ctx
func (_m *OrderServiceInterface) GetAll(ctx context.Context) ([]domain.Order, error) {
	return _m.orders(_m.Called(ctx))
}

// GetByToken provides a mock function with given fields: ctx, token
func (_m *OrderServiceInterface) GetByToken(ctx context.Context, token string) (*domain.Order, error) {
	return _m.order(_m.Called(ctx, token))
}

// GetByID provides a mock function with given fields: ctx, id
func (_m *OrderServiceInterface) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	return _m.order(_m.Called(ctx, id))
}

// GetByUser provides a mock function with given fields: ctx, userID
func (_m *OrderServiceInterface) GetByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return _m.orders(_m.Called(ctx, userID))
}

// GetByStatus provides a mock function with given fields: ctx, status
func (_m *OrderServiceInterface) GetByStatus(ctx context.Context, status domain.Status) ([]domain.Order, error) {
	return _m.orders(_m.Called(ctx, status))
}

// GetActive provides a mock function with given fields: ctx
func (_m *OrderServiceInterface) GetActive(ctx context.Context) ([]domain.Order, error) {
	return _m.orders(_m.Called(ctx))
}

// Transition provides a mock function with given fields: ctx, orderID, status, note
func (_m *OrderServiceInterface) Transition(ctx context.Context, orderID string, status domain.Status, note string) (*domain.Order, error) {
	return _m.order(_m.Called(ctx, orderID, status, note))
}

// NewOrderServiceInterface creates a new instance of OrderServiceInterface. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewOrderServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *OrderServiceInterface {
	m := &OrderServiceInterface{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
