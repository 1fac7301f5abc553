package mocks

import (
	"context"
	"time"

	"canteen/notify-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

// BoardStoreInterface is a mock type for the BoardStoreInterface type
type BoardStoreInterface struct {
	mock.Mock
}

// MarkReady provides a mock function with given fields: ctx, token, at
func (_m *BoardStoreInterface) MarkReady(ctx context.Context, token string, at time.Time) error {
	ret := _m.Called(ctx, token, at)
	return ret.Error(0)
}

// Remove provides a mock function with given fields: ctx, token
func (_m *BoardStoreInterface) Remove(ctx context.Context, token string) error {
	ret := _m.Called(ctx, token)
	return ret.Error(0)
}

// ReadyTokens provides a mock function with given fields: ctx, day
func (_m *BoardStoreInterface) ReadyTokens(ctx context.Context, day string) ([]domain.BoardEntry, error) {
	ret := _m.Called(ctx, day)

	var r0 []domain.BoardEntry
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.BoardEntry)
	}

	return r0, ret.Error(1)
}

// NewBoardStoreInterface creates a new instance of BoardStoreInterface. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewBoardStoreInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *BoardStoreInterface {
	m := &BoardStoreInterface{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
