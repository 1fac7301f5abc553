package service_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"canteen/canteen-svc/internal/domain"
	"canteen/canteen-svc/internal/mocks"
	"canteen/canteen-svc/internal/service"
	"canteen/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOrderService_Create(t *testing.T) {
	clock := &fakeClock{now: testDay}
	svc, _ := newTestOrderService(t, clock, service.PolicyStrict)

	order, err := svc.Create(context.Background(), sampleCart(), customer)
	require.NoError(t, err)

	assert.True(t, order.Subtotal.Equal(price("980")), "subtotal %s", order.Subtotal)
	assert.True(t, order.Total.Equal(price("980")), "total %s", order.Total)
	assert.True(t, order.Tax.IsZero())
	assert.Equal(t, "TKN-20261018-0001", order.Token)
	assert.Equal(t, domain.StatusPending, order.Status)
	require.Len(t, order.StatusHistory, 1)
	assert.Equal(t, domain.StatusPending, order.StatusHistory[0].Status)
	assert.Equal(t, order.CreatedAt, order.StatusHistory[0].Timestamp)
	assert.Nil(t, order.CompletedAt)

	assert.Equal(t, "U1", order.UserID)
	assert.Equal(t, "Asha", order.UserName)
	assert.Equal(t, "asha@example.com", order.UserEmail)

	require.Len(t, order.Items, 2)
	assert.True(t, order.Items[0].LineSubtotal.Equal(price("700")))
	assert.True(t, order.Items[1].LineSubtotal.Equal(price("280")))

	stored, err := svc.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.Token, stored.Token)
}

func TestOrderService_CreateErrors(t *testing.T) {
	tests := []struct {
		name     string
		cart     []domain.CartLine
		customer *domain.Identity
		wantErr  error
	}{
		{
			name:     "empty cart",
			cart:     nil,
			customer: customer,
			wantErr:  service.ErrEmptyCart,
		},
		{
			name:     "no customer",
			cart:     sampleCart(),
			customer: nil,
			wantErr:  service.ErrNotAuthenticated,
		},
		{
			name:     "customer without id",
			cart:     sampleCart(),
			customer: &domain.Identity{Name: "ghost"},
			wantErr:  service.ErrNotAuthenticated,
		},
		{
			name:     "zero quantity",
			cart:     []domain.CartLine{{ItemID: "A", Name: "Idli", UnitPrice: price("50"), Quantity: 0}},
			customer: customer,
			wantErr:  service.ErrValidationFailed,
		},
		{
			name:     "negative price",
			cart:     []domain.CartLine{{ItemID: "A", Name: "Idli", UnitPrice: price("-1"), Quantity: 1}},
			customer: customer,
			wantErr:  service.ErrValidationFailed,
		},
		{
			name:     "missing item id",
			cart:     []domain.CartLine{{Name: "Idli", UnitPrice: price("50"), Quantity: 1}},
			customer: customer,
			wantErr:  service.ErrValidationFailed,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			svc, _ := newTestOrderService(t, &fakeClock{now: testDay}, service.PolicyStrict)

			order, err := svc.Create(context.Background(), testCase.cart, testCase.customer)

			assert.ErrorIs(t, err, testCase.wantErr)
			assert.Nil(t, order)
			all, err := svc.GetAll(context.Background())
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestOrderService_CreateAppliesTax(t *testing.T) {
	repo := mocks.NewOrderRepository(t)
	repo.On("ListOrders", mock.Anything).Return(nil, nil).Once()
	repo.On("SaveOrders", mock.Anything, mock.MatchedBy(func(orders []domain.Order) bool {
		return len(orders) == 1
	})).Return(nil).Once()

	svc := service.NewOrderService(repo, nil, service.OrderServiceConfig{
		TaxRate:  price("0.05"),
		Location: time.UTC,
		Now:      (&fakeClock{now: testDay}).Now,
		Logger:   logging.Discard(),
	})

	order, err := svc.Create(context.Background(), sampleCart(), customer)
	require.NoError(t, err)
	assert.True(t, order.Subtotal.Equal(price("980")))
	assert.True(t, order.Tax.Equal(price("49")))
	assert.True(t, order.Total.Equal(price("1029")))
}

func TestOrderService_StorageUnavailable(t *testing.T) {
	t.Run("load fails", func(t *testing.T) {
		repo := mocks.NewOrderRepository(t)
		repo.On("ListOrders", mock.Anything).Return(nil, errors.New("quota exceeded")).Once()
		svc := service.NewOrderService(repo, nil, service.OrderServiceConfig{Logger: logging.Discard()})

		_, err := svc.Create(context.Background(), sampleCart(), customer)
		assert.ErrorIs(t, err, service.ErrStorageUnavailable)
	})

	t.Run("save fails", func(t *testing.T) {
		repo := mocks.NewOrderRepository(t)
		repo.On("ListOrders", mock.Anything).Return([]domain.Order{}, nil).Once()
		repo.On("SaveOrders", mock.Anything, mock.Anything).Return(errors.New("quota exceeded")).Once()
		svc := service.NewOrderService(repo, nil, service.OrderServiceConfig{Logger: logging.Discard()})

		_, err := svc.Create(context.Background(), sampleCart(), customer)
		assert.ErrorIs(t, err, service.ErrStorageUnavailable)
	})
}

func TestOrderService_TokensAreSequentialPerDay(t *testing.T) {
	clock := &fakeClock{now: testDay}
	svc, _ := newTestOrderService(t, clock, service.PolicyStrict)
	ctx := context.Background()
	format := regexp.MustCompile(`^TKN-\d{8}-\d{4}$`)

	var tokens []string
	for i := 0; i < 3; i++ {
		order, err := svc.Create(ctx, sampleCart(), customer)
		require.NoError(t, err)
		assert.Regexp(t, format, order.Token)
		tokens = append(tokens, order.Token)
		clock.Advance(time.Minute)
	}
	assert.Equal(t, []string{"TKN-20261018-0001", "TKN-20261018-0002", "TKN-20261018-0003"}, tokens)

	clock.Advance(24 * time.Hour)
	next, err := svc.Create(ctx, sampleCart(), customer)
	require.NoError(t, err)
	assert.Equal(t, "TKN-20261019-0001", next.Token)
}

func TestOrderService_TransitionFullLifecycle(t *testing.T) {
	clock := &fakeClock{now: testDay}
	svc, _ := newTestOrderService(t, clock, service.PolicyStrict)
	ctx := context.Background()

	order, err := svc.Create(ctx, sampleCart(), customer)
	require.NoError(t, err)

	for _, status := range []domain.Status{domain.StatusPreparing, domain.StatusReady, domain.StatusCompleted} {
		clock.Advance(5 * time.Minute)
		order, err = svc.Transition(ctx, order.ID, status, "")
		require.NoError(t, err)
		assert.Equal(t, status, order.Status)
		assert.Equal(t, order.Status, order.StatusHistory[len(order.StatusHistory)-1].Status)
		assert.Equal(t, clock.Now(), order.UpdatedAt)
	}

	require.Len(t, order.StatusHistory, 4)
	var got []domain.Status
	for _, entry := range order.StatusHistory {
		got = append(got, entry.Status)
	}
	assert.Equal(t, []domain.Status{domain.StatusPending, domain.StatusPreparing, domain.StatusReady, domain.StatusCompleted}, got)
	assert.Equal(t, "Order completed", order.StatusHistory[3].Note)
	require.NotNil(t, order.CompletedAt)
	assert.False(t, order.CompletedAt.Before(order.CreatedAt))

	stored, err := svc.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, stored.Status)
	assert.Len(t, stored.StatusHistory, 4)
}

func TestOrderService_TransitionKeepsNote(t *testing.T) {
	svc, _ := newTestOrderService(t, &fakeClock{now: testDay}, service.PolicyStrict)
	ctx := context.Background()
	order, err := svc.Create(ctx, sampleCart(), customer)
	require.NoError(t, err)

	order, err = svc.Transition(ctx, order.ID, domain.StatusCancelled, "customer changed their mind")
	require.NoError(t, err)
	assert.Equal(t, "customer changed their mind", order.StatusHistory[1].Note)
	assert.Nil(t, order.CompletedAt)
}

func TestOrderService_TransitionUnknownOrder(t *testing.T) {
	svc, _ := newTestOrderService(t, &fakeClock{now: testDay}, service.PolicyStrict)
	ctx := context.Background()
	_, err := svc.Create(ctx, sampleCart(), customer)
	require.NoError(t, err)
	before, err := svc.GetAll(ctx)
	require.NoError(t, err)

	order, err := svc.Transition(ctx, "missing", domain.StatusPreparing, "")

	assert.ErrorIs(t, err, service.ErrOrderNotFound)
	assert.Nil(t, order)
	after, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestOrderService_TransitionPolicy(t *testing.T) {
	tests := []struct {
		name    string
		policy  service.TransitionPolicy
		target  domain.Status
		wantErr error
	}{
		{name: "strict rejects skipping to completed", policy: service.PolicyStrict, target: domain.StatusCompleted, wantErr: service.ErrInvalidTransition},
		{name: "strict rejects pending to ready", policy: service.PolicyStrict, target: domain.StatusReady, wantErr: service.ErrInvalidTransition},
		{name: "strict allows cancel from pending", policy: service.PolicyStrict, target: domain.StatusCancelled},
		{name: "permissive allows skipping to completed", policy: service.PolicyPermissive, target: domain.StatusCompleted},
		{name: "unknown status", policy: service.PolicyPermissive, target: domain.Status("eaten"), wantErr: service.ErrValidationFailed},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			svc, _ := newTestOrderService(t, &fakeClock{now: testDay}, testCase.policy)
			ctx := context.Background()
			order, err := svc.Create(ctx, sampleCart(), customer)
			require.NoError(t, err)

			updated, err := svc.Transition(ctx, order.ID, testCase.target, "")

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				stored, getErr := svc.GetByID(ctx, order.ID)
				require.NoError(t, getErr)
				assert.Len(t, stored.StatusHistory, 1)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.target, updated.Status)
			if testCase.target == domain.StatusCompleted {
				assert.NotNil(t, updated.CompletedAt)
			}
		})
	}
}

func TestOrderService_PublishesEvents(t *testing.T) {
	repo, publisher := mocks.NewOrderRepository(t), mocks.NewEventPublisher(t)
	var saved []domain.Order
	repo.On("ListOrders", mock.Anything).Return(func(context.Context) []domain.Order { return saved }, nil)
	repo.On("SaveOrders", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).([]domain.Order)
	}).Return(nil)

	publisher.On("PublishOrderEvent", mock.Anything, mock.MatchedBy(func(e domain.OrderEvent) bool {
		return e.Type == domain.EventOrderCreated && e.Status == domain.StatusPending && e.Token == "TKN-20261018-0001"
	})).Return(nil).Once()
	publisher.On("PublishOrderEvent", mock.Anything, mock.MatchedBy(func(e domain.OrderEvent) bool {
		return e.Type == domain.EventOrderStatusChanged && e.Status == domain.StatusPreparing && e.Note == "Order is being prepared"
	})).Return(errors.New("broker down")).Once()

	svc := service.NewOrderService(repo, publisher, service.OrderServiceConfig{
		Location: time.UTC,
		Now:      (&fakeClock{now: testDay}).Now,
		Logger:   logging.Discard(),
	})

	order, err := svc.Create(context.Background(), sampleCart(), customer)
	require.NoError(t, err)

	// A failed publish must not undo the transition.
	updated, err := svc.Transition(context.Background(), order.ID, domain.StatusPreparing, "")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPreparing, updated.Status)
}

func TestOrderService_Queries(t *testing.T) {
	clock := &fakeClock{now: testDay}
	svc, _ := newTestOrderService(t, clock, service.PolicyPermissive)
	ctx := context.Background()
	other := &domain.Identity{UserID: "U2", Name: "Ravi", Role: domain.RoleCustomer}

	create := func(who *domain.Identity, status domain.Status) *domain.Order {
		t.Helper()
		order, err := svc.Create(ctx, sampleCart(), who)
		require.NoError(t, err)
		if status != domain.StatusPending {
			order, err = svc.Transition(ctx, order.ID, status, "")
			require.NoError(t, err)
		}
		clock.Advance(time.Minute)
		return order
	}

	pending := create(customer, domain.StatusPending)
	preparing := create(other, domain.StatusPreparing)
	completed := create(customer, domain.StatusCompleted)
	create(other, domain.StatusCancelled)

	t.Run("active orders oldest first", func(t *testing.T) {
		active, err := svc.GetActive(ctx)
		require.NoError(t, err)
		require.Len(t, active, 2)
		assert.Equal(t, pending.ID, active[0].ID)
		assert.Equal(t, preparing.ID, active[1].ID)
	})

	t.Run("by user newest first", func(t *testing.T) {
		mine, err := svc.GetByUser(ctx, "U1")
		require.NoError(t, err)
		require.Len(t, mine, 2)
		assert.Equal(t, completed.ID, mine[0].ID)
		assert.Equal(t, pending.ID, mine[1].ID)
	})

	t.Run("by status", func(t *testing.T) {
		done, err := svc.GetByStatus(ctx, domain.StatusCompleted)
		require.NoError(t, err)
		require.Len(t, done, 1)
		assert.Equal(t, completed.ID, done[0].ID)

		_, err = svc.GetByStatus(ctx, domain.Status("lost"))
		assert.ErrorIs(t, err, service.ErrValidationFailed)
	})

	t.Run("by token", func(t *testing.T) {
		found, err := svc.GetByToken(ctx, preparing.Token)
		require.NoError(t, err)
		assert.Equal(t, preparing.ID, found.ID)

		_, err = svc.GetByToken(ctx, "TKN-20000101-0001")
		assert.ErrorIs(t, err, service.ErrOrderNotFound)
	})

	t.Run("all", func(t *testing.T) {
		all, err := svc.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 4)
	})
}
