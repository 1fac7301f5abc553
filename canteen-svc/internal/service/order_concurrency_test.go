package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"canteen/canteen-svc/internal/domain"
	"canteen/canteen-svc/internal/service"
	"canteen/canteen-svc/internal/storage"
	"canteen/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stallingPublisher blocks the first publish until release is closed.
type stallingPublisher struct {
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func newStallingPublisher() *stallingPublisher {
	return &stallingPublisher{entered: make(chan struct{}), release: make(chan struct{})}
}

func (p *stallingPublisher) PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error {
	first := false
	p.once.Do(func() { first = true })
	if first {
		close(p.entered)
		<-p.release
	}
	return nil
}

func TestOrderService_SlowPublisherDoesNotBlockWriters(t *testing.T) {
	publisher := newStallingPublisher()
	clock := &fakeClock{now: testDay}
	svc := service.NewOrderService(storage.NewKVRepository(storage.NewMemoryStore()), publisher, service.OrderServiceConfig{
		Location: time.UTC,
		Now:      clock.Now,
		NewID:    sequentialIDs("order"),
		Logger:   logging.Discard(),
	})
	ctx := context.Background()

	firstDone := make(chan *domain.Order, 1)
	go func() {
		order, err := svc.Create(ctx, sampleCart(), customer)
		assert.NoError(t, err)
		firstDone <- order
	}()

	select {
	case <-publisher.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("first create never reached the publisher")
	}

	second, err := svc.Create(ctx, sampleCart(), customer)
	require.NoError(t, err)
	assert.Equal(t, "TKN-20261018-0002", second.Token)

	moved, err := svc.Transition(ctx, second.ID, domain.StatusPreparing, "")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPreparing, moved.Status)

	close(publisher.release)
	first := <-firstDone
	require.NotNil(t, first)
	assert.Equal(t, "TKN-20261018-0001", first.Token)
}

func TestOrderService_ConcurrentCreateIssuesDistinctTokens(t *testing.T) {
	const workers = 25
	clock := &fakeClock{now: testDay}
	svc, _ := newTestOrderService(t, clock, service.PolicyStrict)
	ctx := context.Background()

	tokens := make(chan string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			order, err := svc.Create(ctx, sampleCart(), customer)
			if assert.NoError(t, err) {
				tokens <- order.Token
			}
		}()
	}
	wg.Wait()
	close(tokens)

	seen := map[string]bool{}
	for token := range tokens {
		assert.False(t, seen[token], "duplicate token %s", token)
		seen[token] = true
	}
	require.Len(t, seen, workers)
	for n := 1; n <= workers; n++ {
		assert.True(t, seen[fmt.Sprintf("TKN-20261018-%04d", n)], "missing sequence %d", n)
	}

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, workers)
}
