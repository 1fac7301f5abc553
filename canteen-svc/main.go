package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "canteen/canteen-svc/internal/api/http"
	"canteen/canteen-svc/internal/service"
	"canteen/canteen-svc/internal/storage"
	"canteen/config"
	"canteen/logging"

	"github.com/shopspring/decimal"
)

func main() {
	cfg := config.Load()
	logging.Init("canteen-svc", cfg.LogFile)

	if err := checkSecrets(cfg); err != nil {
		log.Fatal(err)
	}

	loc, err := time.LoadLocation(cfg.ShopTimezone)
	if err != nil {
		log.Fatal("Invalid SHOP_TIMEZONE:", err)
	}
	taxRate, err := decimal.NewFromString(cfg.TaxRate)
	if err != nil || taxRate.IsNegative() {
		log.Fatal("Invalid TAX_RATE:", cfg.TaxRate)
	}
	policy, err := service.ParseTransitionPolicy(cfg.TransitionPolicy)
	if err != nil {
		log.Fatal("Invalid ORDER_TRANSITION_POLICY:", err)
	}

	store, closeStore, err := newStore(cfg.StoreBackend)
	if err != nil {
		log.Fatal("Failed to init store:", err)
	}
	defer closeStore()
	repo := storage.NewKVRepository(store)

	var publisher service.EventPublisher
	if cfg.KafkaBroker != "" {
		kafkaPublisher := storage.NewKafkaPublisher(config.NewKafkaWriter(cfg.KafkaBroker, cfg.OrderEventsTopic))
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	} else {
		slog.Warn("KAFKA_BROKER not set, order events will not be published")
	}

	orders := service.NewOrderService(repo, publisher, service.OrderServiceConfig{
		Policy:   policy,
		TaxRate:  taxRate,
		Location: loc,
		Logger:   logging.New("orders"),
	})
	menu := service.NewMenuService(repo)

	handler := &httpapi.Handler{
		Orders:       orders,
		Reports:      service.NewReportService(repo, loc, nil),
		Carts:        service.NewCartService(repo, menu, orders, logging.New("cart")),
		Menu:         menu,
		Staff:        service.NewStaffService(repo),
		Location:     service.NewLocationService(repo),
		QR:           service.DefaultQRGenerator{BaseURL: cfg.PublicBaseURL},
		Identity:     service.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
		ClientSecret: cfg.ClientSecret,
		Logger:       logging.New("http"),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	refresher := &service.Refresher{}
	refresher.Start(ctx, cfg.RefreshInterval, queueMonitor(orders, logging.New("queue")))
	defer refresher.Stop()

	srv := httpapi.NewServer(cfg.HTTPAddr, httpapi.NewRouter(handler))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
}

// checkSecrets refuses to start without a signing key; an empty CLIENT_SECRET only
// disables POST /api/token.
func checkSecrets(cfg config.Config) error {
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	if cfg.ClientSecret == "" {
		slog.Warn("CLIENT_SECRET not set, token issuing is disabled")
	}
	return nil
}

func newStore(backend string) (storage.KeyValueStore, func(), error) {
	switch backend {
	case "memory":
		return storage.NewMemoryStore(), func() {}, nil
	case "postgres":
		db := config.MustInitPostgres()
		store := storage.NewPostgresStore(db)
		if err := store.EnsureSchema(context.Background()); err != nil {
			db.Close()
			return nil, nil, err
		}
		return store, func() { db.Close() }, nil
	case "redis", "":
		client := config.MustInitRedis()
		return storage.NewRedisStore(client, storage.DefaultRedisPrefix), func() { client.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown STORE_BACKEND %q", backend)
}

// queueMonitor logs the kitchen queue on every staff refresh tick.
func queueMonitor(orders service.OrderServiceInterface, logger *slog.Logger) func(context.Context) {
	return func(ctx context.Context) {
		active, err := orders.GetActive(ctx)
		if err != nil {
			logger.Warn("failed to refresh active orders", "error", err)
			return
		}
		if len(active) == 0 {
			logger.Debug("kitchen queue is empty")
			return
		}
		logger.Info("kitchen queue", "active_orders", len(active), "oldest_token", active[0].Token)
	}
}
