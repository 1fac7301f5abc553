package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"canteen/config"
	"canteen/logging"
	httpapi "canteen/notify-svc/internal/api/http"
	"canteen/notify-svc/internal/service"
	"canteen/notify-svc/internal/storage"
)

const consumerGroup = "notify-svc-consumer"

func main() {
	cfg := config.Load()
	logging.Init("notify-svc", config.GetEnv("NOTIFY_LOG_FILE", "./logs/notify.log"))

	if cfg.KafkaBroker == "" {
		log.Fatal("KAFKA_BROKER is required")
	}
	loc, err := time.LoadLocation(cfg.ShopTimezone)
	if err != nil {
		log.Fatal("Invalid SHOP_TIMEZONE:", err)
	}

	rdb := config.MustInitRedis()
	defer rdb.Close()
	store := storage.NewBoardStore(rdb)

	reader := config.NewKafkaReader(cfg.KafkaBroker, cfg.OrderEventsTopic, consumerGroup)
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer := service.NewConsumer(reader, store, logging.New("consumer"))
	go consumer.Start(ctx)

	handler := httpapi.NewHandler(service.NewBoardService(store, loc, nil), logging.New("http"))
	addr := config.GetEnv("NOTIFY_HTTP_ADDR", ":8082")
	srv := &http.Server{Addr: addr, Handler: httpapi.NewRouter(handler)}
	go func() {
		slog.Info("Notify Service starting", "addr", addr)
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
