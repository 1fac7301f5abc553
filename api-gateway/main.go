package main

import (
	"log"
	"log/slog"
	"net/http"
	"time"

	"canteen/api-gateway/internal/gateway"
	"canteen/config"
	"canteen/logging"

	"github.com/rs/cors"
)

func main() {
	logging.Init("api-gateway", config.GetEnv("GATEWAY_LOG_FILE", "./logs/gateway.log"))

	handler := newHandler(loadGatewayConfig(), &http.Client{Timeout: 30 * time.Second})

	addr := config.GetEnv("GATEWAY_ADDR", ":8080")
	slog.Info("API Gateway starting", "addr", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}

func loadGatewayConfig() gateway.Config {
	return gateway.Config{
		CanteenSvcURL: config.GetEnv("CANTEEN_SVC_URL", "http://localhost:8081"),
		NotifySvcURL:  config.GetEnv("NOTIFY_SVC_URL", "http://localhost:8082"),
		FrontendDir:   config.GetEnv("FRONTEND_DIR", "./frontend"),
	}
}

func newHandler(cfg gateway.Config, client gateway.HTTPClient) http.Handler {
	gw := gateway.NewGateway(cfg, client, logging.New("gateway"))

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})
	return c.Handler(gw.SetupRoutes())
}
