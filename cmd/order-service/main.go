// Command order-service runs the public gateway and the place-order saga.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/ordenes-saga/internal/config"
	"github.com/MikeMC777/ordenes-saga/internal/gateway"
	"github.com/MikeMC777/ordenes-saga/internal/health"
	"github.com/MikeMC777/ordenes-saga/internal/httpx"
	"github.com/MikeMC777/ordenes-saga/internal/order"
	"github.com/MikeMC777/ordenes-saga/internal/orderlog"
)

const service = "order-service"

func main() {
	cfg, err := config.Load()
	if err != nil {
		httpx.NewLogger(service, "info").Error("config", "err", err)
		os.Exit(1)
	}
	log := httpx.NewLogger(service, cfg.LogLevel)
	slog.SetDefault(log)
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, log)
	stop()
	if err != nil {
		log.Error("order-service", "err", err)
		os.Exit(1)
	}
}

// run returns once the server has stopped and every resource is closed.
func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	orders, err := orderlog.Open(ctx, orderlog.Options{
		Kind:         cfg.OrderLog,
		Path:         cfg.OrderLogPath,
		PostgresDSN:  cfg.PostgresDSN,
		KafkaBrokers: cfg.KafkaBrokers,
		KafkaTopic:   cfg.KafkaOrderTopic,
	})
	if err != nil {
		return fmt.Errorf("order log %s: %w", cfg.OrderLog, err)
	}
	defer orders.Close()

	var ids order.IDSource = order.NewRandomIDs(0)
	if cfg.OrderIDSource == "redis" {
		rdb := order.NewRedisClient(cfg.RedisAddr)
		defer rdb.Close()
		ids = order.NewRedisIDs(rdb)
	}

	fw := httpx.NewForwarder(cfg.HTTPTimeout)
	o := order.NewOrchestrator(order.NewExt(fw, cfg.RouterSvcBaseURL), ids, orders, log)
	r := gateway.New(gateway.Deps{
		Orchestrator:  o,
		RouterBaseURL: cfg.RouterSvcBaseURL,
		Forwarder:     fw,
		Log:           log,
	})

	go func() {
		if err := health.ListenAndServe(ctx, cfg.OrderHealthAddr, service, log); err != nil {
			log.Error("grpc health", "err", err)
		}
	}()
	log.Info("starting", "router", cfg.RouterSvcBaseURL, "order_log", cfg.OrderLog, "ids", cfg.OrderIDSource)
	return httpx.Serve(ctx, cfg.OrderSvcAddr, r, log)
}
