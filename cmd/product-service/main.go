package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/ordenes-saga/internal/config"
	"github.com/MikeMC777/ordenes-saga/internal/health"
	"github.com/MikeMC777/ordenes-saga/internal/httpx"
	"github.com/MikeMC777/ordenes-saga/internal/product"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	log := httpx.NewLogger("product-service", cfg.LogLevel)
	slog.SetDefault(log)
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := httpx.NewEngine(log)
	product.RegisterRoutes(r, product.NewService(product.NewMemRepo(), log))

	go func() {
		if err := health.ListenAndServe(ctx, cfg.ProductHealthAddr, "product-service", log); err != nil {
			log.Error("grpc health", "err", err)
		}
	}()
	if err := httpx.Serve(ctx, cfg.ProductSvcAddr, r, log); err != nil {
		log.Error("serve", "err", err)
		os.Exit(1)
	}
}
