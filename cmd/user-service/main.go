package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/ordenes-saga/internal/config"
	"github.com/MikeMC777/ordenes-saga/internal/health"
	"github.com/MikeMC777/ordenes-saga/internal/httpx"
	"github.com/MikeMC777/ordenes-saga/internal/user"
)

const service = "user-service"

func main() {
	cfg, err := config.Load()
	if err != nil {
		httpx.NewLogger(service, "info").Error("config", "err", err)
		os.Exit(1)
	}
	log := httpx.NewLogger(service, cfg.LogLevel)
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := httpx.NewEngine(log)
	user.RegisterRoutes(r, user.NewService(user.NewMemRepo(), cfg.BcryptCost, log))

	go func() {
		if err := health.ListenAndServe(ctx, cfg.UserHealthAddr, service, log); err != nil {
			log.Error("grpc health", "err", err)
		}
	}()
	if err := httpx.Serve(ctx, cfg.UserSvcAddr, r, log); err != nil {
		log.Error("serve", "err", err)
		os.Exit(1)
	}
}
