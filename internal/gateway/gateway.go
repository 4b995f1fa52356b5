// Package gateway is the public entry point: /user and /product go to the
// router untouched, /order goes to the orchestrator.
package gateway

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/MikeMC777/ordenes-saga/docs"
	"github.com/MikeMC777/ordenes-saga/internal/httpx"
	"github.com/MikeMC777/ordenes-saga/internal/order"
	"github.com/MikeMC777/ordenes-saga/internal/router"
)

type Deps struct {
	Orchestrator  *order.Orchestrator
	RouterBaseURL string
	Forwarder     *httpx.Forwarder
	Log           *slog.Logger
}

// @title        Ordenes Saga API
// @version      1.0
// @description  Gateway for the user, product and order services.
// @BasePath     /
func New(d Deps) *gin.Engine {
	if d.Log == nil {
		d.Log = slog.Default()
	}
	if d.Forwarder == nil {
		d.Forwarder = httpx.NewForwarder(httpx.DefaultTimeout)
	}
	r := httpx.NewEngine(d.Log)

	r.POST("/order", order.PlaceOrderHandler(d.Orchestrator))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Entity paths are relayed through the router; everything else is 404.
	entities := []router.Route{
		{Prefix: "/user", Base: d.RouterBaseURL},
		{Prefix: "/product", Base: d.RouterBaseURL},
	}
	router.New(entities, d.Forwarder, d.Log).Register(r)
	return r
}
