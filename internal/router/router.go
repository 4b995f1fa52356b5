// Package router relays requests to the backend that owns their path prefix.
// It holds no state beyond the prefix table and never reads payloads.
package router

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/ordenes-saga/internal/httpx"
)

// Route maps a path prefix to a backend base URL such as "http://127.0.0.1:14001".
type Route struct {
	Prefix string
	Base   string
}

type Router struct {
	routes []Route
	fw     *httpx.Forwarder
	log    *slog.Logger
}

// New builds a router over routes, matched in the given order.
func New(routes []Route, fw *httpx.Forwarder, log *slog.Logger) *Router {
	if log == nil {
		log = slog.Default()
	}
	rs := make([]Route, 0, len(routes))
	for _, r := range routes {
		if r.Base == "" {
			continue
		}
		r.Base = strings.TrimRight(r.Base, "/")
		rs = append(rs, r)
	}
	return &Router{routes: rs, fw: fw, log: log}
}

// DefaultRoutes is the user, product, order table in priority order.
func DefaultRoutes(userBase, productBase, orderBase string) []Route {
	return []Route{
		{Prefix: "/user", Base: userBase},
		{Prefix: "/product", Base: productBase},
		{Prefix: "/order", Base: orderBase},
	}
}

// Match returns the backend base for path. "/user" matches "/user" and
// "/user/...", never "/username".
func (r *Router) Match(path string) (string, bool) {
	for _, rt := range r.routes {
		if path == rt.Prefix || strings.HasPrefix(path, rt.Prefix+"/") {
			return rt.Base, true
		}
	}
	return "", false
}

// Handle is installed as the engine's NoRoute handler so every path and
// method reaches it.
func (r *Router) Handle(c *gin.Context) {
	base, ok := r.Match(c.Request.URL.Path)
	if !ok {
		c.JSON(http.StatusNotFound, httpx.StatusBody(httpx.StatusInvalidPath))
		return
	}
	res, err := r.fw.Relay(c, base)
	if err != nil {
		r.log.Error("relay failed", "rid", httpx.RequestIDFrom(c), "path", c.Request.URL.Path, "err", err)
		c.JSON(http.StatusInternalServerError, httpx.StatusBody(httpx.StatusInternalError))
		return
	}
	r.log.Debug("relayed", "rid", httpx.RequestIDFrom(c), "path", c.Request.URL.Path, "status", res.Status)
}

func (r *Router) Register(e *gin.Engine) {
	e.NoRoute(r.Handle)
}
