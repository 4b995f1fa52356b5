package router

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/ordenes-saga/internal/httpx"
)

func newEngine(t *testing.T, routes []Route) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := httpx.NewEngine(log)
	New(routes, httpx.NewForwarder(time.Second), log).Register(e)
	return e
}

func backend(name string, status int) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"from":"` + name + `","path":"` + r.URL.Path + `"}`))
	}))
}

func TestMatch_SegmentAware(t *testing.T) {
	r := New(DefaultRoutes("http://u", "http://p/", "http://o"), nil, nil)

	cases := map[string]string{
		"/user":         "http://u",
		"/user/1":       "http://u",
		"/product/10":   "http://p",
		"/order":        "http://o",
		"/username":     "",
		"/products/1":   "",
		"/":             "",
		"/other/user/1": "",
	}
	for path, want := range cases {
		got, ok := r.Match(path)
		if ok != (want != "") || got != want {
			t.Fatalf("Match(%q)=%q,%v want %q", path, got, ok, want)
		}
	}
}

func TestHandle_RelaysVerbatim(t *testing.T) {
	users := backend("user", http.StatusNotFound)
	defer users.Close()
	products := backend("product", http.StatusOK)
	defer products.Close()

	e := newEngine(t, DefaultRoutes(users.URL, products.URL, ""))

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/user/7", nil))
	if w.Code != http.StatusNotFound || w.Body.String() != `{"from":"user","path":"/user/7"}` {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/product", bytes.NewBufferString(`{"command":"create"}`)))
	if w.Code != http.StatusOK || w.Body.String() != `{"from":"product","path":"/product"}` {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestHandle_UnknownPrefix(t *testing.T) {
	e := newEngine(t, DefaultRoutes("http://u", "http://p", "http://o"))

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/inventory/1", nil))
	if w.Code != http.StatusNotFound || w.Body.String() != `{"status":"Invalid Path"}` {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestHandle_BackendDown(t *testing.T) {
	dead := backend("user", http.StatusOK)
	url := dead.URL
	dead.Close()

	e := newEngine(t, DefaultRoutes(url, "", ""))

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/user/1", nil))
	if w.Code != http.StatusInternalServerError || w.Body.String() != `{"status":"Internal Error"}` {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestHandle_RedirectPassedThrough(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte(`{"followed":true}`))
	}))
	defer target.Close()
	users := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Location", target.URL+"/elsewhere")
		w.WriteHeader(http.StatusFound)
		_, _ = w.Write([]byte(`{"moved":true}`))
	}))
	defer users.Close()

	e := newEngine(t, []Route{{Prefix: "/user", Base: users.URL}})
	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/user/1", nil))
	if w.Code != http.StatusFound || w.Body.String() != `{"moved":true}` {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != target.URL+"/elsewhere" {
		t.Fatalf("location=%q", loc)
	}
}
