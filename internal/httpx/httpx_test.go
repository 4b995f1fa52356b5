package httpx

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func init() { gin.SetMode(gin.TestMode) }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEngine_RecoversPanic(t *testing.T) {
	r := NewEngine(quietLogger())
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), StatusInternalError) {
		t.Fatalf("body=%s", w.Body.String())
	}
}

func TestEngine_PanicStillLogged(t *testing.T) {
	var buf bytes.Buffer
	r := NewEngine(slog.New(slog.NewJSONHandler(&buf, nil)))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))
	out := buf.String()
	if !strings.Contains(out, `"msg":"panic recovered"`) || !strings.Contains(out, `"msg":"http"`) || !strings.Contains(out, `"status":500`) {
		t.Fatalf("log=%s", out)
	}
}

func TestEngine_HealthzAndRequestID(t *testing.T) {
	r := NewEngine(quietLogger())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if got := w.Header().Get(HeaderRequestID); got != "abc-123" {
		t.Fatalf("request id=%q", got)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Header().Get(HeaderRequestID) == "" {
		t.Fatalf("expected a generated request id")
	}
}

func TestRelay_PassesStatusBodyQueryAndHeaders(t *testing.T) {
	var gotPath, gotQuery, gotRID, gotBody, gotMethod string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotRID = r.Header.Get(HeaderRequestID)
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"x":1}`))
	}))
	defer backend.Close()

	fw := NewForwarder(time.Second)
	r := NewEngine(quietLogger())
	r.NoRoute(func(c *gin.Context) {
		if _, err := fw.Relay(c, backend.URL); err != nil {
			t.Errorf("relay: %v", err)
		}
	})

	req := httptest.NewRequest(http.MethodPost, "/user?a=b", strings.NewReader(`{"command":"create"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderRequestID, "rid-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict || w.Body.String() != `{"x":1}` {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if gotMethod != http.MethodPost || gotPath != "/user" || gotQuery != "a=b" {
		t.Fatalf("method=%s path=%s query=%s", gotMethod, gotPath, gotQuery)
	}
	if gotRID != "rid-1" || gotBody != `{"command":"create"}` {
		t.Fatalf("rid=%s body=%s", gotRID, gotBody)
	}
}

func TestDo_TransportFailure(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := backend.URL
	backend.Close()

	fw := NewForwarder(time.Second)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, err := fw.Do(req.Context(), http.MethodGet, url+"/user/1", nil); err == nil {
		t.Fatalf("expected transport error")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"loud":  slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q)=%v want %v", in, got, want)
		}
	}
}

func TestServe_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, "127.0.0.1:0", NewEngine(quietLogger()), quietLogger()) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("serve did not stop")
	}
}
