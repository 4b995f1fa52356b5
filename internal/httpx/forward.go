package httpx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const DefaultTimeout = 5 * time.Second

// Response is an upstream answer captured in full.
type Response struct {
	Status      int
	ContentType string
	Location    string
	Body        []byte
}

// Forwarder issues single-attempt outbound calls. It never retries.
type Forwarder struct {
	Client *http.Client
}

func NewForwarder(timeout time.Duration) *Forwarder {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Forwarder{Client: &http.Client{
		Timeout: timeout,
		// Upstream 3xx answers are returned as-is, never followed.
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}}
}

// Do sends body to url and reads the whole response. The request id in ctx,
// if any, travels in X-Request-ID. A non-nil error means
// the exchange itself failed; upstream 4xx/5xx come back as a Response.
func (f *Forwarder) Do(ctx context.Context, method, url string, body []byte) (Response, error) {
	return f.send(ctx, method, url, body, "application/json")
}

func (f *Forwarder) send(ctx context.Context, method, url string, body []byte, contentType string) (Response, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, rd)
	if err != nil {
		return Response{}, fmt.Errorf("build request: %w", err)
	}
	if body != nil && contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if rid := RequestIDFromContext(ctx); rid != "" {
		req.Header.Set(HeaderRequestID, rid)
	}

	res, err := f.Client.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return Response{}, fmt.Errorf("read %s: %w", url, err)
	}
	return Response{
		Status:      res.StatusCode,
		ContentType: res.Header.Get("Content-Type"),
		Location:    res.Header.Get("Location"),
		Body:        data,
	}, nil
}

// Relay sends the inbound request to base+path (query included) and writes
// the upstream status and body back unchanged. When the exchange fails the
// error is returned and nothing has been written.
func (f *Forwarder) Relay(c *gin.Context, base string) (Response, error) {
	var body []byte
	if c.Request.Body != nil {
		b, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return Response{}, fmt.Errorf("read inbound body: %w", err)
		}
		if len(b) > 0 || c.Request.Method == http.MethodPost {
			body = b
		}
	}

	url := base + c.Request.URL.Path
	if q := c.Request.URL.RawQuery; q != "" {
		url += "?" + q
	}
	ct := c.ContentType()
	if ct == "" {
		ct = "application/json"
	}
	res, err := f.send(c.Request.Context(), c.Request.Method, url, body, ct)
	if err != nil {
		return Response{}, err
	}

	out := res.ContentType
	if out == "" {
		out = "application/json"
	}
	if res.Location != "" {
		c.Header("Location", res.Location)
	}
	c.Data(res.Status, out, res.Body)
	return res, nil
}
