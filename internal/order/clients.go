package order

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/MikeMC777/ordenes-saga/internal/httpx"
)

// Upstream is what the saga needs from the entity stores.
type Upstream interface {
	UserExists(ctx context.Context, id int) error
	ProductStock(ctx context.Context, id int) (stock int, known bool, err error)
	SetStock(ctx context.Context, productID, quantity int) error
}

// Ext reaches the entity stores through the router.
type Ext struct {
	fw            *httpx.Forwarder
	RouterBaseURL string
}

func NewExt(fw *httpx.Forwarder, routerBaseURL string) *Ext {
	return &Ext{fw: fw, RouterBaseURL: strings.TrimRight(routerBaseURL, "/")}
}

// UserExists returns ErrUnknownEntity for a 404 and ErrUpstream for any other
// non-200 answer or a failed exchange.
func (e *Ext) UserExists(ctx context.Context, id int) error {
	res, err := e.fw.Do(ctx, http.MethodGet, fmt.Sprintf("%s/user/%d", e.RouterBaseURL, id), nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return statusErr("user", id, res.Status)
}

// ProductStock fetches the product and reads its quantity. known is false
// when the body has no usable integer quantity.
func (e *Ext) ProductStock(ctx context.Context, id int) (int, bool, error) {
	res, err := e.fw.Do(ctx, http.MethodGet, fmt.Sprintf("%s/product/%d", e.RouterBaseURL, id), nil)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if err := statusErr("product", id, res.Status); err != nil {
		return 0, false, err
	}
	var p struct {
		Quantity *int `json:"quantity"`
	}
	if err := json.Unmarshal(res.Body, &p); err != nil || p.Quantity == nil {
		return 0, false, nil
	}
	return *p.Quantity, true, nil
}

// SetStock issues a partial update that touches only quantity.
func (e *Ext) SetStock(ctx context.Context, productID, quantity int) error {
	body, _ := json.Marshal(map[string]any{"command": "update", "id": productID, "quantity": quantity})
	res, err := e.fw.Do(ctx, http.MethodPost, e.RouterBaseURL+"/product", body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if res.Status != http.StatusOK {
		return fmt.Errorf("%w: update stock of product %d: status %d", ErrUpstream, productID, res.Status)
	}
	return nil
}

func statusErr(kind string, id, status int) error {
	switch status {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s %d", ErrUnknownEntity, kind, id)
	default:
		return fmt.Errorf("%w: fetch %s %d: status %d", ErrUpstream, kind, id, status)
	}
}
