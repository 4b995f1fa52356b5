package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/MikeMC777/ordenes-saga/internal/httpx"
	"github.com/MikeMC777/ordenes-saga/internal/orderlog"
)

// attempt is the working state of one placement.
type attempt struct {
	state State
	body  []byte
	order Order
	stock int
}

// step moves an attempt into state to. A failing step rejects the attempt
// with reason.
type step struct {
	name   string
	to     State
	reason string
	run    func(ctx context.Context, a *attempt) error
}

// Orchestrator runs the place-order saga. It never retries a step and never
// undoes one: a failed order-log append after the stock update still reports
// success.
type Orchestrator struct {
	up       Upstream
	ids      IDSource
	fallback IDSource
	orders   orderlog.Log
	log      *slog.Logger
	locks    *keyedMutex
	now      func() time.Time
	steps    []step
}

func NewOrchestrator(up Upstream, ids IDSource, orders orderlog.Log, log *slog.Logger) *Orchestrator {
	if log == nil {
		log = slog.Default()
	}
	fallback := NewRandomIDs(0)
	if ids == nil {
		ids = fallback
	}
	o := &Orchestrator{
		up:       up,
		ids:      ids,
		fallback: fallback,
		orders:   orders,
		log:      log,
		locks:    newKeyedMutex(),
		now:      time.Now,
	}
	o.steps = []step{
		{name: "validate_syntax", to: StateValidatedSyntax, reason: httpx.StatusInvalidRequest, run: o.validateSyntax},
		{name: "check_user", to: StateUserChecked, reason: httpx.StatusInvalidRequest, run: o.checkUser},
		{name: "check_product", to: StateProductChecked, reason: httpx.StatusInvalidRequest, run: o.checkProduct},
		{name: "check_stock", to: StateStockSufficient, reason: httpx.StatusExceededLimit, run: o.checkStock},
		{name: "update_inventory", to: StateInventoryUpdated, reason: httpx.StatusInternalError, run: o.updateInventory},
		{name: "persist_order", to: StateOrderPersisted, reason: httpx.StatusInternalError, run: o.persistOrder},
	}
	return o
}

// Place runs one attempt. A non-nil error is always a *Rejection.
func (o *Orchestrator) Place(ctx context.Context, body []byte) (PlaceOrderResponse, error) {
	a := &attempt{state: StateReceived, body: body}
	rid := httpx.RequestIDFromContext(ctx)

	for _, st := range o.steps {
		if !CanTransition(a.state, st.to) {
			return PlaceOrderResponse{}, o.reject(a, httpx.StatusInternalError,
				fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, a.state, st.to), rid)
		}
		if err := st.run(ctx, a); err != nil {
			return PlaceOrderResponse{}, o.reject(a, st.reason, fmt.Errorf("%s: %w", st.name, err), rid)
		}
		o.log.Debug("saga transition", "rid", rid, "from", a.state, "to", st.to, "product_id", a.order.ProductID)
		a.state = st.to

		if a.state == StateValidatedSyntax {
			unlock := o.locks.Lock(a.order.ProductID)
			defer unlock()
		}
	}
	return responseFor(a.order), nil
}

func (o *Orchestrator) reject(a *attempt, reason string, err error, rid string) *Rejection {
	from := a.state
	a.state = StateRejected
	o.log.Info("order rejected", "rid", rid, "state", from, "reason", reason, "err", err)
	return &Rejection{From: from, Reason: reason, Err: err}
}

func (o *Orchestrator) validateSyntax(_ context.Context, a *attempt) error {
	var in PlaceOrderRequest
	if err := json.Unmarshal(a.body, &in); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if strings.ToLower(strings.TrimSpace(in.Command)) != CommandPlaceOrder {
		return fmt.Errorf("%w: command %q", ErrMalformed, in.Command)
	}
	if in.ProductID == nil || in.UserID == nil || in.Quantity == nil {
		return fmt.Errorf("%w: product_id, user_id and quantity are required", ErrMalformed)
	}
	if *in.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrMalformed)
	}
	a.order = Order{UserID: *in.UserID, ProductID: *in.ProductID, Quantity: *in.Quantity}
	return nil
}

func (o *Orchestrator) checkUser(ctx context.Context, a *attempt) error {
	return o.up.UserExists(ctx, a.order.UserID)
}

func (o *Orchestrator) checkProduct(ctx context.Context, a *attempt) error {
	stock, known, err := o.up.ProductStock(ctx, a.order.ProductID)
	if err != nil {
		return err
	}
	if !known {
		stock = -1
	}
	a.stock = stock
	return nil
}

func (o *Orchestrator) checkStock(_ context.Context, a *attempt) error {
	if a.stock < a.order.Quantity {
		return fmt.Errorf("%w: have %d, want %d", ErrInsufficientStock, a.stock, a.order.Quantity)
	}
	return nil
}

func (o *Orchestrator) updateInventory(ctx context.Context, a *attempt) error {
	return o.up.SetStock(ctx, a.order.ProductID, a.stock-a.order.Quantity)
}

// persistOrder cannot fail: the stock is already gone, so id and log
// problems are logged and the order still succeeds.
func (o *Orchestrator) persistOrder(ctx context.Context, a *attempt) error {
	id, err := o.ids.Next(ctx)
	if err != nil {
		o.log.Warn("order id source failed, using random id", "err", err)
		id, _ = o.fallback.Next(ctx)
	}
	a.order.ID = id

	if o.orders == nil {
		return nil
	}
	rec := orderlog.Record{
		ID:        a.order.ID,
		UserID:    a.order.UserID,
		ProductID: a.order.ProductID,
		Quantity:  a.order.Quantity,
		PlacedAt:  o.now().UTC(),
	}
	if err := o.orders.Append(ctx, rec); err != nil {
		o.log.Warn("order log append failed", "order_id", a.order.ID, "err", err)
	}
	return nil
}

// AsRejection unwraps err into a Rejection, treating anything else as an
// internal failure.
func AsRejection(err error) *Rejection {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej
	}
	return &Rejection{From: StateReceived, Reason: httpx.StatusInternalError, Err: err}
}
