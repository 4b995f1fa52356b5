package order

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MikeMC777/ordenes-saga/internal/httpx"
)

var (
	ErrMalformed         = errors.New("malformed order request")
	ErrUnknownEntity     = errors.New("referenced record not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrUpstream          = errors.New("upstream failure")
	ErrIllegalTransition = errors.New("illegal saga transition")
)

// Rejection ends an attempt in REJECTED. Reason is the client-visible status.
type Rejection struct {
	From   State
	Reason string
	Err    error
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("rejected at %s: %s: %v", r.From, r.Reason, r.Err)
}

func (r *Rejection) Unwrap() error { return r.Err }

// StatusCode is 500 for internal failures and 400 otherwise.
func (r *Rejection) StatusCode() int {
	if r.Reason == httpx.StatusInternalError {
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}
