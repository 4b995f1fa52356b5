package order

import "github.com/MikeMC777/ordenes-saga/internal/httpx"

const CommandPlaceOrder = "place order"

// PlaceOrderRequest is the body of POST /order.
// swagger:model PlaceOrderRequest
type PlaceOrderRequest struct {
	Command   string `json:"command"    example:"place order"`
	ProductID *int   `json:"product_id" example:"10"`
	UserID    *int   `json:"user_id"    example:"1"`
	Quantity  *int   `json:"quantity"   example:"3"`
}

// PlaceOrderResponse is the success body of POST /order.
// swagger:model PlaceOrderResponse
type PlaceOrderResponse struct {
	ID        int    `json:"id"         example:"1804289383"`
	ProductID int    `json:"product_id" example:"10"`
	UserID    int    `json:"user_id"    example:"1"`
	Quantity  int    `json:"quantity"   example:"3"`
	Status    string `json:"status"     example:"Success"`
}

func responseFor(o Order) PlaceOrderResponse {
	return PlaceOrderResponse{
		ID:        o.ID,
		ProductID: o.ProductID,
		UserID:    o.UserID,
		Quantity:  o.Quantity,
		Status:    httpx.StatusSuccess,
	}
}
