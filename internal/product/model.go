package product

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// PriceTolerance is how far a delete request's price may drift from the
// stored price and still match.
var PriceTolerance = decimal.New(1, -4)

// Product prices are stored rounded to cents, the same precision the wire shows.
type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

// MarshalJSON renders price as a JSON number with two decimals.
func (p Product) MarshalJSON() ([]byte, error) {
	type wire struct {
		ID          int             `json:"id"`
		Name        string          `json:"name"`
		Description string          `json:"description"`
		Price       json.RawMessage `json:"price"`
		Quantity    int             `json:"quantity"`
	}
	return json.Marshal(wire{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       json.RawMessage(p.Price.StringFixed(2)),
		Quantity:    p.Quantity,
	})
}

// MutateRequest is the body of POST /product.
// swagger:model ProductMutateRequest
type MutateRequest struct {
	Command     string           `json:"command"     example:"create"`
	ID          int              `json:"id"          example:"10"`
	Name        *string          `json:"name"        example:"widget"`
	Description *string          `json:"description" example:"a small widget"`
	Price       *decimal.Decimal `json:"price"       swaggertype:"number" example:"2.50"`
	Quantity    *int             `json:"quantity"    example:"5"`
}
