package order

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/ordenes-saga/internal/httpx"
)

// PlaceOrderHandler godoc
// @Summary  Place an order
// @Tags     orders
// @Accept   json
// @Produce  json
// @Param    body  body  PlaceOrderRequest  true  "order"
// @Success  200  {object}  PlaceOrderResponse
// @Failure  400  {object}  map[string]string
// @Failure  500  {object}  map[string]string
// @Router   /order [post]
func PlaceOrderHandler(o *Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, httpx.StatusBody(httpx.StatusInvalidRequest))
			return
		}
		res, err := o.Place(c.Request.Context(), body)
		if err != nil {
			rej := AsRejection(err)
			c.JSON(rej.StatusCode(), httpx.StatusBody(rej.Reason))
			return
		}
		c.JSON(http.StatusOK, res)
	}
}
