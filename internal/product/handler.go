package product

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/ordenes-saga/internal/httpx"
	"github.com/MikeMC777/ordenes-saga/internal/store"
)

func RegisterRoutes(r gin.IRouter, svc *Service) {
	r.GET("/product/*rest", getProductHandler(svc))
	r.POST("/product", mutateProductHandler(svc))
}

// getProductHandler godoc
// @Summary  Fetch a product
// @Tags     products
// @Produce  json
// @Param    id  path  int  true  "product id"
// @Success  200  {object}  Product
// @Failure  400  {object}  map[string]interface{}
// @Failure  404  {object}  map[string]interface{}
// @Router   /product/{id} [get]
func getProductHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := store.ParseID(c.Param("rest"))
		if !ok {
			httpx.Empty(c, http.StatusBadRequest)
			return
		}
		p, err := svc.Fetch(c.Request.Context(), id)
		if err != nil {
			httpx.Fail(c, store.StatusFor(err))
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// mutateProductHandler godoc
// @Summary  Create, update or delete a product
// @Tags     products
// @Accept   json
// @Produce  json
// @Param    body  body  MutateRequest  true  "command"
// @Success  200  {object}  Product
// @Failure  400,401,404,409  {object}  map[string]interface{}
// @Router   /product [post]
func mutateProductHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := c.GetRawData()
		if err != nil {
			httpx.Empty(c, http.StatusBadRequest)
			return
		}
		p, err := svc.Mutate(c.Request.Context(), body)
		switch {
		case err != nil:
			httpx.Fail(c, store.StatusFor(err))
		case p == nil:
			httpx.Empty(c, http.StatusOK)
		default:
			c.JSON(http.StatusOK, p)
		}
	}
}
