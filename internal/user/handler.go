package user

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/ordenes-saga/internal/httpx"
	"github.com/MikeMC777/ordenes-saga/internal/store"
)

func RegisterRoutes(r gin.IRouter, svc *Service) {
	r.GET("/user/*rest", getUserHandler(svc))
	r.POST("/user", mutateUserHandler(svc))
}

// getUserHandler godoc
// @Summary  Fetch a user
// @Tags     users
// @Produce  json
// @Param    id  path  int  true  "user id"
// @Success  200  {object}  User
// @Failure  400  {object}  map[string]interface{}
// @Failure  404  {object}  map[string]interface{}
// @Router   /user/{id} [get]
func getUserHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := store.ParseID(c.Param("rest"))
		if !ok {
			httpx.Empty(c, http.StatusBadRequest)
			return
		}
		u, err := svc.Fetch(c.Request.Context(), id)
		if err != nil {
			httpx.Fail(c, store.StatusFor(err))
			return
		}
		c.JSON(http.StatusOK, u)
	}
}

// mutateUserHandler godoc
// @Summary  Create, update or delete a user
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    body  body  MutateRequest  true  "command"
// @Success  200  {object}  User
// @Failure  400,401,404,409  {object}  map[string]interface{}
// @Router   /user [post]
func mutateUserHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			httpx.Empty(c, http.StatusBadRequest)
			return
		}
		u, err := svc.Mutate(c.Request.Context(), body)
		if err != nil {
			httpx.Fail(c, store.StatusFor(err))
			return
		}
		if u == nil {
			httpx.Empty(c, http.StatusOK)
			return
		}
		c.JSON(http.StatusOK, u)
	}
}
