package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Status messages carried in {"status": ...} bodies.
const (
	StatusSuccess        = "Success"
	StatusInvalidRequest = "Invalid Request"
	StatusInvalidPath    = "Invalid Path"
	StatusExceededLimit  = "Exceeded quantity limit"
	StatusInternalError  = "Internal Error"
	StatusNotAllowed     = "Method Not Allowed"
)

func StatusBody(msg string) gin.H {
	return gin.H{"status": msg}
}

// Empty answers with the bare {} body the entity endpoints use for errors.
func Empty(c *gin.Context, code int) {
	c.Data(code, "application/json", []byte("{}"))
}

// Fail answers a store-level error: 5xx carries a status message, 4xx an empty object.
func Fail(c *gin.Context, code int) {
	if code >= http.StatusInternalServerError {
		c.JSON(code, StatusBody(StatusInternalError))
		return
	}
	Empty(c, code)
}
