package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moura95/account-auth/pkg/ginx"
)

// BodyLimit caps request bodies at maxBytes. Declared lengths over the cap
// are refused up front; streamed bodies fail on read with
// *http.MaxBytesError, which ginx.ParseJSON reports as ErrBodyTooLarge.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, ginx.ErrorResponse(ginx.ErrBodyTooLarge.Error()))
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
