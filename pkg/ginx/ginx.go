// Package ginx holds the JSON envelope shared by every HTTP handler.
package ginx

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	ErrEmptyBody    = errors.New("request body is empty")
	ErrBodyTooLarge = errors.New("request body too large")
)

type Response struct {
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

func SuccessResponse(data any) Response {
	return Response{Data: data}
}

func ErrorResponse(msg string) Response {
	return Response{Error: msg}
}

// ParseJSON binds the request body into dst.
func ParseJSON(c *gin.Context, dst any) error {
	if c.Request == nil || c.Request.Body == nil || c.Request.ContentLength == 0 {
		return ErrEmptyBody
	}

	if err := c.ShouldBindJSON(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, maxErr.Limit)
		}
		return fmt.Errorf("invalid json: %w", err)
	}

	return nil
}
