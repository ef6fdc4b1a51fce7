package middlewares

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/moura95/account-auth/internal/domain/user"
)

type stubVerifier struct {
	user *user.User
	err  error
	got  string
}

func (s *stubVerifier) VerifyToken(_ context.Context, token string) (*user.User, error) {
	s.got = token
	return s.user, s.err
}

func newRouter(verifier TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/me", AuthMiddleware(verifier), func(c *gin.Context) {
		id, ok := GetUserIDFromContext(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.String(http.StatusOK, id)
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	u, err := user.NewUser("John Doe", "john@example.com", "", "password123")
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		verifier   *stubVerifier
		wantStatus int
		wantToken  string
	}{
		{name: "valid bearer", header: "Bearer abc", verifier: &stubVerifier{user: u}, wantStatus: http.StatusOK, wantToken: "abc"},
		{name: "scheme is case-insensitive", header: "bEaReR abc", verifier: &stubVerifier{user: u}, wantStatus: http.StatusOK, wantToken: "abc"},
		{name: "missing header", header: "", verifier: &stubVerifier{user: u}, wantStatus: http.StatusUnauthorized},
		{name: "missing token", header: "Bearer", verifier: &stubVerifier{user: u}, wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", verifier: &stubVerifier{user: u}, wantStatus: http.StatusUnauthorized},
		{name: "rejected token", header: "Bearer abc", verifier: &stubVerifier{err: errors.New("expired")}, wantStatus: http.StatusUnauthorized, wantToken: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			newRouter(tt.verifier).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantToken, tt.verifier.got)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, u.ID.String(), rec.Body.String())
			}
		})
	}
}

func TestRecoveryAndRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core).Sugar()

	router := gin.New()
	router.Use(RequestLogger(logger), Recovery(logger))
	router.GET("/panic", func(c *gin.Context) { panic("boom") })
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
	assert.Equal(t, 1, logs.FilterMessage("request failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("request handled").Len())
}

func TestBodyLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/echo", BodyLimit(8), func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				c.Status(http.StatusRequestEntityTooLarge)
				return
			}
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, string(body))
	})

	tests := []struct {
		name       string
		body       string
		streamed   bool
		wantStatus int
	}{
		{name: "within limit", body: "12345678", wantStatus: http.StatusOK},
		{name: "declared length over limit", body: "123456789", wantStatus: http.StatusRequestEntityTooLarge},
		{name: "streamed body over limit", body: "123456789", streamed: true, wantStatus: http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(tt.body))
			if tt.streamed {
				req.ContentLength = -1
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
