package gin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/moura95/account-auth/internal/application/dto"
	userUC "github.com/moura95/account-auth/internal/application/usecases/user"
	"github.com/moura95/account-auth/internal/domain/avatar"
	"github.com/moura95/account-auth/internal/domain/user"
	"github.com/moura95/account-auth/internal/infra/config"
	"github.com/moura95/account-auth/internal/infra/metrics"
)

type stubAuth struct {
	u *user.User
}

func (s stubAuth) Register(ctx context.Context, req dto.RegisterData) (*dto.AuthResponse, error) {
	resp := dto.NewAuthResponse(s.u, "token")
	return &resp, nil
}

func (s stubAuth) Login(ctx context.Context, req dto.LoginData) (*dto.AuthResponse, error) {
	resp := dto.NewAuthResponse(s.u, "token")
	return &resp, nil
}

func (s stubAuth) VerifyToken(ctx context.Context, token string) (*user.User, error) {
	if token != "good" {
		return nil, user.ErrInvalidCredentials
	}
	return s.u, nil
}

type stubUsers struct {
	u *user.User
}

func (s stubUsers) GetProfile(ctx context.Context, userID string) (*user.User, error) {
	return s.u, nil
}

func (s stubUsers) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*user.User, error) {
	return s.u, nil
}

func (s stubUsers) UpdateAvatar(ctx context.Context, userID string, req dto.UpdateAvatarRequest) (*user.User, error) {
	return s.u, nil
}

func (s stubUsers) DeleteProfile(ctx context.Context, userID string) error {
	return nil
}

func (s stubUsers) ListUsers(ctx context.Context, req userUC.ListUsersRequest) (*dto.ListUsersResponse, error) {
	return &dto.ListUsersResponse{Users: []user.UserResponse{s.u.ToResponse()}, Total: 1, Page: 1, PageSize: 10}, nil
}

func newTestServer(t *testing.T, avatarDir string) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	u := &user.User{ID: uuid.New(), Name: "John Doe", Email: "john@example.com"}
	auth := stubAuth{u: u}

	return NewServer(config.Config{HTTPServerAddress: "127.0.0.1:0"}, Dependencies{
		AuthService:   auth,
		UserService:   stubUsers{u: u},
		TokenVerifier: auth,
		Metrics:       metrics.New(),
		AvatarDir:     avatarDir,
	}, zap.NewNop().Sugar())
}

func serve(s *Server, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestServer_Healthz(t *testing.T) {
	s := newTestServer(t, "")
	assert.Equal(t, http.StatusNoContent, serve(s, http.MethodGet, "/healthz", "").Code)
}

func TestServer_Metrics(t *testing.T) {
	s := newTestServer(t, "")
	serve(s, http.MethodGet, "/healthz", "")

	w := serve(s, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestServer_Swagger(t *testing.T) {
	s := newTestServer(t, "")
	w := serve(s, http.MethodGet, "/swagger/doc.json", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/auth/register")
}

func TestServer_ProtectedRoutes(t *testing.T) {
	s := newTestServer(t, "")

	assert.Equal(t, http.StatusUnauthorized, serve(s, http.MethodGet, "/api/account/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(s, http.MethodGet, "/api/users", "bad").Code)

	w := serve(s, http.MethodGet, "/api/account/me", "good")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "john@example.com")

	assert.Equal(t, http.StatusNoContent, serve(s, http.MethodDelete, "/api/account/me", "good").Code)
}

func TestServer_AvatarsServedWhenDirSet(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "u1"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "u1", "a.png"), []byte("png"), 0o644))

	s := newTestServer(t, dir)
	w := serve(s, http.MethodGet, "/avatars/u1/a.png", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "png", w.Body.String())

	s = newTestServer(t, "")
	assert.Equal(t, http.StatusNotFound, serve(s, http.MethodGet, "/avatars/u1/a.png", "").Code)
}

func TestServer_RejectsOversizedBodies(t *testing.T) {
	gin.SetMode(gin.TestMode)
	u := &user.User{ID: uuid.New(), Name: "John Doe", Email: "john@example.com"}
	auth := stubAuth{u: u}
	s := NewServer(config.Config{AvatarMaxBytes: 1024}, Dependencies{
		AuthService:   auth,
		UserService:   stubUsers{u: u},
		TokenVerifier: auth,
	}, zap.NewNop().Sugar())

	limit := maxBodyBytes(1024)
	oversized := `{"name":"John Doe","email":"john@example.com","password":"password123","image64":"` +
		strings.Repeat("A", int(limit)) + `"}`

	post := func(body string, streamed bool) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if streamed {
			req.ContentLength = -1
		}
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, req)
		return w
	}

	t.Run("declared length over the limit", func(t *testing.T) {
		assert.Equal(t, http.StatusRequestEntityTooLarge, post(oversized, false).Code)
	})

	t.Run("streamed body over the limit", func(t *testing.T) {
		w := post(oversized, true)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Contains(t, w.Body.String(), "request body too large")
	})

	t.Run("body within the limit", func(t *testing.T) {
		w := post(`{"name":"John Doe","email":"john@example.com","password":"password123"}`, false)
		assert.Equal(t, http.StatusCreated, w.Code)
	})
}

func TestMaxBodyBytes(t *testing.T) {
	assert.Equal(t, int64(1024*4/3+bodyHeadroom), maxBodyBytes(1024))
	assert.Equal(t, maxBodyBytes(avatar.DefaultMaxBytes), maxBodyBytes(0))
}
