package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moura95/account-auth/internal/application/dto"
	"github.com/moura95/account-auth/pkg/ginx"
)

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterData) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginData) (*dto.AuthResponse, error)
}

type AuthHandler struct {
	authService AuthService
}

func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// @Summary Register a new user
// @Description Create an account, optionally with a base64 avatar, and return a token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterData true "Registration data"
// @Success 201 {object} ginx.Response{data=dto.AuthResponse}
// @Failure 400 {object} ginx.Response
// @Failure 409 {object} ginx.Response
// @Failure 413 {object} ginx.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterData

	if err := ginx.ParseJSON(c, &req); err != nil {
		c.JSON(parseErrorStatus(err), ginx.ErrorResponse(fmt.Sprintf("handler: register failed: invalid request format: %v", err)))
		return
	}

	result, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		c.JSON(getStatusCodeFromError(err), ginx.ErrorResponse(fmt.Sprintf("handler: register failed: %v", err)))
		return
	}

	c.JSON(http.StatusCreated, ginx.SuccessResponse(result))
}

// @Summary Log in
// @Description Authenticate with email and password and return a token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginData true "Credentials"
// @Success 200 {object} ginx.Response{data=dto.AuthResponse}
// @Failure 400 {object} ginx.Response
// @Failure 401 {object} ginx.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginData

	if err := ginx.ParseJSON(c, &req); err != nil {
		c.JSON(parseErrorStatus(err), ginx.ErrorResponse(fmt.Sprintf("handler: login failed: invalid request format: %v", err)))
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		c.JSON(getStatusCodeFromError(err), ginx.ErrorResponse(fmt.Sprintf("handler: login failed: %v", err)))
		return
	}

	c.JSON(http.StatusOK, ginx.SuccessResponse(result))
}
