package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/moura95/account-auth/internal/application/dto"
	userUC "github.com/moura95/account-auth/internal/application/usecases/user"
	userDomain "github.com/moura95/account-auth/internal/domain/user"
	"github.com/moura95/account-auth/internal/interfaces/http/middlewares"
	"github.com/moura95/account-auth/pkg/ginx"
)

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*userDomain.User, error)
	UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*userDomain.User, error)
	UpdateAvatar(ctx context.Context, userID string, req dto.UpdateAvatarRequest) (*userDomain.User, error)
	DeleteProfile(ctx context.Context, userID string) error
	ListUsers(ctx context.Context, req userUC.ListUsersRequest) (*dto.ListUsersResponse, error)
}

type UserHandler struct {
	userService UserService
}

func NewUserHandler(userService UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// @Summary Current profile
// @Tags account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ginx.Response{data=userDomain.UserResponse}
// @Failure 401 {object} ginx.Response
// @Failure 404 {object} ginx.Response
// @Router /account/me [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, exists := middlewares.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, ginx.ErrorResponse("handler: get profile failed: user not authenticated"))
		return
	}

	foundUser, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		c.JSON(getStatusCodeFromError(err), ginx.ErrorResponse(fmt.Sprintf("handler: get profile failed: %v", err)))
		return
	}

	c.JSON(http.StatusOK, ginx.SuccessResponse(foundUser.ToResponse()))
}

// @Summary Update profile
// @Tags account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} ginx.Response{data=userDomain.UserResponse}
// @Failure 400 {object} ginx.Response
// @Failure 409 {object} ginx.Response
// @Router /account/me [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, exists := middlewares.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, ginx.ErrorResponse("handler: update profile failed: user not authenticated"))
		return
	}

	var req dto.UpdateProfileRequest
	if err := ginx.ParseJSON(c, &req); err != nil {
		c.JSON(parseErrorStatus(err), ginx.ErrorResponse(fmt.Sprintf("handler: update profile failed: invalid request format: %v", err)))
		return
	}

	updatedUser, err := h.userService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(getStatusCodeFromError(err), ginx.ErrorResponse(fmt.Sprintf("handler: update profile failed: %v", err)))
		return
	}

	c.JSON(http.StatusOK, ginx.SuccessResponse(updatedUser.ToResponse()))
}

// @Summary Replace avatar
// @Tags account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateAvatarRequest true "Base64 image"
// @Success 200 {object} ginx.Response{data=userDomain.UserResponse}
// @Failure 400 {object} ginx.Response
// @Failure 413 {object} ginx.Response
// @Router /account/me/avatar [put]
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	userID, exists := middlewares.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, ginx.ErrorResponse("handler: update avatar failed: user not authenticated"))
		return
	}

	var req dto.UpdateAvatarRequest
	if err := ginx.ParseJSON(c, &req); err != nil {
		c.JSON(parseErrorStatus(err), ginx.ErrorResponse(fmt.Sprintf("handler: update avatar failed: invalid request format: %v", err)))
		return
	}

	updatedUser, err := h.userService.UpdateAvatar(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(getStatusCodeFromError(err), ginx.ErrorResponse(fmt.Sprintf("handler: update avatar failed: %v", err)))
		return
	}

	c.JSON(http.StatusOK, ginx.SuccessResponse(updatedUser.ToResponse()))
}

// @Summary Delete account
// @Tags account
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} ginx.Response
// @Router /account/me [delete]
func (h *UserHandler) DeleteProfile(c *gin.Context) {
	userID, exists := middlewares.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, ginx.ErrorResponse("handler: delete profile failed: user not authenticated"))
		return
	}

	if err := h.userService.DeleteProfile(c.Request.Context(), userID); err != nil {
		c.JSON(getStatusCodeFromError(err), ginx.ErrorResponse(fmt.Sprintf("handler: delete profile failed: %v", err)))
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page" default(1)
// @Param page_size query int false "Page size" default(10)
// @Param search query string false "Name or email fragment"
// @Success 200 {object} ginx.Response{data=dto.ListUsersResponse}
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	req := userUC.ListUsersRequest{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
	}

	result, err := h.userService.ListUsers(c.Request.Context(), req)
	if err != nil {
		c.JSON(getStatusCodeFromError(err), ginx.ErrorResponse(fmt.Sprintf("handler: list users failed: %v", err)))
		return
	}

	c.JSON(http.StatusOK, ginx.SuccessResponse(result))
}
