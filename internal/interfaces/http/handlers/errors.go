package handlers

import (
	"errors"
	"net/http"

	authUC "github.com/moura95/account-auth/internal/application/usecases/auth"
	"github.com/moura95/account-auth/internal/domain/avatar"
	"github.com/moura95/account-auth/internal/domain/user"
	"github.com/moura95/account-auth/pkg/ginx"
)

// parseErrorStatus maps a ginx.ParseJSON failure to a status code.
func parseErrorStatus(err error) int {
	if errors.Is(err, ginx.ErrBodyTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

func getStatusCodeFromError(err error) int {
	switch {
	case errors.Is(err, user.ErrEmailAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, user.ErrInvalidCredentials), errors.Is(err, authUC.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, user.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, avatar.ErrImageTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, user.ErrValidation),
		errors.Is(err, avatar.ErrEmptyImage),
		errors.Is(err, avatar.ErrInvalidImage),
		errors.Is(err, avatar.ErrUnsupportedImageType):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
