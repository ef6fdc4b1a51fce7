package auth

import (
	"errors"

	"github.com/moura95/account-auth/internal/domain/user"
)

var ErrInvalidToken = errors.New("invalid token")

// Result is what register and login hand back to the service layer.
type Result struct {
	User  *user.User
	Token string
}
