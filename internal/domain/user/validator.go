package user

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"

	"github.com/moura95/account-auth/internal/infra/security/crypto"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ErrValidation marks every error caused by bad client input.
var ErrValidation = errors.New("validation failed")

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

type UserValidator struct{}

func NewUserValidator() *UserValidator {
	return &UserValidator{}
}

func (v *UserValidator) ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return validationError("invalid email format")
	}
	return nil
}

func (v *UserValidator) ValidateName(name string) error {
	if len([]rune(name)) < 2 {
		return validationError("name must be at least 2 characters long")
	}
	if len([]rune(name)) > 100 {
		return validationError("name must be less than 100 characters")
	}
	return nil
}

func (v *UserValidator) ValidatePassword(password string) error {
	if err := crypto.ValidatePasswordStrength(password); err != nil {
		return validationError("%s", err.Error())
	}
	return nil
}

// ValidateImage accepts an empty value or an absolute http(s) URL.
func (v *UserValidator) ValidateImage(image string) error {
	if image == "" {
		return nil
	}

	parsed, err := url.Parse(image)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return validationError("invalid image url")
	}
	return nil
}

func (v *UserValidator) ValidateUser(user *User) error {
	if err := v.ValidateName(user.Name); err != nil {
		return err
	}

	if err := v.ValidateEmail(user.Email); err != nil {
		return err
	}

	if err := v.ValidateImage(user.Image); err != nil {
		return err
	}

	return nil
}
