package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/moura95/account-auth/internal/application/dto"
	"github.com/moura95/account-auth/internal/domain/user"
	"github.com/moura95/account-auth/internal/infra/security/crypto"
	"github.com/moura95/account-auth/internal/infra/security/token"
)

type LoginUseCase struct {
	userRepo      user.Repository
	tokenMaker    token.Maker
	tokenDuration time.Duration
	checkPassword func(password, hash string) error
}

func NewLoginUseCase(userRepo user.Repository, tokenMaker token.Maker, tokenDuration time.Duration) *LoginUseCase {
	if tokenDuration <= 0 {
		tokenDuration = 24 * time.Hour
	}
	return &LoginUseCase{
		userRepo:      userRepo,
		tokenMaker:    tokenMaker,
		tokenDuration: tokenDuration,
		checkPassword: crypto.CheckPassword,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, req dto.LoginData) (*Result, error) {
	if err := uc.validateLoginData(req); err != nil {
		return nil, fmt.Errorf("usecase: login failed: %w", err)
	}

	foundUser, err := uc.userRepo.GetByEmail(ctx, user.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			// Unknown emails pay the same bcrypt cost as wrong passwords.
			_ = uc.checkPassword(req.Password, crypto.DummyHash())
			return nil, fmt.Errorf("usecase: login failed: %w", user.ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("usecase: login failed: %w", err)
	}

	if err := uc.checkPassword(req.Password, foundUser.Password); err != nil {
		return nil, fmt.Errorf("usecase: login failed: %w", user.ErrInvalidCredentials)
	}

	tokenStr, _, err := uc.tokenMaker.CreateToken(foundUser.ID, uc.tokenDuration)
	if err != nil {
		return nil, fmt.Errorf("usecase: login failed: token generation error: %w", err)
	}

	return &Result{User: foundUser, Token: tokenStr}, nil
}

func (uc *LoginUseCase) validateLoginData(req dto.LoginData) error {
	if strings.TrimSpace(req.Email) == "" {
		return fmt.Errorf("%w: email is required", user.ErrValidation)
	}

	if req.Password == "" {
		return fmt.Errorf("%w: password is required", user.ErrValidation)
	}

	return nil
}
