package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/moura95/account-auth/internal/domain/user"
	"github.com/moura95/account-auth/internal/infra/security/token"
)

type VerifyTokenUseCase struct {
	userRepo   user.Repository
	tokenMaker token.Maker
}

func NewVerifyTokenUseCase(userRepo user.Repository, tokenMaker token.Maker) *VerifyTokenUseCase {
	return &VerifyTokenUseCase{
		userRepo:   userRepo,
		tokenMaker: tokenMaker,
	}
}

// Execute resolves a bearer token to the user it was issued for. Every
// failure wraps ErrInvalidToken, except repository outages.
func (uc *VerifyTokenUseCase) Execute(ctx context.Context, tokenStr string) (*user.User, error) {
	if tokenStr == "" {
		return nil, fmt.Errorf("usecase: verify token failed: %w: token is required", ErrInvalidToken)
	}

	payload, err := uc.tokenMaker.VerifyToken(tokenStr)
	if err != nil {
		return nil, fmt.Errorf("usecase: verify token failed: %w: %v", ErrInvalidToken, err)
	}

	userID, err := uuid.Parse(payload.UserID)
	if err != nil {
		return nil, fmt.Errorf("usecase: verify token failed: %w: invalid user ID in token", ErrInvalidToken)
	}

	foundUser, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, fmt.Errorf("usecase: verify token failed: %w: user no longer exists", ErrInvalidToken)
		}
		return nil, fmt.Errorf("usecase: verify token failed: %w", err)
	}

	return foundUser, nil
}
