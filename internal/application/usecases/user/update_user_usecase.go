package user

import (
	"context"
	"fmt"

	"github.com/moura95/account-auth/internal/application/dto"
	"github.com/moura95/account-auth/internal/domain/user"
)

type UpdateUserUseCase struct {
	userRepo user.Repository
}

func NewUpdateUserUseCase(userRepo user.Repository) *UpdateUserUseCase {
	return &UpdateUserUseCase{
		userRepo: userRepo,
	}
}

func (uc *UpdateUserUseCase) Execute(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*user.User, error) {
	parsedID, err := parseUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("usecase: update user failed: %w", err)
	}

	foundUser, err := uc.userRepo.GetByID(ctx, parsedID)
	if err != nil {
		return nil, fmt.Errorf("usecase: update user failed: %w", err)
	}

	if email := user.NormalizeEmail(req.Email); email != "" && email != foundUser.Email {
		exists, err := uc.userRepo.EmailExists(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("usecase: update user failed: %w", err)
		}
		if exists {
			return nil, fmt.Errorf("usecase: update user failed: %w", user.ErrEmailAlreadyExists)
		}
	}

	if err := foundUser.UpdateUser(req.Name, req.Email); err != nil {
		return nil, fmt.Errorf("usecase: update user failed: %w", err)
	}

	if err := uc.userRepo.Update(ctx, foundUser); err != nil {
		return nil, fmt.Errorf("usecase: update user failed: %w", err)
	}

	return foundUser, nil
}
