package user

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/moura95/account-auth/internal/domain/avatar"
	"github.com/moura95/account-auth/internal/domain/user"
)

type DeleteUserUseCase struct {
	userRepo user.Repository
	avatars  avatar.Storage
	logger   *zap.SugaredLogger
}

func NewDeleteUserUseCase(userRepo user.Repository, avatars avatar.Storage, logger *zap.SugaredLogger) *DeleteUserUseCase {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &DeleteUserUseCase{
		userRepo: userRepo,
		avatars:  avatars,
		logger:   logger,
	}
}

func (uc *DeleteUserUseCase) Execute(ctx context.Context, userID string) error {
	parsedID, err := parseUserID(userID)
	if err != nil {
		return fmt.Errorf("usecase: delete user failed: %w", err)
	}

	foundUser, err := uc.userRepo.GetByID(ctx, parsedID)
	if err != nil {
		return fmt.Errorf("usecase: delete user failed: %w", err)
	}

	if err := uc.userRepo.Delete(ctx, parsedID); err != nil {
		return fmt.Errorf("usecase: delete user failed: %w", err)
	}

	// The account is already gone, so a leftover file only gets logged.
	if avatar.DeletableBy(uc.avatars, foundUser.ID, foundUser.Image) {
		if err := uc.avatars.Delete(ctx, foundUser.Image); err != nil {
			uc.logger.Warnw("failed to delete avatar of removed user", "user_id", foundUser.ID, "error", err)
		}
	}

	return nil
}
