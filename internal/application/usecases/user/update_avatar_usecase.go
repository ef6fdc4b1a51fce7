package user

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/moura95/account-auth/internal/domain/avatar"
	"github.com/moura95/account-auth/internal/domain/user"
)

type UpdateAvatarUseCase struct {
	userRepo user.Repository
	avatars  avatar.Storage
	limits   avatar.Limits
	logger   *zap.SugaredLogger
}

func NewUpdateAvatarUseCase(userRepo user.Repository, avatars avatar.Storage, limits avatar.Limits, logger *zap.SugaredLogger) *UpdateAvatarUseCase {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &UpdateAvatarUseCase{
		userRepo: userRepo,
		avatars:  avatars,
		limits:   limits,
		logger:   logger,
	}
}

// Execute replaces the avatar of userID with the decoded image64 payload.
// The previous avatar is removed once the new one is persisted, but only if
// it is a file this user uploaded.
func (uc *UpdateAvatarUseCase) Execute(ctx context.Context, userID string, image64 string) (*user.User, error) {
	parsedID, err := parseUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("usecase: update avatar failed: %w", err)
	}

	decoded, err := avatar.Decode(image64, uc.limits)
	if err != nil {
		return nil, fmt.Errorf("usecase: update avatar failed: %w", err)
	}

	foundUser, err := uc.userRepo.GetByID(ctx, parsedID)
	if err != nil {
		return nil, fmt.Errorf("usecase: update avatar failed: %w", err)
	}
	previous := foundUser.Image

	url, err := uc.avatars.Save(ctx, avatar.ObjectKey(foundUser.ID, decoded), decoded)
	if err != nil {
		return nil, fmt.Errorf("usecase: update avatar failed: store avatar: %w", err)
	}

	if url == previous {
		return foundUser, nil
	}

	if err := foundUser.SetImage(url); err != nil {
		return nil, fmt.Errorf("usecase: update avatar failed: %w", err)
	}

	if err := uc.userRepo.UpdateImage(ctx, foundUser.ID, url); err != nil {
		uc.discardAvatar(url)
		return nil, fmt.Errorf("usecase: update avatar failed: %w", err)
	}

	if avatar.DeletableBy(uc.avatars, foundUser.ID, previous) {
		if err := uc.avatars.Delete(ctx, previous); err != nil {
			uc.logger.Warnw("failed to delete previous avatar", "user_id", foundUser.ID, "error", err)
		}
	}

	return foundUser, nil
}

func (uc *UpdateAvatarUseCase) discardAvatar(url string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := uc.avatars.Delete(ctx, url); err != nil {
		uc.logger.Warnw("failed to discard unused avatar", "url", url, "error", err)
	}
}
