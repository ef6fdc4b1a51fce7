package auth

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/moura95/account-auth/internal/application/dto"
	"github.com/moura95/account-auth/internal/domain/avatar"
	"github.com/moura95/account-auth/internal/domain/user"
	"github.com/moura95/account-auth/internal/infra/security/token"
)

type RegisterUseCase struct {
	userRepo      user.Repository
	avatars       avatar.Storage
	tokenMaker    token.Maker
	tokenDuration time.Duration
	avatarLimits  avatar.Limits
	logger        *zap.SugaredLogger
}

func NewRegisterUseCase(
	userRepo user.Repository,
	avatars avatar.Storage,
	tokenMaker token.Maker,
	tokenDuration time.Duration,
	avatarLimits avatar.Limits,
	logger *zap.SugaredLogger,
) *RegisterUseCase {
	if tokenDuration <= 0 {
		tokenDuration = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &RegisterUseCase{
		userRepo:      userRepo,
		avatars:       avatars,
		tokenMaker:    tokenMaker,
		tokenDuration: tokenDuration,
		avatarLimits:  avatarLimits,
		logger:        logger,
	}
}

func (uc *RegisterUseCase) Execute(ctx context.Context, req dto.RegisterData) (*Result, error) {
	email := user.NormalizeEmail(req.Email)

	exists, err := uc.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("usecase: register failed: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("usecase: register failed: %w", user.ErrEmailAlreadyExists)
	}

	// Stored avatars are only ever assigned through image64.
	if req.Image != "" {
		if _, managed := uc.avatars.Key(req.Image); managed {
			return nil, fmt.Errorf("usecase: register failed: %w: image must not point at an uploaded avatar, use image64", user.ErrValidation)
		}
	}

	newUser, err := user.NewUser(req.Name, email, req.Image, req.Password)
	if err != nil {
		return nil, fmt.Errorf("usecase: register failed: %w", err)
	}

	// Decode before touching storage so bad payloads never leave files behind.
	var storedURL string
	if req.Image64 != "" {
		decoded, err := avatar.Decode(req.Image64, uc.avatarLimits)
		if err != nil {
			return nil, fmt.Errorf("usecase: register failed: %w", err)
		}

		storedURL, err = uc.avatars.Save(ctx, avatar.ObjectKey(newUser.ID, decoded), decoded)
		if err != nil {
			return nil, fmt.Errorf("usecase: register failed: store avatar: %w", err)
		}

		if err := newUser.SetImage(storedURL); err != nil {
			uc.discardAvatar(storedURL)
			return nil, fmt.Errorf("usecase: register failed: %w", err)
		}
	}

	if err := uc.userRepo.Create(ctx, newUser); err != nil {
		uc.discardAvatar(storedURL)
		return nil, fmt.Errorf("usecase: register failed: %w", err)
	}

	tokenStr, _, err := uc.tokenMaker.CreateToken(newUser.ID, uc.tokenDuration)
	if err != nil {
		return nil, fmt.Errorf("usecase: register failed: token generation error: %w", err)
	}

	return &Result{User: newUser, Token: tokenStr}, nil
}

func (uc *RegisterUseCase) discardAvatar(url string) {
	if url == "" {
		return
	}
	// The request context may already be cancelled at this point.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := uc.avatars.Delete(ctx, url); err != nil {
		uc.logger.Warnw("failed to discard unused avatar", "url", url, "error", err)
	}
}
