package auth

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/moura95/account-auth/internal/application/dto"
	"github.com/moura95/account-auth/internal/application/usecases/auth"
	"github.com/moura95/account-auth/internal/application/usecases/email"
	domainUser "github.com/moura95/account-auth/internal/domain/user"
)

type AuthService struct {
	registerUseCase         *auth.RegisterUseCase
	loginUseCase            *auth.LoginUseCase
	verifyTokenUseCase      *auth.VerifyTokenUseCase
	sendWelcomeEmailUseCase *email.SendWelcomeEmailUseCase
	logger                  *zap.SugaredLogger
}

func NewAuthService(
	registerUC *auth.RegisterUseCase,
	loginUC *auth.LoginUseCase,
	verifyTokenUC *auth.VerifyTokenUseCase,
	sendWelcomeEmailUC *email.SendWelcomeEmailUseCase,
	logger *zap.SugaredLogger,
) *AuthService {
	return &AuthService{
		registerUseCase:         registerUC,
		loginUseCase:            loginUC,
		verifyTokenUseCase:      verifyTokenUC,
		sendWelcomeEmailUseCase: sendWelcomeEmailUC,
		logger:                  logger,
	}
}

// Register creates the account and queues the welcome email. A failure to
// queue the email is logged and does not fail the registration.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterData) (*dto.AuthResponse, error) {
	result, err := s.registerUseCase.Execute(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("service: register failed: %w", err)
	}

	if s.sendWelcomeEmailUseCase != nil {
		emailReq := email.SendWelcomeEmailRequest{
			UserID:    result.User.ID.String(),
			UserName:  result.User.Name,
			UserEmail: result.User.Email,
			UserImage: result.User.Image,
		}
		if _, err := s.sendWelcomeEmailUseCase.Execute(ctx, emailReq); err != nil {
			s.logger.Warnw("failed to queue welcome email", "user_id", result.User.ID, "error", err)
		}
	}

	response := dto.NewAuthResponse(result.User, result.Token)
	return &response, nil
}

func (s *AuthService) Login(ctx context.Context, req dto.LoginData) (*dto.AuthResponse, error) {
	result, err := s.loginUseCase.Execute(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("service: login failed: %w", err)
	}

	response := dto.NewAuthResponse(result.User, result.Token)
	return &response, nil
}

func (s *AuthService) VerifyToken(ctx context.Context, token string) (*domainUser.User, error) {
	result, err := s.verifyTokenUseCase.Execute(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("service: verify token failed: %w", err)
	}

	return result, nil
}
