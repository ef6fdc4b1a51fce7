package user

import (
	"context"
	"fmt"

	"github.com/moura95/account-auth/internal/application/dto"
	"github.com/moura95/account-auth/internal/application/usecases/user"
	domainUser "github.com/moura95/account-auth/internal/domain/user"
)

type UserService struct {
	getUserProfileUseCase *user.GetUserProfileUseCase
	updateUserUseCase     *user.UpdateUserUseCase
	updateAvatarUseCase   *user.UpdateAvatarUseCase
	deleteUserUseCase     *user.DeleteUserUseCase
	listUsersUseCase      *user.ListUsersUseCase
}

func NewUserService(
	getUserProfileUC *user.GetUserProfileUseCase,
	updateUserUC *user.UpdateUserUseCase,
	updateAvatarUC *user.UpdateAvatarUseCase,
	deleteUserUC *user.DeleteUserUseCase,
	listUsersUC *user.ListUsersUseCase,
) *UserService {
	return &UserService{
		getUserProfileUseCase: getUserProfileUC,
		updateUserUseCase:     updateUserUC,
		updateAvatarUseCase:   updateAvatarUC,
		deleteUserUseCase:     deleteUserUC,
		listUsersUseCase:      listUsersUC,
	}
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*domainUser.User, error) {
	result, err := s.getUserProfileUseCase.Execute(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service: get profile failed: %w", err)
	}

	return result, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domainUser.User, error) {
	result, err := s.updateUserUseCase.Execute(ctx, userID, req)
	if err != nil {
		return nil, fmt.Errorf("service: update profile failed: %w", err)
	}

	return result, nil
}

func (s *UserService) UpdateAvatar(ctx context.Context, userID string, req dto.UpdateAvatarRequest) (*domainUser.User, error) {
	result, err := s.updateAvatarUseCase.Execute(ctx, userID, req.Image64)
	if err != nil {
		return nil, fmt.Errorf("service: update avatar failed: %w", err)
	}

	return result, nil
}

func (s *UserService) DeleteProfile(ctx context.Context, userID string) error {
	if err := s.deleteUserUseCase.Execute(ctx, userID); err != nil {
		return fmt.Errorf("service: delete profile failed: %w", err)
	}

	return nil
}

func (s *UserService) ListUsers(ctx context.Context, req user.ListUsersRequest) (*dto.ListUsersResponse, error) {
	result, err := s.listUsersUseCase.Execute(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("service: list users failed: %w", err)
	}

	users := make([]domainUser.UserResponse, 0, len(result.Users))
	for _, u := range result.Users {
		users = append(users, u.ToResponse())
	}

	return &dto.ListUsersResponse{
		Users:    users,
		Total:    result.Total,
		Page:     result.Page,
		PageSize: result.PageSize,
	}, nil
}
