package dto

import "github.com/moura95/account-auth/internal/domain/user"

// RegisterData is the registration input: the client-supplied User fields
// (everything but the id), the plain password and an optional base64 avatar.
type RegisterData struct {
	Name     string `json:"name" example:"John Doe"`
	Email    string `json:"email" example:"john@example.com"`
	Image    string `json:"image,omitempty" example:"https://cdn.example.com/john.png"`
	Password string `json:"password" example:"password123"`
	Image64  string `json:"image64,omitempty"`
}

// LoginData is the login credential pair.
type LoginData struct {
	Email    string `json:"email" example:"john@example.com"`
	Password string `json:"password" example:"password123"`
}

// AuthResponse is returned by every successful authentication.
type AuthResponse struct {
	User  user.UserResponse `json:"user"`
	Token string            `json:"token"`
}

func NewAuthResponse(u *user.User, token string) AuthResponse {
	return AuthResponse{
		User:  u.ToResponse(),
		Token: token,
	}
}

type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UpdateAvatarRequest struct {
	Image64 string `json:"image64"`
}

type ListUsersResponse struct {
	Users    []user.UserResponse `json:"users"`
	Total    int                 `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
}
