package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/moura95/account-auth/internal/infra/security/crypto"
)

type User struct {
	ID        uuid.UUID `json:"id" db:"uuid"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Image     string    `json:"image" db:"image"`
	Password  string    `json:"-" db:"password"` // Never expose password in JSON
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NormalizeEmail is applied to every email before it is stored or looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func NewUser(name, email, image, password string) (*User, error) {
	validator := NewUserValidator()

	now := time.Now()
	user := &User{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		Email:     NormalizeEmail(email),
		Image:     strings.TrimSpace(image),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := validator.ValidateUser(user); err != nil {
		return nil, err
	}

	if err := validator.ValidatePassword(password); err != nil {
		return nil, err
	}

	hashedPassword, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user.Password = hashedPassword

	return user, nil
}

func (u *User) UpdateUser(name, email string) error {
	validator := NewUserValidator()

	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)

	if name != "" {
		if err := validator.ValidateName(name); err != nil {
			return err
		}
	}

	if email != "" {
		if err := validator.ValidateEmail(email); err != nil {
			return err
		}
	}

	if name != "" {
		u.Name = name
	}
	if email != "" {
		u.Email = email
	}

	u.UpdatedAt = time.Now()
	return nil
}

// SetImage replaces the avatar URL. An empty url clears it.
func (u *User) SetImage(url string) error {
	if err := NewUserValidator().ValidateImage(url); err != nil {
		return err
	}
	u.Image = url
	u.UpdatedAt = time.Now()
	return nil
}

func (u *User) CheckPassword(password string) error {
	return crypto.CheckPassword(password, u.Password)
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Image:     u.Image,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
