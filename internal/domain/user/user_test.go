package user

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("should create user successfully with valid data", func(t *testing.T) {
		// Act
		user, err := NewUser("John Doe", "john@example.com", "", "password123")

		// Assert
		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "John Doe", user.Name)
		assert.Equal(t, "john@example.com", user.Email)
		assert.Empty(t, user.Image)
		assert.NotEqual(t, "password123", user.Password)
		assert.NotZero(t, user.CreatedAt)
		assert.NotZero(t, user.UpdatedAt)
	})

	t.Run("should normalize email", func(t *testing.T) {
		user, err := NewUser("John Doe", "  John@Example.COM ", "", "password123")

		require.NoError(t, err)
		assert.Equal(t, "john@example.com", user.Email)
	})

	t.Run("should keep a valid image url", func(t *testing.T) {
		user, err := NewUser("John Doe", "john@example.com", "https://cdn.example.com/a.png", "password123")

		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/a.png", user.Image)
	})

	t.Run("should fail with relative image url", func(t *testing.T) {
		user, err := NewUser("John Doe", "john@example.com", "/a.png", "password123")

		assert.Error(t, err)
		assert.Nil(t, user)
		assert.Contains(t, err.Error(), "invalid image url")
	})

	t.Run("should fail with invalid email format", func(t *testing.T) {
		user, err := NewUser("John Doe", "invalid-email", "", "password123")

		assert.Error(t, err)
		assert.Nil(t, user)
		assert.Contains(t, err.Error(), "invalid email format")
	})

	t.Run("should fail with empty email", func(t *testing.T) {
		user, err := NewUser("John Doe", "", "", "password123")

		assert.Error(t, err)
		assert.Nil(t, user)
		assert.Contains(t, err.Error(), "invalid email format")
	})

	t.Run("should fail with short name", func(t *testing.T) {
		user, err := NewUser("J", "john@example.com", "", "password123")

		assert.Error(t, err)
		assert.Nil(t, user)
		assert.Contains(t, err.Error(), "name must be at least 2 characters")
	})

	t.Run("should fail with long name", func(t *testing.T) {
		user, err := NewUser(strings.Repeat("A", 101), "john@example.com", "", "password123")

		assert.Error(t, err)
		assert.Nil(t, user)
		assert.Contains(t, err.Error(), "name must be less than 100 characters")
	})

	t.Run("should count name length in characters", func(t *testing.T) {
		user, err := NewUser(strings.Repeat("Ñ", 100), "john@example.com", "", "password123")

		require.NoError(t, err)
		assert.Equal(t, strings.Repeat("Ñ", 100), user.Name)
	})

	t.Run("should fail with weak password", func(t *testing.T) {
		user, err := NewUser("John Doe", "john@example.com", "", "123")

		assert.Error(t, err)
		assert.Nil(t, user)
		assert.Contains(t, err.Error(), "password must be at least 6 characters")
	})

	t.Run("should fail with password over bcrypt limit", func(t *testing.T) {
		user, err := NewUser("John Doe", "john@example.com", "", strings.Repeat("p", 73))

		assert.Error(t, err)
		assert.Nil(t, user)
		assert.Contains(t, err.Error(), "password must be at most 72 bytes")
	})

	t.Run("should generate unique IDs for different users", func(t *testing.T) {
		user1, err1 := NewUser("User 1", "user1@example.com", "", "password123")
		user2, err2 := NewUser("User 2", "user2@example.com", "", "password123")

		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.NotEqual(t, user1.ID, user2.ID)
	})
}

func TestUser_UpdateUser(t *testing.T) {
	createTestUser := func() *User {
		user, err := NewUser("John Doe", "john@example.com", "", "password123")
		require.NoError(t, err)
		return user
	}

	t.Run("should update name only", func(t *testing.T) {
		user := createTestUser()
		originalUpdatedAt := user.UpdatedAt
		time.Sleep(1 * time.Millisecond)

		err := user.UpdateUser("John Updated", "")

		assert.NoError(t, err)
		assert.Equal(t, "John Updated", user.Name)
		assert.Equal(t, "john@example.com", user.Email)
		assert.True(t, user.UpdatedAt.After(originalUpdatedAt))
	})

	t.Run("should update email only", func(t *testing.T) {
		user := createTestUser()

		err := user.UpdateUser("", "John.Updated@example.com")

		assert.NoError(t, err)
		assert.Equal(t, "John Doe", user.Name)
		assert.Equal(t, "john.updated@example.com", user.Email)
	})

	t.Run("should leave user untouched when email is invalid", func(t *testing.T) {
		user := createTestUser()
		originalUpdatedAt := user.UpdatedAt

		err := user.UpdateUser("New Name", "invalid-email")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid email format")
		assert.Equal(t, "John Doe", user.Name)
		assert.Equal(t, "john@example.com", user.Email)
		assert.Equal(t, originalUpdatedAt, user.UpdatedAt)
	})

	t.Run("should fail with invalid name", func(t *testing.T) {
		user := createTestUser()

		err := user.UpdateUser("J", "")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "name must be at least 2 characters")
		assert.Equal(t, "John Doe", user.Name)
	})
}

func TestUser_SetImage(t *testing.T) {
	user, err := NewUser("John Doe", "john@example.com", "", "password123")
	require.NoError(t, err)

	require.NoError(t, user.SetImage("http://localhost:8080/avatars/x.png"))
	assert.Equal(t, "http://localhost:8080/avatars/x.png", user.Image)

	assert.Error(t, user.SetImage("ftp://example.com/x.png"))
	assert.Equal(t, "http://localhost:8080/avatars/x.png", user.Image)

	require.NoError(t, user.SetImage(""))
	assert.Empty(t, user.Image)
}

func TestUser_CheckPassword(t *testing.T) {
	password := "MyPassword123"
	user, err := NewUser("John Doe", "john@example.com", "", password)
	require.NoError(t, err)

	assert.NoError(t, user.CheckPassword(password))
	assert.Error(t, user.CheckPassword("wrongPassword"))
	assert.Error(t, user.CheckPassword("mypassword123"))
	assert.Error(t, user.CheckPassword(""))
}

func TestUser_JSONNeverExposesPassword(t *testing.T) {
	user, err := NewUser("John Doe", "john@example.com", "", "password123")
	require.NoError(t, err)

	raw, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), user.Password)
	assert.NotContains(t, string(raw), "password")

	raw, err = json.Marshal(user.ToResponse())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), user.Password)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.ElementsMatch(t, []string{"id", "name", "email", "image", "created_at", "updated_at"}, keys(fields))
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestValidationErrors(t *testing.T) {
	_, err := NewUser("J", "john@example.com", "", "password123")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewUser("John", "john@", "", "password123")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewUser("John", "john@example.com", "", "123")
	assert.ErrorIs(t, err, ErrValidation)
}
