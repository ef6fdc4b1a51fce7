package adapters

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/moura95/account-auth/internal/domain/user"
)

const userColumns = `uuid, name, email, image, password, created_at, updated_at`

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) user.Repository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) Create(ctx context.Context, domainUser *user.User) error {
	const query = `
		INSERT INTO users (uuid, name, email, image, password)
		VALUES (:uuid, :name, :email, :image, :password)
		RETURNING created_at, updated_at`

	rows, err := r.db.NamedQueryContext(ctx, query, domainUser)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("repository: create user failed: %w", user.ErrEmailAlreadyExists)
		}
		return fmt.Errorf("repository: create user failed: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&domainUser.CreatedAt, &domainUser.UpdatedAt); err != nil {
			return fmt.Errorf("repository: create user failed: %w", err)
		}
	}

	return rows.Err()
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var found user.User
	err := r.db.GetContext(ctx, &found, `SELECT `+userColumns+` FROM users WHERE uuid = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("repository: get user by id failed: %w", user.ErrUserNotFound)
		}
		return nil, fmt.Errorf("repository: get user by id failed: %w", err)
	}

	return &found, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var found user.User
	err := r.db.GetContext(ctx, &found, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("repository: get user by email failed: %w", user.ErrUserNotFound)
		}
		return nil, fmt.Errorf("repository: get user by email failed: %w", err)
	}

	return &found, nil
}

func (r *userRepository) Update(ctx context.Context, domainUser *user.User) error {
	const query = `
		UPDATE users SET name = $2, email = $3, updated_at = NOW()
		WHERE uuid = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query, domainUser.ID, domainUser.Name, domainUser.Email).Scan(&domainUser.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("repository: update user failed: %w", user.ErrUserNotFound)
		}
		if isUniqueViolation(err) {
			return fmt.Errorf("repository: update user failed: %w", user.ErrEmailAlreadyExists)
		}
		return fmt.Errorf("repository: update user failed: %w", err)
	}

	return nil
}

func (r *userRepository) UpdateImage(ctx context.Context, id uuid.UUID, image string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET image = $2, updated_at = NOW() WHERE uuid = $1`, id, image)
	if err != nil {
		return fmt.Errorf("repository: update user image failed: %w", err)
	}

	return requireAffected(result, "update user image")
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE uuid = $1`, id)
	if err != nil {
		return fmt.Errorf("repository: delete user failed: %w", err)
	}

	return requireAffected(result, "delete user")
}

func (r *userRepository) List(ctx context.Context, params user.ListParams) ([]*user.User, int, error) {
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.PageSize <= 0 {
		params.PageSize = 10
	}

	where := ""
	args := []any{}
	if search := strings.TrimSpace(params.Search); search != "" {
		where = ` WHERE name ILIKE $1 OR email ILIKE $1`
		args = append(args, "%"+escapeLike(search)+"%")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM users`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("repository: list users failed: %w", err)
	}

	query := fmt.Sprintf(`SELECT uuid, name, email, image, created_at, updated_at FROM users%s ORDER BY created_at DESC, uuid LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	args = append(args, params.PageSize, (params.Page-1)*params.PageSize)

	users := []*user.User{}
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, 0, fmt.Errorf("repository: list users failed: %w", err)
	}

	return users, total, nil
}

func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email); err != nil {
		return false, fmt.Errorf("repository: email exists check failed: %w", err)
	}

	return exists, nil
}

func requireAffected(result sql.Result, op string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("repository: %s failed: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("repository: %s failed: %w", op, user.ErrUserNotFound)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
