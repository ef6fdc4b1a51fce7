package adapters

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/moura95/account-auth/internal/domain/email"
)

type emailRow struct {
	ID          uuid.UUID    `db:"uuid"`
	To          string       `db:"to_email"`
	Subject     string       `db:"subject"`
	Body        string       `db:"body"`
	Type        string       `db:"type"`
	Status      string       `db:"status"`
	Attempts    int          `db:"attempts"`
	MaxAttempts int          `db:"max_attempts"`
	ErrorMsg    string       `db:"error_msg"`
	SentAt      sql.NullTime `db:"sent_at"`
	CreatedAt   time.Time    `db:"created_at"`
}

const emailColumns = `uuid, to_email, subject, body, type, status, attempts, max_attempts, error_msg, sent_at, created_at`

type emailRepository struct {
	db *sqlx.DB
}

func NewEmailRepository(db *sqlx.DB) email.Repository {
	return &emailRepository{
		db: db,
	}
}

func (r *emailRepository) Create(ctx context.Context, domainEmail *email.Email) error {
	const query = `
		INSERT INTO emails (uuid, to_email, subject, body, type, status, attempts, max_attempts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	err := r.db.QueryRowxContext(ctx, query,
		domainEmail.ID,
		domainEmail.To,
		domainEmail.Subject,
		domainEmail.Body,
		string(domainEmail.Type),
		string(domainEmail.Status),
		domainEmail.Attempts,
		domainEmail.MaxAttempts,
	).Scan(&domainEmail.CreatedAt)
	if err != nil {
		return fmt.Errorf("repository: create email failed: %w", err)
	}

	return nil
}

func (r *emailRepository) GetByID(ctx context.Context, id uuid.UUID) (*email.Email, error) {
	var row emailRow
	err := r.db.GetContext(ctx, &row, `SELECT `+emailColumns+` FROM emails WHERE uuid = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("repository: get email by id failed: %w", email.ErrEmailNotFound)
		}
		return nil, fmt.Errorf("repository: get email by id failed: %w", err)
	}

	return row.toDomain(), nil
}

func (r *emailRepository) Update(ctx context.Context, domainEmail *email.Email) error {
	const query = `
		UPDATE emails
		SET status = $2, attempts = $3, error_msg = $4, sent_at = $5, updated_at = NOW()
		WHERE uuid = $1`

	var sentAt sql.NullTime
	if domainEmail.SentAt != nil {
		sentAt = sql.NullTime{Time: *domainEmail.SentAt, Valid: true}
	}

	result, err := r.db.ExecContext(ctx, query,
		domainEmail.ID,
		string(domainEmail.Status),
		domainEmail.Attempts,
		domainEmail.ErrorMsg,
		sentAt,
	)
	if err != nil {
		return fmt.Errorf("repository: update email failed: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("repository: update email failed: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("repository: update email failed: %w", email.ErrEmailNotFound)
	}

	return nil
}

// GetPendingEmails returns the oldest pending emails that still have attempts
// left and have not been touched since staleBefore.
func (r *emailRepository) GetPendingEmails(ctx context.Context, staleBefore time.Time, limit int) ([]*email.Email, error) {
	const query = `SELECT ` + emailColumns + ` FROM emails
		WHERE status = $1 AND attempts < max_attempts AND updated_at < $2
		ORDER BY created_at
		LIMIT $3`

	var rows []emailRow
	if err := r.db.SelectContext(ctx, &rows, query, string(email.StatusPending), staleBefore, limit); err != nil {
		return nil, fmt.Errorf("repository: get pending emails failed: %w", err)
	}

	emails := make([]*email.Email, len(rows))
	for i := range rows {
		emails[i] = rows[i].toDomain()
	}

	return emails, nil
}

func (r *emailRepository) Touch(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `UPDATE emails SET updated_at = NOW() WHERE uuid = $1`, id)
	if err != nil {
		return fmt.Errorf("repository: touch email failed: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("repository: touch email failed: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("repository: touch email failed: %w", email.ErrEmailNotFound)
	}

	return nil
}

func (row emailRow) toDomain() *email.Email {
	e := &email.Email{
		ID:          row.ID,
		To:          row.To,
		Subject:     row.Subject,
		Body:        row.Body,
		Type:        email.EmailType(row.Type),
		Status:      email.Status(row.Status),
		Attempts:    row.Attempts,
		MaxAttempts: row.MaxAttempts,
		ErrorMsg:    row.ErrorMsg,
		CreatedAt:   row.CreatedAt,
	}
	if row.SentAt.Valid {
		sentAt := row.SentAt.Time
		e.SentAt = &sentAt
	}
	return e
}
