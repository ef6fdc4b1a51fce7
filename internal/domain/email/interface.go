package email

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrEmailNotFound = errors.New("email not found")

type Repository interface {
	Create(ctx context.Context, email *Email) error
	GetByID(ctx context.Context, id uuid.UUID) (*Email, error)
	Update(ctx context.Context, email *Email) error
	// GetPendingEmails returns retryable pending emails last touched
	// before staleBefore, oldest first.
	GetPendingEmails(ctx context.Context, staleBefore time.Time, limit int) ([]*Email, error)
	// Touch bumps updated_at so a republished email is not picked up again
	// by the next sweep.
	Touch(ctx context.Context, id uuid.UUID) error
}

// QueueMessage is what travels through the broker. EmailID points at the
// outbox row; Data is carried for consumers that only log.
type QueueMessage struct {
	EmailID uuid.UUID        `json:"email_id"`
	Type    EmailType        `json:"type"`
	Data    WelcomeEmailData `json:"data"`
}

type Publisher interface {
	Publish(ctx context.Context, message QueueMessage) error
	Close() error
}

type Consumer interface {
	StartConsuming(ctx context.Context, handler MessageHandler) error
	Close() error
}

type MessageHandler func(ctx context.Context, message QueueMessage) error

type SMTPConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"-"`
	From     string `json:"from"`
}

// Sender delivers a single email.
type Sender interface {
	SendEmail(ctx context.Context, email *Email) error
}
