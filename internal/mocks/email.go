package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/moura95/account-auth/internal/domain/email"
)

type EmailRepository struct {
	mock.Mock
}

func (m *EmailRepository) Create(ctx context.Context, e *email.Email) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *EmailRepository) GetByID(ctx context.Context, id uuid.UUID) (*email.Email, error) {
	args := m.Called(ctx, id)
	if e, ok := args.Get(0).(*email.Email); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EmailRepository) Update(ctx context.Context, e *email.Email) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *EmailRepository) GetPendingEmails(ctx context.Context, staleBefore time.Time, limit int) ([]*email.Email, error) {
	args := m.Called(ctx, staleBefore, limit)
	emails, _ := args.Get(0).([]*email.Email)
	return emails, args.Error(1)
}

func (m *EmailRepository) Touch(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type Publisher struct {
	mock.Mock
}

func (m *Publisher) Publish(ctx context.Context, message email.QueueMessage) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *Publisher) Close() error {
	return m.Called().Error(0)
}

type Sender struct {
	mock.Mock
}

func (m *Sender) SendEmail(ctx context.Context, e *email.Email) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
