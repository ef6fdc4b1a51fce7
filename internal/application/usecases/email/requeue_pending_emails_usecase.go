package email

import (
	"context"
	"fmt"
	"time"

	"github.com/moura95/account-auth/internal/domain/email"
)

const (
	defaultRequeueBatch  = 50
	defaultRequeueMinAge = 5 * time.Minute
)

type RequeuePendingEmailsUseCase struct {
	emailRepo email.Repository
	publisher email.Publisher
	limit     int
	minAge    time.Duration
	now       func() time.Time
}

// NewRequeuePendingEmailsUseCase builds the sweeper step. Emails touched
// within minAge are assumed to still be in flight and are left alone.
func NewRequeuePendingEmailsUseCase(emailRepo email.Repository, publisher email.Publisher, limit int, minAge time.Duration) *RequeuePendingEmailsUseCase {
	if limit <= 0 {
		limit = defaultRequeueBatch
	}
	if minAge <= 0 {
		minAge = defaultRequeueMinAge
	}
	return &RequeuePendingEmailsUseCase{
		emailRepo: emailRepo,
		publisher: publisher,
		limit:     limit,
		minAge:    minAge,
		now:       time.Now,
	}
}

// Execute republishes stale pending emails that still have attempts left and
// returns how many were published.
func (uc *RequeuePendingEmailsUseCase) Execute(ctx context.Context) (int, error) {
	pending, err := uc.emailRepo.GetPendingEmails(ctx, uc.now().Add(-uc.minAge), uc.limit)
	if err != nil {
		return 0, fmt.Errorf("usecase: requeue pending emails failed: %w", err)
	}

	published := 0
	for _, e := range pending {
		if !e.CanRetry() {
			continue
		}

		message := email.QueueMessage{
			EmailID: e.ID,
			Type:    e.Type,
			Data:    email.WelcomeEmailData{UserEmail: e.To},
		}
		if err := uc.publisher.Publish(ctx, message); err != nil {
			return published, fmt.Errorf("usecase: requeue pending emails failed: %w", err)
		}
		published++

		if err := uc.emailRepo.Touch(ctx, e.ID); err != nil {
			return published, fmt.Errorf("usecase: requeue pending emails failed: %w", err)
		}
	}

	return published, nil
}
