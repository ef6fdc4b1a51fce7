package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/moura95/account-auth/internal/domain/email"
)

var ErrEmailNotRetryable = errors.New("email cannot be retried")

type ProcessEmailQueueUseCase struct {
	emailRepo email.Repository
	sender    email.Sender
}

func NewProcessEmailQueueUseCase(emailRepo email.Repository, sender email.Sender) *ProcessEmailQueueUseCase {
	return &ProcessEmailQueueUseCase{
		emailRepo: emailRepo,
		sender:    sender,
	}
}

// Execute delivers the outbox row referenced by message. Redelivered
// messages for an already sent email are acknowledged without sending.
func (uc *ProcessEmailQueueUseCase) Execute(ctx context.Context, message email.QueueMessage) error {
	emailEntity, err := uc.emailRepo.GetByID(ctx, message.EmailID)
	if err != nil {
		return fmt.Errorf("usecase: process email queue failed: %w", err)
	}

	if emailEntity.Status == email.StatusSent {
		return nil
	}

	if !emailEntity.CanRetry() {
		return fmt.Errorf("usecase: process email queue failed: %w", ErrEmailNotRetryable)
	}

	if err := uc.sender.SendEmail(ctx, emailEntity); err != nil {
		emailEntity.MarkAsFailed(err.Error())
		if updateErr := uc.emailRepo.Update(ctx, emailEntity); updateErr != nil {
			return fmt.Errorf("usecase: process email queue failed: send error and update failed: %w", updateErr)
		}
		return fmt.Errorf("usecase: process email queue failed: %w", err)
	}

	emailEntity.MarkAsSent()
	if err := uc.emailRepo.Update(ctx, emailEntity); err != nil {
		return fmt.Errorf("usecase: process email queue failed: update after send failed: %w", err)
	}

	return nil
}
