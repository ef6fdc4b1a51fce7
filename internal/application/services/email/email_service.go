package email

import (
	"context"
	"fmt"

	"github.com/moura95/account-auth/internal/application/usecases/email"
	emailDomain "github.com/moura95/account-auth/internal/domain/email"
)

type EmailService struct {
	processEmailQueueUseCase    *email.ProcessEmailQueueUseCase
	requeuePendingEmailsUseCase *email.RequeuePendingEmailsUseCase
}

func NewEmailService(processEmailQueueUC *email.ProcessEmailQueueUseCase, requeuePendingUC *email.RequeuePendingEmailsUseCase) *EmailService {
	return &EmailService{
		processEmailQueueUseCase:    processEmailQueueUC,
		requeuePendingEmailsUseCase: requeuePendingUC,
	}
}

// ProcessEmailQueue matches email.MessageHandler and is handed to the consumer.
func (s *EmailService) ProcessEmailQueue(ctx context.Context, message emailDomain.QueueMessage) error {
	if err := s.processEmailQueueUseCase.Execute(ctx, message); err != nil {
		return fmt.Errorf("service: process email queue failed: %w", err)
	}

	return nil
}

func (s *EmailService) RequeuePending(ctx context.Context) (int, error) {
	if s.requeuePendingEmailsUseCase == nil {
		return 0, nil
	}

	n, err := s.requeuePendingEmailsUseCase.Execute(ctx)
	if err != nil {
		return n, fmt.Errorf("service: requeue pending emails failed: %w", err)
	}

	return n, nil
}
