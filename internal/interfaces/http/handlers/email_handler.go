package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	emailDomain "github.com/moura95/account-auth/internal/domain/email"
)

type EmailProcessor interface {
	ProcessEmailQueue(ctx context.Context, message emailDomain.QueueMessage) error
}

// EmailConsumerHandler adapts the email service to the broker consumers.
type EmailConsumerHandler struct {
	processor EmailProcessor
	logger    *zap.SugaredLogger
}

func NewEmailConsumerHandler(processor EmailProcessor, logger *zap.SugaredLogger) *EmailConsumerHandler {
	return &EmailConsumerHandler{
		processor: processor,
		logger:    logger,
	}
}

func (h *EmailConsumerHandler) HandleEmailMessage(ctx context.Context, message emailDomain.QueueMessage) error {
	h.logger.Debugw("processing email message", "email_id", message.EmailID, "type", message.Type)

	if err := h.processor.ProcessEmailQueue(ctx, message); err != nil {
		h.logger.Warnw("email message failed", "email_id", message.EmailID, "error", err)
		return fmt.Errorf("failed to process email message: %w", err)
	}

	h.logger.Infow("email message processed", "email_id", message.EmailID)
	return nil
}
