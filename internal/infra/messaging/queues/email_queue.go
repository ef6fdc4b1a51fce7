package queues

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/moura95/account-auth/internal/domain/email"
)

// EmailQueue pairs the publisher and consumer of whichever broker is
// configured, so the rest of the service never names a broker.
type EmailQueue struct {
	publisher email.Publisher
	consumer  email.Consumer
	closers   []func() error
	logger    *zap.SugaredLogger
}

// NewEmailQueue takes ownership of the extra closers (broker connections)
// and runs them after the publisher and consumer on Close.
func NewEmailQueue(publisher email.Publisher, consumer email.Consumer, logger *zap.SugaredLogger, closers ...func() error) *EmailQueue {
	return &EmailQueue{
		publisher: publisher,
		consumer:  consumer,
		closers:   closers,
		logger:    logger,
	}
}

func (eq *EmailQueue) Publish(ctx context.Context, message email.QueueMessage) error {
	if err := eq.publisher.Publish(ctx, message); err != nil {
		return fmt.Errorf("email queue: failed to publish: %w", err)
	}

	eq.logger.Infow("email queued", "email_id", message.EmailID, "type", message.Type)
	return nil
}

func (eq *EmailQueue) StartConsuming(ctx context.Context, handler email.MessageHandler) error {
	if err := eq.consumer.StartConsuming(ctx, handler); err != nil {
		return fmt.Errorf("email queue: failed to start consuming: %w", err)
	}

	eq.logger.Info("email queue consumer started")
	return nil
}

func (eq *EmailQueue) Close() error {
	var errs []error

	if eq.consumer != nil {
		if err := eq.consumer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close consumer: %w", err))
		}
	}

	if eq.publisher != nil {
		if err := eq.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close publisher: %w", err))
		}
	}

	for _, closeFn := range eq.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
