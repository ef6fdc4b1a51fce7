package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"

	"github.com/moura95/account-auth/internal/domain/email"
)

type Publisher struct {
	connection *Connection
	queueName  string
}

func NewPublisher(connection *Connection) *Publisher {
	return &Publisher{
		connection: connection,
		queueName:  connection.QueueName(),
	}
}

func (p *Publisher) Publish(ctx context.Context, message email.QueueMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if !p.connection.IsConnected() {
		return fmt.Errorf("%s: connection not available", publishPrefix)
	}

	amqpMessage, err := newPublishing(message)
	if err != nil {
		return err
	}

	if err := p.connection.publish(p.queueName, amqpMessage); err != nil {
		return fmt.Errorf("%s: failed to publish to %s: %w", publishPrefix, p.queueName, err)
	}

	p.connection.logger.Debugw("email message published", "email_id", message.EmailID, "queue", p.queueName)
	return nil
}

// Close is a no-op; the Connection is closed by its owner.
func (p *Publisher) Close() error {
	return nil
}

func newPublishing(message email.QueueMessage) (amqp.Publishing, error) {
	body, err := json.Marshal(message)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("%s: failed to marshal message: %w", publishPrefix, err)
	}

	return amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		ContentType:  "application/json",
		Type:         string(message.Type),
		Body:         body,
		MessageId:    message.EmailID.String(),
	}, nil
}
