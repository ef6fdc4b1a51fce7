package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"github.com/moura95/account-auth/internal/domain/email"
)

const processTimeout = 30 * time.Second

type Consumer struct {
	connection *Connection
	channel    *amqp.Channel
	queueName  string
	validator  *email.EmailValidator
	logger     *zap.SugaredLogger
}

func NewConsumer(connection *Connection) *Consumer {
	return &Consumer{
		connection: connection,
		queueName:  connection.QueueName(),
		validator:  email.NewEmailValidator(),
		logger:     connection.logger,
	}
}

// StartConsuming registers the consumer and processes deliveries in a
// goroutine until ctx is cancelled or the channel closes.
func (c *Consumer) StartConsuming(ctx context.Context, handler email.MessageHandler) error {
	ch, err := c.connection.OpenChannel()
	if err != nil {
		return fmt.Errorf("consumer: %w", err)
	}
	c.channel = ch

	// one unacked message at a time
	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("consumer: failed to set QoS: %w", err)
	}

	messages, err := ch.Consume(
		c.queueName, // queue
		"",          // consumer tag
		false,       // auto-ack
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	if err != nil {
		return fmt.Errorf("consumer: failed to register consumer: %w", err)
	}

	c.logger.Infow("consumer started", "queue", c.queueName)

	go c.processMessages(ctx, messages, handler)

	return nil
}

func (c *Consumer) processMessages(ctx context.Context, messages <-chan amqp.Delivery, handler email.MessageHandler) {
	for {
		select {
		case <-ctx.Done():
			c.logger.Infow("consumer stopped", "queue", c.queueName)
			return
		case msg, ok := <-messages:
			if !ok {
				c.logger.Warnw("delivery channel closed", "queue", c.queueName)
				return
			}
			c.handleMessage(ctx, msg, handler)
		}
	}
}

func (c *Consumer) handleMessage(ctx context.Context, delivery amqp.Delivery, handler email.MessageHandler) {
	start := time.Now()

	var queueMessage email.QueueMessage
	if err := json.Unmarshal(delivery.Body, &queueMessage); err != nil {
		c.logger.Warnw("dropping malformed message", "message_id", delivery.MessageId, "error", err)
		c.reject(delivery, false)
		return
	}

	if err := c.validator.ValidateMessage(queueMessage); err != nil {
		c.logger.Warnw("dropping invalid message", "message_id", delivery.MessageId, "error", err)
		c.reject(delivery, false)
		return
	}

	processCtx, cancel := context.WithTimeout(ctx, processTimeout)
	defer cancel()

	if err := handler(processCtx, queueMessage); err != nil {
		// Redeliver once; after that the pending sweep owns the retry.
		requeue := !delivery.Redelivered
		c.logger.Warnw("failed to process message", "email_id", queueMessage.EmailID, "requeue", requeue, "error", err)
		c.reject(delivery, requeue)
		return
	}

	if err := delivery.Ack(false); err != nil {
		c.logger.Errorw("failed to ack message", "email_id", queueMessage.EmailID, "error", err)
		return
	}

	c.logger.Debugw("message processed", "email_id", queueMessage.EmailID, "duration", time.Since(start))
}

func (c *Consumer) reject(delivery amqp.Delivery, requeue bool) {
	if err := delivery.Reject(requeue); err != nil {
		c.logger.Errorw("failed to reject message", "message_id", delivery.MessageId, "error", err)
	}
}

func (c *Consumer) Close() error {
	if c.channel != nil {
		return c.channel.Close()
	}
	return nil
}
