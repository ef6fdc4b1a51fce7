// Package natsjs carries email queue messages over NATS JetStream.
package natsjs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/moura95/account-auth/internal/domain/email"
)

const (
	streamName     = "EMAILS"
	durableName    = "email-worker"
	maxDeliver     = 3
	ackWait        = 45 * time.Second
	processTimeout = 30 * time.Second
)

type Config struct {
	URL     string
	Subject string
}

// Client holds the NATS connection and JetStream context shared by the
// publisher and the consumer.
type Client struct {
	nc      *nats.Conn
	js      nats.JetStreamContext
	subject string
	sub     *nats.Subscription
	logger  *zap.SugaredLogger
}

func Connect(cfg Config, logger *zap.SugaredLogger) (*Client, error) {
	nc, err := nats.Connect(cfg.URL,
		nats.Name("account-auth"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warnw("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Infow("nats reconnected", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats: connect failed: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("nats: jetstream context failed: %w", err)
	}

	c := &Client{nc: nc, js: js, subject: cfg.Subject, logger: logger}
	if err := c.ensureStream(); err != nil {
		nc.Close()
		return nil, err
	}

	logger.Infow("connected to NATS", "subject", cfg.Subject)
	return c, nil
}

func (c *Client) ensureStream() error {
	_, err := c.js.StreamInfo(streamName)
	if err == nil {
		return nil
	}
	if !errors.Is(err, nats.ErrStreamNotFound) {
		return fmt.Errorf("nats: stream info failed: %w", err)
	}

	_, err = c.js.AddStream(&nats.StreamConfig{
		Name:      streamName,
		Subjects:  []string{c.subject},
		Storage:   nats.FileStorage,
		Retention: nats.WorkQueuePolicy,
		MaxAge:    time.Hour,
	})
	if err != nil {
		return fmt.Errorf("nats: add stream failed: %w", err)
	}
	return nil
}

// Publish deduplicates on the email id within the stream window.
func (c *Client) Publish(ctx context.Context, message email.QueueMessage) error {
	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("nats: failed to marshal message: %w", err)
	}

	if _, err := c.js.Publish(c.subject, data, nats.Context(ctx), nats.MsgId(message.EmailID.String())); err != nil {
		return fmt.Errorf("nats: failed to publish to %s: %w", c.subject, err)
	}

	c.logger.Debugw("email message published", "email_id", message.EmailID, "subject", c.subject)
	return nil
}

func (c *Client) StartConsuming(ctx context.Context, handler email.MessageHandler) error {
	validator := email.NewEmailValidator()

	sub, err := c.js.Subscribe(c.subject, func(m *nats.Msg) {
		switch decide(ctx, m.Data, validator, handler, c.logger) {
		case outcomeAck:
			_ = m.Ack()
		case outcomeRetry:
			_ = m.Nak()
		case outcomeDrop:
			_ = m.Term()
		}
	},
		nats.Durable(durableName),
		nats.ManualAck(),
		nats.AckWait(ackWait),
		nats.MaxDeliver(maxDeliver),
	)
	if err != nil {
		return fmt.Errorf("nats: subscribe failed: %w", err)
	}
	c.sub = sub

	go func() {
		<-ctx.Done()
		_ = sub.Drain()
	}()

	c.logger.Infow("consumer started", "subject", c.subject)
	return nil
}

// Close drains the connection, letting in-flight handlers finish.
func (c *Client) Close() error {
	if c.nc == nil || c.nc.IsClosed() || c.nc.IsDraining() {
		return nil
	}
	return c.nc.Drain()
}

type outcome int

const (
	outcomeAck outcome = iota
	outcomeRetry
	outcomeDrop
)

func decide(ctx context.Context, data []byte, validator *email.EmailValidator, handler email.MessageHandler, logger *zap.SugaredLogger) outcome {
	var message email.QueueMessage
	if err := json.Unmarshal(data, &message); err != nil {
		logger.Warnw("dropping malformed message", "error", err)
		return outcomeDrop
	}

	if err := validator.ValidateMessage(message); err != nil {
		logger.Warnw("dropping invalid message", "error", err)
		return outcomeDrop
	}

	processCtx, cancel := context.WithTimeout(ctx, processTimeout)
	defer cancel()

	if err := handler(processCtx, message); err != nil {
		logger.Warnw("failed to process message", "email_id", message.EmailID, "error", err)
		return outcomeRetry
	}

	return outcomeAck
}
