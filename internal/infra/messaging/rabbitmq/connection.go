package rabbitmq

import (
	"fmt"
	"sync"
	"time"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

const (
	dialAttempts  = 5
	messageTTLms  = 3600000
	defaultQueue  = "email_queue"
	publishPrefix = "rabbitmq"
)

type ConnectionConfig struct {
	URL       string
	QueueName string
}

// Connection owns the AMQP connection and the channel used for publishing.
// Consumers open their own channel.
type Connection struct {
	conn      *amqp.Connection
	channel   *amqp.Channel
	mu        sync.Mutex
	url       string
	queueName string
	logger    *zap.SugaredLogger
}

func NewConnection(config ConnectionConfig, logger *zap.SugaredLogger) (*Connection, error) {
	if config.QueueName == "" {
		config.QueueName = defaultQueue
	}

	conn := &Connection{
		url:       config.URL,
		queueName: config.QueueName,
		logger:    logger,
	}

	if err := conn.connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	if err := declareQueue(conn.channel, conn.queueName); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to setup email queue: %w", err)
	}

	return conn, nil
}

func (c *Connection) connect() error {
	var err error

	for i := 0; i < dialAttempts; i++ {
		c.conn, err = amqp.Dial(c.url)
		if err == nil {
			break
		}

		c.logger.Warnw("failed to connect to RabbitMQ", "attempt", i+1, "max_attempts", dialAttempts, "error", err)
		time.Sleep(time.Duration(i+1) * time.Second)
	}

	if err != nil {
		return fmt.Errorf("failed to connect after %d attempts: %w", dialAttempts, err)
	}

	c.channel, err = c.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}

	c.logger.Infow("connected to RabbitMQ", "queue", c.queueName)
	return nil
}

func declareQueue(ch *amqp.Channel, queueName string) error {
	_, err := ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		amqp.Table{
			"x-message-ttl": int32(messageTTLms),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", queueName, err)
	}
	return nil
}

// OpenChannel returns a fresh channel for a consumer.
func (c *Connection) OpenChannel() (*amqp.Channel, error) {
	if !c.IsConnected() {
		return nil, fmt.Errorf("rabbitmq: connection not available")
	}
	return c.conn.Channel()
}

func (c *Connection) QueueName() string {
	return c.queueName
}

func (c *Connection) publish(queueName string, msg amqp.Publishing) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.channel.Publish(
		"",        // exchange (empty for direct queue)
		queueName, // routing key = queue name
		false,     // mandatory
		false,     // immediate
		msg,
	)
}

func (c *Connection) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil && !c.conn.IsClosed() {
		return c.conn.Close()
	}
	return nil
}

func (c *Connection) IsConnected() bool {
	return c.conn != nil && !c.conn.IsClosed()
}
