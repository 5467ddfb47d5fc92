package rabbitmq

//go:generate go run go.uber.org/mock/mockgen -source=./rabbitmq.go -destination=./mocks/rabbitmq_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"hotel/config"
	"hotel/shared/constant"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

const (
	prefetchCount     = 50
	maxReconnectDelay = 30 * time.Second
)

var errDeliveriesClosed = errors.New("deliveries channel closed")

type Client interface {
	Publish(ctx context.Context, queue string, body []byte) error
	Consume(ctx context.Context, queue string, handler func(ctx context.Context, body []byte) error) error
	Close() error
}

type client struct {
	url  string
	mu   sync.Mutex
	conn *amqp.Connection
}

// New does not dial; the connection is opened on first use.
func New(cfg *config.Config) Client {
	return &client{url: cfg.RabbitMQ.URL}
}

func (c *client) connection() (*amqp.Connection, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil && !c.conn.IsClosed() {
		return c.conn, nil
	}

	conn, err := amqp.Dial(c.url)
	if err != nil {
		return nil, fmt.Errorf("failed to dial rabbitmq: %w", err)
	}

	c.conn = conn

	return conn, nil
}

func declare(ch *amqp.Channel, queue string) error {
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}

	return nil
}

// Publish sends a persistent JSON message to queue through the default exchange.
func (c *client) Publish(ctx context.Context, queue string, body []byte) error {
	conn, err := c.connection()
	if err != nil {
		return err
	}

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := declare(ch, queue); err != nil {
		return err
	}

	err = ch.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
		ContentType:  constant.ContentTypeJSON,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", queue, err)
	}

	return nil
}

// Consume reconnects with exponential backoff until ctx is cancelled. Messages whose handler
// fails are rejected without requeue.
func (c *client) Consume(ctx context.Context, queue string, handler func(ctx context.Context, body []byte) error) error {
	backoff := time.Second

	for {
		err := c.consumeOnce(ctx, queue, handler)
		if ctx.Err() != nil {
			return nil
		}

		log.Error().Err(err).Str("queue", queue).Dur("retry_in", backoff).Msg("RabbitMQ consumer stopped, reconnecting")

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(backoff):
		}

		backoff = min(backoff*2, maxReconnectDelay)
	}
}

func (c *client) consumeOnce(ctx context.Context, queue string, handler func(ctx context.Context, body []byte) error) error {
	conn, err := c.connection()
	if err != nil {
		return err
	}

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(prefetchCount, 0, false); err != nil {
		log.Warn().Err(err).Msg("Failed to set RabbitMQ QoS")
	}

	if err := declare(ch, queue); err != nil {
		return err
	}

	deliveries, err := ch.ConsumeWithContext(ctx, queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to consume %s: %w", queue, err)
	}

	for delivery := range deliveries {
		if err := handler(ctx, delivery.Body); err != nil {
			log.Error().Err(err).Str("queue", queue).Msg("Failed to handle RabbitMQ message")

			_ = delivery.Nack(false, false)

			continue
		}

		_ = delivery.Ack(false)
	}

	return errDeliveriesClosed
}

func (c *client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil || c.conn.IsClosed() {
		return nil
	}

	if err := c.conn.Close(); err != nil {
		return fmt.Errorf("failed to close rabbitmq connection: %w", err)
	}

	return nil
}
