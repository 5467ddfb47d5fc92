package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/infras/rabbitmq"
	"hotel/shared/constant"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/rs/zerolog/log"
)

var ErrNoDriver = errors.New("no event driver configured")

// NewPublisher picks the broker named by EVENT_DRIVER. Unknown or empty drivers publish nowhere.
func NewPublisher(cfg *config.Config, kafkaClient kafka.Client, rabbitClient rabbitmq.Client, otl otel.Otel) Publisher {
	switch cfg.Event.Driver {
	case config.EventDriverKafka:
		return &kafkaPublisher{client: kafkaClient, topic: cfg.Event.Topic, otel: otl}
	case config.EventDriverRabbitMQ:
		return &rabbitPublisher{client: rabbitClient, queue: cfg.RabbitMQ.Queue, otel: otl}
	default:
		log.Info().Str("driver", cfg.Event.Driver).Msg("Booking events will not be published")

		return nopPublisher{}
	}
}

func NewSubscriber(cfg *config.Config, kafkaClient kafka.Client, rabbitClient rabbitmq.Client) Subscriber {
	switch cfg.Event.Driver {
	case config.EventDriverKafka:
		return &kafkaSubscriber{client: kafkaClient, topic: cfg.Event.Topic, group: cfg.Kafka.ConsumerGroup}
	case config.EventDriverRabbitMQ:
		return &rabbitSubscriber{client: rabbitClient, queue: cfg.RabbitMQ.Queue}
	default:
		return nopSubscriber{}
	}
}

type kafkaPublisher struct {
	client kafka.Client
	topic  string
	otel   otel.Otel
}

func (p *kafkaPublisher) Publish(ctx context.Context, event Booking) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".kafka.Publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("event.type", event.Type)

	return p.client.SendMessages(ctx, p.topic, kafka.Message{Key: event.RoomID, Value: event}) //nolint:wrapcheck
}

type rabbitPublisher struct {
	client rabbitmq.Client
	queue  string
	otel   otel.Otel
}

func (p *rabbitPublisher) Publish(ctx context.Context, event Booking) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".rabbitmq.Publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("event.type", event.Type)

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	return p.client.Publish(ctx, p.queue, body) //nolint:wrapcheck
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, Booking) error { return nil }

type kafkaSubscriber struct {
	client kafka.Client
	topic  string
	group  string
}

func (s *kafkaSubscriber) Subscribe(ctx context.Context, handler func(ctx context.Context, event Booking) error) error {
	return s.client.Consume(ctx, s.group, s.topic, func(ctx context.Context, message kafkaGo.Message) error { //nolint:wrapcheck
		event, err := kafka.Decode[Booking](message)
		if err != nil {
			return err
		}

		return handler(ctx, event)
	})
}

type rabbitSubscriber struct {
	client rabbitmq.Client
	queue  string
}

func (s *rabbitSubscriber) Subscribe(ctx context.Context, handler func(ctx context.Context, event Booking) error) error {
	return s.client.Consume(ctx, s.queue, func(ctx context.Context, body []byte) error { //nolint:wrapcheck
		var event Booking
		if err := json.Unmarshal(body, &event); err != nil {
			return fmt.Errorf("failed to unmarshal event: %w", err)
		}

		return handler(ctx, event)
	})
}

type nopSubscriber struct{}

func (nopSubscriber) Subscribe(context.Context, func(context.Context, Booking) error) error {
	return ErrNoDriver
}
