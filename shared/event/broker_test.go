package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"hotel/config"
	kafkaMocks "hotel/infras/kafka/mocks"
	otelMocks "hotel/infras/otel/mocks"
	rabbitMocks "hotel/infras/rabbitmq/mocks"
	"hotel/infras/kafka"

	"github.com/shopspring/decimal"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testConfig(driver string) *config.Config {
	cfg := &config.Config{}
	cfg.Event.Driver = driver
	cfg.Event.Topic = "hotel.bookings"
	cfg.RabbitMQ.Queue = "hotel.bookings"
	cfg.Kafka.ConsumerGroup = "hotel-worker"

	return cfg
}

func sampleEvent() Booking {
	return Booking{
		ID:             "evt-1",
		Type:           TypeBookingCreated,
		BookingID:      "booking-1",
		RoomID:         "room-1",
		UserID:         "customer-1",
		Status:         "pending",
		CheckInDate:    time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		CheckOutDate:   time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC),
		NumberOfGuests: 1,
		TotalAmount:    decimal.NewFromInt(600),
	}
}

func TestNewPublisher_Kafka(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)

	evt := sampleEvent()
	client.EXPECT().SendMessages(gomock.Any(), "hotel.bookings", kafka.Message{Key: "room-1", Value: evt}).Return(nil)

	publisher := NewPublisher(testConfig(config.EventDriverKafka), client, nil, otelMocks.NewOtel())
	assert.NoError(t, publisher.Publish(context.Background(), evt))
}

func TestNewPublisher_RabbitMQ(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := rabbitMocks.NewMockClient(ctrl)

	evt := sampleEvent()
	client.EXPECT().Publish(gomock.Any(), "hotel.bookings", gomock.Any()).DoAndReturn(func(_ context.Context, _ string, body []byte) error {
		var decoded Booking
		require.NoError(t, json.Unmarshal(body, &decoded))
		assert.Equal(t, evt.BookingID, decoded.BookingID)
		assert.True(t, evt.TotalAmount.Equal(decoded.TotalAmount))

		return errors.New("broker down")
	})

	publisher := NewPublisher(testConfig(config.EventDriverRabbitMQ), nil, client, otelMocks.NewOtel())
	assert.EqualError(t, publisher.Publish(context.Background(), evt), "broker down")
}

func TestNewPublisher_None(t *testing.T) {
	publisher := NewPublisher(testConfig(config.EventDriverNone), nil, nil, otelMocks.NewOtel())
	assert.NoError(t, publisher.Publish(context.Background(), sampleEvent()))

	subscriber := NewSubscriber(testConfig(config.EventDriverNone), nil, nil)
	assert.ErrorIs(t, subscriber.Subscribe(context.Background(), nil), ErrNoDriver)
}

func TestKafkaSubscriber_DecodesMessages(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)

	evt := sampleEvent()
	payload, err := json.Marshal(evt)
	require.NoError(t, err)

	client.EXPECT().Consume(gomock.Any(), "hotel-worker", "hotel.bookings", gomock.Any()).
		DoAndReturn(func(ctx context.Context, _, _ string, handler func(context.Context, kafkaGo.Message) error) error {
			return handler(ctx, kafkaGo.Message{Key: []byte("room-1"), Value: payload})
		})

	var received Booking

	subscriber := NewSubscriber(testConfig(config.EventDriverKafka), client, nil)
	err = subscriber.Subscribe(context.Background(), func(_ context.Context, event Booking) error {
		received = event

		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, evt.BookingID, received.BookingID)
	assert.Equal(t, evt.CheckInDate, received.CheckInDate)
}

func TestRabbitSubscriber_RejectsMalformedBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := rabbitMocks.NewMockClient(ctrl)

	client.EXPECT().Consume(gomock.Any(), "hotel.bookings", gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, handler func(context.Context, []byte) error) error {
			return handler(ctx, []byte("{"))
		})

	subscriber := NewSubscriber(testConfig(config.EventDriverRabbitMQ), nil, client)
	err := subscriber.Subscribe(context.Background(), func(context.Context, Booking) error { return nil })
	assert.Error(t, err)
}
