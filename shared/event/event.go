// Package event carries booking lifecycle events to a message broker.
package event

//go:generate go run go.uber.org/mock/mockgen -source=./event.go -destination=./mocks/event_mock.go -package=mocks

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypeBookingCreated   = "booking.created"
	TypeBookingConfirmed = "booking.confirmed"
	TypeBookingDeleted   = "booking.deleted"
)

type Booking struct {
	ID             string          `json:"id"`
	Type           string          `json:"type"`
	BookingID      string          `json:"bookingId"`
	RoomID         string          `json:"roomId"`
	UserID         string          `json:"userId"`
	Status         string          `json:"status"`
	CheckInDate    time.Time       `json:"checkInDate"`
	CheckOutDate   time.Time       `json:"checkOutDate"`
	NumberOfGuests int             `json:"numberOfGuests"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	OccurredAt     time.Time       `json:"occurredAt"`
}

type Publisher interface {
	Publish(ctx context.Context, event Booking) error
}

type Subscriber interface {
	// Subscribe blocks until ctx is cancelled.
	Subscribe(ctx context.Context, handler func(ctx context.Context, event Booking) error) error
}
