// Package worker consumes booking lifecycle events and writes one audit log line per event.
package worker

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/shared/constant"
	"hotel/shared/event"

	"github.com/rs/zerolog/log"
)

var ErrUnknownEvent = errors.New("unknown booking event")

var knownTypes = []string{
	event.TypeBookingCreated,
	event.TypeBookingConfirmed,
	event.TypeBookingDeleted,
}

type Worker struct {
	cfg        *config.Config
	subscriber event.Subscriber
	otel       otel.Otel
}

func New(cfg *config.Config, subscriber event.Subscriber, otel otel.Otel) *Worker {
	return &Worker{
		cfg:        cfg,
		subscriber: subscriber,
		otel:       otel,
	}
}

// Run blocks until ctx is cancelled or the subscriber gives up.
func (w *Worker) Run(ctx context.Context) error {
	log.Info().Str("driver", w.cfg.Event.Driver).Str("topic", w.cfg.Event.Topic).Msg("Starting booking event worker.")

	if err := w.subscriber.Subscribe(ctx, w.Handle); err != nil {
		return fmt.Errorf("failed to subscribe to booking events: %w", err)
	}

	return nil
}

// Handle records a single event. Unknown types are rejected so the broker can dead-letter them.
func (w *Worker) Handle(ctx context.Context, evt event.Booking) (err error) {
	_, scope := w.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".worker.Handle")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		"event.id":   evt.ID,
		"event.type": evt.Type,
		"booking.id": evt.BookingID,
	})

	if !slices.Contains(knownTypes, evt.Type) {
		return fmt.Errorf("%w: %s", ErrUnknownEvent, evt.Type)
	}

	log.Info().
		Str("event_id", evt.ID).
		Str("type", evt.Type).
		Str("booking_id", evt.BookingID).
		Str("room_id", evt.RoomID).
		Str("user_id", evt.UserID).
		Str("status", evt.Status).
		Str("total_amount", evt.TotalAmount.String()).
		Time("occurred_at", evt.OccurredAt).
		Msg("booking event")

	return nil
}
