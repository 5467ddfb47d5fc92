package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"hotel/infras/otel"
	"hotel/internal/domains/availability"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/clock"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/event"
	"hotel/shared/failure"
	gModel "hotel/shared/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	MessageBookingNotFound = "Booking not found"
	MessageRoomNotFound    = "Room not found"
	MessageRoomUnavailable = "Room is not available"
	MessageCheckOutOrder   = "Check-out date must be after check-in date"
	MessageCheckInPast     = "Check-in date cannot be in the past"
	MessageGuestsExceeded  = "Number of guests exceeds room capacity"
	MessageGuestsRequired  = "At least one guest is required"
)

type Booking interface {
	Create(ctx context.Context, principal gModel.Principal, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	List(ctx context.Context, principal gModel.Principal) ([]dto.BookingResponse, error)
	Confirm(ctx context.Context, id string) (dto.BookingResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo        repository.Booking
	roomRepo    roomRepo.Room
	coordinator availability.Coordinator
	publisher   event.Publisher
	clock       clock.Clock
	otel        otel.Otel
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	coordinator availability.Coordinator,
	publisher event.Publisher,
	clock clock.Clock,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:        repo,
		roomRepo:    roomRepo,
		coordinator: coordinator,
		publisher:   publisher,
		clock:       clock,
		otel:        otel,
	}
}

// Create books an available room and takes it out of the pool. Checks run in a fixed order:
// room exists, room available, valid stay dates, guest count within capacity.
func (s *serviceImpl) Create(ctx context.Context, principal gModel.Principal, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var booking model.Booking

	err = s.coordinator.Exclusive(ctx, func(ctx context.Context) error {
		room, err := s.roomRepo.Get(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get room")

			return fmt.Errorf("failed to get room: %w", err)
		}

		if room.ID == constant.Empty {
			return failure.NotFound(MessageRoomNotFound) // nolint:wrapcheck
		}

		if !room.IsAvailable {
			return failure.RoomUnavailable(MessageRoomUnavailable) // nolint:wrapcheck
		}

		now := s.clock.Now()

		checkIn, checkOut, err := req.Stay()
		if err != nil {
			return err
		}

		if !checkOut.After(checkIn) {
			return failure.InvalidDateRange(MessageCheckOutOrder) // nolint:wrapcheck
		}

		if clock.StartOfDay(checkIn.In(now.Location())).Before(clock.StartOfDay(now)) {
			return failure.InvalidDateRange(MessageCheckInPast) // nolint:wrapcheck
		}

		if req.NumberOfGuests < 1 {
			return failure.OccupancyExceeded(MessageGuestsRequired) // nolint:wrapcheck
		}

		if req.NumberOfGuests > room.MaxOccupancy {
			return failure.OccupancyExceeded(MessageGuestsExceeded) // nolint:wrapcheck
		}

		total := model.Total(model.Nights(checkIn, checkOut), room.Price)
		booking = req.ToModel(principal.UserID, checkIn, checkOut, total, gModel.NewMetadata(now))

		if err := s.repo.Insert(ctx, booking); err != nil {
			log.Error().Err(err).Msg("failed to create booking")

			return fmt.Errorf("failed to create booking: %w", err)
		}

		if _, err := s.coordinator.SetAvailability(ctx, room.ID, false); err != nil {
			s.rollbackInsert(ctx, booking)

			return err
		}

		return nil
	})
	if err != nil {
		return res, err
	}

	s.publish(ctx, event.TypeBookingCreated, booking)

	res.FromModel(booking)

	return res, nil
}

// List returns every booking to admins and only the caller's own to customers, each with its room.
func (s *serviceImpl) List(ctx context.Context, principal gModel.Principal) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := gDto.FilterGroup{}
	if !principal.IsAdmin() {
		filter = shared.FilterByField(model.FieldUserID, principal.UserID, model.TableName)
	}

	bookings, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	rooms, err := RoomsOf(ctx, s.roomRepo, bookings)
	if err != nil {
		return res, err
	}

	return dto.FromModelsWithRooms(bookings, rooms), nil
}

// Confirm moves a booking to confirmed. The room stays unavailable. It holds the coordinator lock so
// a concurrent delete cannot slip between the lookup and the update.
func (s *serviceImpl) Confirm(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Confirm")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var booking model.Booking

	err = s.coordinator.Exclusive(ctx, func(ctx context.Context) error {
		filter := shared.FilterByID(id, model.FieldID, model.TableName)

		var err error

		booking, err = s.find(ctx, filter)
		if err != nil {
			return err
		}

		booking.Status = model.StatusConfirmed
		booking.UpdatedAt = s.clock.Now()

		update := map[string]any{
			model.FieldStatus:       booking.Status,
			constant.FieldUpdatedAt: booking.UpdatedAt,
		}

		if err := s.repo.Update(ctx, update, filter); err != nil {
			log.Error().Err(err).Msg("failed to confirm booking")

			return fmt.Errorf("failed to confirm booking: %w", err)
		}

		return nil
	})
	if err != nil {
		return res, err
	}

	s.publish(ctx, event.TypeBookingConfirmed, booking)

	res.FromModel(booking)

	return res, nil
}

// Delete removes the booking at any status and returns its room to the pool when the room still exists.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var booking model.Booking

	err = s.coordinator.Exclusive(ctx, func(ctx context.Context) error {
		filter := shared.FilterByID(id, model.FieldID, model.TableName)

		var err error

		booking, err = s.find(ctx, filter)
		if err != nil {
			return err
		}

		// The booking row is never re-inserted, so it keeps its ledger position on failure.
		found, err := s.coordinator.SetAvailability(ctx, booking.RoomID, true)
		if err != nil {
			return err
		}

		if !found {
			log.Warn().Str("bookingID", booking.ID).Str("roomID", booking.RoomID).Msg("deleted booking referenced a missing room")
		}

		if err := s.repo.Delete(ctx, filter); err != nil {
			log.Error().Err(err).Msg("failed to delete booking")

			if found {
				if _, holdErr := s.coordinator.SetAvailability(context.WithoutCancel(ctx), booking.RoomID, false); holdErr != nil {
					log.Error().Err(holdErr).Str("roomID", booking.RoomID).Msg("failed to hold room after delete failure")
				}
			}

			return fmt.Errorf("failed to delete booking: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.publish(ctx, event.TypeBookingDeleted, booking)

	return nil
}

func (s *serviceImpl) find(ctx context.Context, filter gDto.FilterGroup) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound(MessageBookingNotFound) // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) rollbackInsert(ctx context.Context, booking model.Booking) {
	filter := shared.FilterByID(booking.ID, model.FieldID, model.TableName)

	if err := s.repo.Delete(context.WithoutCancel(ctx), filter); err != nil {
		log.Error().Err(err).Str("bookingID", booking.ID).Msg("failed to roll back booking")
	}
}

// publish never fails the caller; the state change has already committed.
func (s *serviceImpl) publish(ctx context.Context, eventType string, booking model.Booking) {
	evt := event.Booking{
		ID:             uuid.NewString(),
		Type:           eventType,
		BookingID:      booking.ID,
		RoomID:         booking.RoomID,
		UserID:         booking.UserID,
		Status:         booking.Status,
		CheckInDate:    booking.CheckInDate,
		CheckOutDate:   booking.CheckOutDate,
		NumberOfGuests: booking.NumberOfGuests,
		TotalAmount:    booking.TotalAmount,
		OccurredAt:     s.clock.Now(),
	}

	if err := s.publisher.Publish(ctx, evt); err != nil {
		log.Error().Err(err).Str("type", eventType).Str("bookingID", booking.ID).Msg("failed to publish booking event")
	}
}

// RoomsOf loads the rooms referenced by the bookings, keyed by id.
func RoomsOf(ctx context.Context, rooms roomRepo.Room, bookings []model.Booking) (map[string]roomModel.Room, error) {
	res := map[string]roomModel.Room{}

	ids := make([]string, 0, len(bookings))
	seen := map[string]bool{}

	for _, booking := range bookings {
		if !seen[booking.RoomID] {
			seen[booking.RoomID] = true
			ids = append(ids, booking.RoomID)
		}
	}

	if len(ids) == 0 {
		return res, nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    roomModel.FieldID,
				Operator: gDto.FilterOperatorIn,
				Value:    ids,
				Table:    roomModel.TableName,
			},
		},
	}

	models, err := rooms.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booked rooms")

		return res, fmt.Errorf("failed to get booked rooms: %w", err)
	}

	for _, room := range models {
		res[room.ID] = room
	}

	return res, nil
}
