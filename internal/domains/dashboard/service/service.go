package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"hotel/infras/otel"
	bookingModel "hotel/internal/domains/booking/model"
	bookingDto "hotel/internal/domains/booking/model/dto"
	bookingRepo "hotel/internal/domains/booking/repository"
	bookingService "hotel/internal/domains/booking/service"
	"hotel/internal/domains/dashboard/model/dto"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/clock"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type Dashboard interface {
	Stats(ctx context.Context) (dto.StatsResponse, error)
}

type serviceImpl struct {
	bookings bookingRepo.Booking
	rooms    roomRepo.Room
	clock    clock.Clock
	otel     otel.Otel
}

func New(bookings bookingRepo.Booking, rooms roomRepo.Room, clock clock.Clock, otel otel.Otel) Dashboard {
	return &serviceImpl{
		bookings: bookings,
		rooms:    rooms,
		clock:    clock,
		otel:     otel,
	}
}

// Stats summarizes the ledger and inventory as they are right now. Revenue counts every retained
// booking regardless of status; monthly revenue uses the booking's creation time.
func (s *serviceImpl) Stats(ctx context.Context) (res dto.StatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".dashboard.Stats")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bookings, err := s.bookings.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.TotalRooms, err = s.rooms.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	res.AvailableRooms, err = s.rooms.Count(ctx, shared.FilterByField(roomModel.FieldIsAvailable, true, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to count available rooms")

		return res, fmt.Errorf("failed to count available rooms: %w", err)
	}

	now := s.clock.Now()

	res.TotalBookings = len(bookings)
	res.TotalRevenue = decimal.Zero
	res.MonthlyRevenue = decimal.Zero

	for _, booking := range bookings {
		res.TotalRevenue = res.TotalRevenue.Add(booking.TotalAmount)

		createdAt := booking.CreatedAt.In(now.Location())
		if createdAt.Year() == now.Year() && createdAt.Month() == now.Month() {
			res.MonthlyRevenue = res.MonthlyRevenue.Add(booking.TotalAmount)
		}
	}

	recent := recentBookings(bookings)

	rooms, err := bookingService.RoomsOf(ctx, s.rooms, recent)
	if err != nil {
		return res, err
	}

	res.RecentBookings = bookingDto.FromModelsWithRooms(recent, rooms)

	return res, nil
}

func recentBookings(bookings []bookingModel.Booking) []bookingModel.Booking {
	return bookings[max(0, len(bookings)-dto.RecentBookingsLimit):]
}
