package seed_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel/config"
	otelMocks "hotel/infras/otel/mocks"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepo "hotel/internal/domains/booking/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	userModel "hotel/internal/domains/user/model"
	userRepo "hotel/internal/domains/user/repository"
	"hotel/internal/seed"
	"hotel/shared"
	"hotel/shared/clock"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/password"
)

func TestRooms(t *testing.T) {
	rooms := seed.Rooms(gModel.NewMetadata(time.Now()))
	require.Len(t, rooms, 40)

	perType := map[string]int{}
	numbers := map[string]bool{}

	for _, room := range rooms {
		perType[room.Type]++
		numbers[room.RoomNumber] = true

		assert.Equal(t, room.ID != "room-37", room.IsAvailable, room.ID)
	}

	assert.Equal(t, map[string]int{
		roomModel.TypeSingle: 10,
		roomModel.TypeDouble: 10,
		roomModel.TypeSuite:  10,
		roomModel.TypeDeluxe: 10,
	}, perType)
	assert.Len(t, numbers, 40)

	assert.Equal(t, "101", rooms[0].RoomNumber)
	assert.Equal(t, "110", rooms[9].RoomNumber)
	assert.Equal(t, "407", rooms[36].RoomNumber)
	assert.Equal(t, roomModel.TypeDeluxe, rooms[36].Type)
	assert.Equal(t, 6, rooms[36].MaxOccupancy)
}

func TestSeeder_Run(t *testing.T) {
	otl := otelMocks.NewOtel()
	cfg := &config.Config{}
	cfg.App.Seed = true

	users := userRepo.New(nil, otl)
	rooms := roomRepo.New(nil, otl)
	bookings := bookingRepo.New(nil, otl)

	seeder := seed.New(cfg, users, rooms, bookings, clock.New())

	require.NoError(t, seeder.Run(context.Background()))
	require.NoError(t, seeder.Run(context.Background()))

	roomCount, err := rooms.Count(context.Background(), gDto.FilterGroup{})
	require.NoError(t, err)
	assert.Equal(t, 40, roomCount)

	bookingCount, err := bookings.Count(context.Background(), gDto.FilterGroup{})
	require.NoError(t, err)
	assert.Equal(t, 1, bookingCount)

	held, err := bookings.Get(context.Background(), shared.FilterByID("booking-1", bookingModel.FieldID, bookingModel.TableName))
	require.NoError(t, err)
	assert.Equal(t, "room-37", held.RoomID)
	assert.Equal(t, bookingModel.StatusConfirmed, held.Status)

	admin, err := users.Get(context.Background(), shared.FilterByField(userModel.FieldEmail, "admin@hotel.com", userModel.TableName))
	require.NoError(t, err)
	assert.Equal(t, "admin-1", admin.ID)
	assert.NoError(t, password.Verify("admin123", admin.Password))

	userCount, err := users.Count(context.Background(), gDto.FilterGroup{})
	require.NoError(t, err)
	assert.Equal(t, 2, userCount)
}

func TestSeeder_Disabled(t *testing.T) {
	otl := otelMocks.NewOtel()
	rooms := roomRepo.New(nil, otl)

	seeder := seed.New(&config.Config{}, userRepo.New(nil, otl), rooms, bookingRepo.New(nil, otl), clock.New())
	require.NoError(t, seeder.Run(context.Background()))

	count, err := rooms.Count(context.Background(), gDto.FilterGroup{})
	require.NoError(t, err)
	assert.Zero(t, count)
}
