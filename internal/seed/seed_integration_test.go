//go:build integration

package seed_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"hotel/config"
	"hotel/helper"
	otelMocks "hotel/infras/otel/mocks"
	"hotel/infras/postgres"
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
)

const (
	testUser     = "hotel"
	testPassword = "hotel"
	testDatabase = "hotel"

	migrationSource = "file://../../migrations/postgres"
)

func startPostgres(t *testing.T) *config.Config {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     testUser,
				"POSTGRES_PASSWORD": testPassword,
				"POSTGRES_DB":       testDatabase,
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, testcontainers.TerminateContainer(container))
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.App.Seed = true
	cfg.Store.Driver = config.StoreDriverPostgres
	cfg.DB.Postgres.MaxRetry = 5
	cfg.DB.Postgres.RetryWaitTime = 1
	cfg.DB.Postgres.MigrationTable = "schema_migrations"

	cfg.DB.Postgres.Write.Host = host
	cfg.DB.Postgres.Write.Port = port.Port()
	cfg.DB.Postgres.Write.Username = testUser
	cfg.DB.Postgres.Write.Password = testPassword
	cfg.DB.Postgres.Write.Name = testDatabase
	cfg.DB.Postgres.Write.SSLMode = "disable"
	cfg.DB.Postgres.Read = cfg.DB.Postgres.Write

	require.NoError(t, helper.Runner(cfg, migrationSource, helper.ActionUp))

	return cfg
}

func TestSeeder_Postgres(t *testing.T) {
	cfg := startPostgres(t)

	conn := postgres.New(cfg)
	require.NotNil(t, conn)

	t.Cleanup(func() { _ = conn.Close() })

	otl := otelMocks.NewOtel()
	ctx := context.Background()

	users := userRepo.New(conn, otl)
	rooms := roomRepo.New(conn, otl)
	bookings := bookingRepo.New(conn, otl)

	seeder := seed.New(cfg, users, rooms, bookings, clock.New())

	require.NoError(t, seeder.Run(ctx))
	require.NoError(t, seeder.Run(ctx))

	roomCount, err := rooms.Count(ctx, gDto.FilterGroup{})
	require.NoError(t, err)
	assert.Equal(t, 40, roomCount)

	userCount, err := users.Count(ctx, gDto.FilterGroup{})
	require.NoError(t, err)
	assert.Equal(t, 2, userCount)

	all, err := rooms.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	require.NoError(t, err)
	require.Len(t, all, 40)
	assert.Equal(t, "room-1", all[0].ID)
	assert.Equal(t, "room-40", all[39].ID)

	suites, err := rooms.Count(ctx, shared.FilterByField(roomModel.FieldType, roomModel.TypeSuite, roomModel.TableName))
	require.NoError(t, err)
	assert.Equal(t, 10, suites)

	held, err := bookings.Get(ctx, shared.FilterByID("booking-1", bookingModel.FieldID, bookingModel.TableName))
	require.NoError(t, err)
	assert.Equal(t, "room-37", held.RoomID)
	assert.True(t, held.TotalAmount.Equal(seed.Booking(held.Metadata).TotalAmount))
	assert.Equal(t, bookingModel.StatusConfirmed, held.Status)

	admin, err := users.Get(ctx, shared.FilterByField(userModel.FieldEmail, "admin@hotel.com", userModel.TableName))
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.Role)
}

func TestRoomRepository_UpdateAndDelete(t *testing.T) {
	cfg := startPostgres(t)

	conn := postgres.New(cfg)
	require.NotNil(t, conn)

	t.Cleanup(func() { _ = conn.Close() })

	ctx := context.Background()
	rooms := roomRepo.New(conn, otelMocks.NewOtel())

	require.NoError(t, seed.New(cfg, userRepo.New(conn, otelMocks.NewOtel()), rooms, bookingRepo.New(conn, otelMocks.NewOtel()), clock.New()).Run(ctx))

	byID := shared.FilterByID("room-5", roomModel.FieldID, roomModel.TableName)

	require.NoError(t, rooms.Update(ctx, map[string]any{roomModel.FieldIsAvailable: false}, byID))

	room, err := rooms.Get(ctx, byID)
	require.NoError(t, err)
	assert.False(t, room.IsAvailable)

	require.NoError(t, rooms.Delete(ctx, byID))

	exists, err := rooms.Exist(ctx, byID)
	require.NoError(t, err)
	assert.False(t, exists)
}
