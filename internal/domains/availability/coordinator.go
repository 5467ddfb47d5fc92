// Package availability serializes every change to a room's availability flag. Booking creation and
// deletion, and admin edits of rooms, run their read-check-write sequence inside Exclusive so two
// requests can never both observe a room as free.
package availability

//go:generate go run go.uber.org/mock/mockgen -source=./coordinator.go -destination=./mocks/coordinator_mock.go -package=mocks

import (
	"context"
	"fmt"
	"sync"

	"hotel/infras/otel"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/clock"
	"hotel/shared/constant"

	"github.com/rs/zerolog/log"
)

type Coordinator interface {
	// Exclusive runs fn while holding the coordinator lock. fn must not call Exclusive again.
	Exclusive(ctx context.Context, fn func(ctx context.Context) error) error
	// SetAvailability flips the room's flag. It reports false when the room no longer exists.
	SetAvailability(ctx context.Context, roomID string, available bool) (bool, error)
	// Invalidate drops every cached view of the room.
	Invalidate(ctx context.Context, roomID string)
}

type coordinatorImpl struct {
	mu    sync.Mutex
	rooms roomRepo.Room
	cache cache.RedisCache
	clock clock.Clock
	otel  otel.Otel
}

func New(rooms roomRepo.Room, cache cache.RedisCache, clock clock.Clock, otel otel.Otel) Coordinator {
	return &coordinatorImpl{
		rooms: rooms,
		cache: cache,
		clock: clock,
		otel:  otel,
	}
}

func (c *coordinatorImpl) Exclusive(ctx context.Context, fn func(ctx context.Context) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return fn(ctx)
}

func (c *coordinatorImpl) SetAvailability(ctx context.Context, roomID string, available bool) (found bool, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.SetAvailability")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("room.id", roomID)
	scope.SetAttribute("room.available", available)

	filter := shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName)

	found, err = c.rooms.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Str("roomID", roomID).Msg("failed to check if room exists")

		return false, fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !found {
		return false, nil
	}

	update := map[string]any{
		roomModel.FieldIsAvailable: available,
		constant.FieldUpdatedAt:    c.clock.Now(),
	}

	if err = c.rooms.Update(ctx, update, filter); err != nil {
		log.Error().Err(err).Str("roomID", roomID).Msg("failed to update room availability")

		return true, fmt.Errorf("failed to update room availability: %w", err)
	}

	c.Invalidate(ctx, roomID)

	return true, nil
}

func (c *coordinatorImpl) Invalidate(ctx context.Context, roomID string) {
	if err := c.cache.Delete(ctx, shared.BuildCacheKey(roomModel.CacheGetRoom, roomID)); err != nil {
		log.Error().Err(err).Str("roomID", roomID).Msg("failed to delete room cache")
	}

	shared.InvalidateCaches(ctx, c.cache, roomModel.CacheListRoom)
}
