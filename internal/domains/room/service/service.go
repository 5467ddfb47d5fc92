package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/s3"
	"hotel/internal/domains/availability"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/clock"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gModel "hotel/shared/model"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

const (
	MessageRoomNotFound     = "Room not found"
	MessageRoomNumberExists = "Room number already exists"
	MessageEmptyUpdate      = "update request cannot be empty"
	MessageStorageDisabled  = "Image storage is not configured"

	imageDirectory = "rooms"
)

type Room interface {
	List(ctx context.Context, filter dto.RoomFilter) ([]dto.RoomResponse, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateRoomRequest) (dto.RoomResponse, error)
	Delete(ctx context.Context, id string) error
	AddImage(ctx context.Context, id string, req dto.UploadImageRequest) (dto.RoomResponse, error)
}

type serviceImpl struct {
	repo        repository.Room
	coordinator availability.Coordinator
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
	s3          s3.S3
	clock       clock.Clock
}

func New(
	repo repository.Room,
	coordinator availability.Coordinator,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	s3 s3.S3,
	clock clock.Clock,
) Room {
	return &serviceImpl{
		repo:        repo,
		coordinator: coordinator,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
		s3:          s3,
		clock:       clock,
	}
}

// List applies the filter, or returns the first available room of each type when the filter is empty.
func (s *serviceImpl) List(ctx context.Context, filter dto.RoomFilter) (res []dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheListRoom, filter)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	var rooms []model.Room

	if filter.IsEmpty() {
		rooms, err = s.representatives(ctx)
	} else {
		rooms, err = s.repo.GetAll(ctx, gDto.QueryParams{}, filter.ToFilterGroup())
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res = dto.FromModels(rooms)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save rooms to cache")
	}

	return res, nil
}

func (s *serviceImpl) representatives(ctx context.Context) ([]model.Room, error) {
	available, err := s.repo.GetAll(ctx, gDto.QueryParams{}, shared.FilterByField(model.FieldIsAvailable, true, model.TableName))
	if err != nil {
		return nil, err
	}

	rooms := make([]model.Room, 0, len(model.Types))

	for _, roomType := range model.Types {
		index := slices.IndexFunc(available, func(room model.Room) bool {
			return room.Type == roomType
		})

		if index >= 0 {
			rooms = append(rooms, available[index])
		}
	}

	return rooms, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(model.CacheGetRoom, id)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room")

		return res, nil
	}

	room, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(room)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save room to cache")
	}

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room := req.ToModel(gModel.NewMetadata(s.clock.Now()))

	err = s.coordinator.Exclusive(ctx, func(ctx context.Context) error {
		if err := s.ensureUniqueNumber(ctx, room.RoomNumber, constant.Empty); err != nil {
			return err
		}

		if err := s.repo.Insert(ctx, room); err != nil {
			log.Error().Err(err).Msg("failed to create room")

			return fmt.Errorf("failed to create room: %w", err)
		}

		s.coordinator.Invalidate(ctx, room.ID)

		return nil
	})
	if err != nil {
		return res, err
	}

	res.FromModel(room)

	return res, nil
}

// Update merges the supplied fields over the stored room. It holds the coordinator lock so an
// availability change cannot interleave with a booking.
func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return res, failure.BadRequestFromString(MessageEmptyUpdate) // nolint:wrapcheck
	}

	var room model.Room

	err = s.coordinator.Exclusive(ctx, func(ctx context.Context) error {
		current, err := s.find(ctx, id)
		if err != nil {
			return err
		}

		if req.RoomNumber != nil && *req.RoomNumber != current.RoomNumber {
			if err := s.ensureUniqueNumber(ctx, *req.RoomNumber, id); err != nil {
				return err
			}
		}

		room = current
		if err := copier.CopyWithOption(&room, &req, copier.Option{IgnoreEmpty: true}); err != nil {
			return fmt.Errorf("failed to merge room update: %w", err)
		}

		if req.Price != nil {
			room.Price = *req.Price
		}

		room.UpdatedAt = s.clock.Now()

		if err := s.repo.Update(ctx, mutableFields(room), shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			log.Error().Err(err).Msg("failed to update room")

			return fmt.Errorf("failed to update room: %w", err)
		}

		s.coordinator.Invalidate(ctx, id)

		return nil
	})
	if err != nil {
		return res, err
	}

	res.FromModel(room)

	return res, nil
}

// Delete removes the room without touching bookings that still reference it.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.coordinator.Exclusive(ctx, func(ctx context.Context) error {
		filter := shared.FilterByID(id, model.FieldID, model.TableName)

		exist, err := s.repo.Exist(ctx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to check if room exists")

			return fmt.Errorf("failed to check if room exists: %w", err)
		}

		if !exist {
			return failure.NotFound(MessageRoomNotFound) // nolint:wrapcheck
		}

		if err := s.repo.Delete(ctx, filter); err != nil {
			log.Error().Err(err).Msg("failed to delete room")

			return fmt.Errorf("failed to delete room: %w", err)
		}

		s.coordinator.Invalidate(ctx, id)

		return nil
	})
}

// AddImage uploads the file to object storage and appends its public URL to the room's images.
func (s *serviceImpl) AddImage(ctx context.Context, id string, req dto.UploadImageRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.AddImage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.find(ctx, id); err != nil {
		return res, err
	}

	fileName := uuid.NewString() + filepath.Ext(req.Image.Filename)
	contentType := req.Image.Header.Get(constant.RequestHeaderContentType)

	url, err := s.s3.Upload(ctx, imageDirectory, fileName, contentType, req.ImageFile, req.Image.Size)
	if err != nil {
		if errors.Is(err, s3.ErrStorageDisabled) {
			return res, failure.Unimplemented(MessageStorageDisabled) // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to upload room image")

		return res, fmt.Errorf("failed to upload room image: %w", err)
	}

	var room model.Room

	err = s.coordinator.Exclusive(ctx, func(ctx context.Context) error {
		current, err := s.find(ctx, id)
		if err != nil {
			return err
		}

		room = current
		room.Images = append(slices.Clone(current.Images), url)
		room.UpdatedAt = s.clock.Now()

		update := map[string]any{
			model.FieldImages:       room.Images,
			constant.FieldUpdatedAt: room.UpdatedAt,
		}

		if err := s.repo.Update(ctx, update, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			log.Error().Err(err).Msg("failed to attach room image")

			return fmt.Errorf("failed to attach room image: %w", err)
		}

		s.coordinator.Invalidate(ctx, id)

		return nil
	})
	if err != nil {
		if delErr := s.s3.Delete(context.WithoutCancel(ctx), s.s3.ObjectKeyFromURL(url)); delErr != nil {
			log.Error().Err(delErr).Str("url", url).Msg("failed to remove orphaned room image")
		}

		return res, err
	}

	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Room, error) {
	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return room, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return room, failure.NotFound(MessageRoomNotFound) // nolint:wrapcheck
	}

	return room, nil
}

func (s *serviceImpl) ensureUniqueNumber(ctx context.Context, number, exceptID string) error {
	filter := shared.FilterByField(model.FieldRoomNumber, number, model.TableName)

	if exceptID != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldID,
			Operator: gDto.FilterOperatorNotEq,
			Value:    exceptID,
			Table:    model.TableName,
		})
	}

	exists, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check room number")

		return fmt.Errorf("failed to check room number: %w", err)
	}

	if exists {
		return failure.Conflict(MessageRoomNumberExists) // nolint:wrapcheck
	}

	return nil
}

func mutableFields(room model.Room) map[string]any {
	return map[string]any{
		model.FieldRoomNumber:   room.RoomNumber,
		model.FieldType:         room.Type,
		model.FieldPrice:        room.Price,
		model.FieldAmenities:    room.Amenities,
		model.FieldMaxOccupancy: room.MaxOccupancy,
		model.FieldIsAvailable:  room.IsAvailable,
		model.FieldDescription:  room.Description,
		model.FieldImages:       room.Images,
		constant.FieldUpdatedAt: room.UpdatedAt,
	}
}
