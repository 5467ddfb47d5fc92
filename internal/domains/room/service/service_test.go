package service_test

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/config"
	otelMocks "hotel/infras/otel/mocks"
	"hotel/infras/s3"
	s3Mocks "hotel/infras/s3/mocks"
	"hotel/internal/domains/availability"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/repository"
	"hotel/internal/domains/room/service"
	"hotel/shared/cache"
	"hotel/shared/clock"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
)

var (
	now           = time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	equateDecimal = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })
)

func newService(t *testing.T, storage s3.S3) (service.Room, repository.Room) {
	t.Helper()

	otl := otelMocks.NewOtel()
	clk := clock.NewMockClock(now)
	redisCache := cache.NewRedisCache(nil, otl)

	repo := repository.New(nil, otl)
	coordinator := availability.New(repo, redisCache, clk, otl)

	return service.New(repo, coordinator, &config.Config{}, redisCache, otl, storage, clk), repo
}

func seed(t *testing.T, repo repository.Room, rooms ...model.Room) {
	t.Helper()

	for _, room := range rooms {
		room.Metadata = gModel.NewMetadata(now)
		require.NoError(t, repo.Insert(context.Background(), room))
	}
}

func room(id, number, roomType string, price int64, occupancy int, available bool) model.Room {
	return model.Room{
		ID:           id,
		RoomNumber:   number,
		Type:         roomType,
		Price:        decimal.NewFromInt(price),
		Amenities:    []string{"WiFi"},
		MaxOccupancy: occupancy,
		IsAvailable:  available,
		Images:       []string{},
	}
}

func inventory() []model.Room {
	return []model.Room{
		room("room-1", "101", model.TypeSingle, 120, 1, false),
		room("room-2", "102", model.TypeSingle, 120, 1, true),
		room("room-11", "201", model.TypeDouble, 180, 2, true),
		room("room-12", "202", model.TypeDouble, 180, 2, true),
		room("room-31", "401", model.TypeDeluxe, 500, 6, true),
		room("room-21", "301", model.TypeSuite, 350, 4, false),
	}
}

func ids(rooms []dto.RoomResponse) []string {
	res := make([]string, len(rooms))
	for i, r := range rooms {
		res[i] = r.ID
	}

	return res
}

func ptr[T any](v T) *T {
	return &v
}

func TestRoomService_List(t *testing.T) {
	tests := []struct {
		name   string
		filter dto.RoomFilter
		want   []string
	}{
		{
			name:   "no filter returns the first available room per type in type order",
			filter: dto.RoomFilter{},
			want:   []string{"room-2", "room-11", "room-31"},
		},
		{
			name:   "type",
			filter: dto.RoomFilter{Type: model.TypeSingle},
			want:   []string{"room-1", "room-2"},
		},
		{
			name:   "price range is inclusive",
			filter: dto.RoomFilter{MinPrice: ptr(decimal.NewFromInt(180)), MaxPrice: ptr(decimal.NewFromInt(350))},
			want:   []string{"room-11", "room-12", "room-21"},
		},
		{
			name:   "guests",
			filter: dto.RoomFilter{Guests: ptr(4)},
			want:   []string{"room-31", "room-21"},
		},
		{
			name:   "either date keeps only available rooms",
			filter: dto.RoomFilter{Type: model.TypeSingle, CheckIn: "2024-02-01"},
			want:   []string{"room-2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService(t, nil)
			seed(t, repo, inventory()...)

			res, err := svc.List(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(res))
		})
	}
}

func TestRoomService_ListIsStable(t *testing.T) {
	svc, repo := newService(t, nil)
	seed(t, repo, inventory()...)

	first, err := svc.List(context.Background(), dto.RoomFilter{})
	require.NoError(t, err)

	second, err := svc.List(context.Background(), dto.RoomFilter{})
	require.NoError(t, err)

	assert.Equal(t, ids(first), ids(second))
}

func TestRoomService_CreateThenGet(t *testing.T) {
	svc, _ := newService(t, nil)

	req := dto.CreateRoomRequest{
		RoomNumber:   "501",
		Type:         model.TypeSuite,
		Price:        decimal.RequireFromString("275.50"),
		Amenities:    []string{"WiFi", "Balcony"},
		MaxOccupancy: 3,
		Description:  "Corner suite",
		Images:       []string{"https://cdn.example.com/501.jpg"},
	}

	created, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.IsAvailable)

	fetched, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)

	if diff := cmp.Diff(created, fetched, equateDecimal); diff != "" {
		t.Errorf("fetched room mismatch (-created +fetched):\n%s", diff)
	}

	assert.True(t, req.Price.Equal(fetched.Price))
	assert.Equal(t, req.Amenities, fetched.Amenities)

	_, err = svc.Create(context.Background(), req)
	assert.Equal(t, failure.Conflict(service.MessageRoomNumberExists), err)
}

func TestRoomService_CreateDefaults(t *testing.T) {
	svc, _ := newService(t, nil)

	created, err := svc.Create(context.Background(), dto.CreateRoomRequest{
		RoomNumber:   "502",
		Type:         model.TypeSingle,
		Price:        decimal.NewFromInt(99),
		MaxOccupancy: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{}, created.Amenities)
	assert.Equal(t, []string{}, created.Images)
	assert.True(t, created.IsAvailable)
}

func TestRoomService_Update(t *testing.T) {
	svc, repo := newService(t, nil)
	seed(t, repo, inventory()...)

	updated, err := svc.Update(context.Background(), "room-11", dto.UpdateRoomRequest{
		Price:       ptr(decimal.NewFromInt(200)),
		IsAvailable: ptr(false),
		Amenities:   []string{"WiFi", "TV"},
	})
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(200).Equal(updated.Price))
	assert.False(t, updated.IsAvailable)
	assert.Equal(t, []string{"WiFi", "TV"}, updated.Amenities)
	assert.Equal(t, "201", updated.RoomNumber)
	assert.Equal(t, 2, updated.MaxOccupancy)

	fetched, err := svc.Get(context.Background(), "room-11")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(200).Equal(fetched.Price))
	assert.False(t, fetched.IsAvailable)

	_, err = svc.Update(context.Background(), "room-11", dto.UpdateRoomRequest{RoomNumber: ptr("202")})
	assert.Equal(t, failure.ReasonConflict, failure.GetReason(err))

	_, err = svc.Update(context.Background(), "room-404", dto.UpdateRoomRequest{Description: ptr("x")})
	assert.Equal(t, failure.NotFound(service.MessageRoomNotFound), err)

	_, err = svc.Update(context.Background(), "room-11", dto.UpdateRoomRequest{})
	assert.Equal(t, failure.ReasonInvalidInput, failure.GetReason(err))
}

func TestRoomService_Delete(t *testing.T) {
	svc, repo := newService(t, nil)
	seed(t, repo, inventory()...)

	require.NoError(t, svc.Delete(context.Background(), "room-2"))

	_, err := svc.Get(context.Background(), "room-2")
	assert.Equal(t, failure.ReasonNotFound, failure.GetReason(err))

	err = svc.Delete(context.Background(), "room-2")
	assert.Equal(t, failure.ReasonNotFound, failure.GetReason(err))
}

func imageRequest(t *testing.T) dto.UploadImageRequest {
	t.Helper()

	header := &multipart.FileHeader{
		Filename: "suite.jpg",
		Header:   textproto.MIMEHeader{"Content-Type": []string{"image/jpeg"}},
		Size:     4,
	}

	return dto.UploadImageRequest{Image: header, ImageFile: nopFile{bytes.NewReader([]byte("jpeg"))}}
}

type nopFile struct {
	*bytes.Reader
}

func (nopFile) Close() error { return nil }

func TestRoomService_AddImage(t *testing.T) {
	ctrl := gomock.NewController(t)
	storage := s3Mocks.NewMockS3(ctrl)

	svc, repo := newService(t, storage)
	seed(t, repo, inventory()...)

	storage.EXPECT().
		Upload(gomock.Any(), "rooms", gomock.Any(), "image/jpeg", gomock.Any(), int64(4)).
		DoAndReturn(func(_ context.Context, dir, name, _ string, _ any, _ int64) (string, error) {
			assert.Regexp(t, `\.jpg$`, name)

			return fmt.Sprintf("https://cdn.example.com/%s/%s", dir, name), nil
		})

	res, err := svc.AddImage(context.Background(), "room-11", imageRequest(t))
	require.NoError(t, err)
	require.Len(t, res.Images, 1)
	assert.Contains(t, res.Images[0], "https://cdn.example.com/rooms/")
}

func TestRoomService_AddImageWithoutStorage(t *testing.T) {
	ctrl := gomock.NewController(t)
	storage := s3Mocks.NewMockS3(ctrl)

	svc, repo := newService(t, storage)
	seed(t, repo, inventory()...)

	storage.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", s3.ErrStorageDisabled)

	_, err := svc.AddImage(context.Background(), "room-11", imageRequest(t))
	assert.Equal(t, failure.ReasonUnimplemented, failure.GetReason(err))
}

func TestRoomService_AddImageUnknownRoom(t *testing.T) {
	svc, _ := newService(t, s3Mocks.NewMockS3(gomock.NewController(t)))

	_, err := svc.AddImage(context.Background(), "room-404", imageRequest(t))
	assert.Equal(t, failure.NotFound(service.MessageRoomNotFound), err)
}
