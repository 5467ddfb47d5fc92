package room_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	otelMocks "hotel/infras/otel/mocks"
	authMocks "hotel/internal/domains/auth/service/mocks"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/service"
	roomMocks "hotel/internal/domains/room/service/mocks"
	"hotel/internal/handlers/room"
	"hotel/shared/constant"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	"hotel/transport/http/middleware"
)

func newRouter(t *testing.T, role string) (http.Handler, *roomMocks.MockRoom) {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := roomMocks.NewMockRoom(ctrl)
	auth := authMocks.NewMockAuth(ctrl)
	otl := otelMocks.NewOtel()

	auth.EXPECT().VerifySession(gomock.Any(), "token").
		Return(gModel.Principal{UserID: "u-1", Email: "u@example.com", Role: role}, nil).
		AnyTimes()

	handler := room.New(svc, middleware.NewAuth(auth, otl), otl)

	r := chi.NewRouter()
	handler.Router(r)

	return r, svc
}

func imageRequest(t *testing.T, contentType string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="room.png"`)
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)

	_, err = part.Write([]byte("\x89PNG\r\n\x1a\n"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/rooms/room-1/images", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set(constant.RequestHeaderAuthorization, "Bearer token")

	return req
}

func decodeReason(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var res struct {
		Reason string `json:"reason"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))

	return res.Reason
}

func TestHandler_UploadImage(t *testing.T) {
	tests := []struct {
		name        string
		role        string
		contentType string
		setup       func(svc *roomMocks.MockRoom)
		code        int
		reason      string
	}{
		{
			name:        "uploads png",
			role:        constant.RoleAdmin,
			contentType: "image/png",
			setup: func(svc *roomMocks.MockRoom) {
				svc.EXPECT().AddImage(gomock.Any(), "room-1", gomock.Any()).
					DoAndReturn(func(_ any, _ string, req dto.UploadImageRequest) (dto.RoomResponse, error) {
						assert.Equal(t, "room.png", req.Image.Filename)

						return dto.RoomResponse{ID: "room-1", Images: []string{"http://cdn/rooms/a.png"}}, nil
					})
			},
			code: http.StatusOK,
		},
		{
			name:        "rejects non image",
			role:        constant.RoleAdmin,
			contentType: "text/plain",
			setup:       func(*roomMocks.MockRoom) {},
			code:        http.StatusBadRequest,
			reason:      failure.ReasonInvalidInput,
		},
		{
			name:        "storage disabled",
			role:        constant.RoleAdmin,
			contentType: "image/jpeg",
			setup: func(svc *roomMocks.MockRoom) {
				svc.EXPECT().AddImage(gomock.Any(), "room-1", gomock.Any()).
					Return(dto.RoomResponse{}, failure.Unimplemented(service.MessageStorageDisabled))
			},
			code:   http.StatusNotImplemented,
			reason: failure.ReasonUnimplemented,
		},
		{
			name:        "customer forbidden",
			role:        constant.RoleCustomer,
			contentType: "image/png",
			setup:       func(*roomMocks.MockRoom) {},
			code:        http.StatusForbidden,
			reason:      failure.ReasonForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := newRouter(t, tt.role)
			tt.setup(svc)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, imageRequest(t, tt.contentType))

			assert.Equal(t, tt.code, rec.Code)

			if tt.reason != "" {
				assert.Equal(t, tt.reason, decodeReason(t, rec))
			}
		})
	}
}

func TestHandler_GetRooms_PassesFilter(t *testing.T) {
	router, svc := newRouter(t, constant.RoleCustomer)

	svc.EXPECT().List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, filter dto.RoomFilter) ([]dto.RoomResponse, error) {
			assert.Equal(t, "suite", filter.Type)
			require.NotNil(t, filter.Guests)
			assert.Equal(t, 2, *filter.Guests)
			require.NotNil(t, filter.MaxPrice)
			assert.Equal(t, "400", filter.MaxPrice.String())

			return []dto.RoomResponse{}, nil
		})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rooms?type=suite&guests=2&maxPrice=400", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":[]}`, rec.Body.String())
}

func TestHandler_GetRooms_BadGuests(t *testing.T) {
	router, _ := newRouter(t, constant.RoleCustomer)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rooms?guests=2.5", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, failure.ReasonInvalidInput, decodeReason(t, rec))
}

func TestHandler_UpdateRoom_InvalidBody(t *testing.T) {
	router, _ := newRouter(t, constant.RoleAdmin)

	req := httptest.NewRequest(http.MethodPut, "/rooms/room-1", bytes.NewBufferString(`{"price": -5}`))
	req.Header.Set(constant.RequestHeaderAuthorization, "Bearer token")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
