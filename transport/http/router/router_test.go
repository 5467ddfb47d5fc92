package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel/config"
	"hotel/infras/jwt"
	otelMocks "hotel/infras/otel/mocks"
	"hotel/infras/s3"
	"hotel/internal/domains/availability"
	authService "hotel/internal/domains/auth/service"
	bookingDto "hotel/internal/domains/booking/model/dto"
	bookingRepository "hotel/internal/domains/booking/repository"
	bookingService "hotel/internal/domains/booking/service"
	dashboardDto "hotel/internal/domains/dashboard/model/dto"
	dashboardService "hotel/internal/domains/dashboard/service"
	roomDto "hotel/internal/domains/room/model/dto"
	roomRepository "hotel/internal/domains/room/repository"
	roomService "hotel/internal/domains/room/service"
	userRepository "hotel/internal/domains/user/repository"
	userService "hotel/internal/domains/user/service"
	authHandler "hotel/internal/handlers/auth"
	bookingHandler "hotel/internal/handlers/booking"
	dashboardHandler "hotel/internal/handlers/dashboard"
	"hotel/internal/handlers/health"
	roomHandler "hotel/internal/handlers/room"
	userHandler "hotel/internal/handlers/user"
	"hotel/internal/seed"
	"hotel/shared/cache"
	"hotel/shared/clock"
	"hotel/shared/event"
	"hotel/shared/failure"
	"hotel/transport/http/middleware"
	"hotel/transport/http/router"
)

var fixedNow = time.Date(2030, 3, 1, 9, 0, 0, 0, time.UTC)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Reason  string          `json:"reason"`
	Data    json.RawMessage `json:"data"`
}

type app struct {
	t       *testing.T
	handler http.Handler
	probe   *health.Probe
}

func newApp(t *testing.T) *app {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Name = "hotel"
	cfg.App.Seed = true
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireMin = 60
	cfg.Event.Driver = config.EventDriverNone

	otl := otelMocks.NewOtel()
	clk := clock.NewMockClock(fixedNow)
	redisCache := cache.NewRedisCache(nil, otl)

	users := userRepository.New(nil, otl)
	rooms := roomRepository.New(nil, otl)
	bookings := bookingRepository.New(nil, otl)

	require.NoError(t, seed.New(cfg, users, rooms, bookings, clk).Run(context.Background()))

	coordinator := availability.New(rooms, redisCache, clk, otl)
	auth := authService.New(users, cfg, redisCache, otl, jwt.New(cfg), clk)
	authMiddleware := middleware.NewAuth(auth, otl)
	publisher := event.NewPublisher(cfg, nil, nil, otl)
	probe := health.NewProbe()

	r := router.New(router.DomainHandlers{
		Health:    health.New(probe),
		Auth:      authHandler.New(auth, authMiddleware, otl),
		User:      userHandler.New(userService.New(users, cfg, redisCache, otl), authMiddleware, otl),
		Room:      roomHandler.New(roomService.New(rooms, coordinator, cfg, redisCache, otl, s3.New(cfg, otl), clk), authMiddleware, otl),
		Booking:   bookingHandler.New(bookingService.New(bookings, rooms, coordinator, publisher, clk, otl), authMiddleware, otl),
		Dashboard: dashboardHandler.New(dashboardService.New(bookings, rooms, clk, otl), authMiddleware, otl),
	}, middleware.NewAppMiddleware(otl, cfg, redisCache))

	return &app{t: t, handler: r.Handler(), probe: probe}
}

func (a *app) do(method, path, token string, body any) (int, envelope) {
	a.t.Helper()

	var payload bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&payload).Encode(body))
	}

	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)

	var res envelope
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &res), rec.Body.String())

	return rec.Code, res
}

func (a *app) login(email, password string) string {
	a.t.Helper()

	code, res := a.do(http.MethodPost, "/v1/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(a.t, http.StatusOK, code, res.Message)

	var auth struct {
		Token string `json:"token"`
	}
	require.NoError(a.t, json.Unmarshal(res.Data, &auth))

	return auth.Token
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(raw, &out))

	return out
}

func TestPing(t *testing.T) {
	a := newApp(t)

	code, res := a.do(http.MethodGet, "/v1/ping", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, res.Success)
	assert.Equal(t, health.MessagePong, res.Message)

	a.probe.Drain()

	code, res = a.do(http.MethodGet, "/v1/ping", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.False(t, res.Success)
}

func TestRouteNotFound(t *testing.T) {
	a := newApp(t)

	code, res := a.do(http.MethodGet, "/v1/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, res.Success)
	assert.Equal(t, failure.ReasonNotFound, res.Reason)
}

func TestAuthFlow(t *testing.T) {
	a := newApp(t)

	code, res := a.do(http.MethodPost, "/v1/auth/register", "", map[string]string{
		"email": "jane@example.com", "password": "secret", "firstName": "Jane", "lastName": "Roe",
	})
	require.Equal(t, http.StatusCreated, code, res.Message)
	assert.Equal(t, authHandler.MessageRegistered, res.Message)

	code, res = a.do(http.MethodPost, "/v1/auth/register", "", map[string]string{
		"email": "jane@example.com", "password": "secret", "firstName": "Jane", "lastName": "Roe",
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, authService.MessageUserExists, res.Message)

	code, res = a.do(http.MethodPost, "/v1/auth/register", "", map[string]string{"email": "x@example.com"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, failure.ReasonInvalidInput, res.Reason)

	_, wrongPassword := a.do(http.MethodPost, "/v1/auth/login", "", map[string]string{"email": "jane@example.com", "password": "nope"})
	_, unknownEmail := a.do(http.MethodPost, "/v1/auth/login", "", map[string]string{"email": "ghost@example.com", "password": "nope"})
	assert.Equal(t, wrongPassword, unknownEmail)
	assert.Equal(t, authService.MessageInvalidCredentials, wrongPassword.Message)

	token := a.login("jane@example.com", "secret")

	code, res = a.do(http.MethodGet, "/v1/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(res.Data), `"role":"customer"`)
	assert.NotContains(t, string(res.Data), "password")

	code, res = a.do(http.MethodGet, "/v1/auth/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, authService.MessageTokenRequired, res.Message)

	code, res = a.do(http.MethodGet, "/v1/auth/profile", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, authService.MessageInvalidToken, res.Message)
}

func TestRoomListing(t *testing.T) {
	a := newApp(t)

	code, res := a.do(http.MethodGet, "/v1/rooms", "", nil)
	require.Equal(t, http.StatusOK, code)

	rooms := decode[[]roomDto.RoomResponse](t, res.Data)
	require.Len(t, rooms, 4)

	types := []string{}
	for _, room := range rooms {
		types = append(types, room.Type)
		assert.True(t, room.IsAvailable)
	}

	assert.Equal(t, []string{"single", "double", "suite", "deluxe"}, types)
	assert.Equal(t, "room-1", rooms[0].ID)

	code, res = a.do(http.MethodGet, "/v1/rooms?type=suite&guests=4", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]roomDto.RoomResponse](t, res.Data), 10)

	code, res = a.do(http.MethodGet, "/v1/rooms?type=deluxe&checkIn=2030-03-10", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]roomDto.RoomResponse](t, res.Data), 9)

	code, _ = a.do(http.MethodGet, "/v1/rooms?minPrice=cheap", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, res = a.do(http.MethodGet, "/v1/rooms/room-404", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, roomService.MessageRoomNotFound, res.Message)
}

func TestRoomAdministration(t *testing.T) {
	a := newApp(t)
	admin := a.login("admin@hotel.com", "admin123")
	customer := a.login("john@example.com", "password123")

	newRoom := map[string]any{
		"roomNumber": "501", "type": "suite", "price": 275.5, "amenities": []string{"WiFi"},
		"maxOccupancy": 3, "description": "Penthouse",
	}

	code, res := a.do(http.MethodPost, "/v1/rooms", customer, newRoom)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Insufficient permissions", res.Message)

	code, res = a.do(http.MethodPost, "/v1/rooms", admin, newRoom)
	require.Equal(t, http.StatusCreated, code, res.Message)

	created := decode[roomDto.RoomResponse](t, res.Data)
	assert.True(t, created.Price.Equal(decimal.RequireFromString("275.5")))
	assert.True(t, created.IsAvailable)

	code, res = a.do(http.MethodGet, "/v1/rooms/"+created.ID, "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, created, decode[roomDto.RoomResponse](t, res.Data))

	code, _ = a.do(http.MethodPost, "/v1/rooms", admin, newRoom)
	assert.Equal(t, http.StatusConflict, code)

	code, res = a.do(http.MethodPut, "/v1/rooms/"+created.ID, admin, map[string]any{"description": "Renovated"})
	require.Equal(t, http.StatusOK, code)

	updated := decode[roomDto.RoomResponse](t, res.Data)
	assert.Equal(t, "Renovated", updated.Description)
	assert.Equal(t, "501", updated.RoomNumber)

	code, res = a.do(http.MethodDelete, "/v1/rooms/"+created.ID, admin, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, roomHandler.MessageRoomDeleted, res.Message)

	code, _ = a.do(http.MethodDelete, "/v1/rooms/"+created.ID, admin, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestBookingLifecycle(t *testing.T) {
	a := newApp(t)
	admin := a.login("admin@hotel.com", "admin123")
	customer := a.login("john@example.com", "password123")

	request := map[string]any{
		"roomId": "room-1", "checkInDate": "2030-03-10", "checkOutDate": "2030-03-15", "numberOfGuests": 1,
	}

	code, res := a.do(http.MethodPost, "/v1/bookings", "", request)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, authService.MessageTokenRequired, res.Message)

	code, res = a.do(http.MethodPost, "/v1/bookings", customer, request)
	require.Equal(t, http.StatusCreated, code, res.Message)

	booking := decode[bookingDto.BookingResponse](t, res.Data)
	assert.True(t, booking.TotalAmount.Equal(decimal.NewFromInt(600)))
	assert.Equal(t, "pending", booking.Status)

	code, res = a.do(http.MethodPost, "/v1/bookings", customer, request)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, failure.ReasonRoomUnavailable, res.Reason)

	_, res = a.do(http.MethodGet, "/v1/rooms", "", nil)
	assert.Equal(t, "room-2", decode[[]roomDto.RoomResponse](t, res.Data)[0].ID)

	code, _ = a.do(http.MethodPatch, "/v1/bookings/"+booking.ID+"/confirm", customer, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, res = a.do(http.MethodPatch, "/v1/bookings/"+booking.ID+"/confirm", admin, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "confirmed", decode[bookingDto.BookingResponse](t, res.Data).Status)

	_, res = a.do(http.MethodGet, "/v1/bookings", customer, nil)
	mine := decode[[]bookingDto.BookingResponse](t, res.Data)
	require.Len(t, mine, 2)
	require.NotNil(t, mine[1].Room)
	assert.Equal(t, "101", mine[1].Room.RoomNumber)

	code, res = a.do(http.MethodGet, "/v1/dashboard/stats", customer, nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, failure.ReasonForbidden, res.Reason)

	code, res = a.do(http.MethodGet, "/v1/dashboard/stats", admin, nil)
	require.Equal(t, http.StatusOK, code)

	stats := decode[dashboardDto.StatsResponse](t, res.Data)
	assert.Equal(t, 2, stats.TotalBookings)
	assert.Equal(t, 40, stats.TotalRooms)
	assert.Equal(t, 38, stats.AvailableRooms)
	assert.True(t, stats.TotalRevenue.Equal(decimal.NewFromInt(3100)), stats.TotalRevenue.String())
	assert.True(t, stats.MonthlyRevenue.Equal(decimal.NewFromInt(3100)), stats.MonthlyRevenue.String())

	code, res = a.do(http.MethodDelete, "/v1/bookings/"+booking.ID, admin, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, bookingHandler.MessageBookingDeleted, res.Message)

	_, res = a.do(http.MethodGet, "/v1/rooms/room-1", "", nil)
	assert.True(t, decode[roomDto.RoomResponse](t, res.Data).IsAvailable)

	code, _ = a.do(http.MethodDelete, "/v1/bookings/"+booking.ID, admin, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestBookingValidation(t *testing.T) {
	a := newApp(t)
	customer := a.login("john@example.com", "password123")

	tests := []struct {
		name   string
		body   map[string]any
		code   int
		reason string
	}{
		{
			name:   "unknown room",
			body:   map[string]any{"roomId": "room-999", "checkInDate": "2030-03-10", "checkOutDate": "2030-03-12", "numberOfGuests": 1},
			code:   http.StatusNotFound,
			reason: failure.ReasonNotFound,
		},
		{
			name:   "checkout before checkin",
			body:   map[string]any{"roomId": "room-11", "checkInDate": "2030-03-10", "checkOutDate": "2030-03-10", "numberOfGuests": 1},
			code:   http.StatusBadRequest,
			reason: failure.ReasonInvalidDateRange,
		},
		{
			name:   "checkin in the past",
			body:   map[string]any{"roomId": "room-11", "checkInDate": "2030-02-01", "checkOutDate": "2030-03-10", "numberOfGuests": 1},
			code:   http.StatusBadRequest,
			reason: failure.ReasonInvalidDateRange,
		},
		{
			name:   "too many guests",
			body:   map[string]any{"roomId": "room-11", "checkInDate": "2030-03-10", "checkOutDate": "2030-03-12", "numberOfGuests": 3},
			code:   http.StatusBadRequest,
			reason: failure.ReasonOccupancyExceeded,
		},
		{
			name:   "missing fields",
			body:   map[string]any{"numberOfGuests": 1},
			code:   http.StatusBadRequest,
			reason: failure.ReasonInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, res := a.do(http.MethodPost, "/v1/bookings", customer, tt.body)

			assert.Equal(t, tt.code, code)
			assert.False(t, res.Success)
			assert.Equal(t, tt.reason, res.Reason)
		})
	}
}
