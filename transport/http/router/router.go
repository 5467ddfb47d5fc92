package router

import (
	"net/http"

	"hotel/internal/handlers/auth"
	"hotel/internal/handlers/booking"
	"hotel/internal/handlers/dashboard"
	"hotel/internal/handlers/health"
	"hotel/internal/handlers/room"
	"hotel/internal/handlers/user"
	"hotel/transport/http/middleware"
	"hotel/transport/http/response"

	_ "hotel/docs" // swagger document

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type DomainHandlers struct {
	Health    health.Handler
	Auth      auth.Handler
	User      user.Handler
	Room      room.Handler
	Booking   booking.Handler
	Dashboard dashboard.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	App            middleware.AppMiddleware
}

// SetupRoutes mounts every domain under /v1 behind the shared middleware chain.
func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(
		chiMiddleware.RequestID,
		chiMiddleware.RealIP,
		chiMiddleware.Recoverer,
		r.App.CORS(),
		r.App.Tracing,
		r.App.RateLimit(),
	)

	router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.WithRouteNotFound(w)
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.WithMethodNotAllowed(w)
	})

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Health.Router(routerGroup)
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Dashboard.Router(routerGroup)
	})
}

// Handler builds a fresh chi mux with every route mounted.
func (r *Router) Handler() http.Handler {
	mux := chi.NewRouter()
	r.SetupRoutes(mux)

	return mux
}

func New(domainHandlers DomainHandlers, app middleware.AppMiddleware) Router {
	return Router{
		DomainHandlers: domainHandlers,
		App:            app,
	}
}
