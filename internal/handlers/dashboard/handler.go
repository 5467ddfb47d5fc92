package dashboard

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/dashboard/service"
	"hotel/shared/constant"
	"hotel/transport/http/middleware"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.Dashboard
	middleware middleware.Auth
	otel       otel.Otel
}

func New(service service.Dashboard, middleware middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/dashboard", func(routerGroup chi.Router) {
		routerGroup.Use(handler.middleware.Authenticate, handler.middleware.RequireRole(constant.RoleAdmin))

		routerGroup.Get("/stats", handler.GetStats)
	})
}

// GetStats returns inventory and revenue figures.
// @Summary Dashboard statistics
// @Description Totals over the whole ledger plus revenue from bookings created this month.
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Data[dto.StatsResponse]
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/stats [get]
// @Security BearerAuth
func (handler *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStats")
	defer scope.End()

	stats, err := handler.service.Stats(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get dashboard stats")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, constant.Empty, stats)
}
