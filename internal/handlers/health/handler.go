package health

import (
	"net/http"
	"sync/atomic"

	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
)

const MessagePong = "pong"

// Probe reports whether the server should still receive traffic.
type Probe struct {
	draining atomic.Bool
}

func NewProbe() *Probe {
	return &Probe{}
}

// Drain marks the server as shutting down; the ping endpoint answers 503 from then on.
func (p *Probe) Drain() {
	p.draining.Store(true)
}

func (p *Probe) Draining() bool {
	return p.draining.Load()
}

type Handler struct {
	probe *Probe
}

func New(probe *Probe) Handler {
	return Handler{probe: probe}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/ping", handler.Ping)
}

// Ping reports liveness.
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Message
// @Failure 503 {object} response.Error
// @Router /v1/ping [get]
func (handler *Handler) Ping(w http.ResponseWriter, _ *http.Request) {
	if handler.probe.Draining() {
		response.WithPreparingShutdown(w)

		return
	}

	response.WithMessage(w, http.StatusOK, MessagePong)
}
