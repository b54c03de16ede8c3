package health

import (
	"context"
	"mytodos/shared/logger"
	"mytodos/transport/http/response"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

const pingTimeout = 2 * time.Second

// Pinger reports whether the database answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Status struct {
	Status string `json:"status"`
}

type Handler struct {
	db Pinger
}

func New(db Pinger) Handler {
	return Handler{db: db}
}

func (h *Handler) Router(r chi.Router) {
	r.Get("/health", h.Health)
}

// Health reports whether the service can reach its database.
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} health.Status
// @Failure 503 {object} response.Error
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Msg("health check failed")

		response.WithUnhealthy(w)

		return
	}

	response.WithJSON(w, http.StatusOK, Status{Status: "ok"})
}
