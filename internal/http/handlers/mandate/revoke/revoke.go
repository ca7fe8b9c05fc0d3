// Package revoke реализует HTTP-обработчик отзыва SEPA-мандата.
package revoke

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/membership-engine/internal/http/response"
	"github.com/magabrotheeeer/membership-engine/internal/lib/sl"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	Revoke(ctx context.Context, mandateID string) error
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Отозвать мандат
// @Description Мандат, указанный в действующих договорах, отозвать нельзя.
// @Tags Mandates
// @Produce  json
// @Param id path string true "ID мандата (uuid)"
// @Success 200 {object} map[string]any "Мандат отозван"
// @Failure 404 {object} response.ErrorResponse "Мандат не найден"
// @Failure 422 {object} response.ErrorResponse "Мандат используется"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /mandates/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.mandate.revoke"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if err := h.service.Revoke(r.Context(), id); err != nil {
		log.Error("failed to revoke mandate", slog.String("mandate_id", id), sl.Err(err))
		status, resp := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}

	log.Info("success to revoke mandate", slog.String("mandate_id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"revoked_id": id,
	}))
}
