// Package refresh реализует HTTP-обработчик сброса закешированной статистики посещений.
// Вызывается сервисом чек-инов после записи новых отметок.
package refresh

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/membership-engine/internal/http/params"
	"github.com/magabrotheeeer/membership-engine/internal/http/response"
	"github.com/magabrotheeeer/membership-engine/internal/lib/sl"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	Refresh(ctx context.Context, memberID int64) error
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сбросить кеш статистики посещений
// @Tags Attendance
// @Produce  json
// @Param memberID path int true "ID участника"
// @Success 200 {object} map[string]any "Кеш сброшен"
// @Failure 422 {object} response.ErrorResponse "Некорректный ID"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /members/{memberID}/attendance/refresh [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.attendance.refresh"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	memberID, err := params.ID(r, "memberID")
	if err == nil {
		err = h.service.Refresh(r.Context(), memberID)
	}
	if err != nil {
		log.Error("failed to refresh attendance stats", sl.Err(err))
		status, resp := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"member_id": memberID,
	}))
}
