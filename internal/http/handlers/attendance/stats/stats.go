// Package stats реализует HTTP-обработчик статистики посещений участника.
package stats

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/membership-engine/internal/attendance"
	"github.com/magabrotheeeer/membership-engine/internal/http/params"
	"github.com/magabrotheeeer/membership-engine/internal/http/response"
	"github.com/magabrotheeeer/membership-engine/internal/lib/sl"
)

type Handler struct {
	log     *slog.Logger
	service Service
	now     func() time.Time
}

type Service interface {
	Stats(ctx context.Context, memberID int64, styleID *int64, asOf time.Time) (attendance.Stats, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
		now:     time.Now,
	}
}

// ServeHTTP godoc
// @Summary Статистика посещений
// @Description Процент посещаемости, серии, помесячная статистика и распределение по дням недели.
// @Tags Attendance
// @Produce  json
// @Param memberID path int true "ID участника"
// @Param style_id query int false "ID направления"
// @Param as_of query string false "Дата расчёта, 2006-01-02; по умолчанию сегодня"
// @Success 200 {object} map[string]any "Статистика"
// @Failure 422 {object} response.ErrorResponse "Некорректные параметры"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /members/{memberID}/attendance/stats [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.attendance.stats"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	memberID, err := params.ID(r, "memberID")
	if err != nil {
		log.Error("failed to decode member id from url", sl.Err(err))
		h.fail(w, r, err)
		return
	}
	styleID, err := params.OptionalInt64(r, "style_id")
	if err != nil {
		log.Error("failed to parse style_id", sl.Err(err))
		h.fail(w, r, err)
		return
	}
	asOf, err := params.AsOf(r, h.now())
	if err != nil {
		log.Error("failed to parse as_of", sl.Err(err))
		h.fail(w, r, err)
		return
	}

	stats, err := h.service.Stats(r.Context(), memberID, styleID, asOf)
	if err != nil {
		log.Error("failed to compute attendance stats", slog.Int64("member_id", memberID), sl.Err(err))
		h.fail(w, r, err)
		return
	}

	log.Info("success to compute attendance stats", slog.Int64("member_id", memberID))
	render.JSON(w, r, response.StatusOKWithData(stats))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := response.FromError(err)
	render.Status(r, status)
	render.JSON(w, r, resp)
}
