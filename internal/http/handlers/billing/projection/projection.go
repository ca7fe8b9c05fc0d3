// Package projection реализует HTTP-обработчик прогноза начислений по договору.
package projection

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/membership-engine/internal/http/params"
	"github.com/magabrotheeeer/membership-engine/internal/http/response"
	"github.com/magabrotheeeer/membership-engine/internal/lib/sl"
	"github.com/magabrotheeeer/membership-engine/internal/models"
)

type Handler struct {
	log     *slog.Logger
	service Service
	now     func() time.Time
}

type Service interface {
	ProjectContract(ctx context.Context, contractID int64, asOf time.Time) ([]models.BillingEntry, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
		now:     time.Now,
	}
}

// ServeHTTP godoc
// @Summary Прогноз начислений
// @Description Возвращает будущие начисления договора, ещё не закрытые сохранёнными строками.
// @Tags Billing
// @Produce  json
// @Param id path int true "ID договора"
// @Param as_of query string false "Дата расчёта, 2006-01-02; по умолчанию сегодня"
// @Success 200 {object} map[string]any "Прогнозные начисления"
// @Failure 404 {object} response.ErrorResponse "Договор не найден"
// @Failure 422 {object} response.ErrorResponse "Некорректные параметры"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /contracts/{id}/projection [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.billing.projection"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := params.ID(r, "id")
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		h.fail(w, r, err)
		return
	}
	asOf, err := params.AsOf(r, h.now())
	if err != nil {
		log.Error("failed to parse as_of", sl.Err(err))
		h.fail(w, r, err)
		return
	}

	entries, err := h.service.ProjectContract(r.Context(), id, asOf)
	if err != nil {
		log.Error("failed to project contract", slog.Int64("contract_id", id), sl.Err(err))
		h.fail(w, r, err)
		return
	}

	log.Info("success to project contract", slog.Int64("contract_id", id), slog.Int("entries", len(entries)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"contract_id": id,
		"as_of":       asOf.Format(time.DateOnly),
		"entries":     entries,
	}))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := response.FromError(err)
	render.Status(r, status)
	render.JSON(w, r, resp)
}
