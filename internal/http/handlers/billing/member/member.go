// Package member реализует HTTP-обработчик сводной ленты начислений участника.
package member

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
	MemberOverview(ctx context.Context, memberID int64, asOf time.Time) (models.MemberBilling, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
		now:     time.Now,
	}
}

// ServeHTTP godoc
// @Summary Начисления участника
// @Description Объединяет сохранённые и прогнозные начисления по всем договорам участника и считает открытую сумму.
// @Tags Billing
// @Produce  json
// @Param memberID path int true "ID участника"
// @Param as_of query string false "Дата расчёта, 2006-01-02; по умолчанию сегодня"
// @Success 200 {object} map[string]any "Лента начислений"
// @Failure 422 {object} response.ErrorResponse "Некорректные параметры"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /members/{memberID}/billing [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.billing.member"
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
	asOf, err := params.AsOf(r, h.now())
	if err != nil {
		log.Error("failed to parse as_of", sl.Err(err))
		h.fail(w, r, err)
		return
	}

	overview, err := h.service.MemberOverview(r.Context(), memberID, asOf)
	if err != nil {
		log.Error("failed to build billing overview", slog.Int64("member_id", memberID), sl.Err(err))
		h.fail(w, r, err)
		return
	}

	log.Info("success to build billing overview",
		slog.Int64("member_id", memberID),
		slog.Int("entries", len(overview.Entries)),
		sl.Cents("open_amount", overview.OpenAmountCents),
	)
	render.JSON(w, r, response.StatusOKWithData(overview))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := response.FromError(err)
	render.Status(r, status)
	render.JSON(w, r, resp)
}
