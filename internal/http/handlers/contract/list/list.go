// Package list реализует HTTP-обработчик списка договоров участника.
package list

import (
	"context"
	"log/slog"
	"net/http"

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
}

type Service interface {
	ListForMember(ctx context.Context, memberID int64) ([]models.ContractView, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Договоры участника
// @Description Возвращает договоры участника с вычисленными на сегодня статусом, датой окончания и самой ранней датой расторжения.
// @Tags Contracts
// @Produce  json
// @Param memberID path int true "ID участника"
// @Success 200 {object} map[string]any "Список договоров"
// @Failure 422 {object} response.ErrorResponse "Некорректный ID"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /members/{memberID}/contracts [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contract.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	memberID, err := params.ID(r, "memberID")
	if err != nil {
		log.Error("failed to decode member id from url", sl.Err(err))
		status, resp := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}

	contracts, err := h.service.ListForMember(r.Context(), memberID)
	if err != nil {
		log.Error("failed to list contracts", sl.Err(err))
		status, resp := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}

	log.Info("success to list contracts", slog.Int64("member_id", memberID), slog.Int("count", len(contracts)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"contracts": contracts,
	}))
}
