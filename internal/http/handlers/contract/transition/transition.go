// Package transition реализует HTTP-обработчик административных переходов договора:
// пауза, расторжение, отзыв расторжения и возобновление.
package transition

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/membership-engine/internal/http/params"
	"github.com/magabrotheeeer/membership-engine/internal/http/response"
	"github.com/magabrotheeeer/membership-engine/internal/lib/sl"
	"github.com/magabrotheeeer/membership-engine/internal/models"
)

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

type Service interface {
	Transition(ctx context.Context, id int64, req models.DummyTransition) (models.ContractView, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Переход состояния договора
// @Description Применяет действие pause, cancel, revoke_cancellation или reactivate. Требует текущую версию договора.
// @Tags Contracts
// @Accept  json
// @Produce  json
// @Param id path int true "ID договора"
// @Param request body models.DummyTransition true "Действие и его параметры"
// @Success 200 {object} map[string]any "Новое состояние договора"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Договор не найден"
// @Failure 409 {object} response.ErrorResponse "Версия устарела"
// @Failure 422 {object} response.ErrorResponse "Недопустимый переход"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /contracts/{id}/transitions [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contract.transition"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := params.ID(r, "id")
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		status, resp := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}

	var req models.DummyTransition
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	view, err := h.service.Transition(r.Context(), id, req)
	if err != nil {
		log.Error("failed to transition contract", slog.Int64("contract_id", id), sl.Err(err))
		status, resp := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}

	log.Info("success to transition contract", slog.Int64("contract_id", id), slog.String("action", req.Action))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"contract": view,
	}))
}
