// Package remove реализует HTTP-обработчик архивации договора.
//
// Действующий договор перед архивацией расторгается с датой effective_date.
package remove

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

// Handler обрабатывает HTTP-запросы на архивацию договора.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики архивации.
type Service interface {
	Remove(ctx context.Context, id int64, req models.DummyRemoval) error
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Архивировать договор
// @Description Переводит договор в архив. Действующий договор сначала расторгается.
// @Tags Contracts
// @Accept  json
// @Produce  json
// @Param id path int true "ID договора"
// @Param request body models.DummyRemoval true "Причина, дата и версия"
// @Success 200 {object} map[string]any "Договор архивирован"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Договор не найден"
// @Failure 409 {object} response.ErrorResponse "Версия устарела"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /contracts/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contract.remove"
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

	var req models.DummyRemoval
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if err := h.service.Remove(r.Context(), id, req); err != nil {
		log.Error("failed to archive contract", slog.Int64("contract_id", id), sl.Err(err))
		status, resp := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}

	log.Info("success to archive contract", slog.Int64("contract_id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"archived_id": id,
	}))
}
