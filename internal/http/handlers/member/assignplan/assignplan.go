// Package assignplan реализует HTTP-обработчик назначения тарифного плана
// участнику. Ответ содержит участника с полными данными плана,
// а не только его идентификатором.
package assignplan

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/gymhub/members-api/internal/http/response"
	"github.com/gymhub/members-api/internal/lib/sl"
	"github.com/gymhub/members-api/internal/models"
)

// Handler обрабатывает запросы на назначение плана.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики назначения плана.
type Service interface {
	Assign(ctx context.Context, memberID, planID string) (*models.MemberWithPlan, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Назначить тарифный план участнику
// @Description Записывает plan_id, fecha_plan_contratado и fecha_caducidad_plan одним обновлением. Дата окончания — плюс duracion_dias календарных дней.
// @Tags Plans
// @Produce  json
// @Param id path string true "ID участника"
// @Param planID path string true "ID плана"
// @Success 200 {object} response.Response "Участник с полными данными плана"
// @Failure 404 {object} response.ErrorResponse "Участник или план не найдены"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /members/{id}/plan/{planID} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.member.assignplan"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	memberID := chi.URLParam(r, "id")
	planID := chi.URLParam(r, "planID")
	if memberID == "" || planID == "" {
		log.Error("missing id or planID in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing id or planID"))
		return
	}

	result, err := h.service.Assign(r.Context(), memberID, planID)
	if err != nil {
		log.Error("failed to assign plan", sl.Err(err))
		w.WriteHeader(response.HTTPStatus(err))
		render.JSON(w, r, response.FromError(err, "could not assign plan"))
		return
	}

	log.Info("plan assigned",
		slog.String("member_id", memberID), slog.String("plan_id", planID))
	render.JSON(w, r, response.OKWithData(result))
}
