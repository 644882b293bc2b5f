// Package activities реализует HTTP-обработчик истории посещений участника.
// Какой источник данных стоит за ответом — локальное хранилище или пара
// внешних сервисов — решает конфигурация развёртывания.
package activities

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

// Handler обрабатывает запросы истории посещений.
type Handler struct {
	log    *slog.Logger
	source Source
}

// Source — активная стратегия агрегации истории посещений.
type Source interface {
	History(ctx context.Context, memberID string) (*models.ActivityHistory, error)
}

// New создает новый Handler с переданным логгером и источником.
func New(log *slog.Logger, source Source) *Handler {
	return &Handler{
		log:    log,
		source: source,
	}
}

// ServeHTTP godoc
// @Summary История посещённых занятий участника
// @Description Возвращает только фактические посещения (asistio = true). Для локального источника — по дате по убыванию.
// @Tags Attendance
// @Produce  json
// @Param id path string true "ID участника"
// @Success 200 {object} response.Response "История посещений"
// @Failure 404 {object} response.ErrorResponse "Участник не найден"
// @Failure 500 {object} response.ErrorResponse "Отказ внешнего сервиса или ошибка сервера"
// @Router /members/{id}/activities [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.member.activities"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if id == "" {
		log.Error("missing id in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing id"))
		return
	}

	history, err := h.source.History(r.Context(), id)
	if err != nil {
		log.Error("failed to collect activity history", sl.Err(err))
		w.WriteHeader(response.HTTPStatus(err))
		render.JSON(w, r, response.FromError(err, "could not collect activity history"))
		return
	}

	log.Info("activity history collected",
		slog.String("id", id), slog.Int("total", history.Total))
	render.JSON(w, r, response.OKWithData(history))
}
