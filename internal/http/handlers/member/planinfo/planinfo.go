// Package planinfo реализует HTTP-обработчик запроса "какой план
// у участника". Участник без назначенного плана — доменный not-found.
package planinfo

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

// Handler обрабатывает запросы плана участника.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики просмотра плана участника.
type Service interface {
	Lookup(ctx context.Context, memberID string) (*models.MemberPlanView, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary План участника
// @Description Возвращает имя участника и поля плана. Неустановленные поля отдаются явным null.
// @Tags Plans
// @Produce  json
// @Param id path string true "ID участника"
// @Success 200 {object} response.Response "Сокращённое представление плана"
// @Failure 404 {object} response.ErrorResponse "Участник не найден или план не назначен"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /members/{id}/plan [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.member.planinfo"
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

	view, err := h.service.Lookup(r.Context(), id)
	if err != nil {
		log.Error("failed to lookup member plan", sl.Err(err))
		w.WriteHeader(response.HTTPStatus(err))
		render.JSON(w, r, response.FromError(err, "could not lookup member plan"))
		return
	}

	log.Info("member plan looked up", slog.String("id", id))
	render.JSON(w, r, response.OKWithData(view))
}
