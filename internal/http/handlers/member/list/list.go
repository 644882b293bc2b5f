// Package list реализует HTTP-обработчик постраничного списка участников.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/gymhub/members-api/internal/http/response"
	"github.com/gymhub/members-api/internal/lib/sl"
	"github.com/gymhub/members-api/internal/models"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Handler обрабатывает запросы списка участников.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка участников.
type Service interface {
	List(ctx context.Context, limit, offset int) ([]*models.Member, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список участников
// @Tags Members
// @Produce  json
// @Param limit query int false "Размер страницы (по умолчанию 20, максимум 100)"
// @Param offset query int false "Смещение"
// @Success 200 {object} response.Response "Страница участников"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /members [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.member.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 || limit > maxLimit {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	members, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list members", sl.Err(err))
		w.WriteHeader(response.HTTPStatus(err))
		render.JSON(w, r, response.FromError(err, "could not list members"))
		return
	}

	log.Info("members listed", slog.Int("count", len(members)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"members": members,
		"count":   len(members),
	}))
}
