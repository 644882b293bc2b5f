// Package update реализует HTTP-обработчик частичного обновления участника.
//
// Патч — явная структура с именованными опциональными полями; неизвестные
// поля в теле запроса отклоняются, чтобы клиент не мог незаметно задеть
// защищённые атрибуты.
package update

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/gymhub/members-api/internal/http/response"
	"github.com/gymhub/members-api/internal/http/validate"
	"github.com/gymhub/members-api/internal/lib/sl"
	"github.com/gymhub/members-api/internal/models"
)

// Handler управляет HTTP-запросами на обновление участников.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики обновления участника.
type Service interface {
	Update(ctx context.Context, id string, patch models.MemberPatch) (*models.Member, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validate.New(),
	}
}

// ServeHTTP godoc
// @Summary Частично обновить участника
// @Description Применяет патч с именованными опциональными полями. Поля вне патча не меняются; неизвестные поля отклоняются.
// @Tags Members
// @Accept  json
// @Produce  json
// @Param id path string true "ID участника"
// @Param request body models.MemberPatch true "Патч"
// @Success 200 {object} response.Response "Обновлённый участник"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 404 {object} response.ErrorResponse "Участник не найден"
// @Failure 409 {object} response.ErrorResponse "dni или correo_electronico уже заняты"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /members/{id} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.member.update"
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

	var patch models.MemberPatch
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&patch); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded")

	if err := h.validate.Struct(patch); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	member, err := h.service.Update(r.Context(), id, patch)
	if err != nil {
		log.Error("failed to update member", sl.Err(err))
		w.WriteHeader(response.HTTPStatus(err))
		render.JSON(w, r, response.FromError(err, "could not update member"))
		return
	}

	log.Info("member updated", slog.String("id", id))
	render.JSON(w, r, response.OKWithData(member))
}
