// Package create реализует HTTP-обработчик регистрации нового участника.
//
// Handler принимает JSON-запрос с данными участника, валидирует их
// (все отсутствующие обязательные поля перечисляются разом), вызывает
// бизнес-логику создания и возвращает созданную запись.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/gymhub/members-api/internal/http/response"
	"github.com/gymhub/members-api/internal/http/validate"
	"github.com/gymhub/members-api/internal/lib/sl"
	"github.com/gymhub/members-api/internal/models"
)

// Handler управляет HTTP-запросами на регистрацию участников.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики создания участника.
type Service interface {
	Create(ctx context.Context, req models.DummyMember) (*models.Member, error)
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
// @Summary Зарегистрировать нового участника
// @Description Создает участника клуба. dni и correo_electronico должны быть уникальны.
// @Tags Members
// @Accept  json
// @Produce  json
// @Param request body models.DummyMember true "Данные нового участника"
// @Success 201 {object} response.Response "Созданный участник"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 409 {object} response.ErrorResponse "dni или correo_electronico уже заняты"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /members [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.member.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyMember
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded")

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	member, err := h.service.Create(r.Context(), req)
	if err != nil {
		log.Error("failed to create member", sl.Err(err))
		w.WriteHeader(response.HTTPStatus(err))
		render.JSON(w, r, response.FromError(err, "could not create member"))
		return
	}

	log.Info("member created", slog.String("id", member.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(member))
}
