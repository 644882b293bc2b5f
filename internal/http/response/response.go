// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков: конверт
// {success, data, message, error} и соответствие доменных ошибок
// HTTP-статусам.
package response

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator"

	"github.com/gymhub/members-api/internal/apperr"
)

// Response описывает стандартную структуру JSON‑ответа сервера.
// Success — исход запроса. Data — полезная нагрузка при успехе.
// Message — человекочитаемое пояснение. Error — текст ошибки при неуспехе.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ErrorResponse — структура ошибки для Swagger-документации.
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"invalid request body"`
}

// OKWithData возвращает успешный Response с переданными данными.
func OKWithData(data any) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// OKWithMessage возвращает успешный Response с пояснением без данных.
func OKWithMessage(msg string) Response {
	return Response{
		Success: true,
		Message: msg,
	}
}

// Error возвращает Response с ошибкой и переданным сообщением.
func Error(msg string) Response {
	return Response{
		Success: false,
		Error:   msg,
	}
}

// ValidationError формирует Response на основе ошибок валидации.
// Каждое нарушение превращается в человеко‑читаемый текст; все нарушения
// перечисляются разом, а не только первое найденное.
func ValidationError(errs validator.ValidationErrors) Response {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email address", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must not be empty", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not valid", err.Field()))
		}
	}
	return Response{
		Success: false,
		Error:   strings.Join(errsMsgs, ", "),
	}
}

// HTTPStatus возвращает HTTP-статус для доменной ошибки.
// Ошибки вне таксономии считаются внутренними.
func HTTPStatus(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// FromError формирует конверт ошибки. Доменные ошибки несут собственное
// сообщение; для внутренних Error получает fallback, а исходный текст
// сохраняется в Message для диагностики.
func FromError(err error, fallback string) Response {
	if apperr.KindOf(err) == apperr.KindInternal {
		return Response{
			Success: false,
			Error:   fallback,
			Message: err.Error(),
		}
	}
	return Response{
		Success: false,
		Error:   apperr.MessageOf(err, fallback),
	}
}
