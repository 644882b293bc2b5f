// Package apperr определяет доменную таксономию ошибок сервиса.
// Каждая операция бизнес-логики возвращает либо ошибку одного из
// перечисленных видов, либо произвольную ошибку, которая на границе
// HTTP трактуется как внутренняя.
package apperr

import (
	"errors"
	"fmt"
)

// Kind — вид доменной ошибки.
type Kind string

const (
	// KindValidation — некорректные или отсутствующие входные данные.
	KindValidation Kind = "validation"
	// KindConflict — нарушение уникальности (dni, correo_electronico).
	KindConflict Kind = "conflict"
	// KindNotFound — запрошенная сущность отсутствует.
	KindNotFound Kind = "not_found"
	// KindAggregation — отказ внешнего сервиса при сборке истории посещений.
	KindAggregation Kind = "aggregation"
	// KindInternal — неожиданная ошибка хранилища или рантайма.
	KindInternal Kind = "internal"
)

// Error — доменная ошибка с видом и сообщением для клиента.
type Error struct {
	Kind    Kind
	Message string
	err     error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.err }

// Validation возвращает ошибку валидации с заданным сообщением.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// Conflict возвращает ошибку нарушения уникальности.
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// NotFound возвращает ошибку отсутствия сущности.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Aggregation оборачивает отказ внешнего коллаборатора.
func Aggregation(msg string, err error) *Error {
	return &Error{Kind: KindAggregation, Message: msg, err: err}
}

// Internal оборачивает неожиданную ошибку, сохраняя исходное сообщение
// для диагностики.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, err: err}
}

// KindOf возвращает вид ошибки. Для ошибок вне таксономии — KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// MessageOf возвращает клиентское сообщение ошибки либо fallback,
// если ошибка не принадлежит таксономии.
func MessageOf(err error, fallback string) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return fallback
}

// Is сообщает, принадлежит ли ошибка заданному виду.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
