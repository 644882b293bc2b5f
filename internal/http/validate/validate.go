// Package validate создаёт преднастроенный валидатор входящих запросов.
package validate

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator"
)

// New возвращает валидатор, который в сообщениях об ошибках использует
// имена полей из json-тегов (nombre, correo_electronico, ...),
// а не имена Go-полей.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
