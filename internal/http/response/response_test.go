package response_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gymhub/members-api/internal/apperr"
	"github.com/gymhub/members-api/internal/http/response"
	"github.com/gymhub/members-api/internal/http/validate"
	"github.com/gymhub/members-api/internal/models"

	"github.com/go-playground/validator"
)

func TestValidationError_ListsAllMissingFields(t *testing.T) {
	v := validate.New()

	err := v.Struct(models.DummyMember{})
	require.Error(t, err)

	resp := response.ValidationError(err.(validator.ValidationErrors))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "nombre")
	assert.Contains(t, resp.Error, "apellido")
	assert.Contains(t, resp.Error, "dni")
	assert.Contains(t, resp.Error, "correo_electronico")
	assert.Contains(t, resp.Error, "fecha_nacimiento")
}

func TestValidationError_Email(t *testing.T) {
	v := validate.New()

	err := v.Struct(models.DummyMember{
		Name:      "Ana",
		Surname:   "Lopez",
		DNI:       "12345678A",
		Email:     "not-an-email",
		BirthDate: "1990-01-01",
	})
	require.Error(t, err)

	resp := response.ValidationError(err.(validator.ValidationErrors))
	assert.Contains(t, resp.Error, "correo_electronico")
	assert.Contains(t, resp.Error, "valid email")
}

func TestValidationError_AcceptsMinimalEmail(t *testing.T) {
	v := validate.New()

	err := v.Struct(models.DummyMember{
		Name:      "Ana",
		Surname:   "Lopez",
		DNI:       "12345678A",
		Email:     "a@b.co",
		BirthDate: "1990-01-01",
	})
	assert.NoError(t, err)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation is 400", apperr.Validation("bad"), http.StatusBadRequest},
		{"conflict is 409", apperr.Conflict("taken"), http.StatusConflict},
		{"not found is 404", apperr.NotFound("missing"), http.StatusNotFound},
		{"aggregation is 500", apperr.Aggregation("downstream", errors.New("boom")), http.StatusInternalServerError},
		{"unknown is 500", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, response.HTTPStatus(tt.err))
		})
	}
}

func TestFromError(t *testing.T) {
	resp := response.FromError(apperr.NotFound("member not found"), "could not read member")
	assert.False(t, resp.Success)
	assert.Equal(t, "member not found", resp.Error)
	assert.Empty(t, resp.Message)

	resp = response.FromError(errors.New("pq: connection reset"), "could not read member")
	assert.Equal(t, "could not read member", resp.Error)
	assert.Contains(t, resp.Message, "connection reset")
}
