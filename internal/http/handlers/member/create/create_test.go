package create

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gymhub/members-api/internal/apperr"
	"github.com/gymhub/members-api/internal/models"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, req models.DummyMember) (*models.Member, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	validBody := `{
		"nombre": "Ana",
		"apellido": "Lopez",
		"dni": "12345678A",
		"correo_electronico": "ana@example.com",
		"fecha_nacimiento": "1990-09-20"
	}`

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   []string
	}{
		{
			name: "успешное создание",
			body: validBody,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.Anything).
					Return(&models.Member{ID: "m1", Name: "Ana", DNI: "12345678A"}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   []string{`"success":true`, `"nombre":"Ana"`},
		},
		{
			name:           "все обязательные поля отсутствуют",
			body:           `{}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody: []string{
				"nombre", "apellido", "dni", "correo_electronico", "fecha_nacimiento",
			},
		},
		{
			name: "некорректный email",
			body: `{
				"nombre": "Ana",
				"apellido": "Lopez",
				"dni": "12345678A",
				"correo_electronico": "not-an-email",
				"fecha_nacimiento": "1990-09-20"
			}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   []string{"correo_electronico"},
		},
		{
			name:           "битый JSON",
			body:           `{"nombre":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   []string{"invalid request body"},
		},
		{
			name: "dni уже занят",
			body: validBody,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.Anything).
					Return(nil, apperr.Conflict("member with this dni already exists"))
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   []string{"member with this dni already exists"},
		},
		{
			name: "ошибка сервиса",
			body: validBody,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.Anything).
					Return(nil, assert.AnError)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   []string{"could not create member"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/members", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			for _, want := range tt.expectedBody {
				assert.True(t, strings.Contains(w.Body.String(), want),
					"response body should contain %s, got %s", want, w.Body.String())
			}

			mockService.AssertExpectations(t)
		})
	}
}
