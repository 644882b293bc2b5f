package remove

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gymhub/members-api/internal/apperr"
)

// MockService реализует интерфейс remove.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func TestRemoveHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		id             string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное удаление",
			id:   "m1",
			setupMock: func(m *MockService) {
				m.On("Delete", mock.Anything, "m1").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "member deleted",
		},
		{
			name: "участник не найден",
			id:   "nope",
			setupMock: func(m *MockService) {
				m.On("Delete", mock.Anything, "nope").
					Return(apperr.NotFound("member not found"))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "member not found",
		},
		{
			name: "ошибка сервиса",
			id:   "m1",
			setupMock: func(m *MockService) {
				m.On("Delete", mock.Anything, "m1").Return(assert.AnError)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "could not delete member",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodDelete, "/members/"+tt.id, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
