package featureupdate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/gym-dashboard/internal/http-server/middlewarectx"
	"github.com/magabrotheeeer/gym-dashboard/internal/models"
)

// MockService реализует интерфейс featureupdate.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) SetFeature(ctx context.Context, gymUID, key string, enabled bool) error {
	args := m.Called(ctx, gymUID, key, enabled)
	return args.Error(0)
}

func gymUser() *models.User {
	gymUID := "gym-1"
	return &models.User{Username: "owner", Role: models.RoleOwner, GymUID: &gymUID}
}

func TestFeatureUpdateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		key            string
		body           string
		user           *models.User
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное включение фичи",
			key:  "crm",
			body: `{"enabled":true}`,
			user: gymUser(),
			setupMock: func(m *MockService) {
				m.On("SetFeature", mock.Anything, "gym-1", "crm", true).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"OK"`,
		},
		{
			name: "успешное выключение фичи",
			key:  "scheduling",
			body: `{"enabled":false}`,
			user: gymUser(),
			setupMock: func(m *MockService) {
				m.On("SetFeature", mock.Anything, "gym-1", "scheduling", false).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"OK"`,
		},
		{
			name:           "некорректный JSON",
			key:            "crm",
			body:           `{"enabled":`,
			user:           gymUser(),
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name:           "отсутствует значение флага",
			key:            "crm",
			body:           `{}`,
			user:           gymUser(),
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Enabled is a required field`,
		},
		{
			name:           "пользователь без зала",
			key:            "crm",
			body:           `{"enabled":true}`,
			user:           &models.User{Username: "root", Role: models.RoleSuperAdmin},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"user is not linked to a gym"`,
		},
		{
			name: "ошибка сервиса",
			key:  "crm",
			body: `{"enabled":true}`,
			user: gymUser(),
			setupMock: func(m *MockService) {
				m.On("SetFeature", mock.Anything, "gym-1", "crm", true).Return(errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not update feature flag"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPut, "/features/"+tt.key, strings.NewReader(tt.body))
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("key", tt.key)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			if tt.user != nil {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.CurrentUser, tt.user))
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
