package menu

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

	"github.com/magabrotheeeer/gym-dashboard/internal/http-server/middlewarectx"
	"github.com/magabrotheeeer/gym-dashboard/internal/models"
)

// MockService реализует интерфейс menu.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Menu(ctx context.Context, user *models.User) []models.MenuEntry {
	args := m.Called(ctx, user)
	return args.Get(0).([]models.MenuEntry)
}

func TestMenuHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		user           *models.User
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная выдача меню",
			user: &models.User{Username: "owner", Role: models.RoleOwner},
			setupMock: func(m *MockService) {
				m.On("Menu", mock.Anything, mock.Anything).Return([]models.MenuEntry{
					{Path: "/dashboard", Label: "Dashboard"},
					{Path: "/members", Label: "Members"},
				})
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"path":"/dashboard"`,
		},
		{
			name:           "нет аутентификации",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"user identification missing"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/menu", nil)
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
