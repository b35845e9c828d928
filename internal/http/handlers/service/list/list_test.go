package list

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/account-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/account-service/internal/models"
)

// MockService реализует интерфейс list.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ListByUserAndRole(ctx context.Context, userID string, page, limit int, role string) ([]*models.Service, error) {
	args := m.Called(ctx, userID, page, limit, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Service), args.Error(1)
}

const testUserID = "8d7f5b2e-1a3c-4f6d-9e8b-0c1d2e3f4a5b"

func TestListHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		url            string
		role           string
		withIdentity   bool
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:         "пользователь получает свою страницу",
			url:          "/services?page=2&limit=5",
			role:         models.RoleUser,
			withIdentity: true,
			setupMock: func(m *MockService) {
				m.On("ListByUserAndRole", mock.Anything, testUserID, 2, 5, models.RoleUser).
					Return([]*models.Service{{ID: "a", Name: "Netflix"}}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"list_count":1`,
		},
		{
			name:         "некорректные параметры пагинации заменяются значениями по умолчанию",
			url:          "/services?page=abc&limit=-1",
			role:         models.RoleAdmin,
			withIdentity: true,
			setupMock: func(m *MockService) {
				m.On("ListByUserAndRole", mock.Anything, testUserID, 1, 10, models.RoleAdmin).
					Return([]*models.Service{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"list_count":0`,
		},
		{
			name:           "без идентификации запрос отклоняется",
			url:            "/services",
			withIdentity:   false,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"unauthorized"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			if tt.withIdentity {
				ctx := context.WithValue(req.Context(), middlewarectx.UserUID, testUserID)
				ctx = context.WithValue(ctx, middlewarectx.Role, tt.role)
				req = req.WithContext(ctx)
			}

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
