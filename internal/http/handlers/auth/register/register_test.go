package register

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

	"github.com/magabrotheeeer/account-service/internal/errs"
	"github.com/magabrotheeeer/account-service/internal/models"
)

// MockService реализует интерфейс register.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestRegisterHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная регистрация",
			body: `{"name":"Alice","email":"alice@example.com","password":"Secret123!"}`,
			setupMock: func(m *MockService) {
				created := &models.User{
					ID:    "8d7f5b2e-1a3c-4f6d-9e8b-0c1d2e3f4a5b",
					Name:  "Alice",
					Email: "alice@example.com",
					Role:  models.RoleUser,
				}
				m.On("Register", mock.Anything, "Alice", "alice@example.com", "Secret123!").
					Return(created, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"email":"alice@example.com"`,
		},
		{
			name:           "слабый пароль не проходит валидацию",
			body:           `{"name":"Alice","email":"alice@example.com","password":"password"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Password is missing a required character class`,
		},
		{
			name:           "короткий пароль не проходит валидацию",
			body:           `{"name":"Alice","email":"alice@example.com","password":"Ab1!"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Password is shorter than the allowed minimum`,
		},
		{
			name: "занятый email",
			body: `{"name":"Alice","email":"alice@example.com","password":"Secret123!"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "Alice", "alice@example.com", "Secret123!").
					Return(nil, errs.ErrEmailTaken)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `"error":"email is already in use"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
