package assign

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

	"github.com/magabrotheeeer/account-service/internal/errs"
	"github.com/magabrotheeeer/account-service/internal/models"
)

// MockService реализует интерфейс assign.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) AssignServices(ctx context.Context, userID string, serviceIDs []string) (*models.User, error) {
	args := m.Called(ctx, userID, serviceIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

const (
	testUserID = "8d7f5b2e-1a3c-4f6d-9e8b-0c1d2e3f4a5b"
	testSvcID  = "aaaaaaaa-bbbb-4ccc-8ddd-eeeeeeeeeeee"
)

func TestAssignHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		userID         string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "успешная привязка сервисов",
			userID: testUserID,
			body:   `{"serviceIds":["` + testSvcID + `"]}`,
			setupMock: func(m *MockService) {
				user := &models.User{
					ID:       testUserID,
					Services: []*models.Service{{ID: testSvcID, Name: "Netflix"}},
				}
				m.On("AssignServices", mock.Anything, testUserID, []string{testSvcID}).
					Return(user, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"name":"Netflix"`,
		},
		{
			name:           "некорректный id пользователя",
			userID:         "not-a-uuid",
			body:           `{"serviceIds":["` + testSvcID + `"]}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid id"`,
		},
		{
			name:           "пустой список не проходит валидацию",
			userID:         testUserID,
			body:           `{"serviceIds":[]}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field ServiceIDs`,
		},
		{
			name:   "неизвестный сервис отменяет операцию",
			userID: testUserID,
			body:   `{"serviceIds":["` + testSvcID + `"]}`,
			setupMock: func(m *MockService) {
				m.On("AssignServices", mock.Anything, testUserID, []string{testSvcID}).
					Return(nil, errs.ErrServiceNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"service not found"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/users/"+tt.userID+"/services", strings.NewReader(tt.body))
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("idUser", tt.userID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
