package middlewarectx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/account-service/internal/models"
)

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name           string
		required       string
		role           string
		withRole       bool
		expectedStatus int
		expectNext     bool
	}{
		{
			name:           "admin проходит проверку admin",
			required:       models.RoleAdmin,
			role:           models.RoleAdmin,
			withRole:       true,
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
		{
			name:           "admin проходит проверку user",
			required:       models.RoleUser,
			role:           models.RoleAdmin,
			withRole:       true,
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
		{
			name:           "user не проходит проверку admin",
			required:       models.RoleAdmin,
			role:           models.RoleUser,
			withRole:       true,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "роль отсутствует в контексте",
			required:       models.RoleAdmin,
			withRole:       false,
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
				nextCalled = true
			})

			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			if tt.withRole {
				req = req.WithContext(context.WithValue(req.Context(), Role, tt.role))
			}
			w := httptest.NewRecorder()

			RequireRole(tt.required, newNoopLogger())(next).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectNext, nextCalled)
		})
	}
}
