package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/eduskill/eduskill-api/internal/core/domain"
)

func TestRBAC(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		allowed  []domain.Role
		wantNext bool
	}{
		{"allowed role passes", "creator", []domain.Role{domain.RoleCreator, domain.RoleAdmin}, true},
		{"admin passes where listed", "admin", []domain.Role{domain.RoleCreator, domain.RoleAdmin}, true},
		{"other role blocked", "student", []domain.Role{domain.RoleCreator, domain.RoleAdmin}, false},
		{"missing role blocked", "", []domain.Role{domain.RoleAdmin}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tt.role != "" {
				c.Set("role", tt.role)
			}

			called := false
			handler := RBAC(tt.allowed...)(func(c echo.Context) error {
				called = true
				return c.NoContent(http.StatusOK)
			})

			if err := handler(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if called != tt.wantNext {
				t.Fatalf("next called = %v, want %v", called, tt.wantNext)
			}
			if !tt.wantNext && rec.Code != http.StatusForbidden {
				t.Fatalf("expected 403, got %d", rec.Code)
			}
		})
	}
}
