package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/biblioteca/library-system/internal/core/domain"
)

func rbacRequest(t *testing.T, mw echo.MiddlewareFunc, principal any) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if principal != nil {
		c.Set(PrincipalKey, principal)
	}

	called := false
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestRBAC_AllowsListedRole(t *testing.T) {
	mw := RBAC(domain.RoleAdmin, domain.RoleLibrarian)

	rec, called := rbacRequest(t, mw, domain.Principal{ID: 1, Role: domain.RoleLibrarian})
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("librarian denied: called=%v status=%d", called, rec.Code)
	}
}

func TestRBAC_DeniesOtherRole(t *testing.T) {
	mw := RBAC(domain.RoleAdmin)

	rec, called := rbacRequest(t, mw, domain.Principal{ID: 1, Role: domain.RoleUser})
	if called {
		t.Fatalf("plain user reached the handler")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status %d, want 403", rec.Code)
	}
}

func TestRBAC_MissingPrincipal(t *testing.T) {
	mw := RBAC(domain.RoleAdmin)

	rec, called := rbacRequest(t, mw, nil)
	if called {
		t.Fatalf("request without principal reached the handler")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", rec.Code)
	}
}
