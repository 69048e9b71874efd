package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/biblioteca/library-system/internal/api/middleware"
	"github.com/biblioteca/library-system/internal/core/domain"
	"github.com/biblioteca/library-system/internal/core/ports"
)

type stubUserService struct {
	listFn   func(ctx context.Context, p domain.Principal) ([]*domain.User, error)
	getFn    func(ctx context.Context, p domain.Principal, id int64) (*domain.User, error)
	createFn func(ctx context.Context, p domain.Principal, input ports.CreateUserInput) (*domain.User, error)
	updateFn func(ctx context.Context, p domain.Principal, id int64, input ports.UpdateUserInput) (*domain.User, error)
	deleteFn func(ctx context.Context, p domain.Principal, id int64) error
	toggleFn func(ctx context.Context, p domain.Principal, id int64) (*domain.User, error)
}

func (s *stubUserService) List(ctx context.Context, p domain.Principal) ([]*domain.User, error) {
	return s.listFn(ctx, p)
}

func (s *stubUserService) Get(ctx context.Context, p domain.Principal, id int64) (*domain.User, error) {
	return s.getFn(ctx, p, id)
}

func (s *stubUserService) Create(ctx context.Context, p domain.Principal, input ports.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, p, input)
}

func (s *stubUserService) Update(ctx context.Context, p domain.Principal, id int64, input ports.UpdateUserInput) (*domain.User, error) {
	return s.updateFn(ctx, p, id, input)
}

func (s *stubUserService) Delete(ctx context.Context, p domain.Principal, id int64) error {
	return s.deleteFn(ctx, p, id)
}

func (s *stubUserService) ToggleStatus(ctx context.Context, p domain.Principal, id int64) (*domain.User, error) {
	return s.toggleFn(ctx, p, id)
}

// userTestContext builds an echo context with an authenticated principal and
// an optional :id path parameter.
func userTestContext(t *testing.T, method, body string, p domain.Principal, id string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, "/", reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.PrincipalKey, p)
	if id != "" {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	return c, rec
}

var admin = domain.Principal{ID: 1, Username: "root", Role: domain.RoleAdmin}

func TestUserHandler_List(t *testing.T) {
	stub := &stubUserService{
		listFn: func(ctx context.Context, p domain.Principal) ([]*domain.User, error) {
			if p.ID != admin.ID {
				t.Fatalf("unexpected principal: %+v", p)
			}
			return []*domain.User{{ID: 1, Username: "root"}, {ID: 2, Username: "maria"}}, nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := userTestContext(t, http.MethodGet, "", admin, "")

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var users []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &users); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	// PasswordHash must never leak.
	for _, u := range users {
		if _, ok := u["password_hash"]; ok {
			t.Fatal("password_hash serialized in response")
		}
	}
}

func TestUserHandler_List_MissingPrincipal(t *testing.T) {
	handler := NewUserHandler(&stubUserService{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.List(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestUserHandler_Get(t *testing.T) {
	stub := &stubUserService{
		getFn: func(ctx context.Context, p domain.Principal, id int64) (*domain.User, error) {
			if id != 7 {
				t.Fatalf("expected id=7, got %d", id)
			}
			return &domain.User{ID: 7, Username: "maria"}, nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := userTestContext(t, http.MethodGet, "", admin, "7")

	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_Get_BadID(t *testing.T) {
	handler := NewUserHandler(&stubUserService{})

	c, _ := userTestContext(t, http.MethodGet, "", admin, "abc")

	err := handler.Get(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestUserHandler_Get_Forbidden(t *testing.T) {
	stub := &stubUserService{
		getFn: func(ctx context.Context, p domain.Principal, id int64) (*domain.User, error) {
			return nil, domain.ErrForbidden
		},
	}
	handler := NewUserHandler(stub)

	reader := domain.Principal{ID: 2, Username: "maria", Role: domain.RoleUser}
	c, _ := userTestContext(t, http.MethodGet, "", reader, "7")

	err := handler.Get(c)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUserHandler_Create(t *testing.T) {
	stub := &stubUserService{
		createFn: func(ctx context.Context, p domain.Principal, input ports.CreateUserInput) (*domain.User, error) {
			if input.Username != "ana" || input.Role != domain.RoleUser {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.User{ID: 3, Username: input.Username, Role: input.Role}, nil
		},
	}
	handler := NewUserHandler(stub)

	body := `{"username":"ana","password":"secret1","display_name":"Ana","email":"ana@example.com","role":"USER"}`
	c, rec := userTestContext(t, http.MethodPost, body, admin, "")

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestUserHandler_Update_RolePointerMapped(t *testing.T) {
	stub := &stubUserService{
		updateFn: func(ctx context.Context, p domain.Principal, id int64, input ports.UpdateUserInput) (*domain.User, error) {
			if input.Role == nil || *input.Role != domain.RoleLibrarian {
				t.Fatalf("expected role LIBRARIAN, got %+v", input.Role)
			}
			return &domain.User{ID: id, Role: *input.Role}, nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := userTestContext(t, http.MethodPut, `{"role":"LIBRARIAN"}`, admin, "5")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_Delete(t *testing.T) {
	stub := &stubUserService{
		deleteFn: func(ctx context.Context, p domain.Principal, id int64) error {
			if id != 5 {
				t.Fatalf("expected id=5, got %d", id)
			}
			return nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := userTestContext(t, http.MethodDelete, "", admin, "5")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestUserHandler_Delete_NotFound(t *testing.T) {
	stub := &stubUserService{
		deleteFn: func(ctx context.Context, p domain.Principal, id int64) error {
			return domain.ErrUserNotFound
		},
	}
	handler := NewUserHandler(stub)

	c, _ := userTestContext(t, http.MethodDelete, "", admin, "99")

	err := handler.Delete(c)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserHandler_ToggleStatus(t *testing.T) {
	stub := &stubUserService{
		toggleFn: func(ctx context.Context, p domain.Principal, id int64) (*domain.User, error) {
			return &domain.User{ID: id, Active: false}, nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := userTestContext(t, http.MethodPatch, "", admin, "5")

	if err := handler.ToggleStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["active"] != false {
		t.Fatalf("expected active=false, got %v", resp["active"])
	}
}
