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

	"github.com/biblioteca/library-system/internal/core/domain"
	"github.com/biblioteca/library-system/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, input ports.RegisterInput) (*ports.SessionTicket, error)
	loginFn    func(ctx context.Context, username, password string) (*ports.SessionTicket, error)
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.SessionTicket, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*ports.SessionTicket, error) {
	return s.loginFn(ctx, username, password)
}

func newAuthTestContext(t *testing.T, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*ports.SessionTicket, error) {
			if input.Username != "alice" || input.Role != domain.RoleLibrarian {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &ports.SessionTicket{
				Token:    "tok",
				Type:     "Bearer",
				ID:       1,
				Username: input.Username,
				Role:     input.Role,
			}, nil
		},
	}
	handler := NewAuthHandler(stub)

	body := `{"username":"alice","password":"secret1","display_name":"Alice","email":"a@example.com","role":"LIBRARIAN"}`
	c, rec := newAuthTestContext(t, "/auth/register", body)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "tok" || resp["type"] != "Bearer" || resp["username"] != "alice" {
		t.Fatalf("unexpected ticket payload: %+v", resp)
	}
}

func TestAuthHandler_Register_DuplicateUsername(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*ports.SessionTicket, error) {
			return nil, domain.ErrUsernameTaken
		},
	}
	handler := NewAuthHandler(stub)

	body := `{"username":"bob","password":"secret1","display_name":"Bob","email":"b@example.com"}`
	c, _ := newAuthTestContext(t, "/auth/register", body)

	err := handler.Register(c)
	if !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*ports.SessionTicket, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newAuthTestContext(t, "/auth/register", "not-json")

	err := handler.Register(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Register_ValidationFailure(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*ports.SessionTicket, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	// Password shorter than 6 characters, missing email.
	body := `{"username":"bob","password":"abc","display_name":"Bob"}`
	c, _ := newAuthTestContext(t, "/auth/register", body)

	err := handler.Register(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (*ports.SessionTicket, error) {
			if username != "alice" || password != "secret1" {
				t.Fatalf("unexpected credentials: %s %s", username, password)
			}
			return &ports.SessionTicket{Token: "tok", Type: "Bearer", Username: username}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newAuthTestContext(t, "/auth/login", `{"username":"alice","password":"secret1"}`)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (*ports.SessionTicket, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newAuthTestContext(t, "/auth/login", `{"username":"alice","password":"wrong1"}`)

	err := handler.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_Throttled(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (*ports.SessionTicket, error) {
			return nil, domain.ErrTooManyAttempts
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newAuthTestContext(t, "/auth/login", `{"username":"alice","password":"secret1"}`)

	err := handler.Login(c)
	if !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}
