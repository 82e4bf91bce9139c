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

	"github.com/workforcehq/employee-api/internal/core/domain"
)

type stubAuthService struct {
	signupFn func(ctx context.Context, username, email, password string) (*domain.User, error)
	loginFn  func(ctx context.Context, email, username, password string) (string, error)
}

func (s *stubAuthService) Signup(ctx context.Context, username, email, password string) (*domain.User, error) {
	return s.signupFn(ctx, username, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, email, username, password string) (string, error) {
	return s.loginFn(ctx, email, username, password)
}

func newAuthTestContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(_ context.Context, username, email, password string) (*domain.User, error) {
			if username != "alice" || email != "alice@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s %s", username, email, password)
			}
			return &domain.User{ID: "id_1", Username: username, Email: email, PasswordHash: "$2a$hash"}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newAuthTestContext(t, `{"username":"alice","email":"alice@example.com","password":"secret"}`)
	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "User registered successfully" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
	user, _ := resp["user"].(map[string]any)
	if user["id"] != "id_1" || user["username"] != "alice" {
		t.Fatalf("unexpected user view: %v", user)
	}
	if _, leaked := user["password"]; leaked {
		t.Fatalf("user view must never carry password material")
	}
}

func TestAuthHandler_Signup_MissingFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		signupFn: func(context.Context, string, string, string) (*domain.User, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	})

	c, _ := newAuthTestContext(t, `{"username":"alice"}`)
	err := h.Signup(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Signup_BadEmail(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		signupFn: func(context.Context, string, string, string) (*domain.User, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	})

	c, _ := newAuthTestContext(t, `{"username":"alice","email":"not-an-email","password":"secret"}`)
	err := h.Signup(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Signup_Conflict(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		signupFn: func(context.Context, string, string, string) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	})

	c, _ := newAuthTestContext(t, `{"username":"alice","email":"alice@example.com","password":"secret"}`)
	if err := h.Signup(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists to surface, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		loginFn: func(_ context.Context, email, username, password string) (string, error) {
			if username != "alice" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return "signed.jwt.token", nil
		},
	})

	c, rec := newAuthTestContext(t, `{"username":"alice","password":"secret"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "signed.jwt.token" {
		t.Fatalf("unexpected token: %v", resp["token"])
	}
}

func TestAuthHandler_Login_MissingIdentifiers(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		loginFn: func(context.Context, string, string, string) (string, error) {
			t.Fatalf("service must not be called")
			return "", nil
		},
	})

	c, _ := newAuthTestContext(t, `{"password":"secret"}`)
	err := h.Login(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		loginFn: func(context.Context, string, string, string) (string, error) {
			return "", domain.ErrInvalidCredentials
		},
	})

	c, _ := newAuthTestContext(t, `{"email":"ghost@example.com","password":"nope"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials to surface, got %v", err)
	}
}
