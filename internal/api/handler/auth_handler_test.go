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

	"github.com/eduskill/eduskill-api/internal/core/domain"
)

type stubAuthService struct {
	signupErr error
	loginErr  error
}

func (s *stubAuthService) Signup(_ context.Context, name, email, _ string, role domain.Role) (string, *domain.User, error) {
	if s.signupErr != nil {
		return "", nil, s.signupErr
	}
	if role == "" {
		role = domain.RoleStudent
	}
	return "signed-token", &domain.User{ID: "user_1", Name: name, Email: email, Role: role}, nil
}

func (s *stubAuthService) Login(_ context.Context, email, _ string) (string, *domain.User, error) {
	if s.loginErr != nil {
		return "", nil, s.loginErr
	}
	return "signed-token", &domain.User{ID: "user_1", Email: email, Role: domain.RoleStudent}, nil
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSignup_Created(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})
	c, rec := newTestContext(t, http.MethodPost, "/api/v1/auth/signup",
		`{"name":"Alice","email":"alice@test.io","password":"longenough","role":"creator"}`)

	if err := h.Signup(c); err != nil {
		t.Fatalf("signup: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp struct {
		Token string       `json:"token"`
		User  *domain.User `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token != "signed-token" || resp.User.Role != domain.RoleCreator {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestSignup_RejectsBadPayload(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	for name, body := range map[string]string{
		"missing email":  `{"name":"Alice","password":"longenough"}`,
		"short password": `{"name":"Alice","email":"a@test.io","password":"short"}`,
		"bad role":       `{"name":"Alice","email":"a@test.io","password":"longenough","role":"root"}`,
	} {
		c, _ := newTestContext(t, http.MethodPost, "/api/v1/auth/signup", body)
		err := h.Signup(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %v", name, err)
		}
	}
}

func TestSignup_DuplicatePropagates(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{signupErr: domain.ErrUserExists})
	c, _ := newTestContext(t, http.MethodPost, "/api/v1/auth/signup",
		`{"name":"Alice","email":"alice@test.io","password":"longenough"}`)

	if err := h.Signup(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists to propagate, got %v", err)
	}
}

func TestLogin_OK(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})
	c, rec := newTestContext(t, http.MethodPost, "/api/v1/auth/login",
		`{"email":"alice@test.io","password":"longenough"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestLogin_BadCredentialsPropagate(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{loginErr: domain.ErrInvalidCredentials})
	c, _ := newTestContext(t, http.MethodPost, "/api/v1/auth/login",
		`{"email":"alice@test.io","password":"wrong-password"}`)

	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials to propagate, got %v", err)
	}
}
