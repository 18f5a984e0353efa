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

	"github.com/characters/characters-api/internal/core/domain"
	"github.com/characters/characters-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn   func(ctx context.Context, email, password string) (*domain.User, error)
	loginFn      func(ctx context.Context, email, password string) (*ports.Session, *domain.User, error)
	logoutFn     func(ctx context.Context, identity *domain.Identity) error
	revokeUserFn func(ctx context.Context, email string) error
}

func (s *stubAuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	return s.registerFn(ctx, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.Session, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Logout(ctx context.Context, identity *domain.Identity) error {
	return s.logoutFn(ctx, identity)
}

func (s *stubAuthService) RevokeUser(ctx context.Context, email string) error {
	return s.revokeUserFn(ctx, email)
}

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func expectHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if he.Code != code {
		t.Fatalf("expected %d, got %d", code, he.Code)
	}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, email, password string) (*domain.User, error) {
			if email != "a@x.com" || password != "secret1" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &domain.User{ID: 1, Email: email, PasswordHash: "hash", Role: domain.RoleUser}, nil
		},
	}
	c, rec := newJSONContext(http.MethodPost, "/auth/register", `{"email":"a@x.com","password":"secret1","role":"admin"}`)

	if err := NewAuthHandler(stub).Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["email"] != "a@x.com" || user["role"] != "user" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if strings.Contains(rec.Body.String(), "hash") {
		t.Fatalf("password hash leaked: %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, email, password string) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	c, _ := newJSONContext(http.MethodPost, "/auth/register", `{"email":"a@x.com","password":"secret1"}`)

	if err := NewAuthHandler(stub).Register(c); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, email, password string) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	for _, body := range []string{
		"not-json",
		`{"email":"nope","password":"secret1"}`,
		`{"email":"a@x.com","password":"123"}`,
		`{"email":"a@x.com","password":"` + strings.Repeat("p", 80) + `"}`,
	} {
		c, _ := newJSONContext(http.MethodPost, "/auth/register", body)
		expectHTTPError(t, h.Register(c), http.StatusBadRequest)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.Session, *domain.User, error) {
			return &ports.Session{AccessToken: "access123", RefreshToken: "refresh123"},
				&domain.User{Email: email, Role: domain.RoleAdmin}, nil
		},
	}
	c, rec := newJSONContext(http.MethodPost, "/auth/login", `{"email":"a@x.com","password":"secret1"}`)

	if err := NewAuthHandler(stub).Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Session ports.Session `json:"session"`
		User    domain.User   `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Session.AccessToken != "access123" || resp.User.Role != domain.RoleAdmin {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.Session, *domain.User, error) {
			return nil, nil, domain.ErrInvalidCredentials
		},
	}
	c, _ := newJSONContext(http.MethodPost, "/auth/login", `{"email":"a@x.com","password":"bad"}`)

	if err := NewAuthHandler(stub).Login(c); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Logout_RequiresIdentity(t *testing.T) {
	stub := &stubAuthService{
		logoutFn: func(ctx context.Context, identity *domain.Identity) error {
			t.Fatalf("should not be called")
			return nil
		},
	}
	c, _ := newJSONContext(http.MethodPost, "/auth/logout", "")

	if err := NewAuthHandler(stub).Logout(c); err != domain.ErrMissingCredential {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
}

func TestAuthHandler_RevokeUser(t *testing.T) {
	var got string
	stub := &stubAuthService{
		revokeUserFn: func(ctx context.Context, email string) error {
			got = email
			if email == "ghost@x.com" {
				return domain.ErrUserNotFound
			}
			return nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newJSONContext(http.MethodPost, "/admin/users/revoke", `{"email":"a@x.com"}`)
	if err := h.RevokeUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || got != "a@x.com" {
		t.Fatalf("unexpected result: code=%d email=%q", rec.Code, got)
	}

	c, _ = newJSONContext(http.MethodPost, "/admin/users/revoke", `{"email":"ghost@x.com"}`)
	if err := h.RevokeUser(c); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
