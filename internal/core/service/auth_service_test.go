package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/characters/characters-api/internal/core/domain"
	"github.com/characters/characters-api/internal/infrastructure/security"
)

type stubRegistry struct {
	revoked map[string]bool
	err     error
}

func (r *stubRegistry) Revoke(_ context.Context, token string) error {
	if r.err != nil {
		return r.err
	}
	r.revoked[token] = true
	return nil
}

func (r *stubRegistry) IsRevoked(_ context.Context, token string) (bool, error) {
	return r.revoked[token], r.err
}

func newTestAuthService() (*AuthService, *stubUserRepo, *stubRegistry, *security.TokenManager) {
	store, repo := newTestStore()
	tokens := security.NewTokenManager("secret", time.Hour, time.Hour)
	reg := &stubRegistry{revoked: make(map[string]bool)}
	return NewAuthService(store, tokens, reg, zerolog.Nop()), repo, reg, tokens
}

func TestAuthService_Register(t *testing.T) {
	svc, _, _, _ := newTestAuthService()

	user, err := svc.Register(context.Background(), "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected role user, got %s", user.Role)
	}
	if _, err := svc.Register(context.Background(), "a@x.com", "secret1"); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, repo, _, tokens := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "a@x.com", "secret1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	session, user, err := svc.Login(ctx, "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.Email != "a@x.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if session.AccessToken == "" || session.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", session)
	}
	if repo.users["a@x.com"].RefreshToken != session.RefreshToken {
		t.Fatalf("expected refresh token to be stored on the user")
	}

	id, err := tokens.Verify(session.AccessToken)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id.Role != domain.RoleUser || id.Email != "a@x.com" {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestAuthService_Login_Failures(t *testing.T) {
	svc, _, _, _ := newTestAuthService()
	ctx := context.Background()
	_, _ = svc.Register(ctx, "a@x.com", "secret1")

	if _, _, err := svc.Login(ctx, "a@x.com", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(ctx, "ghost@x.com", "secret1"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
	if _, _, err := svc.Login(ctx, "", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for empty input, got %v", err)
	}
}

func TestAuthService_Logout(t *testing.T) {
	svc, repo, reg, tokens := newTestAuthService()
	ctx := context.Background()

	_, _ = svc.Register(ctx, "a@x.com", "secret1")
	session, _, err := svc.Login(ctx, "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	id, err := tokens.Verify(session.AccessToken)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	if err := svc.Logout(ctx, id); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if !reg.revoked[session.AccessToken] {
		t.Fatalf("expected access token revoked")
	}
	if repo.users["a@x.com"].RefreshToken != "" {
		t.Fatalf("expected refresh token cleared")
	}

	if err := svc.Logout(ctx, nil); err != domain.ErrMissingCredential {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
}

func TestAuthService_Logout_RegistryError(t *testing.T) {
	svc, _, reg, _ := newTestAuthService()
	reg.err = errors.New("redis down")

	err := svc.Logout(context.Background(), &domain.Identity{Email: "a@x.com", Token: "tok"})
	if err == nil {
		t.Fatalf("expected registry error to surface")
	}
}

func TestAuthService_RevokeUser(t *testing.T) {
	svc, _, _, _ := newTestAuthService()
	ctx := context.Background()
	_, _ = svc.Register(ctx, "a@x.com", "secret1")

	if err := svc.RevokeUser(ctx, "a@x.com"); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if err := svc.RevokeUser(ctx, "ghost@x.com"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	svc, repo, _, _ := newTestAuthService()
	ctx := context.Background()

	if err := svc.EnsureAdmin(ctx, "", ""); err != nil {
		t.Fatalf("empty config must be a no-op: %v", err)
	}
	if err := svc.EnsureAdmin(ctx, "root@x.com", "secret1"); err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	if err := svc.EnsureAdmin(ctx, "root@x.com", "secret1"); err != nil {
		t.Fatalf("second call must be a no-op: %v", err)
	}
	if repo.users["root@x.com"].Role != domain.RoleAdmin {
		t.Fatalf("expected admin role")
	}
	if err := svc.EnsureAdmin(ctx, "bad", "secret1"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuthService_Login_UnknownUserCostsAHashComparison(t *testing.T) {
	hasher := &countingHasher{BcryptHasher: security.NewBcryptHasher(bcrypt.MinCost)}
	store := NewCredentialStore(newStubUserRepo(), hasher)
	tokens := security.NewTokenManager("secret", time.Hour, time.Hour)
	svc := NewAuthService(store, tokens, &stubRegistry{revoked: make(map[string]bool)}, zerolog.Nop())

	if _, _, err := svc.Login(context.Background(), "ghost@x.com", "secret1"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if hasher.compares != 1 {
		t.Fatalf("expected one hash comparison for unknown user, got %d", hasher.compares)
	}
}

func TestAuthService_EnsureAdmin_WarnsWhenEmailIsNotAdmin(t *testing.T) {
	store, repo := newTestStore()
	tokens := security.NewTokenManager("secret", time.Hour, time.Hour)
	var buf bytes.Buffer
	svc := NewAuthService(store, tokens, &stubRegistry{revoked: make(map[string]bool)}, zerolog.New(&buf))
	ctx := context.Background()

	if _, err := svc.Register(ctx, "root@x.com", "secret1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	buf.Reset()

	if err := svc.EnsureAdmin(ctx, "root@x.com", "secret1"); err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	if repo.users["root@x.com"].Role != domain.RoleUser {
		t.Fatalf("existing account must not be promoted")
	}
	if !strings.Contains(buf.String(), `"level":"warn"`) || !strings.Contains(buf.String(), "non-admin") {
		t.Fatalf("expected a warning, got %q", buf.String())
	}

	buf.Reset()
	if err := svc.EnsureAdmin(ctx, "boss@x.com", "secret1"); err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	if err := svc.EnsureAdmin(ctx, "boss@x.com", "secret1"); err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	if strings.Contains(buf.String(), `"level":"warn"`) {
		t.Fatalf("no warning expected for an existing admin, got %q", buf.String())
	}
}
