package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/characters/characters-api/internal/api/metrics"
	"github.com/characters/characters-api/internal/core/domain"
	"github.com/characters/characters-api/internal/core/ports"
)

const (
	identityKey = "auth.identity"

	gateAuthenticate = "authenticate"
	gateAuthorize    = "authorize"
)

// gateResponse is the only body the gates ever write. It is identical for
// every failure so clients cannot tell which check failed.
type gateResponse struct {
	Message string `json:"message"`
}

var forbiddenBody = gateResponse{Message: "Forbidden"}

// Authenticator decides whether a request carries a valid, non-revoked
// access token.
type Authenticator struct {
	verifier ports.TokenVerifier
	revoked  ports.RevocationRegistry
}

func NewAuthenticator(verifier ports.TokenVerifier, revoked ports.RevocationRegistry) *Authenticator {
	return &Authenticator{verifier: verifier, revoked: revoked}
}

// Authenticate runs the checks in order: bearer header, revocation, then
// signature and expiry. On failure it writes the response and returns false;
// on success it attaches the identity and writes nothing.
func (a *Authenticator) Authenticate(c echo.Context) bool {
	token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
	if !ok {
		return reject(c, gateAuthenticate, http.StatusUnauthorized, domain.ErrMissingCredential, nil)
	}

	ctx := c.Request().Context()

	// Revocation first: a revoked token is refused without spending a
	// signature check on it.
	revoked, err := a.revoked.IsRevoked(ctx, token)
	if err != nil {
		return reject(c, gateAuthenticate, http.StatusForbidden, domain.ErrRevokedCredential, err)
	}
	if revoked {
		return reject(c, gateAuthenticate, http.StatusForbidden, domain.ErrRevokedCredential, nil)
	}

	identity, err := a.verifier.Verify(token)
	if err != nil || identity == nil {
		return reject(c, gateAuthenticate, http.StatusForbidden, domain.ErrInvalidCredential, err)
	}

	c.Set(identityKey, identity)
	metrics.GateDecisionsTotal.WithLabelValues(gateAuthenticate, "allowed").Inc()
	return true
}

// IdentityFrom returns the identity attached by Authenticate.
func IdentityFrom(c echo.Context) (*domain.Identity, bool) {
	id, ok := c.Get(identityKey).(*domain.Identity)
	return id, ok && id != nil
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// reject writes the uniform failure body. The cause goes to logs and
// metrics only.
func reject(c echo.Context, gate string, status int, cause, detail error) bool {
	outcome := outcomeFor(cause, detail)
	metrics.GateDecisionsTotal.WithLabelValues(gate, outcome).Inc()

	ev := zerolog.Ctx(c.Request().Context()).Warn().
		Str("gate", gate).
		Str("reason", outcome).
		Str("method", c.Request().Method).
		Str("path", c.Path())
	if detail != nil {
		ev = ev.Err(detail)
	}
	ev.Msg("request rejected")

	_ = c.JSON(status, forbiddenBody)
	return false
}

func outcomeFor(cause, detail error) string {
	switch cause {
	case domain.ErrMissingCredential:
		return "missing_credential"
	case domain.ErrRevokedCredential:
		if detail != nil {
			return "lookup_failed"
		}
		return "revoked"
	case domain.ErrInvalidCredential:
		return "invalid"
	case domain.ErrInsufficientRole:
		return "insufficient_role"
	}
	return "unknown"
}
