package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bookseller-api/internal/domain"
)

const identityKey = "auth_identity"

// LegacyTokenHeader is accepted when no Authorization header is sent.
const LegacyTokenHeader = "x-access-token"

// TokenVerifier turns a raw token into a verified identity. An empty token
// must be rejected as missing.
type TokenVerifier interface {
	Verify(token string) (*domain.Identity, error)
}

// AuthMiddleware validates bearer tokens and stores the caller identity.
type AuthMiddleware struct {
	verifier TokenVerifier
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	identity, err := m.verifier.Verify(TokenFromRequest(c))
	if err != nil {
		return err
	}
	c.Locals(identityKey, identity)
	return c.Next()
}

// TokenFromRequest reads "Authorization: Bearer <token>" or the legacy header.
func TokenFromRequest(c *fiber.Ctx) string {
	if header := c.Get(fiber.HeaderAuthorization); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		// A malformed Authorization header is passed through so it fails as invalid.
		return header
	}
	return strings.TrimSpace(c.Get(LegacyTokenHeader))
}

// IdentityFromContext retrieves the authenticated caller.
func IdentityFromContext(c *fiber.Ctx) (*domain.Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*domain.Identity)
	return identity, ok
}
