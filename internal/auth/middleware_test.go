package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/bookseller-api/internal/domain"
	apperrors "github.com/spec-kit/bookseller-api/pkg/util/errorutil"
)

type tokenVerifierStub struct {
	tokens *TokenManager
}

func (v tokenVerifierStub) Verify(token string) (*domain.Identity, error) {
	if token == "" {
		return nil, apperrors.NewUnauthorized("Token is missing!")
	}
	claims, err := v.tokens.ParseToken(token)
	if err != nil {
		return nil, apperrors.NewUnauthorized("Token is invalid!")
	}
	return &domain.Identity{Subject: claims.Subject, Role: claims.Role}, nil
}

func newTestApp(tm *TokenManager, policy Policy) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
			}
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"error": de.Message})
		},
	})
	mw := NewAuthMiddleware(tokenVerifierStub{tokens: tm})
	app.Post("/authors", mw.Handle, Authorize(policy, ResourceAction("authors", ActionCreate)), func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return errors.New("identity missing")
		}
		return c.SendString(identity.Subject)
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	token, err := tm.GenerateToken("ann", "staff")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		value  string
		status int
	}{
		{name: "bearer", header: fiber.HeaderAuthorization, value: "Bearer " + token.Value, status: http.StatusOK},
		{name: "legacy header", header: LegacyTokenHeader, value: token.Value, status: http.StatusOK},
		{name: "missing", status: http.StatusUnauthorized},
		{name: "garbage", header: LegacyTokenHeader, value: "not-a-token", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: fiber.HeaderAuthorization, value: "Basic abc", status: http.StatusUnauthorized},
	}

	app := newTestApp(tm, Policy{})
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/authors", nil)
			if tc.header != "" {
				req.Header.Set(tc.header, tc.value)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestAuthorize_EnforcesPolicyRole(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	staff, err := tm.GenerateToken("ann", "staff")
	require.NoError(t, err)
	admin, err := tm.GenerateToken("bob", "admin")
	require.NoError(t, err)

	app := newTestApp(tm, WritePolicy("admin", "authors"))

	req := httptest.NewRequest(http.MethodPost, "/authors", nil)
	req.Header.Set(LegacyTokenHeader, staff.Value)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPost, "/authors", nil)
	req.Header.Set(LegacyTokenHeader, admin.Value)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
