package auth

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/bookseller-api/internal/domain"
	apperrors "github.com/spec-kit/bookseller-api/pkg/util/errorutil"
)

func TestRequireRole(t *testing.T) {
	assert.NoError(t, RequireRole(&domain.Identity{Subject: "ann", Role: "admin"}, "admin"))

	err := RequireRole(&domain.Identity{Subject: "ann", Role: "staff"}, "admin")
	var de *apperrors.DomainError
	if assert.True(t, errors.As(err, &de)) {
		assert.Equal(t, http.StatusForbidden, de.HTTPStatus)
		assert.Equal(t, "Access forbidden: insufficient role", de.Message)
	}

	assert.Error(t, RequireRole(nil, "admin"))
}

func TestWritePolicy(t *testing.T) {
	assert.Empty(t, WritePolicy("", "authors", "books"))

	policy := WritePolicy("admin", "authors", "books")
	assert.Len(t, policy, 6)
	assert.Equal(t, domain.Role("admin"), policy[ResourceAction("books", ActionDelete)])
	assert.Equal(t, domain.Role(""), policy[ResourceAction("orders", ActionCreate)])
}
