package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bookseller-api/internal/domain"
	apperrors "github.com/spec-kit/bookseller-api/pkg/util/errorutil"
)

// Action identifies a gated route, e.g. "authors:create".
type Action string

// Write actions exposed by the resource routes.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// ResourceAction builds the action name for a collection and verb.
func ResourceAction(collection, verb string) Action {
	return Action(collection + ":" + verb)
}

// Policy maps actions to the role they require. Actions absent from the
// policy, or mapped to "", admit any authenticated identity.
type Policy map[Action]domain.Role

// WritePolicy requires role on every write action of the given collections.
// An empty role yields an empty policy.
func WritePolicy(role domain.Role, collections ...string) Policy {
	policy := Policy{}
	if role == "" {
		return policy
	}
	for _, collection := range collections {
		for _, verb := range []string{ActionCreate, ActionUpdate, ActionDelete} {
			policy[ResourceAction(collection, verb)] = role
		}
	}
	return policy
}

// RequireRole fails with 403 unless identity carries exactly the required role.
func RequireRole(identity *domain.Identity, required domain.Role) error {
	if identity == nil || identity.Role != required {
		return apperrors.NewForbidden("Access forbidden: insufficient role")
	}
	return nil
}

// Authorize gates a route by the policy entry for action. It must run after
// AuthMiddleware when auth is enabled.
func Authorize(policy Policy, action Action) fiber.Handler {
	required := policy[action]
	return func(c *fiber.Ctx) error {
		if required == "" {
			return c.Next()
		}
		identity, _ := IdentityFromContext(c)
		if err := RequireRole(identity, required); err != nil {
			return err
		}
		return c.Next()
	}
}
