package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bookseller-api/internal/api/http/handlers"
	"github.com/spec-kit/bookseller-api/internal/auth"
)

// ResourceRoutes is the handler set for one entity collection.
type ResourceRoutes interface {
	List(c *fiber.Ctx) error
	Create(c *fiber.Ctx) error
	Update(c *fiber.Ctx) error
	Delete(c *fiber.Ctx) error
}

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Metrics fiber.Handler

	// Auth, AuthMiddleware and AuthLimiter are unused when AuthEnabled is false.
	AuthEnabled    bool
	Auth           *handlers.AuthHandler
	AuthMiddleware *auth.AuthMiddleware
	AuthLimiter    *RateLimiter
	Policy         auth.Policy

	// Resources maps a collection name such as "authors" to its handlers.
	Resources map[string]ResourceRoutes
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", handlers.Index)

	if cfg.Health != nil {
		app.Get("/health/live", cfg.Health.Live)
		app.Get("/health/ready", cfg.Health.Ready)
	}
	if cfg.Metrics != nil {
		app.Get("/metrics", cfg.Metrics)
	}

	if cfg.AuthEnabled {
		app.Post("/register", cfg.AuthLimiter.Handle, cfg.Auth.Register)
		app.Post("/login", cfg.AuthLimiter.Handle, cfg.Auth.Login)
	}

	for collection, h := range cfg.Resources {
		base := "/" + collection
		app.Get(base, h.List)
		app.Post(base, cfg.writeChain(collection, auth.ActionCreate, h.Create)...)
		app.Put(base+"/:id", cfg.writeChain(collection, auth.ActionUpdate, h.Update)...)
		app.Delete(base+"/:id", cfg.writeChain(collection, auth.ActionDelete, h.Delete)...)
	}
}

// writeChain prepends authentication and the role gate for action to h.
func (cfg RouteConfig) writeChain(collection, verb string, h fiber.Handler) []fiber.Handler {
	chain := make([]fiber.Handler, 0, 3)
	if cfg.AuthEnabled {
		chain = append(chain, cfg.AuthMiddleware.Handle)
	}
	chain = append(chain, auth.Authorize(cfg.Policy, auth.ResourceAction(collection, verb)), h)
	return chain
}
