package http

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	apperrors "github.com/spec-kit/bookseller-api/pkg/util/errorutil"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles requests per client IP with a token bucket.
type RateLimiter struct {
	perMinute int
	now       func() time.Time
	mu        sync.Mutex
	clients   map[string]*clientLimiter
}

// NewRateLimiter allows perMinute requests per client with an equal burst.
// A non-positive perMinute disables limiting.
func NewRateLimiter(perMinute int) *RateLimiter {
	return &RateLimiter{
		perMinute: perMinute,
		now:       time.Now,
		clients:   map[string]*clientLimiter{},
	}
}

// Handle rejects the request with 429 once the client's bucket is empty.
func (m *RateLimiter) Handle(c *fiber.Ctx) error {
	if m == nil || m.perMinute <= 0 {
		return c.Next()
	}
	if !m.getLimiter(c.IP()).AllowN(m.now(), 1) {
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(time.Minute.Seconds())))
		return apperrors.NewTooManyRequests("Too many requests")
	}
	return c.Next()
}

func (m *RateLimiter) getLimiter(clientIP string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if entry, ok := m.clients[clientIP]; ok {
		entry.lastSeen = now
		return entry.limiter
	}

	entry := &clientLimiter{
		limiter:  rate.NewLimiter(rate.Every(time.Minute/time.Duration(m.perMinute)), m.perMinute),
		lastSeen: now,
	}
	m.clients[clientIP] = entry
	m.gcLocked(now)
	return entry.limiter
}

func (m *RateLimiter) gcLocked(now time.Time) {
	if len(m.clients) < 1000 {
		return
	}
	cutoff := now.Add(-10 * time.Minute)
	for ip, entry := range m.clients {
		if entry.lastSeen.Before(cutoff) {
			delete(m.clients, ip)
		}
	}
}
