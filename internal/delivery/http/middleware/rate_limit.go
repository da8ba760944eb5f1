package middleware

import (
	"time"

	"portfolio-api/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/limiter"
)

const RateLimitWindow = 15 * time.Minute

// RateLimits holds the three request budgets applied per client IP.
type RateLimits struct {
	Global int
	Auth   int
	API    int
	Window time.Duration
}

func DefaultRateLimits() RateLimits {
	return RateLimits{Global: 100, Auth: 5, API: 50, Window: RateLimitWindow}
}

func limitReached(c fiber.Ctx) error {
	return response.Error(c, fiber.StatusTooManyRequests, response.MessageTooManyRequests, "")
}

// GlobalLimiter caps every request.
func (l RateLimits) GlobalLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:          l.Global,
		Expiration:   l.Window,
		LimitReached: limitReached,
	})
}

// AuthLimiter counts only failed credential attempts.
func (l RateLimits) AuthLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:                    l.Auth,
		Expiration:             l.Window,
		SkipSuccessfulRequests: true,
		LimitReached:           limitReached,
	})
}

// APILimiter caps mutating requests; reads pass through.
func (l RateLimits) APILimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:          l.API,
		Expiration:   l.Window,
		LimitReached: limitReached,
		Next: func(c fiber.Ctx) bool {
			switch c.Method() {
			case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
				return true
			}
			return false
		},
	})
}
