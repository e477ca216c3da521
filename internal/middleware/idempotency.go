package middleware

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const idempotencyKeyPrefix = "booking:idempotency:"

// cachedResponse is what gets replayed: the original status code and body.
type cachedResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

// Idempotency replays the first response for a repeated X-Correlation-ID
// within the TTL, so a retried booking submission cannot create two orders.
// Requests without a correlation id pass through untouched.
func Idempotency(redisClient *redis.Client, ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch:
		default:
			return c.Next()
		}

		correlationID := c.Get("X-Correlation-ID")
		if correlationID == "" {
			return c.Next()
		}

		key := idempotencyKeyPrefix + correlationID
		ctx := context.Background()

		if raw, err := redisClient.Get(ctx, key).Bytes(); err == nil && len(raw) > 0 {
			var cached cachedResponse
			if err := json.Unmarshal(raw, &cached); err == nil {
				c.Set("X-Idempotent-Replay", "true")
				c.Set("Content-Type", "application/json")
				return c.Status(cached.Status).Send(cached.Body)
			}
			log.Printf("[Idempotency] Dropping unreadable cache entry for %s: %v", correlationID, err)
		}

		if err := c.Next(); err != nil {
			return err
		}

		// Only successful responses are worth replaying
		status := c.Response().StatusCode()
		body := c.Response().Body()
		if status < 200 || status >= 300 || len(body) == 0 {
			return nil
		}

		entry, err := json.Marshal(cachedResponse{Status: status, Body: body})
		if err != nil {
			return nil
		}
		go func() {
			bgCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			redisClient.Set(bgCtx, key, entry, ttl)
		}()

		return nil
	}
}
