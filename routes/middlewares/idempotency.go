package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/zsmartex/coreledger/controllers/helpers"
)

const IdempotencyTTL = 24 * time.Hour

type IdempotencyCache interface {
	GetKey(key string, src interface{}) error
	SetKey(key string, value interface{}, expiration time.Duration) error
	IsMissing(err error) bool
}

type cachedResponse struct {
	Status int    `json:"status"`
	Body   []byte `json:"body"`
}

// Idempotency replays the stored response of a write that was already served for the same
// Idempotency-Key and user. Responses with a 5xx status are not stored so the client may retry.
func Idempotency(cache IdempotencyCache, logger logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodPost {
			return c.Next()
		}

		idempotency_key := c.Get("Idempotency-Key")
		if len(idempotency_key) == 0 {
			return c.Next()
		}

		uid := ""
		if auth := GetCurrentUser(c); auth != nil {
			uid = auth.UID
		}
		key := "coreledger:idempotency:" + uid + ":" + c.Path() + ":" + idempotency_key

		var cached cachedResponse
		err := cache.GetKey(key, &cached)
		if err == nil {
			c.Set("Idempotent-Replayed", "true")
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Status(cached.Status).Send(cached.Body)
		}

		if !cache.IsMissing(err) {
			logger.WithError(err).Error("Failed to read idempotency cache")
			return c.Status(500).JSON(helpers.Errors{
				Errors: []string{ServerInternalError},
			})
		}

		if err := c.Next(); err != nil {
			return err
		}

		status := c.Response().StatusCode()
		if status >= 500 {
			return nil
		}

		body := make([]byte, len(c.Response().Body()))
		copy(body, c.Response().Body())

		if err := cache.SetKey(key, cachedResponse{Status: status, Body: body}, IdempotencyTTL); err != nil {
			logger.WithError(err).Error("Failed to store idempotent response")
		}

		return nil
	}
}
