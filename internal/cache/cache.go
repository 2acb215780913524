package cache

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/rueidis"
	"go.uber.org/zap"
)

const keyPrefix = "resp:"

// Cache keeps successful GET responses in Redis for a short TTL. Every
// operation fails open: a Redis outage only costs the caching.
type Cache struct {
	client rueidis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func New(addr string, ttl time.Duration, logger *zap.Logger) (*Cache, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	client, err := rueidis.NewClient(rueidis.ClientOption{InitAddress: []string{addr}})
	if err != nil {
		return nil, err
	}
	return &Cache{client: client, ttl: ttl, logger: logger}, nil
}

// Middleware caches GET responses whose path starts with one of the given
// prefixes. Everything else passes through untouched, so protected routes
// are never cached by accident. A nil *Cache is a no-op.
func (c *Cache) Middleware(prefixes ...string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if c == nil || ctx.Method() != fiber.MethodGet || !matchesPrefix(ctx.Path(), prefixes) {
			return ctx.Next()
		}

		key := keyPrefix + ctx.OriginalURL()
		cmdCtx := ctx.Context()

		if body, ok := c.get(cmdCtx, key); ok {
			ctx.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return ctx.Send(body)
		}

		if err := ctx.Next(); err != nil {
			return err
		}
		if ctx.Response().StatusCode() == fiber.StatusOK {
			c.set(cmdCtx, key, ctx.Response().Body())
		}
		return nil
	}
}

func (c *Cache) get(ctx context.Context, key string) ([]byte, bool) {
	resp := c.client.Do(ctx, c.client.B().Get().Key(key).Build())
	body, err := resp.AsBytes()
	if err != nil {
		if !rueidis.IsRedisNil(err) {
			c.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return body, true
}

func (c *Cache) set(ctx context.Context, key string, body []byte) {
	cmd := c.client.B().Set().Key(key).Value(string(body)).Ex(c.ttl).Build()
	if err := c.client.Do(ctx, cmd).Error(); err != nil {
		c.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Flush removes every cached response whose path starts with prefix.
func (c *Cache) Flush(prefix string) error {
	if c == nil {
		return nil
	}
	ctx := context.Background()
	pattern := keyPrefix + prefix + "*"

	var cursor uint64
	for {
		resp := c.client.Do(ctx, c.client.B().Scan().Cursor(cursor).Match(pattern).Count(100).Build())
		entry, err := resp.AsScanEntry()
		if err != nil {
			return err
		}
		if len(entry.Elements) > 0 {
			if err := c.client.Do(ctx, c.client.B().Del().Key(entry.Elements...).Build()).Error(); err != nil {
				return err
			}
		}
		cursor = entry.Cursor
		if cursor == 0 {
			return nil
		}
	}
}

func (c *Cache) Close() {
	if c != nil {
		c.client.Close()
	}
}

func matchesPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
