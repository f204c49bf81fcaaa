package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// RedisRateLimiterStore is a fixed-window limiter shared by every replica.
// Each identifier may make limit requests per window.
type RedisRateLimiterStore struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
}

func NewRedisRateLimiterStore(client *redis.Client, limit int, window time.Duration) *RedisRateLimiterStore {
	return &RedisRateLimiterStore{
		client: client,
		limit:  limit,
		window: window,
		prefix: "shareit:rate:",
	}
}

// Allow implements echo's RateLimiterStore.
func (s *RedisRateLimiterStore) Allow(identifier string) (bool, error) {
	if s.client == nil {
		return false, fmt.Errorf("redis client is nil")
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	// INCR and EXPIRE NX run in one MULTI so a counter can never be left
	// without a TTL; NX keeps the window fixed from the first hit.
	key := s.prefix + identifier
	var incr *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, s.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit: %w", err)
	}
	return incr.Val() <= int64(s.limit), nil
}

// RateLimiter limits per acting user, falling back to the client IP for
// anonymous routes. A store error lets the request through.
func RateLimiter(store echoMw.RateLimiterStore, userHeader string, log *zerolog.Logger) echo.MiddlewareFunc {
	return echoMw.RateLimiterWithConfig(echoMw.RateLimiterConfig{
		Store: failOpenStore{store: store, log: log},
		IdentifierExtractor: func(c echo.Context) (string, error) {
			if raw := c.Request().Header.Get(userHeader); raw != "" {
				if _, err := strconv.ParseUint(raw, 10, 64); err == nil {
					return "user:" + raw, nil
				}
			}
			return "ip:" + c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, "unable to identify client")
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
		},
	})
}

type failOpenStore struct {
	store echoMw.RateLimiterStore
	log   *zerolog.Logger
}

func (s failOpenStore) Allow(identifier string) (bool, error) {
	allowed, err := s.store.Allow(identifier)
	if err != nil {
		s.log.Warn().Err(err).Str("identifier", identifier).Msg("rate limit store failed")
		return true, nil
	}
	return allowed, nil
}

// NewMemoryStore wraps echo's in-process token bucket store.
func NewMemoryStore(rps float64, burst int) echoMw.RateLimiterStore {
	return echoMw.NewRateLimiterMemoryStoreWithConfig(echoMw.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(rps),
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})
}
