package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/ignatzorin/photomarket-backend/internal/interface/http/response"
	"github.com/ignatzorin/photomarket-backend/internal/logger"
)

const limiterPrefix = "photomarket:limiter"

// NewRateLimitStore возвращает общий redis-стор, если задан redisURL, иначе стор в памяти процесса.
func NewRateLimitStore(redisURL string) (limiter.Store, *redis.Client, error) {
	if redisURL == "" {
		return memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: limiterPrefix, CleanUpInterval: time.Minute}), nil, nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("rate limit: некорректный REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{Prefix: limiterPrefix})
	if err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("rate limit: не удалось создать redis store: %w", err)
	}
	return store, client, nil
}

// RateLimitMiddleware ограничивает частоту запросов: по пользователю, если он известен, иначе по IP.
func RateLimitMiddleware(store limiter.Store, limit int64, period time.Duration) gin.HandlerFunc {
	if limit <= 0 {
		limit = 60
	}
	if period <= 0 {
		period = time.Minute
	}
	instance := limiter.New(store, limiter.Rate{Period: period, Limit: limit})

	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if userID, ok := UserIDFrom(c); ok {
			key = "user:" + userID.String()
		}

		lctx, err := instance.Get(c, key)
		if err != nil {
			// недоступный стор не должен класть API
			logger.Log.WithError(err).Warn("rate limiter store unavailable")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", lctx.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", lctx.Remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", lctx.Reset))

		if lctx.Reached {
			response.TooManyRequests(c)
			return
		}
		c.Next()
	}
}
