package libs

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Counter increments a windowed counter and returns the new value.
type Counter interface {
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

type RedisCounter struct {
	client *redis.Client
}

func NewRedisCounter(ctx context.Context, addr, password string, db int) (*RedisCounter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisCounter{client: client}, nil
}

func (r *RedisCounter) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

func (r *RedisCounter) Close() error {
	return r.client.Close()
}

// RateLimit allows at most limit requests per user per window using fixed
// windows. A nil counter or a limit of 0 disables it. Counter errors let the
// request through.
func RateLimit(counter Counter, limit int, window time.Duration, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if counter == nil || limit <= 0 {
			c.Next()
			return
		}

		userID := c.GetString(UserIDKey)
		bucket := time.Now().UnixNano() / int64(window)
		key := fmt.Sprintf("mindscope:ratelimit:%s:%s:%d", c.FullPath(), userID, bucket)

		n, err := counter.Incr(c.Request.Context(), key, 2*window)
		if err != nil {
			log.Warnw("rate limit counter unavailable", "user_id", userID, "error", err)
			c.Next()
			return
		}
		if n > int64(limit) {
			c.Header("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many messages, please slow down"})
			return
		}
		c.Next()
	}
}
