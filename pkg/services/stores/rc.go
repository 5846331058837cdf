package stores

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisClient = redis.UniversalClient

const redisPingTimeout = time.Second * 5

// NewRedisClient parses redisURI, connects and pings
func NewRedisClient(redisURI string) (RedisClient, error) {
	opt, err := redis.ParseURL(redisURI)
	if err != nil {
		logger().Infow("prase redisURI fail", "uri", redisURI, "err", err)
		return nil, fmt.Errorf("parse redis uri: %w", err)
	}
	rc := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err = rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		logger().Infow("ping redis fail", "err", err)
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rc, nil
}
