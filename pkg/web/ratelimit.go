package web

import (
	"net/http"

	"github.com/ulule/limiter/v3"
	mhttp "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/liut/finai/pkg/services/stores"
)

const limiterPrefix = "finai-limiter"

// newRateLimiter 按客户端 IP 限流，有 redis 时计数共享
func newRateLimiter(formatted string, rc stores.RedisClient) (func(http.Handler) http.Handler, error) {
	if len(formatted) == 0 {
		return func(next http.Handler) http.Handler { return next }, nil
	}
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		logger().Infow("invalid rate limit", "rate", formatted, "err", err)
		return nil, err
	}

	var store limiter.Store
	if rc != nil {
		store, err = sredis.NewStoreWithOptions(rc, limiter.StoreOptions{
			Prefix:   limiterPrefix,
			MaxRetry: 3,
		})
		if err != nil {
			return nil, err
		}
	} else {
		store = memory.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          limiterPrefix,
			CleanUpInterval: limiter.DefaultCleanUpInterval,
		})
	}

	mw := mhttp.NewMiddleware(limiter.New(store, rate))
	return mw.Handler, nil
}
