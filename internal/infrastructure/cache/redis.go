package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	// zero keeps the go-redis default
	PoolSize int
}

// OpenRedis connects and pings. The client is closed when the ping fails.
func OpenRedis(ctx context.Context, o RedisOptions) (*redis.Client, error) {
	if o.Addr == "" {
		return nil, fmt.Errorf("redis: empty address")
	}
	r := redis.NewClient(&redis.Options{
		Addr:         o.Addr,
		Password:     o.Password,
		DB:           o.DB,
		PoolSize:     o.PoolSize,
		DialTimeout:  pingTimeout,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := r.Ping(pctx).Err(); err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("redis ping %s: %w", o.Addr, err)
	}
	slog.Info("redis connected", "addr", o.Addr, "db", o.DB)
	return r, nil
}
