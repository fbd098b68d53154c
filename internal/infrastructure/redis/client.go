package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// The cache is optional: a slow Redis must cost a request milliseconds, not
// seconds, before the store falls through to the database.
const (
	pingTimeout    = 2 * time.Second
	dialTimeout    = time.Second
	commandTimeout = 200 * time.Millisecond
)

// Client owns the go-redis connection pool shared by the account cache.
type Client struct {
	rdb *goredis.Client
}

func New(addr, password string, db int) *Client {
	return &Client{
		rdb: goredis.NewClient(&goredis.Options{
			Addr:         addr,
			Password:     password,
			DB:           db,
			DialTimeout:  dialTimeout,
			ReadTimeout:  commandTimeout,
			WriteTimeout: commandTimeout,
			// one retry at most; a miss is cheaper than a long stall
			MaxRetries: 1,
		}),
	}
}

// Ping is used once at startup to decide whether caching is enabled.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
