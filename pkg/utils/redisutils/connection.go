// The redisutils package simplifies and automates recurring operations like
// connecting to, formatting for, and parsing from Redis.
package redisutils

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const (
	ProdAddress = "localhost:6379"
	TestAddress = "localhost:6380"
)

// SetupProdClient() initializes a new Redis client for production at the given address.
// If the address is empty, ProdAddress is used.
func SetupProdClient(address string) *redis.Client {
	if address == "" {
		address = ProdAddress
	}

	return redis.NewClient(&redis.Options{
		Addr: address,
	})
}

// SetupTestClient() initializes a new Redis client for testing.
func SetupTestClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: TestAddress,
	})
}

// IsAvailable() returns whether the Redis server answers a PING.
func IsAvailable(ctx context.Context, client *redis.Client) bool {
	return client != nil && client.Ping(ctx).Err() == nil
}

// CleanupRedis() cleans up the Redis database between tests to ensure isolation.
func CleanupRedis(client *redis.Client) {
	client.FlushAll(context.Background())
}
