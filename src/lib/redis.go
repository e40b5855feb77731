package lib

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

func GetRedisClient() *redis.Client {
	if redisClient != nil {
		return redisClient
	}
	redisHost := os.Getenv("REDIS_HOST")
	opt, err := redis.ParseURL(redisHost)
	if err != nil {
		log.Printf("[redis] Error parsing connection string: %s\n", err.Error())
		return nil
	}
	rdb := redis.NewClient(opt)
	redisClient = rdb
	return rdb
}

// CacheGet returns the cached value for key, or false when redis is down,
// unconfigured or the key is absent. Lookups never fail the request path.
func CacheGet(key string) (string, bool) {
	rdb := GetRedisClient()
	if rdb == nil {
		return "", false
	}
	val, err := rdb.Get(context.Background(), key).Result()
	if err == redis.Nil {
		return "", false
	} else if err != nil {
		log.Printf("[redis] Error retrieving value for %s: %s\n", key, err.Error())
		return "", false
	}
	return val, true
}

func CacheSet(key string, value string, ttl time.Duration) {
	rdb := GetRedisClient()
	if rdb == nil {
		return
	}
	if err := rdb.Set(context.Background(), key, value, ttl).Err(); err != nil {
		log.Printf("[redis] Failed to set value for key %s: %s\n", key, err)
	}
}

// NewRedisClient Replace redis instance with custom client implementation
func NewRedisClient(c *redis.Client) *redis.Client {
	redisClient = c
	return redisClient
}
