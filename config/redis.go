package config

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
)

var (
	Redis *CacheService
)

type CacheService struct {
	Ctx        context.Context
	Connection *redis.Client
}

func NewCacheService() error {
	c := redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_HOST") + ":" + os.Getenv("REDIS_PORT"),
		Username: os.Getenv("REDIS_USERNAME"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
	ctx := context.Background()

	if err := c.Ping(ctx).Err(); err != nil {
		return err
	}

	Redis = &CacheService{
		Ctx:        ctx,
		Connection: c,
	}

	return nil
}

// GetKey decodes the json stored at key into src. A missing key returns redis.Nil.
func (c *CacheService) GetKey(key string, src interface{}) error {
	val, err := c.Connection.Get(c.Ctx, key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(val), src)
}

func (c *CacheService) SetKey(key string, value interface{}, expiration time.Duration) error {
	cacheEntry, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.Connection.Set(c.Ctx, key, cacheEntry, expiration).Err()
}

// SetKeyIf writes value unless keep, given the stored json, says the current value should stay.
// The read and the write run under WATCH; a concurrent writer makes the attempt start over.
func (c *CacheService) SetKeyIf(key string, value interface{}, expiration time.Duration, keep func(current []byte) bool) error {
	cacheEntry, err := json.Marshal(value)
	if err != nil {
		return err
	}

	for attempt := 0; attempt < 3; attempt++ {
		err = c.Connection.Watch(c.Ctx, func(tx *redis.Tx) error {
			current, err := tx.Get(c.Ctx, key).Bytes()
			if err != nil && err != redis.Nil {
				return err
			}
			if err == nil && keep(current) {
				return nil
			}

			_, err = tx.TxPipelined(c.Ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(c.Ctx, key, cacheEntry, expiration)
				return nil
			})
			return err
		}, key)
		if err != redis.TxFailedErr {
			return err
		}
	}

	return err
}

// IsMissing reports whether err only says the key does not exist.
func (c *CacheService) IsMissing(err error) bool {
	return err == redis.Nil
}
