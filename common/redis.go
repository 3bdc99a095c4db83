package common

import (
	"context"
	"errors"
	"time"

	"github.com/aig-studio/artist-image-generator/common/config"
	"github.com/aig-studio/artist-image-generator/common/logger"
	"github.com/go-redis/redis/v8"
)

var RDB redis.Cmdable
var RedisEnabled = true

// ErrRedisNil reports a cache miss.
var ErrRedisNil = redis.Nil

// InitRedisClient connects when REDIS_CONN_STRING is set.
func InitRedisClient() (err error) {
	if config.RedisConnString == "" {
		RedisEnabled = false
		logger.SysLog("REDIS_CONN_STRING not set, Redis is not enabled")
		return nil
	}
	logger.SysLog("Redis is enabled")
	opt, err := redis.ParseURL(config.RedisConnString)
	if err != nil {
		logger.FatalLog("failed to parse Redis connection string: " + err.Error())
	}
	RDB = redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = RDB.Ping(ctx).Result()
	if err != nil {
		logger.FatalLog("Redis ping test failed: " + err.Error())
	}
	return err
}

func CloseRedisClient() error {
	if !RedisEnabled || RDB == nil {
		return nil
	}
	closer, ok := RDB.(interface{ Close() error })
	if !ok {
		return nil
	}
	return closer.Close()
}

func RedisSet(key string, value string, expiration time.Duration) error {
	ctx := context.Background()
	return RDB.Set(ctx, key, value, expiration).Err()
}

func RedisGet(key string) (string, error) {
	ctx := context.Background()
	return RDB.Get(ctx, key).Result()
}

func RedisDel(key string) error {
	ctx := context.Background()
	err := RDB.Del(ctx, key).Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}
