package config

import (
	"context"
	"time"

	"customer-service/src/pkg/log"
	redisModule "customer-service/src/pkg/redis"
	"customer-service/src/pkg/throttle"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

func LoadRedisConfig(viper *viper.Viper) *redisModule.CfgRedis {
	return &redisModule.CfgRedis{
		Enabled:              viper.GetBool("redis.enabled"),
		UseCluster:           viper.GetString("redis.use_cluster") == "true",
		EnableTLS:            viper.GetBool("redis.tls"),
		RedisHost:            viper.GetString("redis.host"),
		RedisPort:            viper.GetString("redis.port"),
		RedisPassword:        viper.GetString("redis.password"),
		RedisDB:              viper.GetInt("redis.db"),
		RedisClusterNode:     viper.GetString("redis.cluster.node"),
		RedisClusterPassword: viper.GetString("redis.cluster.password"),
	}
}

// NewRedis returns nil when redis is disabled.
func NewRedis(viper *viper.Viper, log log.Log) (redis.UniversalClient, error) {
	cfg := LoadRedisConfig(viper)
	if !cfg.Enabled {
		log.Info("redis-config", "Redis is disabled in configuration", "redis", "")
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return redisModule.NewClient(ctx, cfg)
}

// NewLimiter counts failed logins in redis when a client is available, otherwise in process memory.
func NewLimiter(viper *viper.Viper, client redis.UniversalClient) throttle.Limiter {
	maxAttempts := viper.GetInt("auth.max_attempts")
	window := viper.GetDuration("auth.attempt_window")
	if client != nil {
		return throttle.NewRedisLimiter(client, maxAttempts, window)
	}
	return throttle.NewMemoryLimiter(maxAttempts, window)
}
