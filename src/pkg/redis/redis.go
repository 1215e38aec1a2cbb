package redis

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

func tlsConfig(enabled bool) *tls.Config {
	if !enabled {
		return nil
	}
	return &tls.Config{
		MinVersion: tls.VersionTLS12,
	}
}

// NewClient returns a single-node or cluster client and pings it.
func NewClient(ctx context.Context, cfg *CfgRedis) (redis.UniversalClient, error) {
	var client redis.UniversalClient
	if !cfg.UseCluster {
		c := cfg.single()
		client = redis.NewClient(&redis.Options{
			Addr:         fmt.Sprintf("%s:%v", c.Host, c.Port),
			Password:     c.Password,
			DB:           c.DB,
			TLSConfig:    tlsConfig(c.EnableTLS),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			PoolSize:     10,
			MaxRetries:   2,
		})
	} else {
		c := cfg.cluster()
		if len(c.Hosts) == 0 {
			return nil, errors.New("redis cluster has no nodes")
		}
		client = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:        c.Hosts,
			Username:     c.Username,
			Password:     c.Password,
			TLSConfig:    tlsConfig(c.EnableTLS),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})
	}

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
