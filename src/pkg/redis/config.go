package redis

import (
	"strings"
)

type CfgRedis struct {
	Enabled              bool
	UseCluster           bool
	EnableTLS            bool
	RedisHost            string
	RedisPort            string
	RedisPassword        string
	RedisDB              int
	RedisClusterNode     string
	RedisClusterPassword string
}

type RedisConfig struct {
	Host      string
	Port      string
	Password  string
	DB        int
	EnableTLS bool
}

type RedisClusterConfig struct {
	Hosts     []string
	Username  string
	Password  string
	EnableTLS bool
}

func (c *CfgRedis) single() RedisConfig {
	return RedisConfig{
		Host:      c.RedisHost,
		Port:      c.RedisPort,
		Password:  c.RedisPassword,
		DB:        c.RedisDB,
		EnableTLS: c.EnableTLS,
	}
}

// cluster nodes are separated by ";".
func (c *CfgRedis) cluster() RedisClusterConfig {
	var hosts []string
	for _, h := range strings.Split(c.RedisClusterNode, ";") {
		if h = strings.TrimSpace(h); h != "" {
			hosts = append(hosts, h)
		}
	}
	return RedisClusterConfig{
		Hosts:     hosts,
		Password:  c.RedisClusterPassword,
		EnableTLS: c.EnableTLS,
	}
}
