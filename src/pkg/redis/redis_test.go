package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClusterNodes(t *testing.T) {
	cfg := &CfgRedis{RedisClusterNode: "a:7000; b:7001;;", RedisClusterPassword: "pw", EnableTLS: true}
	c := cfg.cluster()
	assert.Equal(t, []string{"a:7000", "b:7001"}, c.Hosts)
	assert.Equal(t, "pw", c.Password)
	assert.True(t, c.EnableTLS)
}

func TestSingle(t *testing.T) {
	cfg := &CfgRedis{RedisHost: "localhost", RedisPort: "6379", RedisDB: 2}
	c := cfg.single()
	assert.Equal(t, "localhost", c.Host)
	assert.Equal(t, 2, c.DB)
	assert.False(t, c.EnableTLS)
	assert.Nil(t, tlsConfig(c.EnableTLS))
}
