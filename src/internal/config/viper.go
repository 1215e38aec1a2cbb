package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// NewViper reads config.yaml when present and lets environment variables override any key
// (database.host -> DATABASE_HOST). A .env file is loaded first if one exists.
func NewViper() *viper.Viper {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	_ = v.ReadInConfig()
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "CUSTOMER_SERVICE")
	v.SetDefault("log.level", "INFO")
	v.SetDefault("web.port", 8080)
	v.SetDefault("web.prefork", false)
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.pool.idle", 10)
	v.SetDefault("database.pool.max", 50)
	v.SetDefault("database.pool.lifetime", 5*time.Minute)
	v.SetDefault("jwt.algorithm", "HS256")
	v.SetDefault("jwt.ttl", 30*24*time.Hour)
	v.SetDefault("auth.max_attempts", 5)
	v.SetDefault("auth.attempt_window", 15*time.Minute)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("kafka.producer.enabled", false)
}
