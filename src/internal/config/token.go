package config

import (
	"customer-service/src/pkg/token"

	"github.com/spf13/viper"
)

func NewTokenIssuer(viper *viper.Viper) (*token.Issuer, error) {
	return token.NewIssuer(token.Config{
		Secret:    viper.GetString("jwt.secret"),
		Algorithm: viper.GetString("jwt.algorithm"),
		TTL:       viper.GetDuration("jwt.ttl"),
	})
}
