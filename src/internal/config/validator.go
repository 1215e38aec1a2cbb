package config

import (
	"customer-service/src/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

func NewValidator(_ *viper.Viper) *validator.Validate {
	return validation.New()
}
