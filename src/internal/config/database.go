package config

import (
	"customer-service/src/pkg/databases/rdbms"
	"customer-service/src/pkg/log"

	"github.com/spf13/viper"
)

func NewDatabase(viper *viper.Viper, log log.Log) (rdbms.DBInterface, error) {
	db, err := rdbms.InitConnection(viper, log)
	if err != nil {
		log.Error("database init", err.Error(), "config", viper.GetString("database.driver"))
		return nil, err
	}

	return db, nil
}
