package config

import (
	kafkaPkgSarama "customer-service/src/pkg/kafka/sarama"
	"customer-service/src/pkg/log"

	"github.com/spf13/viper"
)

func NewKafkaConfig(viper *viper.Viper) kafkaPkgSarama.Cfg {
	return kafkaPkgSarama.Cfg{
		KafkaUrl:      viper.GetString("kafka.bootstrap.servers"),
		KafkaUsername: viper.GetString("kafka.username"),
		KafkaPassword: viper.GetString("kafka.password"),
		KafkaCaCert:   viper.GetString("kafka.cacert"),
		AppName:       viper.GetString("kafka.app.name"),
	}
}

// NewKafkaProducer returns nil when the producer is disabled; event publishing is then skipped.
func NewKafkaProducer(config *viper.Viper, log log.Log) (kafkaPkgSarama.Producer, error) {
	if !config.GetBool("kafka.producer.enabled") {
		log.Info("kafka-config", "Kafka producer is disabled in configuration", "kafka", "")
		return nil, nil
	}
	kafkaProducer, err := kafkaPkgSarama.NewProducer(NewKafkaConfig(config), log)
	if err != nil {
		return nil, err
	}

	return kafkaProducer, nil
}
