package kafka

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"customer-service/src/pkg/log"

	"github.com/IBM/sarama"
)

type Producer interface {
	Publish(topic string, key, value []byte) error
	Close() error
}

type Cfg struct {
	KafkaUrl      string
	KafkaUsername string
	KafkaPassword string
	KafkaCaCert   string
	AppName       string
}

// Config builds the sarama client config; SASL/TLS is enabled only when a username is set.
func Config(cfg Cfg) (*sarama.Config, error) {
	c := sarama.NewConfig()
	c.ClientID = cfg.AppName
	c.Producer.Return.Successes = true
	c.Producer.RequiredAcks = sarama.WaitForAll
	c.Producer.Retry.Max = 3
	c.Producer.Retry.Backoff = 500 * time.Millisecond
	c.Net.DialTimeout = 5 * time.Second
	c.Net.WriteTimeout = 5 * time.Second

	if cfg.KafkaUsername != "" {
		c.Net.SASL.Enable = true
		c.Net.SASL.Mechanism = sarama.SASLTypePlaintext
		c.Net.SASL.User = cfg.KafkaUsername
		c.Net.SASL.Password = cfg.KafkaPassword
		c.Net.TLS.Enable = true
		tlsCfg := &tls.Config{MinVersion: tls.VersionTLS12}
		if cfg.KafkaCaCert != "" {
			pem, err := base64.StdEncoding.DecodeString(cfg.KafkaCaCert)
			if err != nil {
				return nil, fmt.Errorf("decode kafka ca cert: %w", err)
			}
			pool := x509.NewCertPool()
			if !pool.AppendCertsFromPEM(pem) {
				return nil, errors.New("kafka ca cert has no certificates")
			}
			tlsCfg.RootCAs = pool
		}
		c.Net.TLS.Config = tlsCfg
	}
	return c, nil
}

type syncProducer struct {
	producer sarama.SyncProducer
	log      log.Log
}

func NewProducer(cfg Cfg, logger log.Log) (Producer, error) {
	c, err := Config(cfg)
	if err != nil {
		return nil, err
	}
	brokers := strings.Split(cfg.KafkaUrl, ",")
	p, err := sarama.NewSyncProducer(brokers, c)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return NewProducerFrom(p, logger), nil
}

// NewProducerFrom wraps an existing sarama producer.
func NewProducerFrom(p sarama.SyncProducer, logger log.Log) Producer {
	return &syncProducer{producer: p, log: logger}
}

func (p *syncProducer) Publish(topic string, key, value []byte) error {
	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.ByteEncoder(key),
		Value: sarama.ByteEncoder(value),
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return err
	}
	p.log.Info("kafka-producer", fmt.Sprintf("delivered to %s[%d]@%d", topic, partition, offset), "Publish", string(key))
	return nil
}

func (p *syncProducer) Close() error {
	return p.producer.Close()
}
