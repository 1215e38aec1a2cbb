package kafka

import (
	"encoding/base64"
	"errors"
	"testing"

	"customer-service/src/pkg/log"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigPlain(t *testing.T) {
	c, err := Config(Cfg{KafkaUrl: "localhost:9092", AppName: "customer-service"})
	require.NoError(t, err)
	assert.True(t, c.Producer.Return.Successes)
	assert.False(t, c.Net.SASL.Enable)
	assert.Equal(t, "customer-service", c.ClientID)
}

func TestConfigSASL(t *testing.T) {
	c, err := Config(Cfg{KafkaUsername: "u", KafkaPassword: "p"})
	require.NoError(t, err)
	assert.True(t, c.Net.SASL.Enable)
	assert.True(t, c.Net.TLS.Enable)
	assert.Equal(t, sarama.SASLMechanism(sarama.SASLTypePlaintext), c.Net.SASL.Mechanism)

	_, err = Config(Cfg{KafkaUsername: "u", KafkaCaCert: "%%%"})
	assert.Error(t, err)

	_, err = Config(Cfg{KafkaUsername: "u", KafkaCaCert: base64.StdEncoding.EncodeToString([]byte("no pem here"))})
	assert.Error(t, err)
}

func TestPublish(t *testing.T) {
	mock := mocks.NewSyncProducer(t, mocks.NewTestConfig())
	mock.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		if string(val) != `{"id":"1"}` {
			return errors.New("unexpected value")
		}
		return nil
	})
	mock.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewProducerFrom(mock, log.Discard())
	require.NoError(t, p.Publish("customer-registered", []byte("1"), []byte(`{"id":"1"}`)))
	assert.ErrorIs(t, p.Publish("customer-registered", []byte("2"), []byte(`{}`)), sarama.ErrOutOfBrokers)
	require.NoError(t, p.Close())
}
