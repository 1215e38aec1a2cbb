package messaging

import (
	"encoding/json"
	"errors"
	"testing"

	"customer-service/src/internal/model"
	kafka "customer-service/src/pkg/kafka/sarama"
	"customer-service/src/pkg/log"

	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerProducerSendRegistered(t *testing.T) {
	mock := mocks.NewSyncProducer(t, mocks.NewTestConfig())
	mock.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var event model.CustomerEvent
		if err := json.Unmarshal(val, &event); err != nil {
			return err
		}
		if event.Serial != "T1234567890" {
			return errors.New("unexpected serial " + event.Serial)
		}
		return nil
	})

	p := NewCustomerProducer(kafka.NewProducerFrom(mock, log.Discard()), log.Discard())
	require.NoError(t, p.SendRegistered(&model.CustomerEvent{EventID: "e1", CustomerID: 1, Serial: "T1234567890"}))
	require.NoError(t, mock.Close())
}

func TestWalletProducerPropagatesFailure(t *testing.T) {
	mock := mocks.NewSyncProducer(t, mocks.NewTestConfig())
	boom := errors.New("broker down")
	mock.ExpectSendMessageAndFail(boom)

	p := NewWalletProducer(kafka.NewProducerFrom(mock, log.Discard()), log.Discard())
	assert.ErrorIs(t, p.SendTransaction(&model.WalletTransactionEvent{EventID: "e2"}), boom)
	require.NoError(t, mock.Close())
}

func TestProducerDisabled(t *testing.T) {
	p := NewWalletProducer(nil, log.Discard())
	assert.NoError(t, p.SendTransaction(&model.WalletTransactionEvent{EventID: "e3"}))
	assert.Equal(t, TopicWalletTransaction, *p.TransactionProducer.GetTopic())
}
