package messaging

import (
	"customer-service/src/internal/model"
	kafka "customer-service/src/pkg/kafka/sarama"
	"customer-service/src/pkg/log"
)

const (
	TopicCustomerRegistered = "customer-registered"
	TopicWalletTransaction  = "wallet-transaction"
)

type CustomerProducer struct {
	RegisteredProducer Producer[*model.CustomerEvent]
}

func NewCustomerProducer(producer kafka.Producer, log log.Log) *CustomerProducer {
	return &CustomerProducer{
		RegisteredProducer: Producer[*model.CustomerEvent]{
			Producer: producer,
			Topic:    TopicCustomerRegistered,
			Log:      log,
		},
	}
}

func (u *CustomerProducer) SendRegistered(event *model.CustomerEvent) error {
	return u.RegisteredProducer.Send(event)
}

type WalletProducer struct {
	TransactionProducer Producer[*model.WalletTransactionEvent]
}

func NewWalletProducer(producer kafka.Producer, log log.Log) *WalletProducer {
	return &WalletProducer{
		TransactionProducer: Producer[*model.WalletTransactionEvent]{
			Producer: producer,
			Topic:    TopicWalletTransaction,
			Log:      log,
		},
	}
}

func (u *WalletProducer) SendTransaction(event *model.WalletTransactionEvent) error {
	return u.TransactionProducer.Send(event)
}
