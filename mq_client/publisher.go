package mq_client

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/zsmartex/coreledger/models"
	"github.com/zsmartex/coreledger/types"
)

type MessagePublisher interface {
	Publish(subject string, data []byte) error
}

type EventQueue interface {
	EnqueueEvent(kind string, id string, event string, payload []byte) error
}

type BalanceChangedMessage struct {
	AccountID int64              `json:"account_id"`
	OwnerID   int64              `json:"owner_id"`
	Kind      models.AccountKind `json:"kind"`
	Balance   decimal.Decimal    `json:"balance"`
	Version   int64              `json:"version"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// LedgerPublisher fans committed ledger events out to the bus: every event goes to nats, balance
// changes are also pushed to the owner's private ranger stream.
type LedgerPublisher struct {
	bus   MessagePublisher
	queue EventQueue
}

// NewLedgerPublisher accepts a nil queue when no broker is configured.
func NewLedgerPublisher(bus MessagePublisher, queue EventQueue) *LedgerPublisher {
	return &LedgerPublisher{bus: bus, queue: queue}
}

func (p *LedgerPublisher) TransactionCreated(ctx context.Context, event *models.TransactionCreatedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.bus.Publish(types.SubjectTransactionCreated, payload)
}

func (p *LedgerPublisher) BalanceChanged(ctx context.Context, account *models.Account) error {
	payload, err := json.Marshal(BalanceChangedMessage{
		AccountID: account.ID,
		OwnerID:   account.OwnerID,
		Kind:      account.Kind,
		Balance:   account.Balance,
		Version:   account.Version,
		UpdatedAt: account.UpdatedAt,
	})
	if err != nil {
		return err
	}

	if err := p.bus.Publish(types.SubjectBalanceChanged, payload); err != nil {
		return err
	}

	if p.queue == nil {
		return nil
	}

	return p.queue.EnqueueEvent("private", strconv.FormatInt(account.OwnerID, 10), "balance", payload)
}

// Dial builds the production publisher. Balance events still reach nats when the broker is down.
func Dial(bus MessagePublisher, logger logrus.FieldLogger) *LedgerPublisher {
	if err := Connect(); err != nil {
		logger.WithError(err).Warn("AMQP unavailable, balance events are published to nats only")
		return NewLedgerPublisher(bus, nil)
	}

	queue, err := openEventQueue()
	if err != nil {
		logger.WithError(err).Warn("AMQP exchange unavailable, balance events are published to nats only")
		return NewLedgerPublisher(bus, nil)
	}

	return NewLedgerPublisher(bus, queue)
}

func openEventQueue() (*AMQPQueue, error) {
	channel, err := GetChannel()
	if err != nil {
		return nil, err
	}

	exchange, err := GetExchange("events")
	if err != nil {
		return nil, err
	}

	return NewAMQPQueue(channel, exchange)
}
