package mq_client

import (
	"context"
	"encoding/json"
	"errors"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null"

	"github.com/zsmartex/coreledger/models"
	"github.com/zsmartex/coreledger/types"
)

type message struct {
	subject string
	data    []byte
}

type fakeBus struct {
	messages []message
	err      error
}

func (b *fakeBus) Publish(subject string, data []byte) error {
	if b.err != nil {
		return b.err
	}

	b.messages = append(b.messages, message{subject: subject, data: data})
	return nil
}

type fakeQueue struct {
	routing_keys []string
}

func (q *fakeQueue) EnqueueEvent(kind string, id string, event string, payload []byte) error {
	q.routing_keys = append(q.routing_keys, kind+"."+id+"."+event)
	return nil
}

func TestTransactionCreatedGoesToBus(t *testing.T) {
	bus := &fakeBus{}
	queue := &fakeQueue{}
	publisher := NewLedgerPublisher(bus, queue)

	err := publisher.TransactionCreated(context.Background(), &models.TransactionCreatedEvent{
		TransactionID: 9,
		Description:   "Order payment for jet order #5",
		Category:      models.CategoryOrderPayment,
		TotalAmount:   models.MustMoney("80"),
		OrderID:       null.Int64From(5),
	})
	require.NoError(t, err)

	require.Len(t, bus.messages, 1)
	assert.Equal(t, types.SubjectTransactionCreated, bus.messages[0].subject)
	assert.Empty(t, queue.routing_keys)

	var decoded models.TransactionCreatedEvent
	require.NoError(t, json.Unmarshal(bus.messages[0].data, &decoded))
	assert.EqualValues(t, 9, decoded.TransactionID)
	assert.True(t, models.MustMoney("80").Equal(decoded.TotalAmount))
	assert.Equal(t, null.Int64From(5), decoded.OrderID)
}

func TestBalanceChangedGoesToOwnerStream(t *testing.T) {
	bus := &fakeBus{}
	queue := &fakeQueue{}
	publisher := NewLedgerPublisher(bus, queue)

	err := publisher.BalanceChanged(context.Background(), &models.Account{
		ID:      3,
		OwnerID: 42,
		Kind:    models.KindWallet,
		Balance: decimal.RequireFromString("60"),
	})
	require.NoError(t, err)

	require.Len(t, bus.messages, 1)
	assert.Equal(t, types.SubjectBalanceChanged, bus.messages[0].subject)
	assert.Equal(t, []string{"private.42.balance"}, queue.routing_keys)

	var decoded BalanceChangedMessage
	require.NoError(t, json.Unmarshal(bus.messages[0].data, &decoded))
	assert.EqualValues(t, 42, decoded.OwnerID)
	assert.True(t, decimal.NewFromInt(60).Equal(decoded.Balance))
}

func TestPublisherErrors(t *testing.T) {
	broken := errors.New("nats: connection closed")
	publisher := NewLedgerPublisher(&fakeBus{err: broken}, nil)

	err := publisher.BalanceChanged(context.Background(), &models.Account{ID: 1, OwnerID: 1, Kind: models.KindRevenue})
	assert.ErrorIs(t, err, broken)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// events describe committed work, a gone caller does not stop them
	bus := &fakeBus{}
	publisher = NewLedgerPublisher(bus, nil)
	assert.NoError(t, publisher.TransactionCreated(ctx, &models.TransactionCreatedEvent{TransactionID: 4}))
	assert.NoError(t, publisher.BalanceChanged(ctx, &models.Account{ID: 1, OwnerID: 1, Kind: models.KindRevenue}))
	assert.Len(t, bus.messages, 2)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "amqp.yml")
	require.NoError(t, ioutil.WriteFile(path, []byte(`
exchange:
  events:
    name: coreledger.events.ranger
    type: topic
queue:
  transaction_recorder:
    name: coreledger.transaction.recorder
    durable: true
binding:
  transaction_recorder:
    queue: transaction_recorder
    exchange: events
channel:
  transaction_recorder:
    prefetch: 10
`), 0o600))

	require.NoError(t, LoadConfig(path))

	assert.Equal(t, 10, GetPrefetchCount("transaction_recorder"))
	assert.Equal(t, 0, GetPrefetchCount("unknown"))

	queue, err := GetBindingQueue("transaction_recorder")
	require.NoError(t, err)
	assert.Equal(t, "coreledger.transaction.recorder", queue.Name)
	assert.True(t, queue.Durable)

	exchange, err := GetExchange("events")
	require.NoError(t, err)
	assert.Equal(t, "topic", exchange.Type)

	_, err = GetBindingQueue("matching")
	assert.Error(t, err)

	_, err = GetExchange("orderbook")
	assert.Error(t, err)
}
