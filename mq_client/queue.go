package mq_client

import (
	"sync"

	"github.com/streadway/amqp"
)

var Connection *amqp.Connection

var (
	channel_mu  sync.Mutex
	AMQPChannel *amqp.Channel
)

func Connect() error {
	cn, err := CreateAMQP()
	if err != nil {
		return err
	}

	Connection = cn

	return nil
}

func GetChannel() (*amqp.Channel, error) {
	channel_mu.Lock()
	defer channel_mu.Unlock()

	if AMQPChannel != nil {
		return AMQPChannel, nil
	}

	channel, err := Connection.Channel()
	if err != nil {
		return nil, err
	}

	AMQPChannel = channel

	return AMQPChannel, nil
}

// AMQPQueue publishes ranger events on a topic exchange.
type AMQPQueue struct {
	channel  *amqp.Channel
	exchange Exchange
}

func NewAMQPQueue(channel *amqp.Channel, exchange Exchange) (*AMQPQueue, error) {
	if err := channel.ExchangeDeclare(exchange.Name, exchange.Type, true, false, false, false, nil); err != nil {
		return nil, err
	}

	return &AMQPQueue{channel: channel, exchange: exchange}, nil
}

// EnqueueEvent routes payload as kind.id.event, e.g. private.42.balance.
func (q *AMQPQueue) EnqueueEvent(kind string, id string, event string, payload []byte) error {
	routing_key := kind + "." + id + "." + event

	return q.channel.Publish(
		q.exchange.Name,
		routing_key,
		false,
		false,
		amqp.Publishing{
			Headers:      amqp.Table{},
			ContentType:  "application/json",
			Body:         payload,
			DeliveryMode: amqp.Persistent,
		},
	)
}
