package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/zsmartex/coreledger/config"
	"github.com/zsmartex/coreledger/mq_client"
	"github.com/zsmartex/coreledger/types"
	"github.com/zsmartex/coreledger/workers/engines"
)

func CreateWorker(id string) (engines.Worker, string) {
	switch id {
	case "transaction_recorder":
		return engines.NewTransactionRecorderWorker(config.InfluxDB), types.SubjectTransactionCreated
	case "balance_cache":
		return engines.NewBalanceCacheWorker(config.Redis), types.SubjectBalanceChanged
	default:
		return nil, ""
	}
}

func run(id string, worker engines.Worker, sub *nats.Subscription) {
	for {
		m, err := sub.NextMsg(1 * time.Second)
		if err == nats.ErrTimeout {
			continue
		}
		if err != nil {
			config.Logger.Errorf("Worker %s stopped: %v", id, err)
			return
		}

		if err := worker.Process(m.Data); err != nil {
			config.Logger.Errorf("Worker %s error: %v", id, err)
		}
	}
}

func main() {
	if err := config.InitializeConfig(); err != nil {
		fmt.Println(err.Error())
		return
	}

	if err := mq_client.LoadConfig("config/amqp.yml"); err != nil {
		config.Logger.Fatalf("Failed to load amqp config: %v", err)
	}

	var wg sync.WaitGroup

	for _, id := range os.Args[1:] {
		worker, subject := CreateWorker(id)
		if worker == nil {
			config.Logger.Errorf("Unknown worker: %s", id)
			continue
		}

		queue, err := mq_client.GetBindingQueue(id)
		if err != nil {
			config.Logger.Fatalf("Queue for %s: %v", id, err)
		}

		sub, err := config.Nats.QueueSubscribeSync(subject, queue.Name)
		if err != nil {
			config.Logger.Fatalf("Subscribe %s: %v", id, err)
		}

		if prefetch := mq_client.GetPrefetchCount(id); prefetch > 0 {
			sub.SetPendingLimits(prefetch, -1)
		}

		config.Logger.Infof("Start ledger-engine: %s", id)

		wg.Add(1)
		go func(id string, worker engines.Worker, sub *nats.Subscription) {
			defer wg.Done()
			run(id, worker, sub)
		}(id, worker, sub)
	}

	wg.Wait()
}
