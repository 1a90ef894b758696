package main

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/zsmartex/coreledger/config"
	"github.com/zsmartex/coreledger/jobs/cron"
	"github.com/zsmartex/coreledger/services/ledger_service"
	"github.com/zsmartex/coreledger/workers/daemons"
)

func CreateWorker(id string, ledger *ledger_service.LedgerService) daemons.Worker {
	switch id {
	case "cron_job":
		return daemons.NewCronJob(cron.NewReconcileJob(ledger, config.Ledger.Reconcile.At, config.Logger))
	default:
		return nil
	}
}

func main() {
	if err := config.LoadLedger(); err != nil {
		fmt.Println(err.Error())
		return
	}

	ledger := config.NewLedgerService(nil)

	var wg sync.WaitGroup
	workers := make([]daemons.Worker, 0)

	for _, id := range os.Args[1:] {
		worker := CreateWorker(id, ledger)
		if worker == nil {
			config.Logger.Errorf("Unknown daemon: %s", id)
			continue
		}

		config.Logger.Infof("Start ledger-daemon: %s", id)
		workers = append(workers, worker)

		wg.Add(1)
		go func() {
			defer wg.Done()
			worker.Start()
		}()
	}

	if len(workers) == 0 {
		return
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		config.Logger.Info("Stopping ledger-daemon")
		for _, worker := range workers {
			worker.Stop()
		}
	}()

	wg.Wait()
}
