package cron

import (
	"context"
	"sync"
	"time"

	"github.com/jasonlvhit/gocron"
	"github.com/sirupsen/logrus"

	"github.com/zsmartex/coreledger/services/ledger_service"
)

type Reconciler interface {
	Reconcile(ctx context.Context) ([]*ledger_service.Drift, error)
}

// ReconcileJob compares every stored balance with its journal once a day.
type ReconcileJob struct {
	reconciler Reconciler
	at         string
	timeout    time.Duration
	logger     logrus.FieldLogger

	quit chan struct{}
	stop sync.Once
}

func NewReconcileJob(reconciler Reconciler, at string, logger logrus.FieldLogger) *ReconcileJob {
	return &ReconcileJob{
		reconciler: reconciler,
		at:         at,
		timeout:    30 * time.Minute,
		logger:     logger,
		quit:       make(chan struct{}),
	}
}

// Process schedules the daily pass and blocks until Stop.
func (j *ReconcileJob) Process() {
	select {
	case <-j.quit:
		return
	default:
	}

	s := gocron.NewScheduler()
	s.Every(1).Day().At(j.at).Do(j.Run)
	stopped := s.Start()

	<-j.quit

	s.Clear()
	stopped <- true
}

func (j *ReconcileJob) Stop() {
	j.stop.Do(func() {
		close(j.quit)
	})
}

// Run performs a single reconciliation pass and returns the number of drifted accounts.
func (j *ReconcileJob) Run() int {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	started_at := time.Now()

	drifts, err := j.reconciler.Reconcile(ctx)
	if err != nil {
		j.logger.WithError(err).Error("Balance reconciliation failed")
		return 0
	}

	logger := j.logger.WithFields(logrus.Fields{
		"drifts":   len(drifts),
		"duration": time.Since(started_at).String(),
	})

	if len(drifts) > 0 {
		logger.Warn("Balance reconciliation found drifted accounts")
	} else {
		logger.Info("Balance reconciliation finished")
	}

	return len(drifts)
}
