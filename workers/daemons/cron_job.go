package daemons

import (
	"sync"

	"github.com/zsmartex/coreledger/jobs"
)

type Worker interface {
	Start()
	Stop()
}

type CronJob struct {
	mu      sync.RWMutex
	running bool
	Jobs    []jobs.Job
	done    chan struct{}
	wg      sync.WaitGroup
}

func NewCronJob(jobs ...jobs.Job) *CronJob {
	return &CronJob{running: true, Jobs: jobs, done: make(chan struct{})}
}

func (c *CronJob) Running() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.running
}

// Stop marks the daemon stopped and stops every job, their schedulers included.
func (c *CronJob) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.running = false
	c.mu.Unlock()

	for _, job := range c.Jobs {
		job.Stop()
	}

	close(c.done)
}

// Start runs every job in its own goroutine and blocks until Stop is called and every job has returned.
func (c *CronJob) Start() {
	for _, job := range c.Jobs {
		c.wg.Add(1)
		go func(job jobs.Job) {
			defer c.wg.Done()
			c.Process(job)
		}(job)
	}

	<-c.done
	c.wg.Wait()
}

// Process keeps a job alive: a job that returns is started again while the daemon runs.
func (c *CronJob) Process(job jobs.Job) {
	for c.Running() {
		job.Process()
	}
}
