package email

import (
	"log"
	"sync"
	"time"
)

// Dispatcher runs email jobs on a background goroutine with a bounded retry
// policy. Enqueue never blocks the request path: when the buffer is full the
// job is dropped and logged. Primary persistence must never wait on email.
type Dispatcher struct {
	jobs        chan job
	wg          sync.WaitGroup
	maxAttempts int
	backoff     time.Duration
}

type job struct {
	name string
	run  func() error
}

func NewDispatcher(buffer, maxAttempts int, backoff time.Duration) *Dispatcher {
	d := &Dispatcher{
		jobs:        make(chan job, buffer),
		maxAttempts: maxAttempts,
		backoff:     backoff,
	}

	d.wg.Add(1)
	go d.work()
	return d
}

func (d *Dispatcher) work() {
	defer d.wg.Done()
	for j := range d.jobs {
		var err error
		for attempt := 1; attempt <= d.maxAttempts; attempt++ {
			if err = j.run(); err == nil {
				break
			}
			log.Printf("email job %q attempt %d/%d failed: %v", j.name, attempt, d.maxAttempts, err)
			if attempt < d.maxAttempts {
				time.Sleep(d.backoff)
			}
		}
		if err != nil {
			log.Printf("email job %q dropped after %d attempts: %v", j.name, d.maxAttempts, err)
		}
	}
}

// Enqueue hands a job to the worker. Returns immediately in all cases.
func (d *Dispatcher) Enqueue(name string, run func() error) {
	select {
	case d.jobs <- job{name: name, run: run}:
	default:
		log.Printf("email queue full, dropping job %q", name)
	}
}

// Close drains the queue and stops the worker. Enqueue must not be called
// after Close.
func (d *Dispatcher) Close() {
	close(d.jobs)
	d.wg.Wait()
}
