package jobs

import (
	"context"
	"log"
	"time"
)

// JobProcessor is one periodic maintenance task.
type JobProcessor interface {
	ProcessJobs(ctx context.Context) error
}

// Worker drives a JobProcessor on a fixed interval until stopped. Errors
// from the processor are logged and the loop keeps running.
type Worker struct {
	processor JobProcessor
	interval  time.Duration
	quit      chan struct{}
	done      chan struct{}
}

func NewWorker(processor JobProcessor, interval time.Duration) *Worker {
	return &Worker{
		processor: processor,
		interval:  interval,
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start runs the polling loop. It returns when the context is cancelled
// or Stop is called.
func (w *Worker) Start(ctx context.Context) {
	defer close(w.done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.Printf("job worker running every %v", w.interval)

	for {
		select {
		case <-ctx.Done():
			log.Println("job worker stopped: context cancelled")
			return
		case <-w.quit:
			log.Println("job worker stopped")
			return
		case <-ticker.C:
			if err := w.processor.ProcessJobs(ctx); err != nil {
				log.Printf("job worker: %v", err)
			}
		}
	}
}

// Stop signals the loop to exit and waits for it to drain.
func (w *Worker) Stop() {
	close(w.quit)
	<-w.done
}
