package app

import (
	"context"
	"sync"
	"time"
)

// Scheduler runs one task immediately and then on every tick until stopped.
type Scheduler struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

func StartScheduler(ctx context.Context, interval time.Duration, task func(context.Context)) *Scheduler {
	ctx, cancel := context.WithCancel(ctx)
	s := &Scheduler{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(s.done)
		task(ctx)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				task(ctx)
			}
		}
	}()
	return s
}

// Stop cancels the task and waits for the loop to exit. Safe to call twice.
func (s *Scheduler) Stop() {
	s.once.Do(s.cancel)
	<-s.done
}

// Done is closed once the loop has exited.
func (s *Scheduler) Done() <-chan struct{} { return s.done }
