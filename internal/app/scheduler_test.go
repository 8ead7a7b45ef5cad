package app_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dkeye/nexvox/internal/app"
)

func TestSchedulerRunsUntilStopped(t *testing.T) {
	var runs atomic.Int32
	s := app.StartScheduler(context.Background(), 5*time.Millisecond, func(context.Context) {
		runs.Add(1)
	})
	eventually(t, time.Second, func() bool { return runs.Load() >= 3 }, "task did not repeat")

	s.Stop()
	s.Stop()
	after := runs.Load()
	time.Sleep(30 * time.Millisecond)
	if runs.Load() != after {
		t.Fatalf("task ran after Stop: %d -> %d", after, runs.Load())
	}
}

func TestSchedulerStopsWithParentContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := app.StartScheduler(ctx, time.Hour, func(context.Context) {})
	cancel()
	select {
	case <-s.Done():
	case <-time.After(time.Second):
		t.Fatal("scheduler ignored parent cancellation")
	}
}
