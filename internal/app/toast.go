package app

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dkeye/nexvox/internal/domain"
)

const DefaultToastTTL = 5 * time.Second

// ToastQueue holds live notifications and removes each one after its TTL.
// onEvent, if set, is called outside the queue lock for every add and removal.
type ToastQueue struct {
	ttl     time.Duration
	onEvent func(domain.Event)

	mu     sync.Mutex
	toasts []domain.Toast
	timers map[string]*time.Timer
	closed bool
}

func NewToastQueue(ttl time.Duration, onEvent func(domain.Event)) *ToastQueue {
	if ttl <= 0 {
		ttl = DefaultToastTTL
	}
	return &ToastQueue{
		ttl:     ttl,
		onEvent: onEvent,
		timers:  make(map[string]*time.Timer),
	}
}

// Notify implements core.Notifier. After Close the toast is returned but not queued.
func (q *ToastQueue) Notify(message string, severity domain.Severity) domain.Toast {
	now := time.Now()
	t := domain.Toast{
		ID:        uuid.NewString(),
		Message:   message,
		Severity:  severity,
		CreatedAt: now,
		ExpiresAt: now.Add(q.ttl),
	}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return t
	}
	q.toasts = append(q.toasts, t)
	q.timers[t.ID] = time.AfterFunc(q.ttl, func() { q.Dismiss(t.ID) })
	q.mu.Unlock()

	q.emit(domain.Event{Type: domain.EventToastAdded, Toast: &t})
	return t
}

// Dismiss removes a toast early. It reports false if the toast is already gone.
func (q *ToastQueue) Dismiss(id string) bool {
	q.mu.Lock()
	idx := -1
	for i, t := range q.toasts {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		q.mu.Unlock()
		return false
	}
	t := q.toasts[idx]
	q.toasts = append(q.toasts[:idx], q.toasts[idx+1:]...)
	if timer, ok := q.timers[id]; ok {
		timer.Stop()
		delete(q.timers, id)
	}
	q.mu.Unlock()

	q.emit(domain.Event{Type: domain.EventToastDismissed, Toast: &t})
	return true
}

func (q *ToastQueue) List() []domain.Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]domain.Toast{}, q.toasts...)
}

// Close stops every pending expiry timer and drops the queued toasts.
func (q *ToastQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	for id, timer := range q.timers {
		timer.Stop()
		delete(q.timers, id)
	}
	q.toasts = nil
}

func (q *ToastQueue) emit(ev domain.Event) {
	if q.onEvent != nil {
		q.onEvent(ev)
	}
}
