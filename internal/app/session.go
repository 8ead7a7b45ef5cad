package app

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/nexvox/internal/domain"
)

const DefaultSpeakerInterval = 3 * time.Second

type SessionConfig struct {
	SpeakerInterval time.Duration
	ToastTTL        time.Duration
	Breakpoint      int
}

// SpeakerSampler picks the roster indices that are currently speaking.
type SpeakerSampler interface {
	SampleSpeakers() []int
}

// RoomSession is the state of one mounted room view. It owns its controls,
// sidebar, toasts and the speaker refresh; Close tears all of them down.
type RoomSession struct {
	room     domain.Room
	Controls *RoomControls
	Sidebar  *SidebarController
	Toasts   *ToastQueue

	sched *Scheduler
	done  chan struct{}

	mu        sync.RWMutex
	speakers  []int
	listeners map[int]func(domain.Event)
	nextID    int
	closed    bool
}

func NewRoomSession(ctx context.Context, room domain.Room, sampler SpeakerSampler, cfg SessionConfig) *RoomSession {
	if cfg.SpeakerInterval <= 0 {
		cfg.SpeakerInterval = DefaultSpeakerInterval
	}
	s := &RoomSession{
		room:      room,
		Sidebar:   NewSidebarController(cfg.Breakpoint),
		listeners: make(map[int]func(domain.Event)),
		speakers:  []int{},
		done:      make(chan struct{}),
	}
	s.Toasts = NewToastQueue(cfg.ToastTTL, s.emit)
	s.Controls = NewRoomControls(s.Toasts)
	s.sched = StartScheduler(ctx, cfg.SpeakerInterval, func(context.Context) {
		s.setSpeakers(sampler.SampleSpeakers())
	})
	log.Info().Str("module", "app.session").Str("room", string(room.ID)).Msg("session mounted")
	return s
}

func (s *RoomSession) Room() domain.Room { return s.room }

func (s *RoomSession) ActiveSpeakers() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.speakers)
}

func (s *RoomSession) State() domain.SessionState {
	return domain.SessionState{
		RoomID:         s.room.ID,
		Muted:          s.Controls.Muted(),
		HandRaised:     s.Controls.HandRaised(),
		ActiveTab:      s.Sidebar.ActiveTab(),
		SidebarOpen:    s.Sidebar.Open(),
		ActiveSpeakers: s.ActiveSpeakers(),
		Toasts:         s.Toasts.List(),
	}
}

func (s *RoomSession) ToggleMicrophone() domain.SessionState {
	s.Controls.ToggleMicrophone()
	return s.stateChanged()
}

func (s *RoomSession) ToggleHandRaised() domain.SessionState {
	s.Controls.ToggleHandRaised()
	return s.stateChanged()
}

func (s *RoomSession) SetActiveTab(tab domain.Tab) (domain.SessionState, error) {
	if err := s.Sidebar.SetActiveTab(tab); err != nil {
		return s.State(), err
	}
	return s.stateChanged(), nil
}

func (s *RoomSession) SetViewport(width int) domain.SessionState {
	s.Sidebar.SetViewport(width)
	return s.stateChanged()
}

func (s *RoomSession) SetSidebarOpen(open bool) domain.SessionState {
	s.Sidebar.SetOpen(open)
	return s.stateChanged()
}

func (s *RoomSession) DismissToast(id string) bool {
	return s.Toasts.Dismiss(id)
}

// Subscribe registers fn for every event until the returned func is called
// or the session closes. fn runs on the emitting goroutine and must not block.
func (s *RoomSession) Subscribe(fn func(domain.Event)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return func() {}
	}
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Close stops the speaker refresh and toast timers. No event is delivered afterwards.
func (s *RoomSession) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.listeners = make(map[int]func(domain.Event))
	close(s.done)
	s.mu.Unlock()

	s.sched.Stop()
	s.Toasts.Close()
	log.Info().Str("module", "app.session").Str("room", string(s.room.ID)).Msg("session closed")
}

// Done is closed once the session is closed.
func (s *RoomSession) Done() <-chan struct{} { return s.done }

func (s *RoomSession) Closed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

func (s *RoomSession) setSpeakers(idx []int) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.speakers = idx
	s.mu.Unlock()
	s.emit(domain.Event{Type: domain.EventSpeakers, Speakers: slices.Clone(idx)})
}

func (s *RoomSession) stateChanged() domain.SessionState {
	st := s.State()
	s.emit(domain.Event{Type: domain.EventState, State: &st})
	return st
}

func (s *RoomSession) emit(ev domain.Event) {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return
	}
	fns := make([]func(domain.Event), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(ev)
	}
}
