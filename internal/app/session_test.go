package app_test

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dkeye/nexvox/internal/app"
	"github.com/dkeye/nexvox/internal/domain"
)

type fixedSampler struct {
	calls atomic.Int32
	out   []int
}

func (f *fixedSampler) SampleSpeakers() []int {
	f.calls.Add(1)
	return slices.Clone(f.out)
}

func newSession(t *testing.T, sampler app.SpeakerSampler) *app.RoomSession {
	t.Helper()
	s := app.NewRoomSession(context.Background(), testRooms()[0], sampler, app.SessionConfig{
		SpeakerInterval: 5 * time.Millisecond,
		ToastTTL:        time.Hour,
		Breakpoint:      app.DefaultBreakpoint,
	})
	t.Cleanup(s.Close)
	return s
}

func TestSessionInitialState(t *testing.T) {
	s := newSession(t, &fixedSampler{out: []int{0}})
	st := s.State()
	if st.RoomID != "1" || st.Muted || st.HandRaised || st.ActiveTab != domain.TabChat || !st.SidebarOpen {
		t.Fatalf("unexpected initial state: %+v", st)
	}
}

func TestSessionRefreshesSpeakers(t *testing.T) {
	sampler := &fixedSampler{out: []int{1, 2}}
	s := newSession(t, sampler)
	eventually(t, time.Second, func() bool {
		return slices.Equal(s.ActiveSpeakers(), []int{1, 2})
	}, "speakers not refreshed")
	eventually(t, time.Second, func() bool { return sampler.calls.Load() >= 3 }, "refresh not periodic")
}

func TestSessionEvents(t *testing.T) {
	s := newSession(t, &fixedSampler{out: []int{0}})

	var mu sync.Mutex
	var got []domain.EventType
	unsubscribe := s.Subscribe(func(ev domain.Event) {
		if ev.Type == domain.EventSpeakers {
			return
		}
		mu.Lock()
		got = append(got, ev.Type)
		mu.Unlock()
	})

	st := s.ToggleMicrophone()
	if !st.Muted || len(st.Toasts) != 1 || st.Toasts[0].Severity != domain.SeverityWarning {
		t.Fatalf("state after toggle = %+v", st)
	}
	if _, err := s.SetActiveTab("nope"); err == nil {
		t.Fatal("expected invalid tab error")
	}
	s.SetViewport(500)
	if s.State().SidebarOpen {
		t.Fatal("narrow viewport left sidebar open")
	}
	if !s.DismissToast(st.Toasts[0].ID) {
		t.Fatal("DismissToast returned false")
	}

	unsubscribe()
	s.ToggleHandRaised()

	mu.Lock()
	defer mu.Unlock()
	want := []domain.EventType{
		domain.EventToastAdded, domain.EventState,
		domain.EventState,
		domain.EventToastDismissed,
	}
	if !slices.Equal(got, want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
}

func TestSessionCloseStopsEverything(t *testing.T) {
	sampler := &fixedSampler{out: []int{0}}
	s := app.NewRoomSession(context.Background(), testRooms()[0], sampler, app.SessionConfig{
		SpeakerInterval: 5 * time.Millisecond,
		ToastTTL:        10 * time.Millisecond,
	})
	var delivered atomic.Int32
	s.Subscribe(func(domain.Event) { delivered.Add(1) })
	s.ToggleMicrophone()
	eventually(t, time.Second, func() bool { return sampler.calls.Load() >= 2 }, "no refresh before close")

	select {
	case <-s.Done():
		t.Fatal("Done closed before Close")
	default:
	}
	s.Close()
	s.Close()
	if !s.Closed() {
		t.Fatal("Closed() = false")
	}
	select {
	case <-s.Done():
	default:
		t.Fatal("Done not closed by Close")
	}
	calls, events := sampler.calls.Load(), delivered.Load()
	time.Sleep(40 * time.Millisecond)
	if sampler.calls.Load() != calls {
		t.Fatal("speaker refresh kept running after Close")
	}
	if delivered.Load() != events {
		t.Fatal("events delivered after Close")
	}
	if len(s.State().Toasts) != 0 {
		t.Fatal("toasts survived Close")
	}
}
