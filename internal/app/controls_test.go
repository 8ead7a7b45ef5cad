package app_test

import (
	"testing"

	"github.com/dkeye/nexvox/internal/app"
	"github.com/dkeye/nexvox/internal/domain"
)

func TestToggleMicrophoneTwice(t *testing.T) {
	n := &recordingNotifier{}
	c := app.NewRoomControls(n)
	start := c.Muted()

	if got := c.ToggleMicrophone(); got == start {
		t.Fatal("first toggle did not flip muted")
	}
	if got := c.ToggleMicrophone(); got != start {
		t.Fatal("second toggle did not restore muted")
	}

	want := []note{
		{"Microphone muted", domain.SeverityWarning},
		{"Microphone activated", domain.SeveritySuccess},
	}
	if len(n.notes) != len(want) {
		t.Fatalf("got %d notifications, want %d", len(n.notes), len(want))
	}
	for i := range want {
		if n.notes[i] != want[i] {
			t.Errorf("notification %d = %+v, want %+v", i, n.notes[i], want[i])
		}
	}
}

func TestToggleHandRaised(t *testing.T) {
	n := &recordingNotifier{}
	c := app.NewRoomControls(n)

	if !c.ToggleHandRaised() || !c.HandRaised() {
		t.Fatal("hand not raised")
	}
	if c.ToggleHandRaised() || c.HandRaised() {
		t.Fatal("hand not lowered")
	}
	if len(n.notes) != 2 {
		t.Fatalf("got %d notifications", len(n.notes))
	}
	for _, nt := range n.notes {
		if nt.Severity != domain.SeveritySuccess {
			t.Errorf("severity = %q, want success", nt.Severity)
		}
	}
	if n.notes[0].Message != "Hand raised" || n.notes[1].Message != "Hand lowered" {
		t.Errorf("messages = %+v", n.notes)
	}
}
