package app

import (
	"sync"

	"github.com/dkeye/nexvox/internal/core"
	"github.com/dkeye/nexvox/internal/domain"
)

// RoomControls holds the mute and hand-raise toggles of one room visit.
// Every call flips the state; nothing here is idempotent.
type RoomControls struct {
	notifier core.Notifier

	mu         sync.Mutex
	muted      bool
	handRaised bool
}

func NewRoomControls(n core.Notifier) *RoomControls {
	return &RoomControls{notifier: n}
}

// ToggleMicrophone flips muted and returns the new value.
func (c *RoomControls) ToggleMicrophone() bool {
	c.mu.Lock()
	c.muted = !c.muted
	muted := c.muted
	c.mu.Unlock()

	if muted {
		c.notifier.Notify("Microphone muted", domain.SeverityWarning)
	} else {
		c.notifier.Notify("Microphone activated", domain.SeveritySuccess)
	}
	return muted
}

// ToggleHandRaised flips handRaised and returns the new value.
func (c *RoomControls) ToggleHandRaised() bool {
	c.mu.Lock()
	c.handRaised = !c.handRaised
	raised := c.handRaised
	c.mu.Unlock()

	if raised {
		c.notifier.Notify("Hand raised", domain.SeveritySuccess)
	} else {
		c.notifier.Notify("Hand lowered", domain.SeveritySuccess)
	}
	return raised
}

func (c *RoomControls) Muted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.muted
}

func (c *RoomControls) HandRaised() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handRaised
}
