package app

import (
	"github.com/dkeye/nexvox/internal/core"
	"github.com/dkeye/nexvox/internal/domain"
)

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	DropEvent
	Disconnect
)

// Policy decides what happens when a subscriber cannot keep up with its session's events.
type Policy interface {
	OnBackPressure(sid core.SessionID, ev domain.Event) BackpressureAction
}

// SimplePolicy drops state and speaker events, since the next one supersedes them,
// and disconnects a client that would miss a toast so it resyncs on reconnect.
type SimplePolicy struct{}

func (SimplePolicy) OnBackPressure(_ core.SessionID, ev domain.Event) BackpressureAction {
	switch ev.Type {
	case domain.EventState, domain.EventSpeakers:
		return DropEvent
	default:
		return Disconnect
	}
}
