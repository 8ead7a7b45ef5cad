package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidTab = errors.New("invalid tab")
	ErrNoSession  = errors.New("no active room session")
)

type Tab string

const (
	TabChat         Tab = "chat"
	TabParticipants Tab = "participants"
	TabSettings     Tab = "settings"
	TabProfile      Tab = "profile"
)

func (t Tab) Valid() bool {
	switch t {
	case TabChat, TabParticipants, TabSettings, TabProfile:
		return true
	}
	return false
}

// SessionState is the per-visit UI state of one mounted room view.
// Nothing here is persisted.
type SessionState struct {
	RoomID         RoomID  `json:"roomId"`
	Muted          bool    `json:"muted"`
	HandRaised     bool    `json:"handRaised"`
	ActiveTab      Tab     `json:"activeTab"`
	SidebarOpen    bool    `json:"sidebarOpen"`
	ActiveSpeakers []int   `json:"activeSpeakers"`
	Toasts         []Toast `json:"toasts"`
}

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

type Toast struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type EventType string

const (
	EventToastAdded     EventType = "toast_added"
	EventToastDismissed EventType = "toast_dismissed"
	EventSpeakers       EventType = "speakers"
	EventState          EventType = "state"
)

// Event is what a session pushes to its view.
type Event struct {
	Type     EventType     `json:"type"`
	Toast    *Toast        `json:"toast,omitempty"`
	State    *SessionState `json:"state,omitempty"`
	Speakers []int         `json:"speakers,omitempty"`
}
