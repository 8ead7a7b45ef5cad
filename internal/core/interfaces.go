package core

import (
	"errors"

	"github.com/dkeye/nexvox/internal/domain"
)

// SessionID identifies one client (browser) across requests.
type SessionID string

// Storage keys. Values are JSON documents.
const (
	UserKey  = "nexvox_user"
	RoomsKey = "nexvoxRooms"
)

var (
	// ErrQuotaExceeded is returned by a KVStore that refuses a write for size reasons.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	ErrStorageClosed = errors.New("storage closed")
)

// KVStore is durable key-value storage in the manner of browser local storage.
// Get reports ok=false for a missing key; it is not an error.
type KVStore interface {
	Get(key string) (value []byte, ok bool, err error)
	Set(key string, value []byte) error
}

// Notifier receives user-facing notifications.
type Notifier interface {
	Notify(message string, severity domain.Severity) domain.Toast
}

// RoomSource lists the rooms a lookup may resolve against.
type RoomSource interface {
	Rooms() []domain.Room
}

// StaticRooms is a RoomSource over a fixed slice.
type StaticRooms []domain.Room

func (s StaticRooms) Rooms() []domain.Room {
	out := make([]domain.Room, len(s))
	copy(out, s)
	return out
}
