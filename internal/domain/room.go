package domain

import "errors"

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomNameEmpty   = errors.New("room name empty")
	ErrRoomNameTooLong = errors.New("room name too long")
	ErrInvalidRoomType = errors.New("invalid room type")
	ErrInvalidCapacity = errors.New("invalid max participants")
)

const (
	MaxRoomNameLen         = 64
	DefaultMaxParticipants = 10
)

type RoomID string

type RoomType string

const (
	RoomMusic        RoomType = "music"
	RoomConversation RoomType = "conversation"
	RoomGaming       RoomType = "gaming"
	RoomChill        RoomType = "chill"
)

func (t RoomType) Valid() bool {
	switch t {
	case RoomMusic, RoomConversation, RoomGaming, RoomChill:
		return true
	}
	return false
}

type Room struct {
	ID               RoomID   `json:"id"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	ParticipantCount int      `json:"participantCount"`
	Type             RoomType `json:"type"`
	IsPrivate        bool     `json:"isPrivate"`
	MaxParticipants  int      `json:"maxParticipants,omitempty"`
	Code             string   `json:"code,omitempty"`
}

// CreateRoomRequest is what a user fills in to open a new room.
type CreateRoomRequest struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	MaxParticipants int      `json:"maxParticipants"`
	IsPublic        bool     `json:"isPublic"`
	Type            RoomType `json:"type"`
}

func (r *CreateRoomRequest) Normalize() error {
	if r.Name == "" {
		return ErrRoomNameEmpty
	}
	if len(r.Name) > MaxRoomNameLen {
		return ErrRoomNameTooLong
	}
	if !r.Type.Valid() {
		return ErrInvalidRoomType
	}
	if r.MaxParticipants == 0 {
		r.MaxParticipants = DefaultMaxParticipants
	}
	if r.MaxParticipants < 0 {
		return ErrInvalidCapacity
	}
	return nil
}
