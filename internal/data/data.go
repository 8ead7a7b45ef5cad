// Package data ships the default room list and user roster.
package data

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dkeye/nexvox/internal/domain"
)

var (
	//go:embed rooms.json
	roomsJSON []byte
	//go:embed users.json
	usersJSON []byte
)

// Rooms returns the room list at path, or the embedded one when path is empty.
func Rooms(path string) ([]domain.Room, error) {
	raw, err := load(path, roomsJSON)
	if err != nil {
		return nil, err
	}
	var rooms []domain.Room
	if err := json.Unmarshal(raw, &rooms); err != nil {
		return nil, fmt.Errorf("decode rooms: %w", err)
	}
	seen := make(map[domain.RoomID]struct{}, len(rooms))
	for _, r := range rooms {
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("duplicate room id %q", r.ID)
		}
		if r.ParticipantCount < 0 {
			return nil, fmt.Errorf("room %q: negative participant count", r.ID)
		}
		if !r.Type.Valid() {
			return nil, fmt.Errorf("room %q: %w", r.ID, domain.ErrInvalidRoomType)
		}
		seen[r.ID] = struct{}{}
	}
	return rooms, nil
}

// Users returns the roster at path, or the embedded one when path is empty.
func Users(path string) ([]domain.User, error) {
	raw, err := load(path, usersJSON)
	if err != nil {
		return nil, err
	}
	var users []domain.User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	for _, u := range users {
		if !u.Status.Valid() {
			return nil, fmt.Errorf("user %q: %w", u.ID, domain.ErrInvalidStatus)
		}
	}
	return users, nil
}

func load(path string, fallback []byte) ([]byte, error) {
	if path == "" {
		return fallback, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return raw, nil
}
