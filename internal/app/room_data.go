package app

import (
	"context"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/nexvox/internal/core"
	"github.com/dkeye/nexvox/internal/domain"
)

const MaxActiveSpeakers = 3

// RoomDataService resolves rooms and serves the user roster.
// Both come from read-only datasets; lookups wait out a simulated network latency.
type RoomDataService struct {
	rooms   core.RoomSource
	users   []domain.User
	latency time.Duration
	rng     *lockedRand
}

// NewRoomDataService takes ownership of users. rng may be nil.
func NewRoomDataService(rooms core.RoomSource, users []domain.User, latency time.Duration, rng *rand.Rand) *RoomDataService {
	return &RoomDataService{
		rooms:   rooms,
		users:   users,
		latency: latency,
		rng:     newLockedRand(rng),
	}
}

// Resolve finds the room with exactly this id. It returns ctx.Err() if ctx
// is done before the simulated latency elapses.
func (s *RoomDataService) Resolve(ctx context.Context, id domain.RoomID) (domain.Room, error) {
	if s.latency > 0 {
		t := time.NewTimer(s.latency)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return domain.Room{}, ctx.Err()
		case <-t.C:
		}
	}
	for _, r := range s.rooms.Rooms() {
		if r.ID == id {
			return r, nil
		}
	}
	log.Debug().Str("module", "app.roomdata").Str("room", string(id)).Msg("room not found")
	return domain.Room{}, domain.ErrRoomNotFound
}

func (s *RoomDataService) ListUsers() []domain.User {
	out := make([]domain.User, len(s.users))
	for i, u := range s.users {
		out[i] = u.Clone()
	}
	return out
}

// SampleSpeakers picks between one and MaxActiveSpeakers roster indices.
// Duplicate draws are retried a bounded number of times, so the result can
// hold fewer indices than the drawn count.
func (s *RoomDataService) SampleSpeakers() []int {
	n := len(s.users)
	if n == 0 {
		return []int{}
	}
	count := s.rng.IntN(MaxActiveSpeakers) + 1
	picked := make(map[int]struct{}, count)
	for attempts := 0; len(picked) < count && attempts < 2*count; attempts++ {
		picked[s.rng.IntN(n)] = struct{}{}
	}
	out := make([]int, 0, len(picked))
	for idx := range picked {
		out = append(out, idx)
	}
	slices.Sort(out)
	return out
}
