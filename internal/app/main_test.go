package app_test

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/dkeye/nexvox/internal/domain"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

// eventually polls cond until it holds or the deadline passes.
func eventually(t *testing.T, within time.Duration, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(within)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within %v: %s", within, msg)
}

type note struct {
	Message  string
	Severity domain.Severity
}

type recordingNotifier struct {
	notes []note
}

func (r *recordingNotifier) Notify(message string, severity domain.Severity) domain.Toast {
	r.notes = append(r.notes, note{message, severity})
	return domain.Toast{Message: message, Severity: severity}
}

type failingKV struct{}

func (failingKV) Get(string) ([]byte, bool, error) { return nil, false, errFailing }
func (failingKV) Set(string, []byte) error         { return errFailing }

var errFailing = errors.New("backend unavailable")

func testRooms() []domain.Room {
	return []domain.Room{
		{ID: "1", Name: "Lounge", ParticipantCount: 4, Type: domain.RoomMusic},
		{ID: "2", Name: "Talk", ParticipantCount: 0, Type: domain.RoomConversation},
	}
}

func testUsers(n int) []domain.User {
	out := make([]domain.User, n)
	for i := range out {
		u := domain.DefaultUser()
		u.ID = domain.UserID("u" + string(rune('a'+i)))
		out[i] = u
	}
	return out
}
