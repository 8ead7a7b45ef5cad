package data_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dkeye/nexvox/internal/data"
)

func TestEmbeddedDatasets(t *testing.T) {
	rooms, err := data.Rooms("")
	if err != nil {
		t.Fatalf("Rooms: %v", err)
	}
	if len(rooms) == 0 {
		t.Fatal("expected embedded rooms")
	}
	users, err := data.Users("")
	if err != nil {
		t.Fatalf("Users: %v", err)
	}
	if len(users) == 0 {
		t.Fatal("expected embedded users")
	}
}

func TestRoomsRejectsDuplicateIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rooms.json")
	body := `[{"id":"a","name":"x","type":"chill"},{"id":"a","name":"y","type":"music"}]`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := data.Rooms(path); err == nil {
		t.Fatal("expected duplicate id error")
	}
}

func TestUsersRejectsUnknownStatus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	if err := os.WriteFile(path, []byte(`[{"id":"x","status":"dancing"}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := data.Users(path); err == nil {
		t.Fatal("expected invalid status error")
	}
}

func TestMissingFile(t *testing.T) {
	if _, err := data.Rooms(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected read error")
	}
}
