package app_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/dkeye/nexvox/internal/adapters/storage"
	"github.com/dkeye/nexvox/internal/app"
	"github.com/dkeye/nexvox/internal/core"
	"github.com/dkeye/nexvox/internal/domain"
)

func newCatalog(kv core.KVStore) *app.Catalog {
	return app.NewCatalog(kv, testRooms(), rand.New(rand.NewPCG(7, 7)))
}

func testRequest() domain.CreateRoomRequest {
	return domain.CreateRoomRequest{
		Name:            "Test",
		MaxParticipants: 10,
		IsPublic:        true,
		Type:            domain.RoomChill,
		Description:     "",
	}
}

func TestCreateRoom(t *testing.T) {
	kv := storage.NewMemoryStore(0)
	c := newCatalog(kv)

	room, err := c.CreateRoom(testRequest())
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	if room.ParticipantCount != 1 {
		t.Errorf("participantCount = %d, want 1", room.ParticipantCount)
	}
	if room.ID == "" || len(room.ID) != 13 {
		t.Errorf("id = %q, want 13 digits", room.ID)
	}
	if room.IsPrivate || room.MaxParticipants != 10 || room.Type != domain.RoomChill {
		t.Errorf("fields not carried over: %+v", room)
	}
	if len(room.Code) != app.RoomCodeLen {
		t.Errorf("code = %q", room.Code)
	}

	all := c.AllRooms(testRooms())
	if len(all) != len(testRooms())+1 {
		t.Fatalf("AllRooms has %d rooms", len(all))
	}
	seen := 0
	for _, r := range all {
		if r.ID == room.ID {
			seen++
		}
	}
	if seen != 1 {
		t.Fatalf("created room appears %d times", seen)
	}

	reopened := newCatalog(kv)
	if got := reopened.UserRooms(); len(got) != 1 || got[0].ID != room.ID {
		t.Fatalf("created room not persisted: %+v", got)
	}
}

func TestCreateRoomValidation(t *testing.T) {
	c := newCatalog(storage.NewMemoryStore(0))
	cases := map[string]struct {
		mutate func(*domain.CreateRoomRequest)
		want   error
	}{
		"empty name":   {func(r *domain.CreateRoomRequest) { r.Name = "" }, domain.ErrRoomNameEmpty},
		"long name":    {func(r *domain.CreateRoomRequest) { r.Name = strings.Repeat("x", 100) }, domain.ErrRoomNameTooLong},
		"bad type":     {func(r *domain.CreateRoomRequest) { r.Type = "karaoke" }, domain.ErrInvalidRoomType},
		"bad capacity": {func(r *domain.CreateRoomRequest) { r.MaxParticipants = -2 }, domain.ErrInvalidCapacity},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := testRequest()
			tc.mutate(&req)
			if _, err := c.CreateRoom(req); !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
	if len(c.UserRooms()) != 0 {
		t.Fatal("invalid requests must not create rooms")
	}
}

func TestCreateRoomDefaultsCapacityAndPrivacy(t *testing.T) {
	c := newCatalog(storage.NewMemoryStore(0))
	req := testRequest()
	req.MaxParticipants = 0
	req.IsPublic = false
	room, err := c.CreateRoom(req)
	if err != nil {
		t.Fatal(err)
	}
	if room.MaxParticipants != domain.DefaultMaxParticipants || !room.IsPrivate {
		t.Fatalf("got %+v", room)
	}
}

func TestGenerateRoomCode(t *testing.T) {
	c := newCatalog(storage.NewMemoryStore(0))
	for i := 0; i < 1000; i++ {
		code := c.GenerateRoomCode()
		if len(code) != 6 {
			t.Fatalf("code %q has length %d", code, len(code))
		}
		for _, r := range code {
			if !strings.ContainsRune(app.RoomCodeAlphabet, r) {
				t.Fatalf("code %q contains %q", code, r)
			}
			if strings.ContainsRune("0O1I", r) {
				t.Fatalf("code %q contains ambiguous %q", code, r)
			}
		}
	}
}

func TestCatalogIgnoresCorruptStoredRooms(t *testing.T) {
	kv := storage.NewMemoryStore(0)
	if err := kv.Set(core.RoomsKey, []byte(`{"id":"x"}`)); err != nil {
		t.Fatal(err)
	}
	c := newCatalog(kv)
	if got := c.AllRooms(testRooms()); len(got) != len(testRooms()) {
		t.Fatalf("AllRooms = %+v, want defaults only", got)
	}
	if _, err := c.CreateRoom(testRequest()); err != nil {
		t.Fatal(err)
	}
	if got := newCatalog(kv).UserRooms(); len(got) != 1 {
		t.Fatalf("stored list not repaired: %+v", got)
	}
}

func TestCatalogWriteFailureKeepsRoom(t *testing.T) {
	c := newCatalog(failingKV{})
	room, err := c.CreateRoom(testRequest())
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	if got := c.UserRooms(); len(got) != 1 || got[0].ID != room.ID {
		t.Fatalf("room lost after failed write: %+v", got)
	}
}

func TestCreatedRoomIsResolvable(t *testing.T) {
	c := newCatalog(storage.NewMemoryStore(0))
	room, err := c.CreateRoom(testRequest())
	if err != nil {
		t.Fatal(err)
	}
	s := app.NewRoomDataService(c, testUsers(2), 0, nil)
	got, err := s.Resolve(context.Background(), room.ID)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Name != "Test" {
		t.Fatalf("resolved %+v", got)
	}
	if _, err := s.Resolve(context.Background(), "1"); err != nil {
		t.Fatalf("default room not resolvable through catalog: %v", err)
	}
}
