package app

import (
	"encoding/json"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"github.com/dkeye/nexvox/internal/core"
	"github.com/dkeye/nexvox/internal/domain"
)

// RoomCodeAlphabet has no 0, O, 1 or I.
const (
	RoomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	RoomCodeLen      = 6
)

// Catalog keeps user-created rooms under core.RoomsKey and merges them
// with the default room list at read time.
// Ids and codes are random and never checked for collisions.
type Catalog struct {
	kv       core.KVStore
	defaults []domain.Room
	rng      *lockedRand

	mu      sync.Mutex
	created []domain.Room
	loaded  bool
}

func NewCatalog(kv core.KVStore, defaults []domain.Room, rng *rand.Rand) *Catalog {
	return &Catalog{kv: kv, defaults: defaults, rng: newLockedRand(rng)}
}

func (c *Catalog) CreateRoom(req domain.CreateRoomRequest) (domain.Room, error) {
	if err := req.Normalize(); err != nil {
		return domain.Room{}, err
	}
	room := domain.Room{
		ID:               c.newID(),
		Name:             req.Name,
		Description:      req.Description,
		ParticipantCount: 1,
		Type:             req.Type,
		IsPrivate:        !req.IsPublic,
		MaxParticipants:  req.MaxParticipants,
		Code:             c.GenerateRoomCode(),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadLocked()
	c.created = append(c.created, room)
	c.persistLocked()

	log.Info().Str("module", "app.catalog").Str("room", string(room.ID)).Str("type", string(room.Type)).Msg("room created")
	return room, nil
}

// GenerateRoomCode draws RoomCodeLen characters from RoomCodeAlphabet.
// Not suitable as a secret.
func (c *Catalog) GenerateRoomCode() string {
	var b strings.Builder
	b.Grow(RoomCodeLen)
	for range RoomCodeLen {
		b.WriteByte(RoomCodeAlphabet[c.rng.IntN(len(RoomCodeAlphabet))])
	}
	return b.String()
}

// AllRooms returns defaults followed by every user-created room.
func (c *Catalog) AllRooms(defaults []domain.Room) []domain.Room {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadLocked()
	out := make([]domain.Room, 0, len(defaults)+len(c.created))
	out = append(out, defaults...)
	return append(out, c.created...)
}

func (c *Catalog) UserRooms() []domain.Room {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadLocked()
	return append([]domain.Room(nil), c.created...)
}

// Rooms implements core.RoomSource over the catalog's own defaults.
func (c *Catalog) Rooms() []domain.Room {
	return c.AllRooms(c.defaults)
}

// newID is a 13-digit decimal string.
func (c *Catalog) newID() domain.RoomID {
	return domain.RoomID(strconv.FormatInt(1_000_000_000_000+c.rng.Int64N(9_000_000_000_000), 10))
}

func (c *Catalog) loadLocked() {
	if c.loaded {
		return
	}
	c.loaded = true

	raw, ok, err := c.kv.Get(core.RoomsKey)
	if err != nil {
		log.Warn().Err(err).Str("module", "app.catalog").Msg("read rooms failed, starting empty")
		return
	}
	if !ok {
		return
	}
	if !gjson.ValidBytes(raw) || !gjson.ParseBytes(raw).IsArray() {
		log.Warn().Str("module", "app.catalog").Msg("stored rooms are not a JSON array, ignoring")
		return
	}
	var rooms []domain.Room
	if err := json.Unmarshal(raw, &rooms); err != nil {
		log.Warn().Err(err).Str("module", "app.catalog").Msg("decode rooms failed, ignoring")
		return
	}
	c.created = rooms
}

func (c *Catalog) persistLocked() {
	raw, err := json.Marshal(c.created)
	if err != nil {
		log.Error().Err(err).Str("module", "app.catalog").Msg("encode rooms")
		return
	}
	if err := c.kv.Set(core.RoomsKey, raw); err != nil {
		log.Error().Err(err).Str("module", "app.catalog").Int("rooms", len(c.created)).Msg("persist rooms failed")
	}
}
