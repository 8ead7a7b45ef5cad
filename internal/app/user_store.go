package app

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"github.com/dkeye/nexvox/internal/core"
	"github.com/dkeye/nexvox/internal/domain"
)

// UserStore owns the current user's profile and is the only writer of core.UserKey.
// Storage failures never reach callers: reads fall back to the default profile
// and writes are logged while the in-memory profile keeps the change.
type UserStore struct {
	kv core.KVStore

	mu     sync.Mutex
	user   domain.User
	loaded bool
}

func NewUserStore(kv core.KVStore) *UserStore {
	return &UserStore{kv: kv}
}

func (s *UserStore) Get() domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked()
	return s.user.Clone()
}

// Update shallow-merges p into the profile and persists the whole snapshot.
// A result larger than domain.MaxProfileBytes is rejected and nothing changes.
func (s *UserStore) Update(p domain.UserPatch) (domain.User, error) {
	if err := p.Validate(); err != nil {
		return domain.User{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked()

	next := p.Apply(s.user)
	raw, err := json.Marshal(next)
	if err != nil {
		return domain.User{}, fmt.Errorf("encode profile: %w", err)
	}
	if len(raw) > domain.MaxProfileBytes {
		return domain.User{}, domain.ErrProfileTooLarge
	}
	s.user = next
	s.writeLocked(raw)
	return s.user.Clone(), nil
}

func (s *UserStore) SetAvatarVariant(variant string) (domain.User, error) {
	return s.Update(domain.UserPatch{AvatarVariant: &variant})
}

func (s *UserStore) SetAnimationVariant(variant string) (domain.User, error) {
	return s.Update(domain.UserPatch{AnimationVariant: &variant})
}

func (s *UserStore) SetStatus(status domain.Status) (domain.User, error) {
	return s.Update(domain.UserPatch{Status: &status})
}

// Reset puts the default profile back and persists it.
func (s *UserStore) Reset() domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = true
	s.user = domain.DefaultUser()
	s.persistLocked()
	return s.user.Clone()
}

func (s *UserStore) loadLocked() {
	if s.loaded {
		return
	}
	s.loaded = true
	s.user = domain.DefaultUser()

	raw, ok, err := s.kv.Get(core.UserKey)
	if err != nil {
		log.Warn().Err(err).Str("module", "app.userstore").Msg("read profile failed, using default")
		return
	}
	if !ok {
		return
	}
	if !gjson.ValidBytes(raw) || !gjson.ParseBytes(raw).IsObject() {
		log.Warn().Str("module", "app.userstore").Msg("stored profile is not a JSON object, using default")
		return
	}

	// Decoding over the default fills in whatever the stored record lacks.
	u := domain.DefaultUser()
	if err := json.Unmarshal(raw, &u); err != nil {
		log.Warn().Err(err).Str("module", "app.userstore").Msg("decode profile failed, using default")
		return
	}
	if !u.Status.Valid() {
		log.Warn().Str("module", "app.userstore").Str("status", string(u.Status)).Msg("stored status invalid, using default")
		return
	}
	if u.ID == "" {
		u.ID = domain.DefaultUser().ID
	}
	s.user = u
}

func (s *UserStore) persistLocked() {
	raw, err := json.Marshal(s.user)
	if err != nil {
		log.Error().Err(err).Str("module", "app.userstore").Msg("encode profile")
		return
	}
	s.writeLocked(raw)
}

func (s *UserStore) writeLocked(raw []byte) {
	if err := s.kv.Set(core.UserKey, raw); err != nil {
		log.Error().Err(err).Str("module", "app.userstore").Str("user", string(s.user.ID)).Msg("persist profile failed")
		return
	}
	log.Debug().Str("module", "app.userstore").Str("user", string(s.user.ID)).Msg("profile saved")
}
