package storage

import (
	"fmt"

	"github.com/gin-contrib/sessions"
)

// SessionStore exposes a client's cookie session as a KVStore,
// so each browser gets its own copy of per-user keys.
type SessionStore struct {
	s sessions.Session
}

func NewSessionStore(s sessions.Session) *SessionStore {
	return &SessionStore{s: s}
}

func (st *SessionStore) Get(key string) ([]byte, bool, error) {
	v := st.s.Get(key)
	if v == nil {
		return nil, false, nil
	}
	str, ok := v.(string)
	if !ok {
		return nil, false, fmt.Errorf("session key %q holds %T", key, v)
	}
	return []byte(str), true, nil
}

func (st *SessionStore) Set(key string, value []byte) error {
	st.s.Set(key, string(value))
	if err := st.s.Save(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
