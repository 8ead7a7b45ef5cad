package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/nexvox/internal/core"
	"github.com/dkeye/nexvox/internal/domain"
)

type sessionEntry struct {
	RoomID  domain.RoomID
	Session *RoomSession
	Cancel  context.CancelFunc
}

// Registry maps each client to its one mounted room session.
type Registry struct {
	mu       sync.RWMutex
	sessions map[core.SessionID]*sessionEntry
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[core.SessionID]*sessionEntry)}
}

// Bind stores sess for sid and returns the entry it replaced, if any.
// The caller is responsible for closing the replaced session.
func (r *Registry) Bind(sid core.SessionID, sess *RoomSession, cancel context.CancelFunc) (*RoomSession, context.CancelFunc, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, had := r.sessions[sid]
	r.sessions[sid] = &sessionEntry{RoomID: sess.Room().ID, Session: sess, Cancel: cancel}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("room", string(sess.Room().ID)).Msg("bound session")
	if !had {
		return nil, nil, false
	}
	return old.Session, old.Cancel, true
}

func (r *Registry) Get(sid core.SessionID) (*RoomSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.sessions[sid]; ok {
		return e.Session, true
	}
	return nil, false
}

// Unbind removes sid and returns what was bound. It does not close anything.
func (r *Registry) Unbind(sid core.SessionID) (*RoomSession, context.CancelFunc, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[sid]
	if !ok {
		return nil, nil, false
	}
	delete(r.sessions, sid)
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("unbind session")
	return e.Session, e.Cancel, true
}

// UnbindIf removes sid only while it is still bound to sess.
func (r *Registry) UnbindIf(sid core.SessionID, sess *RoomSession) (context.CancelFunc, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[sid]
	if !ok || e.Session != sess {
		return nil, false
	}
	delete(r.sessions, sid)
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("unbind session")
	return e.Cancel, true
}

type regSnap struct {
	SID     core.SessionID
	Session *RoomSession
}

func (r *Registry) MembersOfRoom(id domain.RoomID) []regSnap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]regSnap, 0, len(r.sessions))
	for sid, e := range r.sessions {
		if e.RoomID == id {
			out = append(out, regSnap{SID: sid, Session: e.Session})
		}
	}
	return out
}

func (r *Registry) SIDs() []core.SessionID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]core.SessionID, 0, len(r.sessions))
	for sid := range r.sessions {
		out = append(out, sid)
	}
	return out
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
