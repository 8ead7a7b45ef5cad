package orch

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/nexvox/internal/app"
	"github.com/dkeye/nexvox/internal/core"
	"github.com/dkeye/nexvox/internal/domain"
)

// Mount resolves roomID and binds a fresh session to sid, closing any view
// sid had open before. ctx only bounds the lookup.
func (o *Orchestrator) Mount(ctx context.Context, sid core.SessionID, roomID domain.RoomID) (*app.RoomSession, error) {
	room, err := o.Rooms.Resolve(ctx, roomID)
	if err != nil {
		return nil, err
	}

	sessCtx, cancel := context.WithCancel(o.baseCtx())
	sess := app.NewRoomSession(sessCtx, room, o.Rooms, o.SessionCfg)
	if old, oldCancel, ok := o.Registry.Bind(sid, sess, cancel); ok {
		closeSession(old, oldCancel)
		log.Info().Str("module", "orch").Str("sid", string(sid)).Str("from_room", string(old.Room().ID)).Msg("replaced view")
	}
	log.Info().Str("module", "orch").Str("sid", string(sid)).Str("room", string(roomID)).Msg("mounted")
	return sess, nil
}

// Unmount closes the session of sid. It reports false if none was mounted.
func (o *Orchestrator) Unmount(sid core.SessionID) bool {
	sess, cancel, ok := o.Registry.Unbind(sid)
	if !ok {
		return false
	}
	closeSession(sess, cancel)
	log.Info().Str("module", "orch").Str("sid", string(sid)).Msg("unmounted")
	return true
}

// OnDisconnect unmounts sess only if it is still the view bound to sid,
// so a stale connection cannot tear down a newer view.
func (o *Orchestrator) OnDisconnect(sid core.SessionID, sess *app.RoomSession) {
	cancel, ok := o.Registry.UnbindIf(sid, sess)
	if !ok {
		return
	}
	closeSession(sess, cancel)
	log.Info().Str("module", "orch").Str("sid", string(sid)).Msg("disconnected")
}

// EvictRoom unmounts every view of roomID and returns how many there were.
func (o *Orchestrator) EvictRoom(id domain.RoomID) int {
	snaps := o.Registry.MembersOfRoom(id)
	for _, snap := range snaps {
		o.OnDisconnect(snap.SID, snap.Session)
	}
	return len(snaps)
}

// Shutdown closes every mounted session.
func (o *Orchestrator) Shutdown() {
	for _, sid := range o.Registry.SIDs() {
		o.Unmount(sid)
	}
}

func closeSession(sess *app.RoomSession, cancel context.CancelFunc) {
	sess.Close()
	if cancel != nil {
		cancel()
	}
}
