package orch

import (
	"context"

	"github.com/dkeye/nexvox/internal/app"
	"github.com/dkeye/nexvox/internal/core"
	"github.com/dkeye/nexvox/internal/domain"
)

// Orchestrator ties clients to room sessions. Ctx bounds the lifetime of
// every session it mounts; a nil Ctx means context.Background.
type Orchestrator struct {
	Ctx        context.Context
	Registry   *app.Registry
	Rooms      *app.RoomDataService
	Catalog    *app.Catalog
	Policy     app.Policy
	SessionCfg app.SessionConfig
}

// Session returns the mounted session of sid or domain.ErrNoSession.
func (o *Orchestrator) Session(sid core.SessionID) (*app.RoomSession, error) {
	sess, ok := o.Registry.Get(sid)
	if !ok {
		return nil, domain.ErrNoSession
	}
	return sess, nil
}

func (o *Orchestrator) OnBackPressure(sid core.SessionID, ev domain.Event) app.BackpressureAction {
	if o.Policy == nil {
		return app.DropEvent
	}
	return o.Policy.OnBackPressure(sid, ev)
}

func (o *Orchestrator) baseCtx() context.Context {
	if o.Ctx == nil {
		return context.Background()
	}
	return o.Ctx
}
