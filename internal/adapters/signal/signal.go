package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/nexvox/internal/app"
	"github.com/dkeye/nexvox/internal/app/orch"
	"github.com/dkeye/nexvox/internal/core"
	"github.com/dkeye/nexvox/internal/domain"
)

var (
	ErrBackpressure = errors.New("backpressure")
	ErrConnClosed   = errors.New("connection closed")
)

const sendBuffer = 32

// SignalWSController streams session events to a view and applies the commands it sends back.
type SignalWSController struct {
	Orch       *orch.Orchestrator
	ReadLimit  int64
	PingPeriod time.Duration
}

func NewSignalWSController(o *orch.Orchestrator, readLimit int64, pingPeriod time.Duration) *SignalWSController {
	return &SignalWSController{Orch: o, ReadLimit: readLimit, PingPeriod: pingPeriod}
}

type WsSignalConn struct {
	conn *websocket.Conn
	send chan []byte

	mu     sync.RWMutex
	closed bool
}

func (c *WsSignalConn) TrySend(f []byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrConnClosed
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsSignalConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleSignal upgrades the request and attaches it to the caller's session.
// With ?room=<id> the room is mounted first, replacing any previous view.
func (ctl *SignalWSController) HandleSignal(ctx context.Context, c *gin.Context) {
	sid := core.SessionID(c.GetString("client_token"))

	var (
		sess *app.RoomSession
		err  error
	)
	if roomID := c.Query("room"); roomID != "" {
		sess, err = ctl.Orch.Mount(c.Request.Context(), sid, domain.RoomID(roomID))
	} else {
		sess, err = ctl.Orch.Session(sid)
	}
	switch {
	case errors.Is(err, domain.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case errors.Is(err, domain.ErrNoSession):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}
	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("room", string(sess.Room().ID)).Msg("new WS connection")

	conn := &WsSignalConn{
		conn: ws,
		send: make(chan []byte, sendBuffer),
	}
	unsubscribe := sess.Subscribe(func(ev domain.Event) {
		ctl.push(sid, conn, ev)
	})
	st := sess.State()
	ctl.push(sid, conn, domain.Event{Type: domain.EventState, State: &st})

	ctx, cancel := context.WithCancel(ctx)
	go ctl.writePump(ctx, conn, sess.Done())
	go func() {
		ctl.readPump(sid, sess, conn)
		unsubscribe()
		cancel()
		ctl.Orch.OnDisconnect(sid, sess)
	}()
}

// push runs on the emitting goroutine, so it never blocks and never closes the session itself.
func (ctl *SignalWSController) push(sid core.SessionID, conn *WsSignalConn, ev domain.Event) {
	b, err := encode(ev)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("encode event")
		return
	}
	if err := conn.TrySend(b); err != nil {
		if errors.Is(err, ErrConnClosed) {
			return
		}
		switch ctl.Orch.OnBackPressure(sid, ev) {
		case app.Disconnect:
			log.Warn().Str("module", "signal").Str("sid", string(sid)).Str("event", string(ev.Type)).Msg("slow client, disconnecting")
			conn.Close()
		case app.DropEvent, app.NoAction:
			log.Debug().Str("module", "signal").Str("sid", string(sid)).Str("event", string(ev.Type)).Msg("event dropped")
		}
	}
}
