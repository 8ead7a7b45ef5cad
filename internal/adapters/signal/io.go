package signal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"github.com/dkeye/nexvox/internal/app"
	"github.com/dkeye/nexvox/internal/core"
)

const writeWait = 5 * time.Second

func encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (ctl *SignalWSController) pingPeriod() time.Duration {
	if ctl.PingPeriod <= 0 {
		return 54 * time.Second
	}
	return ctl.PingPeriod
}

// writePump is the only writer of data frames. It closes the conn when ctx ends
// or the session is torn down, which in turn unblocks readPump.
func (ctl *SignalWSController) writePump(ctx context.Context, c *WsSignalConn, sessDone <-chan struct{}) {
	ping := time.NewTicker(ctl.pingPeriod())
	defer ping.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Msg("writePump ctx done")
			c.Close()
			return
		case <-sessDone:
			log.Info().Str("module", "signal").Msg("session closed, dropping conn")
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed")
			_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
			c.Close()
			return
		case <-ping.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				log.Warn().Err(err).Str("module", "signal").Msg("writePump ping")
				c.Close()
				return
			}
		case data, ok := <-c.send:
			if !ok {
				log.Debug().Str("module", "signal").Msg("writePump channel closed")
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				c.Close()
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump write error")
				c.Close()
				return
			}
		}
	}
}

func (ctl *SignalWSController) readPump(sid core.SessionID, sess *app.RoomSession, c *WsSignalConn) {
	defer func() {
		log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("readPump closing")
		c.Close()
	}()

	if ctl.ReadLimit > 0 {
		c.conn.SetReadLimit(ctl.ReadLimit)
	}
	pongWait := ctl.pingPeriod() * 10 / 9
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("readPump read error")
			}
			return
		}
		if sess.Closed() {
			return
		}
		ctl.handleSignal(sess, c, data)
	}
}

func (ctl *SignalWSController) handleSignal(sess *app.RoomSession, c *WsSignalConn, data []byte) {
	if !gjson.ValidBytes(data) {
		log.Error().Str("module", "signal").Msg("bad json")
		ctl.sendError(c, "bad_payload")
		return
	}
	msg := gjson.ParseBytes(data)

	switch typ := msg.Get("type").String(); typ {
	case "toggle_mic":
		sess.ToggleMicrophone()
	case "toggle_hand":
		sess.ToggleHandRaised()
	case "set_tab":
		ctl.handleSetTab(sess, c, msg)
	case "viewport":
		ctl.handleViewport(sess, c, msg)
	case "sidebar":
		ctl.handleSidebar(sess, c, msg)
	case "dismiss_toast":
		ctl.handleDismiss(sess, c, msg)
	case "state":
		ctl.handleState(sess, c)
	case "ping":
		ctl.handlePing(sess, c)
	default:
		log.Warn().Str("module", "signal").Str("type", typ).Msg("unknown signal")
		ctl.sendError(c, "unknown_type")
	}
}

func (ctl *SignalWSController) sendJSON(c *WsSignalConn, v any) {
	b, err := encode(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("sendJSON marshal")
		return
	}
	_ = c.TrySend(b)
}

func (ctl *SignalWSController) sendError(c *WsSignalConn, code string) {
	ctl.sendJSON(c, map[string]any{
		"type":  "error",
		"error": code,
	})
}
