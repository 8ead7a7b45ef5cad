package signal

import (
	"time"

	"github.com/dkeye/nexvox/internal/app"
	"github.com/dkeye/nexvox/internal/domain"
)

type pongMessage struct {
	Type   string        `json:"type"`
	RoomID domain.RoomID `json:"roomId"`
	Time   int64         `json:"ts"`
}

// handlePing answers an application-level ping with the mounted room and server time.
func (ctl *SignalWSController) handlePing(sess *app.RoomSession, conn *WsSignalConn) {
	ctl.sendJSON(conn, pongMessage{
		Type:   "pong",
		RoomID: sess.Room().ID,
		Time:   time.Now().UnixMilli(),
	})
}
