package signal

import (
	"github.com/tidwall/gjson"

	"github.com/dkeye/nexvox/internal/app"
	"github.com/dkeye/nexvox/internal/domain"
)

func (ctl *SignalWSController) handleSetTab(
	sess *app.RoomSession,
	conn *WsSignalConn,
	msg gjson.Result,
) {
	tab := domain.Tab(msg.Get("tab").String())
	if _, err := sess.SetActiveTab(tab); err != nil {
		ctl.sendError(conn, "invalid_tab")
	}
}

func (ctl *SignalWSController) handleViewport(
	sess *app.RoomSession,
	conn *WsSignalConn,
	msg gjson.Result,
) {
	width := msg.Get("width")
	if width.Type != gjson.Number || width.Int() < 0 {
		ctl.sendError(conn, "invalid_width")
		return
	}
	sess.SetViewport(int(width.Int()))
}

func (ctl *SignalWSController) handleSidebar(
	sess *app.RoomSession,
	conn *WsSignalConn,
	msg gjson.Result,
) {
	open := msg.Get("open")
	if !open.IsBool() {
		ctl.sendError(conn, "invalid_open")
		return
	}
	sess.SetSidebarOpen(open.Bool())
}

func (ctl *SignalWSController) handleDismiss(
	sess *app.RoomSession,
	conn *WsSignalConn,
	msg gjson.Result,
) {
	if !sess.DismissToast(msg.Get("id").String()) {
		ctl.sendError(conn, "unknown_toast")
	}
}

func (ctl *SignalWSController) handleState(
	sess *app.RoomSession,
	conn *WsSignalConn,
) {
	st := sess.State()
	ctl.sendJSON(conn, domain.Event{Type: domain.EventState, State: &st})
}
