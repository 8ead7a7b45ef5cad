package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dkeye/nexvox/internal/app"
	"github.com/dkeye/nexvox/internal/domain"
)

type mountRequest struct {
	RoomID domain.RoomID `json:"roomId" binding:"required"`
}

type tabRequest struct {
	Tab domain.Tab `json:"tab" binding:"required"`
}

type viewportRequest struct {
	Width *int `json:"width" binding:"required,min=0"`
}

type sidebarRequest struct {
	Open *bool `json:"open" binding:"required"`
}

// withSession runs fn against the caller's mounted session or answers 409.
func (h *Handler) withSession(c *gin.Context, fn func(*app.RoomSession)) {
	sess, err := h.Orch.Session(sidOf(c))
	if err != nil {
		writeError(c, err)
		return
	}
	fn(sess)
}

// POST /api/session: mount a room view
func (h *Handler) mount(c *gin.Context) {
	var req mountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "missing roomId")
		return
	}
	sess, err := h.Orch.Mount(c.Request.Context(), sidOf(c), req.RoomID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"room": sess.Room(), "state": sess.State()})
}

// GET /api/session
func (h *Handler) sessionState(c *gin.Context) {
	h.withSession(c, func(s *app.RoomSession) {
		c.JSON(http.StatusOK, s.State())
	})
}

// DELETE /api/session: unmount
func (h *Handler) unmount(c *gin.Context) {
	if !h.Orch.Unmount(sidOf(c)) {
		writeError(c, domain.ErrNoSession)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/session/mic
func (h *Handler) toggleMic(c *gin.Context) {
	h.withSession(c, func(s *app.RoomSession) {
		c.JSON(http.StatusOK, s.ToggleMicrophone())
	})
}

// POST /api/session/hand
func (h *Handler) toggleHand(c *gin.Context) {
	h.withSession(c, func(s *app.RoomSession) {
		c.JSON(http.StatusOK, s.ToggleHandRaised())
	})
}

// PUT /api/session/tab
func (h *Handler) setTab(c *gin.Context) {
	var req tabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "missing tab")
		return
	}
	h.withSession(c, func(s *app.RoomSession) {
		st, err := s.SetActiveTab(req.Tab)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, st)
	})
}

// PUT /api/session/viewport: a resize event
func (h *Handler) setViewport(c *gin.Context) {
	var req viewportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid width")
		return
	}
	h.withSession(c, func(s *app.RoomSession) {
		c.JSON(http.StatusOK, s.SetViewport(*req.Width))
	})
}

// PUT /api/session/sidebar: manual open/close
func (h *Handler) setSidebar(c *gin.Context) {
	var req sidebarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "missing open")
		return
	}
	h.withSession(c, func(s *app.RoomSession) {
		c.JSON(http.StatusOK, s.SetSidebarOpen(*req.Open))
	})
}

// DELETE /api/session/toasts/:id
func (h *Handler) dismissToast(c *gin.Context) {
	h.withSession(c, func(s *app.RoomSession) {
		if !s.DismissToast(c.Param("id")) {
			c.JSON(http.StatusNotFound, gin.H{"error": "toast not found"})
			return
		}
		c.Status(http.StatusNoContent)
	})
}
