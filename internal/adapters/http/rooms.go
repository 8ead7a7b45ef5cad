package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/nexvox/internal/domain"
)

// GET /api/rooms: defaults plus user-created rooms
func (h *Handler) listRooms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rooms": h.Orch.Catalog.Rooms()})
}

// POST /api/rooms: create a room
func (h *Handler) createRoom(c *gin.Context) {
	if !h.Limiter.Allow(sidOf(c)) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "room creation limit reached"})
		return
	}
	var req domain.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid room payload")
		return
	}
	room, err := h.Orch.Catalog.CreateRoom(req)
	if err != nil {
		writeError(c, err)
		return
	}
	log.Info().Str("module", "adapters.http").Str("sid", string(sidOf(c))).Str("room", string(room.ID)).Msg("room created")
	c.JSON(http.StatusCreated, room)
}

// GET /api/rooms/:id: resolve one room
func (h *Handler) getRoom(c *gin.Context) {
	room, err := h.Orch.Rooms.Resolve(c.Request.Context(), domain.RoomID(c.Param("id")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// DELETE /api/rooms/:id/sessions: close every view of a room
func (h *Handler) evictRoom(c *gin.Context) {
	n := h.Orch.EvictRoom(domain.RoomID(c.Param("id")))
	c.JSON(http.StatusOK, gin.H{"evicted": n})
}

// GET /api/room-code: a fresh invite code
func (h *Handler) roomCode(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"code": h.Orch.Catalog.GenerateRoomCode()})
}

// GET /api/users: the roster
func (h *Handler) listUsers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"users": h.Orch.Rooms.ListUsers()})
}
