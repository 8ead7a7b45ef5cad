package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dkeye/nexvox/internal/domain"
)

type variantRequest struct {
	Variant string `json:"variant" binding:"required"`
}

type statusRequest struct {
	Status domain.Status `json:"status" binding:"required"`
}

// GET /api/me
func (h *Handler) getMe(c *gin.Context) {
	c.JSON(http.StatusOK, userStore(c).Get())
}

// PATCH /api/me: merge the given fields into the profile
func (h *Handler) patchMe(c *gin.Context) {
	var p domain.UserPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, "invalid profile payload")
		return
	}
	u, err := userStore(c).Update(p)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// PUT /api/me/status
func (h *Handler) putStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "missing status")
		return
	}
	u, err := userStore(c).SetStatus(req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// PUT /api/me/avatar-variant
func (h *Handler) putAvatarVariant(c *gin.Context) {
	var req variantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "missing variant")
		return
	}
	u, err := userStore(c).SetAvatarVariant(req.Variant)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// PUT /api/me/animation-variant
func (h *Handler) putAnimationVariant(c *gin.Context) {
	var req variantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "missing variant")
		return
	}
	u, err := userStore(c).SetAnimationVariant(req.Variant)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// DELETE /api/me: back to the default profile
func (h *Handler) resetMe(c *gin.Context) {
	c.JSON(http.StatusOK, userStore(c).Reset())
}
