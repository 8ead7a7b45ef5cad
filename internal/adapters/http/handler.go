package http

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/nexvox/internal/adapters/storage"
	"github.com/dkeye/nexvox/internal/app"
	"github.com/dkeye/nexvox/internal/app/orch"
	"github.com/dkeye/nexvox/internal/core"
	"github.com/dkeye/nexvox/internal/domain"
)

type Handler struct {
	Orch    *orch.Orchestrator
	Limiter *RoomRateLimiter
}

func sidOf(c *gin.Context) core.SessionID {
	return core.SessionID(c.GetString("client_token"))
}

// userStore binds a UserStore to the caller's cookie session.
func userStore(c *gin.Context) *app.UserStore {
	return app.NewUserStore(storage.NewSessionStore(sessions.Default(c)))
}

func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrRoomNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrNoSession):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidTab),
		errors.Is(err, domain.ErrInvalidRoomType),
		errors.Is(err, domain.ErrInvalidCapacity),
		errors.Is(err, domain.ErrRoomNameEmpty),
		errors.Is(err, domain.ErrRoomNameTooLong),
		errors.Is(err, domain.ErrUsernameEmpty),
		errors.Is(err, domain.ErrUsernameTooLong),
		errors.Is(err, domain.ErrFieldTooLong),
		errors.Is(err, domain.ErrProfileTooLarge):
		status = http.StatusBadRequest
	default:
		log.Error().Err(err).Str("module", "adapters.http").Str("path", c.FullPath()).Msg("request failed")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
