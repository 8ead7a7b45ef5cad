package http

import (
	"context"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/nexvox/internal/adapters/signal"
	"github.com/dkeye/nexvox/internal/app/orch"
	"github.com/dkeye/nexvox/internal/config"
)

func genClientToken() string {
	idStr := uuid.NewString()
	return idStr
}

func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie("ct")
		if token == "" {
			token = genClientToken()
			c.SetCookie("ct", token, 3600*24*7, "/", "", false, true)
		}
		c.Set("client_token", token)
		c.Next()
	}
}

func SetupRouter(ctx context.Context, cfg *config.Config, o *orch.Orchestrator) *gin.Engine {
	switch cfg.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.Secret))
	store.Options(sessions.Options{Path: "/", MaxAge: 3600 * 24 * 30, HttpOnly: true})
	r.Use(sessions.Sessions("NexVoxSessions", store))
	r.Use(ClientTokenMiddleware())

	r.Static("/static", cfg.StaticPath)
	r.GET("/", func(c *gin.Context) {
		c.File(cfg.StaticPath + "/index.html")
	})

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")

	h := &Handler{
		Orch:    o,
		Limiter: NewRoomRateLimiter(cfg.Limits.CreateRooms, cfg.Limits.CreateWindow),
	}
	ctrl := signal.NewSignalWSController(o, cfg.ReadLimit, cfg.PingPeriod)

	api := r.Group("/api")
	if cfg.Limits.APIRPS > 0 {
		api.Use(RateLimitMiddleware(cfg.Limits.APIRPS))
	}

	api.GET("/rooms", h.listRooms)
	api.POST("/rooms", h.createRoom)
	api.GET("/rooms/:id", h.getRoom)
	api.DELETE("/rooms/:id/sessions", h.evictRoom)
	api.GET("/room-code", h.roomCode)
	api.GET("/users", h.listUsers)

	api.GET("/me", h.getMe)
	api.PATCH("/me", h.patchMe)
	api.PUT("/me/status", h.putStatus)
	api.PUT("/me/avatar-variant", h.putAvatarVariant)
	api.PUT("/me/animation-variant", h.putAnimationVariant)
	api.DELETE("/me", h.resetMe)

	api.POST("/session", h.mount)
	api.GET("/session", h.sessionState)
	api.DELETE("/session", h.unmount)
	api.POST("/session/mic", h.toggleMic)
	api.POST("/session/hand", h.toggleHand)
	api.PUT("/session/tab", h.setTab)
	api.PUT("/session/viewport", h.setViewport)
	api.PUT("/session/sidebar", h.setSidebar)
	api.DELETE("/session/toasts/:id", h.dismissToast)

	api.GET("/ws/session", func(c *gin.Context) {
		log.Info().Str("module", "adapters.http").Str("sid", c.GetString("client_token")).Msg("ws session endpoint hit")
		ctrl.HandleSignal(ctx, c)
	})

	return r
}
