package http

import (
	"context"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"

	"github.com/arlet/classroom/internal/adapters/signal"
	"github.com/arlet/classroom/internal/app"
	"github.com/arlet/classroom/internal/config"
)

// ClientTokenMiddleware tags every browser with a stable token so reconnects
// of the same client are traceable in the logs.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie("ct")
		if token == "" {
			token = uuid.NewString()
			c.SetCookie("ct", token, 3600*24*7, "/", "", false, true)
		}
		c.Set("client_token", token)
		c.Next()
	}
}

func SetupRouter(ctx context.Context, cfg *config.Config, ctl *signal.Controller, coord *app.Coordinator) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.CookieSecret))
	r.Use(sessions.Sessions("ClassroomSession", store))
	r.Use(ClientTokenMiddleware())

	r.Static("/static", cfg.StaticPath)
	r.GET("/", func(c *gin.Context) {
		c.File(cfg.StaticPath + "/index.html")
	})
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")

	api := r.Group("/api")

	api.GET("/ws", func(c *gin.Context) {
		ctl.HandleWS(ctx, c)
	})
	api.GET("/stats", statsHandler(coord))
	api.GET("/ice", iceHandler(cfg))

	return r
}

// statsHandler is the synchronous query surface next to the event channel:
// read-only session counters, no side effects.
func statsHandler(coord *app.Coordinator) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"participants":   coord.ParticipantCount(),
			"adminPresent":   coord.AdminPresent(),
			"chatMessages":   coord.ChatCount(),
			"drawingEnabled": coord.DrawingEnabled(),
		})
	}
}

// iceHandler hands clients the ICE server list for their peer connections.
// The server stays out of the negotiation itself.
func iceHandler(cfg *config.Config) gin.HandlerFunc {
	rtcCfg := webrtc.Configuration{
		ICEServers: []webrtc.ICEServer{
			{URLs: cfg.StunURLs},
		},
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, rtcCfg)
	}
}
