package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hawkcentral/campus-events/internal/container"
	handlers "github.com/hawkcentral/campus-events/internal/interface/http"
	"github.com/hawkcentral/campus-events/internal/interface/middleware"
	"github.com/hawkcentral/campus-events/pkg/helpers"
)

// EventModule wires event routes.
// Public: GET /api/events, /api/events/search, /api/events/:id, /api/featured
// Protected: POST /api/events, PUT and DELETE /api/events/:id
type EventModule struct {
	Handler *handlers.EventHandler
	JWT     *helpers.JWTManager
}

func NewEventModule(h *handlers.EventHandler, jwt *helpers.JWTManager) *EventModule {
	return &EventModule{Handler: h, JWT: jwt}
}

func (m *EventModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	rg.GET("/events", m.Handler.List)
	rg.GET("/events/search", middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByIP(), nil), m.Handler.Search)
	rg.GET("/events/:id", m.Handler.Get)
	rg.GET("/featured", m.Handler.Featured)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(rdb, m.JWT))
	auth.Use(middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByCaller(), nil))
	{
		auth.POST("/events", m.Handler.Create)
		auth.PUT("/events/:id", m.Handler.Update)
		auth.DELETE("/events/:id", m.Handler.Delete)
	}
}
