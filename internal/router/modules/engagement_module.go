package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hawkcentral/campus-events/internal/container"
	handlers "github.com/hawkcentral/campus-events/internal/interface/http"
	"github.com/hawkcentral/campus-events/internal/interface/middleware"
	"github.com/hawkcentral/campus-events/pkg/helpers"
)

// EngagementModule wires comments, photos, RSVPs and saved events.
type EngagementModule struct {
	Comments *handlers.CommentHandler
	Photos   *handlers.PhotoHandler
	RSVPs    *handlers.RSVPHandler
	JWT      *helpers.JWTManager
}

func NewEngagementModule(comments *handlers.CommentHandler, photos *handlers.PhotoHandler, rsvps *handlers.RSVPHandler, jwt *helpers.JWTManager) *EngagementModule {
	return &EngagementModule{Comments: comments, Photos: photos, RSVPs: rsvps, JWT: jwt}
}

func (m *EngagementModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	rg.GET("/events/:id/comments", m.Comments.List)
	rg.GET("/events/:id/photos", m.Photos.List)
	rg.GET("/rsvp/:event_id/count", m.RSVPs.Count)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(rdb, m.JWT))
	auth.Use(middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByCaller(), nil))
	{
		auth.POST("/events/:id/comments", m.Comments.Create)
		auth.DELETE("/comments/:id", m.Comments.Delete)

		auth.POST("/events/:id/photos",
			middleware.RateLimit(rdb, 20, time.Hour, middleware.KeyByCaller(), nil),
			m.Photos.Upload)
		auth.DELETE("/photos/:id", m.Photos.Delete)

		auth.POST("/rsvp", m.RSVPs.Respond)
		auth.DELETE("/rsvp", m.RSVPs.Cancel)
		auth.GET("/rsvp/user/:user_id", m.RSVPs.ForUser)

		auth.POST("/save", m.RSVPs.Save)
		auth.DELETE("/save", m.RSVPs.Unsave)
		auth.GET("/saved", m.RSVPs.Saved)
	}
}
