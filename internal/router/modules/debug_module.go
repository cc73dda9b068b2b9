package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hawkcentral/campus-events/internal/container"
	"github.com/hawkcentral/campus-events/internal/interface/middleware"
)

// DebugModule exposes expvar under /api/debug/vars.
type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
