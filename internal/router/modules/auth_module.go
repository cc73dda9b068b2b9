package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hawkcentral/campus-events/internal/container"
	handlers "github.com/hawkcentral/campus-events/internal/interface/http"
	"github.com/hawkcentral/campus-events/internal/interface/middleware"
)

// AuthModule wires the password reset routes. Both are public and limited per IP.
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	forgotLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	resetLimiter := middleware.RateLimit(rdb, 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/forgot-password", forgotLimiter, m.Handler.ForgotPassword)
	rg.POST("/reset-password", resetLimiter, m.Handler.ResetPassword)
}
