package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hawkcentral/campus-events/config"
	"github.com/hawkcentral/campus-events/pkg/metrics"
	"github.com/hawkcentral/campus-events/pkg/response"
)

// RegisterSystemRoutes adds the routes that live outside /api: health,
// banner, Prometheus metrics, local uploads and the 404 fallback.
func RegisterSystemRoutes(engine *gin.Engine, cfg *config.Config) {
	engine.GET("/", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"name": cfg.CompanyName}, cfg.CompanyName+" API is running", nil)
	})
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	if cfg.StorageDriver == "local" && cfg.UploadsPublicPath != "" {
		engine.Static("/"+strings.Trim(cfg.UploadsPublicPath, "/"), cfg.UploadsDir)
	}

	engine.NoRoute(response.NotFound)
}
