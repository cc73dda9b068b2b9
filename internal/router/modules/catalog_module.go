package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/hawkcentral/campus-events/internal/interface/http"
)

// CatalogModule wires the public category and location lookups.
type CatalogModule struct {
	Handler *handlers.CatalogHandler
}

func NewCatalogModule(h *handlers.CatalogHandler) *CatalogModule {
	return &CatalogModule{Handler: h}
}

func (m *CatalogModule) Register(rg *gin.RouterGroup) {
	rg.GET("/categories", m.Handler.Categories)
	rg.GET("/categories/search", m.Handler.SearchCategories)
	rg.GET("/locations", m.Handler.Locations)
	rg.GET("/locations/search", m.Handler.SearchLocations)
}
