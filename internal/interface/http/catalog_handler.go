package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hawkcentral/campus-events/pkg/response"
)

type CatalogHandler struct {
	Svc    CatalogService
	Logger *logrus.Logger
}

func NewCatalogHandler(svc CatalogService, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{Svc: svc, Logger: logger}
}

func (h *CatalogHandler) Categories(c *gin.Context) {
	list, err := h.Svc.ListCategories(c.Request.Context())
	if err != nil {
		failWith(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, list, "categories", nil)
}

func (h *CatalogHandler) SearchCategories(c *gin.Context) {
	list, err := h.Svc.SearchCategories(c.Request.Context(), c.Query("q"))
	if err != nil {
		failWith(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, list, "categories", nil)
}

func (h *CatalogHandler) Locations(c *gin.Context) {
	list, err := h.Svc.ListLocations(c.Request.Context())
	if err != nil {
		failWith(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, list, "locations", nil)
}

func (h *CatalogHandler) SearchLocations(c *gin.Context) {
	list, err := h.Svc.SearchLocations(c.Request.Context(), c.Query("q"))
	if err != nil {
		failWith(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, list, "locations", nil)
}
