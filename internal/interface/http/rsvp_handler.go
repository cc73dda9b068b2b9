package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hawkcentral/campus-events/internal/domain/entity"
	"github.com/hawkcentral/campus-events/pkg/response"
	"github.com/hawkcentral/campus-events/pkg/validation"
)

type RSVPHandler struct {
	Svc    RSVPService
	Logger *logrus.Logger
}

func NewRSVPHandler(svc RSVPService, logger *logrus.Logger) *RSVPHandler {
	return &RSVPHandler{Svc: svc, Logger: logger}
}

type rsvpRequest struct {
	EventID    entity.ID `json:"event_id" binding:"required"`
	RSVPStatus string    `json:"rsvp_status" binding:"required,rsvpstatus"`
}

type eventRef struct {
	EventID entity.ID `json:"event_id" binding:"required"`
}

// Respond POST /api/rsvp {event_id, rsvp_status}
func (h *RSVPHandler) Respond(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	var req rsvpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	n, err := h.Svc.Respond(c.Request.Context(), caller, req.EventID, entity.RSVPStatus(req.RSVPStatus))
	if err != nil {
		failWith(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rsvp_count": n}, "rsvp saved", nil)
}

// Cancel DELETE /api/rsvp {event_id}
func (h *RSVPHandler) Cancel(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	var req eventRef
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	n, err := h.Svc.Cancel(c.Request.Context(), caller, req.EventID)
	if err != nil {
		failWith(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rsvp_count": n}, "rsvp removed", nil)
}

// Count GET /api/rsvp/:event_id/count
func (h *RSVPHandler) Count(c *gin.Context) {
	eventID, ok := pathID(c, "event_id")
	if !ok {
		return
	}
	n, err := h.Svc.Count(c.Request.Context(), eventID)
	if err != nil {
		failWith(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"count": n}, "rsvp count", nil)
}

// ForUser GET /api/rsvp/user/:user_id
func (h *RSVPHandler) ForUser(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	events, err := h.Svc.AttendingFor(c.Request.Context(), caller, userID)
	if err != nil {
		failWith(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, events, "attending events", nil)
}

// Save POST /api/save {event_id}
func (h *RSVPHandler) Save(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	var req eventRef
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.Save(c.Request.Context(), caller, req.EventID); err != nil {
		failWith(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"saved": true}, "event saved", nil)
}

// Unsave DELETE /api/save {event_id}
func (h *RSVPHandler) Unsave(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	var req eventRef
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.Unsave(c.Request.Context(), caller, req.EventID); err != nil {
		failWith(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"saved": false}, "event removed from saved", nil)
}

// Saved GET /api/saved
func (h *RSVPHandler) Saved(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	events, err := h.Svc.Saved(c.Request.Context(), caller)
	if err != nil {
		failWith(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, events, "saved events", nil)
}
