package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hawkcentral/campus-events/internal/application"
	"github.com/hawkcentral/campus-events/pkg/response"
	"github.com/hawkcentral/campus-events/pkg/validation"
)

type EventHandler struct {
	Svc    EventService
	Logger *logrus.Logger
}

func NewEventHandler(svc EventService, logger *logrus.Logger) *EventHandler {
	return &EventHandler{Svc: svc, Logger: logger}
}

// eventRequest is the body of create and update. Any user_id or user_role
// sent by the client is ignored; the caller comes from the access token.
type eventRequest struct {
	Title         string `json:"title" binding:"required,max=200"`
	Description   string `json:"description" binding:"max=10000"`
	EventDate     string `json:"event_date" binding:"required,eventdate"`
	StartTime     string `json:"start_time" binding:"omitempty,clock"`
	EndTime       string `json:"end_time" binding:"omitempty,clock"`
	LocationName  string `json:"location_name" binding:"max=200"`
	BuildingName  string `json:"building_name" binding:"max=200"`
	CategoryName  string `json:"category_name" binding:"max=100"`
	OrganizerName string `json:"organizer_name" binding:"max=200"`
	ContactEmail  string `json:"contact_email" binding:"omitempty,email"`
	MaxCapacity   *int   `json:"max_capacity" binding:"omitempty,gte=1"`
}

func (r eventRequest) input() application.EventInput {
	date, _ := time.Parse("2006-01-02", r.EventDate)
	return application.EventInput{
		Title:         r.Title,
		Description:   r.Description,
		EventDate:     date,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		LocationName:  r.LocationName,
		BuildingName:  r.BuildingName,
		CategoryName:  r.CategoryName,
		OrganizerName: r.OrganizerName,
		ContactEmail:  r.ContactEmail,
		MaxCapacity:   r.MaxCapacity,
	}
}

// List GET /api/events?category=&search=
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.Svc.List(c.Request.Context(), c.Query("category"), c.Query("search"))
	if err != nil {
		failWith(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, events, "events", map[string]any{"count": len(events)})
}

// Featured GET /api/featured
func (h *EventHandler) Featured(c *gin.Context) {
	events, err := h.Svc.Featured(c.Request.Context())
	if err != nil {
		failWith(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, events, "featured events", map[string]any{"count": len(events)})
}

// Get GET /api/events/:id
func (h *EventHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	e, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		failWith(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, e, "event", nil)
}

// Search GET /api/events/search?q=&size=
func (h *EventHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	events, err := h.Svc.Search(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		failWith(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, events, "search results", map[string]any{"count": len(events)})
}

// Create POST /api/events
func (h *EventHandler) Create(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	e, err := h.Svc.Create(c.Request.Context(), caller, req.input())
	if err != nil {
		failWith(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, e, "event created", nil)
}

// Update PUT /api/events/:id
func (h *EventHandler) Update(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	e, err := h.Svc.Update(c.Request.Context(), caller, id, req.input())
	if err != nil {
		failWith(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, e, "event updated", nil)
}

// Delete DELETE /api/events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), caller, id); err != nil {
		failWith(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "event deleted", nil)
}
