package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/hawkcentral/campus-events/internal/application"
	"github.com/hawkcentral/campus-events/internal/domain/entity"
	"github.com/hawkcentral/campus-events/internal/domain/policy"
)

type mockRSVPService struct{ mock.Mock }

func (m *mockRSVPService) Respond(ctx context.Context, caller policy.Caller, eventID entity.ID, status entity.RSVPStatus) (int64, error) {
	args := m.Called(ctx, caller, eventID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRSVPService) Cancel(ctx context.Context, caller policy.Caller, eventID entity.ID) (int64, error) {
	args := m.Called(ctx, caller, eventID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRSVPService) Count(ctx context.Context, eventID entity.ID) (int64, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRSVPService) AttendingFor(ctx context.Context, caller policy.Caller, userID entity.ID) ([]entity.Event, error) {
	args := m.Called(ctx, caller, userID)
	out, _ := args.Get(0).([]entity.Event)
	return out, args.Error(1)
}

func (m *mockRSVPService) Save(ctx context.Context, caller policy.Caller, eventID entity.ID) error {
	return m.Called(ctx, caller, eventID).Error(0)
}

func (m *mockRSVPService) Unsave(ctx context.Context, caller policy.Caller, eventID entity.ID) error {
	return m.Called(ctx, caller, eventID).Error(0)
}

func (m *mockRSVPService) Saved(ctx context.Context, caller policy.Caller) ([]entity.Event, error) {
	args := m.Called(ctx, caller)
	out, _ := args.Get(0).([]entity.Event)
	return out, args.Error(1)
}

func rsvpRouter(svc RSVPService, caller policy.Caller) *gin.Engine {
	h := NewRSVPHandler(svc, quietLogger())
	r := gin.New()
	api := r.Group("/api")
	api.GET("/rsvp/:event_id/count", h.Count)
	auth := api.Group("/", as(caller))
	auth.POST("/rsvp", h.Respond)
	auth.DELETE("/rsvp", h.Cancel)
	auth.GET("/rsvp/user/:user_id", h.ForUser)
	auth.POST("/save", h.Save)
	return r
}

func TestRSVPHandler(t *testing.T) {
	caller := policy.Caller{ID: 9, Role: entity.RoleNormalUser}

	t.Run("string event id is accepted", func(t *testing.T) {
		svc := new(mockRSVPService)
		svc.On("Respond", mock.Anything, caller, entity.ID(4), entity.RSVPAttending).Return(int64(3), nil).Once()

		w, env := do(t, rsvpRouter(svc, caller), http.MethodPost, "/api/rsvp", `{"event_id":"4","rsvp_status":"attending"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"rsvp_count":3}`, string(env.Data))
	})

	t.Run("unknown status", func(t *testing.T) {
		svc := new(mockRSVPService)

		w, env := do(t, rsvpRouter(svc, caller), http.MethodPost, "/api/rsvp", `{"event_id":4,"rsvp_status":"going"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, string(env.Error), "rsvp_status")
	})

	t.Run("another user's list", func(t *testing.T) {
		svc := new(mockRSVPService)
		svc.On("AttendingFor", mock.Anything, caller, entity.ID(10)).Return(nil, application.ErrForbidden).Once()

		w, _ := do(t, rsvpRouter(svc, caller), http.MethodGet, "/api/rsvp/user/10", "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("count", func(t *testing.T) {
		svc := new(mockRSVPService)
		svc.On("Count", mock.Anything, entity.ID(4)).Return(int64(7), nil).Once()

		w, env := do(t, rsvpRouter(svc, caller), http.MethodGet, "/api/rsvp/4/count", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"count":7}`, string(env.Data))
	})

	t.Run("save unknown event", func(t *testing.T) {
		svc := new(mockRSVPService)
		svc.On("Save", mock.Anything, caller, entity.ID(4)).Return(application.ErrEventNotFound).Once()

		w, _ := do(t, rsvpRouter(svc, caller), http.MethodPost, "/api/save", `{"event_id":4}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
