package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hawkcentral/campus-events/internal/domain/entity"
	"github.com/hawkcentral/campus-events/internal/domain/policy"
	repo "github.com/hawkcentral/campus-events/internal/domain/repository"
	"github.com/hawkcentral/campus-events/pkg/metrics"
	"github.com/hawkcentral/campus-events/pkg/sanitize"
)

// EventIndex is the optional full text index kept next to the event table.
type EventIndex interface {
	IndexEvent(ctx context.Context, e *entity.Event) error
	RemoveEvent(ctx context.Context, id entity.ID) error
	SearchEvents(ctx context.Context, q string, size int) ([]entity.ID, error)
}

type EventService struct {
	Repo    repo.EventRepository
	Catalog *CatalogService
	Authz   *policy.EventAuthorizer
	Index   EventIndex // nil when search is not configured
	Logger  *logrus.Logger
}

func NewEventService(events repo.EventRepository, catalog *CatalogService, authz *policy.EventAuthorizer, index EventIndex, logger *logrus.Logger) *EventService {
	return &EventService{Repo: events, Catalog: catalog, Authz: authz, Index: index, Logger: logger}
}

// EventInput carries the editable fields of an event.
type EventInput struct {
	Title         string
	Description   string
	EventDate     time.Time
	StartTime     string
	EndTime       string
	LocationName  string
	BuildingName  string
	CategoryName  string
	OrganizerName string
	ContactEmail  string
	MaxCapacity   *int
}

func (s *EventService) List(ctx context.Context, category, search string) ([]entity.Event, error) {
	return s.Repo.List(ctx, repo.EventFilter{Scope: policy.ScopeListing, Category: category, Search: search})
}

func (s *EventService) Featured(ctx context.Context) ([]entity.Event, error) {
	return s.Repo.List(ctx, repo.EventFilter{Scope: policy.ScopeFeatured})
}

// Get returns one event whatever its active/public flags.
func (s *EventService) Get(ctx context.Context, id entity.ID) (*entity.Event, error) {
	e, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Search queries the index and returns the matching events that are still
// visible in the public listing. Without an index it falls back to the
// title/description match of the listing query.
func (s *EventService) Search(ctx context.Context, q string, size int) ([]entity.Event, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []entity.Event{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	if s.Index == nil {
		list, err := s.Repo.List(ctx, repo.EventFilter{Scope: policy.ScopeListing, Search: q})
		if err != nil {
			return nil, err
		}
		if len(list) > size {
			list = list[:size]
		}
		return list, nil
	}
	ids, err := s.Index.SearchEvents(ctx, q, size)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Event, 0, len(ids))
	for _, id := range ids {
		e, err := s.Repo.GetByID(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if policy.Visible(policy.ScopeListing, e) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (s *EventService) build(ctx context.Context, in EventInput) (*entity.Event, error) {
	e := &entity.Event{
		Title:         sanitize.Text(in.Title),
		Description:   sanitize.HTML(in.Description),
		EventDate:     in.EventDate,
		StartTime:     strings.TrimSpace(in.StartTime),
		EndTime:       strings.TrimSpace(in.EndTime),
		OrganizerName: sanitize.Text(in.OrganizerName),
		ContactEmail:  strings.TrimSpace(in.ContactEmail),
		MaxCapacity:   in.MaxCapacity,
	}
	if e.Title == "" || e.EventDate.IsZero() {
		return nil, ErrInvalidInput
	}
	var err error
	if e.CategoryID, err = s.Catalog.ResolveCategory(ctx, in.CategoryName); err != nil {
		return nil, err
	}
	if e.LocationID, err = s.Catalog.ResolveLocation(ctx, in.LocationName, in.BuildingName); err != nil {
		return nil, err
	}
	return e, nil
}

// Create stores a new event owned by the caller.
func (s *EventService) Create(ctx context.Context, caller policy.Caller, in EventInput) (*entity.Event, error) {
	if !caller.ID.Valid() {
		return nil, ErrForbidden
	}
	e, err := s.build(ctx, in)
	if err != nil {
		return nil, err
	}
	e.CreatedBy = caller.ID
	e.IsActive = true
	e.IsPublic = true
	if err := s.Repo.Create(ctx, e); err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"event_id": e.ID, "user_id": caller.ID}).Info("event created")
	return s.reload(ctx, e)
}

// Update rewrites an event the caller may modify. created_by never changes.
func (s *EventService) Update(ctx context.Context, caller policy.Caller, id entity.ID, in EventInput) (*entity.Event, error) {
	allowed := s.Authz.CanModify(ctx, caller, id)
	metrics.RecordDecision("update", allowed)
	if !allowed {
		return nil, ErrForbidden
	}
	e, err := s.build(ctx, in)
	if err != nil {
		return nil, err
	}
	e.ID = id
	if err := s.Repo.Update(ctx, e); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"event_id": id, "user_id": caller.ID}).Info("event updated")
	return s.reload(ctx, e)
}

// Delete physically removes an event the caller may modify.
func (s *EventService) Delete(ctx context.Context, caller policy.Caller, id entity.ID) error {
	allowed := s.Authz.CanModify(ctx, caller, id)
	metrics.RecordDecision("delete", allowed)
	if !allowed {
		return ErrForbidden
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	if s.Index != nil {
		if err := s.Index.RemoveEvent(ctx, id); err != nil {
			s.Logger.WithError(err).WithField("event_id", id).Warn("remove from search index failed")
		}
	}
	s.Logger.WithFields(logrus.Fields{"event_id": id, "user_id": caller.ID}).Info("event deleted")
	return nil
}

// reload reads back the stored row with its joined names and counts and
// refreshes the search document.
func (s *EventService) reload(ctx context.Context, e *entity.Event) (*entity.Event, error) {
	full, err := s.Repo.GetByID(ctx, e.ID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if s.Index != nil {
		if err := s.Index.IndexEvent(ctx, full); err != nil {
			s.Logger.WithError(err).WithField("event_id", full.ID).Warn("search index update failed")
		}
	}
	return full, nil
}
