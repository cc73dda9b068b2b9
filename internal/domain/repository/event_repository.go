package repository

import (
	"context"

	"github.com/hawkcentral/campus-events/internal/domain/entity"
	"github.com/hawkcentral/campus-events/internal/domain/policy"
)

// EventFilter narrows List. Category and Search are case-insensitive substring matches.
type EventFilter struct {
	Scope    policy.Scope
	Category string
	Search   string
}

type EventRepository interface {
	policy.OwnerLookup

	List(ctx context.Context, f EventFilter) ([]entity.Event, error)
	GetByID(ctx context.Context, id entity.ID) (*entity.Event, error)
	// Create inserts e and fills its id and timestamps.
	Create(ctx context.Context, e *entity.Event) error
	// Update rewrites the editable columns; created_by is never touched.
	Update(ctx context.Context, e *entity.Event) error
	Delete(ctx context.Context, id entity.ID) error

	ListAttendingByUser(ctx context.Context, userID entity.ID) ([]entity.Event, error)
	ListSavedByUser(ctx context.Context, userID entity.ID) ([]entity.Event, error)
}
