// Package policy holds the authorization and visibility rules for events
// and the content attached to them.
package policy

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/hawkcentral/campus-events/internal/domain/entity"
)

// Caller is the verified identity behind a request.
type Caller struct {
	ID   entity.ID
	Role entity.Role
}

// OwnerLookup resolves who created an event. found is false when the event
// does not exist; err is reserved for read failures.
type OwnerLookup interface {
	GetOwner(ctx context.Context, eventID entity.ID) (owner entity.ID, found bool, err error)
}

// EventAuthorizer decides whether a caller may update or delete an event.
// It keeps no state between calls and is safe for concurrent use.
type EventAuthorizer struct {
	owners OwnerLookup
	logger *logrus.Logger
}

func NewEventAuthorizer(owners OwnerLookup, logger *logrus.Logger) *EventAuthorizer {
	if logger == nil {
		logger = logrus.New()
	}
	return &EventAuthorizer{owners: owners, logger: logger}
}

// CanModify returns true when the caller is a super_admin, or when the event
// exists and was created by the caller. A missing event and a failed owner
// lookup both yield false. At most one owner lookup is made.
func (a *EventAuthorizer) CanModify(ctx context.Context, caller Caller, eventID entity.ID) bool {
	if caller.Role.CanModifyAnyEvent() {
		return true
	}
	owner, found, err := a.owners.GetOwner(ctx, eventID)
	if err != nil {
		a.logger.WithError(err).WithFields(logrus.Fields{
			"event_id":  eventID,
			"caller_id": caller.ID,
		}).Warn("owner lookup failed, denying")
		return false
	}
	if !found {
		return false
	}
	allowed := caller.ID.Equal(owner)
	if !allowed {
		a.logger.WithFields(logrus.Fields{
			"event_id":  eventID,
			"caller_id": caller.ID,
			"role":      caller.Role,
		}).Debug("event modification denied")
	}
	return allowed
}

// OwnsOrModerates is the rule for removing comments and photos and for
// reading another user's RSVPs: the author themself, a super_admin or an it_admin.
func OwnsOrModerates(caller Caller, ownerID entity.ID) bool {
	return caller.Role.Moderates() || caller.ID.Equal(ownerID)
}
