package policy

import "github.com/hawkcentral/campus-events/internal/domain/entity"

// Scope names a read path; each has its own visibility filter.
type Scope int

const (
	// ScopeListing is the general events list: active and public events only.
	ScopeListing Scope = iota
	// ScopeFeatured is the featured strip: featured and active, public or not.
	ScopeFeatured
	// ScopeDetail is a single event fetched by id, returned whatever its flags.
	ScopeDetail
)

func (s Scope) String() string {
	switch s {
	case ScopeListing:
		return "listing"
	case ScopeFeatured:
		return "featured"
	case ScopeDetail:
		return "detail"
	}
	return "unknown"
}

// Visible reports whether e may be returned on the given read path.
func Visible(scope Scope, e *entity.Event) bool {
	if e == nil {
		return false
	}
	switch scope {
	case ScopeListing:
		return e.IsActive && e.IsPublic
	case ScopeFeatured:
		return e.IsFeatured && e.IsActive
	case ScopeDetail:
		return true
	}
	return false
}
