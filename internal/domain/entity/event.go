package entity

import "time"

// Event is a campus event together with the display fields joined from its
// category and location and the derived counters.
type Event struct {
	ID            ID        `json:"event_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	EventDate     time.Time `json:"event_date"`
	StartTime     string    `json:"start_time,omitempty"`
	EndTime       string    `json:"end_time,omitempty"`
	LocationID    *ID       `json:"location_id"`
	CategoryID    *ID       `json:"category_id"`
	OrganizerName string    `json:"organizer_name,omitempty"`
	ContactEmail  string    `json:"contact_email,omitempty"`
	MaxCapacity   *int      `json:"max_capacity"`
	CreatedBy     ID        `json:"created_by"`
	IsActive      bool      `json:"is_active"`
	IsPublic      bool      `json:"is_public"`
	IsFeatured    bool      `json:"is_featured"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	CategoryName  string `json:"category_name,omitempty"`
	CategoryColor string `json:"category_color,omitempty"`
	LocationName  string `json:"location_name,omitempty"`
	BuildingName  string `json:"building_name,omitempty"`

	RSVPCount    int64 `json:"rsvp_count"`
	CommentCount int64 `json:"comment_count"`
	PhotoCount   int64 `json:"photo_count"`
}

// Category groups events; names are unique ignoring case.
type Category struct {
	ID       ID     `json:"category_id"`
	Name     string `json:"category_name"`
	Color    string `json:"color,omitempty"`
	IsActive bool   `json:"is_active"`
}

// Location is a place events are held at.
type Location struct {
	ID           ID     `json:"location_id"`
	LocationName string `json:"location_name"`
	BuildingName string `json:"building_name"`
	IsActive     bool   `json:"is_active"`
}
