package entity

import "time"

type Comment struct {
	ID          ID        `json:"comment_id"`
	EventID     ID        `json:"event_id"`
	UserID      ID        `json:"user_id"`
	CommentText string    `json:"comment_text"`
	CreatedAt   time.Time `json:"created_at"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email,omitempty"`
}

type Photo struct {
	ID         ID        `json:"photo_id"`
	EventID    ID        `json:"event_id"`
	UploadedBy ID        `json:"uploaded_by"`
	PhotoURL   string    `json:"photo_url"`
	ObjectKey  string    `json:"-"`
	Caption    string    `json:"caption,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
}

// RSVPStatus is a user's answer to an event invitation.
type RSVPStatus string

const (
	RSVPAttending    RSVPStatus = "attending"
	RSVPMaybe        RSVPStatus = "maybe"
	RSVPNotAttending RSVPStatus = "not_attending"
)

func (s RSVPStatus) Valid() bool {
	switch s {
	case RSVPAttending, RSVPMaybe, RSVPNotAttending:
		return true
	}
	return false
}
