package entity

import (
	"crypto/subtle"
	"time"
)

// User is an account in the credential store.
// PasswordHash holds a bcrypt digest, never the plain password.
type User struct {
	ID               ID         `json:"user_id"`
	Email            string     `json:"email"`
	PasswordHash     string     `json:"-"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	Role             Role       `json:"role"`
	StudentID        *string    `json:"student_id,omitempty"`
	Major            *string    `json:"major,omitempty"`
	GraduationYear   *int       `json:"graduation_year,omitempty"`
	ResetToken       *string    `json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// ResetTokenValid reports whether token matches the stored one and has not expired at now.
func (u *User) ResetTokenValid(token string, now time.Time) bool {
	if u.ResetToken == nil || u.ResetTokenExpiry == nil || token == "" {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(*u.ResetToken), []byte(token)) != 1 {
		return false
	}
	return now.Before(*u.ResetTokenExpiry)
}
