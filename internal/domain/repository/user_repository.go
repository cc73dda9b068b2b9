package repository

import (
	"context"
	"time"

	"github.com/hawkcentral/campus-events/internal/domain/entity"
)

// UserRepository is the credential store.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id entity.ID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetByResetToken returns the user holding token if it is still valid at now.
	GetByResetToken(ctx context.Context, token string, now time.Time) (*entity.User, error)
	SetResetToken(ctx context.Context, id entity.ID, token string, expiry time.Time) error
	// UpdatePassword stores a new digest and clears any reset token.
	UpdatePassword(ctx context.Context, id entity.ID, hash string) error
}
