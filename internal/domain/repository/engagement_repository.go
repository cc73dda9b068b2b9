package repository

import (
	"context"

	"github.com/hawkcentral/campus-events/internal/domain/entity"
)

type CommentRepository interface {
	ListByEvent(ctx context.Context, eventID entity.ID) ([]entity.Comment, error)
	// Create inserts c and fills its id, timestamp and author names.
	Create(ctx context.Context, c *entity.Comment) error
	GetAuthor(ctx context.Context, id entity.ID) (author entity.ID, found bool, err error)
	Delete(ctx context.Context, id entity.ID) error
}

type PhotoRepository interface {
	ListByEvent(ctx context.Context, eventID entity.ID) ([]entity.Photo, error)
	Create(ctx context.Context, p *entity.Photo) error
	GetByID(ctx context.Context, id entity.ID) (*entity.Photo, error)
	Delete(ctx context.Context, id entity.ID) error
}

type RSVPRepository interface {
	Upsert(ctx context.Context, eventID, userID entity.ID, status entity.RSVPStatus) error
	Delete(ctx context.Context, eventID, userID entity.ID) error
	CountAttending(ctx context.Context, eventID entity.ID) (int64, error)
	Save(ctx context.Context, eventID, userID entity.ID) error
	Unsave(ctx context.Context, eventID, userID entity.ID) error
}
