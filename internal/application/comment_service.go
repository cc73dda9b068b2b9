package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/hawkcentral/campus-events/internal/domain/entity"
	"github.com/hawkcentral/campus-events/internal/domain/policy"
	repo "github.com/hawkcentral/campus-events/internal/domain/repository"
	"github.com/hawkcentral/campus-events/pkg/sanitize"
)

type CommentService struct {
	Repo   repo.CommentRepository
	Events policy.OwnerLookup
	Logger *logrus.Logger
}

func NewCommentService(comments repo.CommentRepository, events policy.OwnerLookup, logger *logrus.Logger) *CommentService {
	return &CommentService{Repo: comments, Events: events, Logger: logger}
}

func (s *CommentService) List(ctx context.Context, eventID entity.ID) ([]entity.Comment, error) {
	return s.Repo.ListByEvent(ctx, eventID)
}

// eventExists is shared by the services that attach rows to an event.
func eventExists(ctx context.Context, events policy.OwnerLookup, id entity.ID) error {
	_, found, err := events.GetOwner(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrEventNotFound
	}
	return nil
}

// Add posts a plain text comment as the caller.
func (s *CommentService) Add(ctx context.Context, caller policy.Caller, eventID entity.ID, text string) (*entity.Comment, error) {
	if !caller.ID.Valid() {
		return nil, ErrForbidden
	}
	text = sanitize.Text(text)
	if text == "" {
		return nil, ErrInvalidInput
	}
	if err := eventExists(ctx, s.Events, eventID); err != nil {
		return nil, err
	}
	c := &entity.Comment{EventID: eventID, UserID: caller.ID, CommentText: text}
	if err := s.Repo.Create(ctx, c); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return c, nil
}

// Delete removes a comment when the caller wrote it or moderates.
func (s *CommentService) Delete(ctx context.Context, caller policy.Caller, id entity.ID) error {
	author, found, err := s.Repo.GetAuthor(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrCommentNotFound
	}
	if !policy.OwnsOrModerates(caller, author) {
		s.Logger.WithFields(logrus.Fields{"comment_id": id, "caller_id": caller.ID}).Debug("comment delete denied")
		return ErrForbidden
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	return nil
}
