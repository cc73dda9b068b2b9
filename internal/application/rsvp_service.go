package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/hawkcentral/campus-events/internal/domain/entity"
	"github.com/hawkcentral/campus-events/internal/domain/policy"
	repo "github.com/hawkcentral/campus-events/internal/domain/repository"
)

// RSVPService handles attendance answers and saved events.
type RSVPService struct {
	Repo   repo.RSVPRepository
	Events repo.EventRepository
	Logger *logrus.Logger
}

func NewRSVPService(rsvps repo.RSVPRepository, events repo.EventRepository, logger *logrus.Logger) *RSVPService {
	return &RSVPService{Repo: rsvps, Events: events, Logger: logger}
}

func mapMissingEvent(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return ErrEventNotFound
	}
	return err
}

// Respond records the caller's answer and returns the attending count.
func (s *RSVPService) Respond(ctx context.Context, caller policy.Caller, eventID entity.ID, status entity.RSVPStatus) (int64, error) {
	if !caller.ID.Valid() {
		return 0, ErrForbidden
	}
	if !status.Valid() {
		return 0, ErrInvalidInput
	}
	if err := eventExists(ctx, s.Events, eventID); err != nil {
		return 0, err
	}
	if err := s.Repo.Upsert(ctx, eventID, caller.ID, status); err != nil {
		return 0, mapMissingEvent(err)
	}
	return s.Repo.CountAttending(ctx, eventID)
}

// Cancel withdraws the caller's answer and returns the attending count.
func (s *RSVPService) Cancel(ctx context.Context, caller policy.Caller, eventID entity.ID) (int64, error) {
	if !caller.ID.Valid() {
		return 0, ErrForbidden
	}
	if err := s.Repo.Delete(ctx, eventID, caller.ID); err != nil {
		return 0, err
	}
	return s.Repo.CountAttending(ctx, eventID)
}

func (s *RSVPService) Count(ctx context.Context, eventID entity.ID) (int64, error) {
	return s.Repo.CountAttending(ctx, eventID)
}

// AttendingFor lists the events userID is attending. Only that user or a
// moderator may look.
func (s *RSVPService) AttendingFor(ctx context.Context, caller policy.Caller, userID entity.ID) ([]entity.Event, error) {
	if !policy.OwnsOrModerates(caller, userID) {
		return nil, ErrForbidden
	}
	return s.Events.ListAttendingByUser(ctx, userID)
}

func (s *RSVPService) Save(ctx context.Context, caller policy.Caller, eventID entity.ID) error {
	if !caller.ID.Valid() {
		return ErrForbidden
	}
	if err := eventExists(ctx, s.Events, eventID); err != nil {
		return err
	}
	return mapMissingEvent(s.Repo.Save(ctx, eventID, caller.ID))
}

func (s *RSVPService) Unsave(ctx context.Context, caller policy.Caller, eventID entity.ID) error {
	if !caller.ID.Valid() {
		return ErrForbidden
	}
	return s.Repo.Unsave(ctx, eventID, caller.ID)
}

func (s *RSVPService) Saved(ctx context.Context, caller policy.Caller) ([]entity.Event, error) {
	if !caller.ID.Valid() {
		return nil, ErrForbidden
	}
	return s.Events.ListSavedByUser(ctx, caller.ID)
}
