package application

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"

	"github.com/hawkcentral/campus-events/internal/domain/entity"
	"github.com/hawkcentral/campus-events/internal/domain/policy"
	repo "github.com/hawkcentral/campus-events/internal/domain/repository"
	"github.com/hawkcentral/campus-events/internal/infrastructure/objectstore"
	"github.com/hawkcentral/campus-events/pkg/metrics"
	"github.com/hawkcentral/campus-events/pkg/sanitize"
)

var (
	allowedImageExt = map[string]bool{"jpeg": true, "jpg": true, "png": true, "gif": true, "webp": true}

	// sniffed type -> stored extension
	allowedImageMIME = map[string]string{
		"image/jpeg": "jpg",
		"image/png":  "png",
		"image/gif":  "gif",
		"image/webp": "webp",
	}
)

type PhotoService struct {
	Repo     repo.PhotoRepository
	Events   policy.OwnerLookup
	Store    objectstore.Store // nil disables uploads
	MaxBytes int64
	Logger   *logrus.Logger

	now func() time.Time
}

func NewPhotoService(photos repo.PhotoRepository, events policy.OwnerLookup, store objectstore.Store, maxBytes int64, logger *logrus.Logger) *PhotoService {
	return &PhotoService{Repo: photos, Events: events, Store: store, MaxBytes: maxBytes, Logger: logger, now: time.Now}
}

func (s *PhotoService) List(ctx context.Context, eventID entity.ID) ([]entity.Photo, error) {
	return s.Repo.ListByEvent(ctx, eventID)
}

// UploadInput is one file from a multipart form.
type UploadInput struct {
	Filename string
	Body     io.Reader
	Caption  string
}

// checkImage reads the upload (bounded by MaxBytes) and returns its bytes
// with the content type detected from them.
func (s *PhotoService) checkImage(in UploadInput) ([]byte, string, string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(in.Filename), "."))
	if !allowedImageExt[ext] {
		return nil, "", "", ErrInvalidImage
	}
	data, err := io.ReadAll(io.LimitReader(in.Body, s.MaxBytes+1))
	if err != nil {
		return nil, "", "", err
	}
	if int64(len(data)) > s.MaxBytes {
		return nil, "", "", ErrPhotoTooLarge
	}
	mt := mimetype.Detect(data)
	for m := mt; m != nil; m = m.Parent() {
		if storedExt, ok := allowedImageMIME[m.String()]; ok {
			return data, m.String(), storedExt, nil
		}
	}
	return nil, "", "", ErrInvalidImage
}

// Upload stores an image for an event and records it under the caller.
func (s *PhotoService) Upload(ctx context.Context, caller policy.Caller, eventID entity.ID, in UploadInput) (*entity.Photo, error) {
	if s.Store == nil {
		return nil, ErrStorageDisabled
	}
	if !caller.ID.Valid() {
		return nil, ErrForbidden
	}
	data, contentType, ext, err := s.checkImage(in)
	if err != nil {
		return nil, err
	}
	if err := eventExists(ctx, s.Events, eventID); err != nil {
		return nil, err
	}

	key := objectstore.NewKey("events/"+eventID.String(), ext, s.now())
	url, err := s.Store.Put(ctx, key, contentType, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	p := &entity.Photo{
		EventID:    eventID,
		UploadedBy: caller.ID,
		PhotoURL:   url,
		ObjectKey:  key,
		Caption:    sanitize.Text(in.Caption),
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		if dErr := s.Store.Delete(ctx, key); dErr != nil {
			s.Logger.WithError(dErr).WithField("key", key).Warn("orphaned photo object")
		}
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	metrics.PhotoUploadBytes.Observe(float64(len(data)))
	return p, nil
}

// Delete removes a photo when the caller uploaded it or moderates.
func (s *PhotoService) Delete(ctx context.Context, caller policy.Caller, id entity.ID) error {
	p, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrPhotoNotFound
	}
	if err != nil {
		return err
	}
	if !policy.OwnsOrModerates(caller, p.UploadedBy) {
		s.Logger.WithFields(logrus.Fields{"photo_id": id, "caller_id": caller.ID}).Debug("photo delete denied")
		return ErrForbidden
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrPhotoNotFound
		}
		return err
	}
	if s.Store != nil && p.ObjectKey != "" {
		if err := s.Store.Delete(ctx, p.ObjectKey); err != nil {
			s.Logger.WithError(err).WithField("key", p.ObjectKey).Warn("delete photo object failed")
		}
	}
	return nil
}
