package application

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"

	"github.com/hawkcentral/campus-events/internal/domain/entity"
	repo "github.com/hawkcentral/campus-events/internal/domain/repository"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type mockEvents struct{ mock.Mock }

func (m *mockEvents) GetOwner(ctx context.Context, id entity.ID) (entity.ID, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(entity.ID), args.Bool(1), args.Error(2)
}

func (m *mockEvents) List(ctx context.Context, f repo.EventFilter) ([]entity.Event, error) {
	args := m.Called(ctx, f)
	out, _ := args.Get(0).([]entity.Event)
	return out, args.Error(1)
}

func (m *mockEvents) GetByID(ctx context.Context, id entity.ID) (*entity.Event, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*entity.Event)
	return out, args.Error(1)
}

func (m *mockEvents) Create(ctx context.Context, e *entity.Event) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockEvents) Update(ctx context.Context, e *entity.Event) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockEvents) Delete(ctx context.Context, id entity.ID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockEvents) ListAttendingByUser(ctx context.Context, id entity.ID) ([]entity.Event, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).([]entity.Event)
	return out, args.Error(1)
}

func (m *mockEvents) ListSavedByUser(ctx context.Context, id entity.ID) ([]entity.Event, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).([]entity.Event)
	return out, args.Error(1)
}

type mockCategories struct{ mock.Mock }

func (m *mockCategories) ListActive(ctx context.Context) ([]entity.Category, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]entity.Category)
	return out, args.Error(1)
}

func (m *mockCategories) Search(ctx context.Context, q string, limit int) ([]entity.Category, error) {
	args := m.Called(ctx, q, limit)
	out, _ := args.Get(0).([]entity.Category)
	return out, args.Error(1)
}

func (m *mockCategories) GetOrCreate(ctx context.Context, name string) (entity.ID, bool, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(entity.ID), args.Bool(1), args.Error(2)
}

type mockLocations struct{ mock.Mock }

func (m *mockLocations) ListActive(ctx context.Context) ([]entity.Location, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]entity.Location)
	return out, args.Error(1)
}

func (m *mockLocations) Search(ctx context.Context, q string, limit int) ([]entity.Location, error) {
	args := m.Called(ctx, q, limit)
	out, _ := args.Get(0).([]entity.Location)
	return out, args.Error(1)
}

func (m *mockLocations) GetOrCreate(ctx context.Context, loc, bldg string) (entity.ID, bool, error) {
	args := m.Called(ctx, loc, bldg)
	return args.Get(0).(entity.ID), args.Bool(1), args.Error(2)
}

type mockComments struct{ mock.Mock }

func (m *mockComments) ListByEvent(ctx context.Context, id entity.ID) ([]entity.Comment, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).([]entity.Comment)
	return out, args.Error(1)
}

func (m *mockComments) Create(ctx context.Context, c *entity.Comment) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockComments) GetAuthor(ctx context.Context, id entity.ID) (entity.ID, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(entity.ID), args.Bool(1), args.Error(2)
}

func (m *mockComments) Delete(ctx context.Context, id entity.ID) error {
	return m.Called(ctx, id).Error(0)
}

type mockPhotos struct{ mock.Mock }

func (m *mockPhotos) ListByEvent(ctx context.Context, id entity.ID) ([]entity.Photo, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).([]entity.Photo)
	return out, args.Error(1)
}

func (m *mockPhotos) Create(ctx context.Context, p *entity.Photo) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockPhotos) GetByID(ctx context.Context, id entity.ID) (*entity.Photo, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*entity.Photo)
	return out, args.Error(1)
}

func (m *mockPhotos) Delete(ctx context.Context, id entity.ID) error {
	return m.Called(ctx, id).Error(0)
}

type mockRSVPs struct{ mock.Mock }

func (m *mockRSVPs) Upsert(ctx context.Context, eventID, userID entity.ID, status entity.RSVPStatus) error {
	return m.Called(ctx, eventID, userID, status).Error(0)
}

func (m *mockRSVPs) Delete(ctx context.Context, eventID, userID entity.ID) error {
	return m.Called(ctx, eventID, userID).Error(0)
}

func (m *mockRSVPs) CountAttending(ctx context.Context, eventID entity.ID) (int64, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRSVPs) Save(ctx context.Context, eventID, userID entity.ID) error {
	return m.Called(ctx, eventID, userID).Error(0)
}

func (m *mockRSVPs) Unsave(ctx context.Context, eventID, userID entity.ID) error {
	return m.Called(ctx, eventID, userID).Error(0)
}

type mockUsers struct{ mock.Mock }

func (m *mockUsers) Create(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUsers) GetByID(ctx context.Context, id entity.ID) (*entity.User, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*entity.User)
	return out, args.Error(1)
}

func (m *mockUsers) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	out, _ := args.Get(0).(*entity.User)
	return out, args.Error(1)
}

func (m *mockUsers) GetByResetToken(ctx context.Context, token string, now time.Time) (*entity.User, error) {
	args := m.Called(ctx, token, now)
	out, _ := args.Get(0).(*entity.User)
	return out, args.Error(1)
}

func (m *mockUsers) SetResetToken(ctx context.Context, id entity.ID, token string, expiry time.Time) error {
	return m.Called(ctx, id, token, expiry).Error(0)
}

func (m *mockUsers) UpdatePassword(ctx context.Context, id entity.ID, hash string) error {
	return m.Called(ctx, id, hash).Error(0)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) PublishJSON(ctx context.Context, body any) error {
	return m.Called(ctx, body).Error(0)
}

type mockIndex struct{ mock.Mock }

func (m *mockIndex) IndexEvent(ctx context.Context, e *entity.Event) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockIndex) RemoveEvent(ctx context.Context, id entity.ID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockIndex) SearchEvents(ctx context.Context, q string, size int) ([]entity.ID, error) {
	args := m.Called(ctx, q, size)
	out, _ := args.Get(0).([]entity.ID)
	return out, args.Error(1)
}

// memStore is an in-memory objectstore.Store.
type memStore struct {
	objects map[string][]byte
	putErr  error
}

func newMemStore() *memStore { return &memStore{objects: map[string][]byte{}} }

func (s *memStore) Put(_ context.Context, key, _ string, r io.Reader) (string, error) {
	if s.putErr != nil {
		return "", s.putErr
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", err
	}
	s.objects[key] = buf.Bytes()
	return "/uploads/" + key, nil
}

func (s *memStore) Delete(_ context.Context, key string) error {
	delete(s.objects, key)
	return nil
}
