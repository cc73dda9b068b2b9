package application

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hawkcentral/campus-events/internal/domain/entity"
	"github.com/hawkcentral/campus-events/internal/domain/policy"
	repo "github.com/hawkcentral/campus-events/internal/domain/repository"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func TestCommentService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("sanitizes and stores", func(t *testing.T) {
		comments, events := new(mockComments), new(mockEvents)
		events.On("GetOwner", mock.Anything, entity.ID(4)).Return(entity.ID(1), true, nil).Once()
		comments.On("Create", mock.Anything, mock.MatchedBy(func(c *entity.Comment) bool {
			return c.CommentText == "see you there" && c.UserID == 9 && c.EventID == 4
		})).Return(nil).Once()

		c, err := NewCommentService(comments, events, quietLogger()).Add(ctx, stranger, 4, "<script>x</script>see you there ")

		require.NoError(t, err)
		assert.Equal(t, "see you there", c.CommentText)
		comments.AssertExpectations(t)
	})

	t.Run("empty after sanitizing", func(t *testing.T) {
		_, err := NewCommentService(new(mockComments), new(mockEvents), quietLogger()).Add(ctx, stranger, 4, "<b> </b>")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown event", func(t *testing.T) {
		events := new(mockEvents)
		events.On("GetOwner", mock.Anything, entity.ID(4)).Return(entity.ID(0), false, nil).Once()

		_, err := NewCommentService(new(mockComments), events, quietLogger()).Add(ctx, stranger, 4, "hi")
		assert.ErrorIs(t, err, ErrEventNotFound)
	})
}

func TestCommentService_Delete(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name   string
		caller policy.Caller
		want   error
	}{
		{"author", policy.Caller{ID: 9, Role: entity.RoleNormalUser}, nil},
		{"other user", policy.Caller{ID: 10, Role: entity.RoleNormalUser}, ErrForbidden},
		{"it_admin moderates", itAdmin, nil},
		{"super_admin moderates", admin, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			comments := new(mockComments)
			comments.On("GetAuthor", mock.Anything, entity.ID(3)).Return(entity.ID(9), true, nil).Once()
			comments.On("Delete", mock.Anything, entity.ID(3)).Return(nil).Maybe()

			err := NewCommentService(comments, new(mockEvents), quietLogger()).Delete(ctx, tc.caller, 3)

			if tc.want == nil {
				require.NoError(t, err)
				comments.AssertCalled(t, "Delete", mock.Anything, entity.ID(3))
			} else {
				assert.ErrorIs(t, err, tc.want)
				comments.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
			}
		})
	}

	t.Run("missing comment", func(t *testing.T) {
		comments := new(mockComments)
		comments.On("GetAuthor", mock.Anything, entity.ID(3)).Return(entity.ID(0), false, nil).Once()

		err := NewCommentService(comments, new(mockEvents), quietLogger()).Delete(ctx, admin, 3)
		assert.ErrorIs(t, err, ErrCommentNotFound)
	})
}

func TestPhotoService_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a png", func(t *testing.T) {
		photos, events, store := new(mockPhotos), new(mockEvents), newMemStore()
		events.On("GetOwner", mock.Anything, entity.ID(4)).Return(entity.ID(1), true, nil).Once()
		photos.On("Create", mock.Anything, mock.AnythingOfType("*entity.Photo")).Return(nil).Once()

		svc := NewPhotoService(photos, events, store, 1024, quietLogger())
		p, err := svc.Upload(ctx, stranger, 4, UploadInput{Filename: "Quad.PNG", Body: bytes.NewReader(pngHeader), Caption: "quad"})

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(p.ObjectKey, "events/4/"))
		assert.True(t, strings.HasSuffix(p.ObjectKey, ".png"))
		assert.Equal(t, "/uploads/"+p.ObjectKey, p.PhotoURL)
		assert.Equal(t, entity.ID(9), p.UploadedBy)
		assert.Len(t, store.objects, 1)
	})

	t.Run("rejects wrong extension", func(t *testing.T) {
		svc := NewPhotoService(new(mockPhotos), new(mockEvents), newMemStore(), 1024, quietLogger())
		_, err := svc.Upload(ctx, stranger, 4, UploadInput{Filename: "quad.svg", Body: bytes.NewReader(pngHeader)})
		assert.ErrorIs(t, err, ErrInvalidImage)
	})

	t.Run("rejects content that is not an image", func(t *testing.T) {
		svc := NewPhotoService(new(mockPhotos), new(mockEvents), newMemStore(), 1024, quietLogger())
		_, err := svc.Upload(ctx, stranger, 4, UploadInput{Filename: "quad.jpg", Body: strings.NewReader("#!/bin/sh\necho hi\n")})
		assert.ErrorIs(t, err, ErrInvalidImage)
	})

	t.Run("rejects oversized upload", func(t *testing.T) {
		svc := NewPhotoService(new(mockPhotos), new(mockEvents), newMemStore(), 8, quietLogger())
		_, err := svc.Upload(ctx, stranger, 4, UploadInput{Filename: "quad.png", Body: bytes.NewReader(pngHeader)})
		assert.ErrorIs(t, err, ErrPhotoTooLarge)
	})

	t.Run("storage disabled", func(t *testing.T) {
		svc := NewPhotoService(new(mockPhotos), new(mockEvents), nil, 1024, quietLogger())
		_, err := svc.Upload(ctx, stranger, 4, UploadInput{Filename: "quad.png", Body: bytes.NewReader(pngHeader)})
		assert.ErrorIs(t, err, ErrStorageDisabled)
	})

	t.Run("removes object when insert fails", func(t *testing.T) {
		photos, events, store := new(mockPhotos), new(mockEvents), newMemStore()
		events.On("GetOwner", mock.Anything, entity.ID(4)).Return(entity.ID(1), true, nil).Once()
		photos.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert failed")).Once()

		svc := NewPhotoService(photos, events, store, 1024, quietLogger())
		_, err := svc.Upload(ctx, stranger, 4, UploadInput{Filename: "quad.png", Body: bytes.NewReader(pngHeader)})

		require.Error(t, err)
		assert.Empty(t, store.objects)
	})
}

func TestPhotoService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("uploader removes row and object", func(t *testing.T) {
		photos, store := new(mockPhotos), newMemStore()
		store.objects["events/4/a.png"] = pngHeader
		photos.On("GetByID", mock.Anything, entity.ID(6)).
			Return(&entity.Photo{ID: 6, UploadedBy: 9, ObjectKey: "events/4/a.png"}, nil).Once()
		photos.On("Delete", mock.Anything, entity.ID(6)).Return(nil).Once()

		err := NewPhotoService(photos, new(mockEvents), store, 1024, quietLogger()).Delete(ctx, stranger, 6)

		require.NoError(t, err)
		assert.Empty(t, store.objects)
	})

	t.Run("other user is forbidden", func(t *testing.T) {
		photos := new(mockPhotos)
		photos.On("GetByID", mock.Anything, entity.ID(6)).Return(&entity.Photo{ID: 6, UploadedBy: 9}, nil).Once()

		err := NewPhotoService(photos, new(mockEvents), newMemStore(), 1024, quietLogger()).Delete(ctx, owner, 6)

		assert.ErrorIs(t, err, ErrForbidden)
		photos.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("missing photo", func(t *testing.T) {
		photos := new(mockPhotos)
		photos.On("GetByID", mock.Anything, entity.ID(6)).Return(nil, repo.ErrNotFound).Once()

		err := NewPhotoService(photos, new(mockEvents), newMemStore(), 1024, quietLogger()).Delete(ctx, admin, 6)
		assert.ErrorIs(t, err, ErrPhotoNotFound)
	})
}

func TestRSVPService(t *testing.T) {
	ctx := context.Background()

	t.Run("respond returns attending count", func(t *testing.T) {
		rsvps, events := new(mockRSVPs), new(mockEvents)
		events.On("GetOwner", mock.Anything, entity.ID(4)).Return(entity.ID(1), true, nil).Once()
		rsvps.On("Upsert", mock.Anything, entity.ID(4), entity.ID(9), entity.RSVPMaybe).Return(nil).Once()
		rsvps.On("CountAttending", mock.Anything, entity.ID(4)).Return(int64(12), nil).Once()

		n, err := NewRSVPService(rsvps, events, quietLogger()).Respond(ctx, stranger, 4, entity.RSVPMaybe)

		require.NoError(t, err)
		assert.Equal(t, int64(12), n)
	})

	t.Run("bad status", func(t *testing.T) {
		_, err := NewRSVPService(new(mockRSVPs), new(mockEvents), quietLogger()).Respond(ctx, stranger, 4, "going")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown event", func(t *testing.T) {
		events := new(mockEvents)
		events.On("GetOwner", mock.Anything, entity.ID(4)).Return(entity.ID(0), false, nil).Once()

		_, err := NewRSVPService(new(mockRSVPs), events, quietLogger()).Respond(ctx, stranger, 4, entity.RSVPAttending)
		assert.ErrorIs(t, err, ErrEventNotFound)
	})

	t.Run("attending list is private", func(t *testing.T) {
		events := new(mockEvents)
		events.On("ListAttendingByUser", mock.Anything, entity.ID(9)).Return([]entity.Event{{ID: 4}}, nil)
		svc := NewRSVPService(new(mockRSVPs), events, quietLogger())

		_, err := svc.AttendingFor(ctx, owner, 9)
		assert.ErrorIs(t, err, ErrForbidden)

		list, err := svc.AttendingFor(ctx, stranger, 9)
		require.NoError(t, err)
		assert.Len(t, list, 1)

		_, err = svc.AttendingFor(ctx, itAdmin, 9)
		require.NoError(t, err)
	})

	t.Run("saved needs a caller", func(t *testing.T) {
		_, err := NewRSVPService(new(mockRSVPs), new(mockEvents), quietLogger()).Saved(ctx, policy.Caller{})
		assert.ErrorIs(t, err, ErrForbidden)
	})
}
