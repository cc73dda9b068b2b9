package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hawkcentral/campus-events/internal/application"
	"github.com/hawkcentral/campus-events/pkg/response"
	"github.com/hawkcentral/campus-events/pkg/validation"
)

type CommentHandler struct {
	Svc    CommentService
	Logger *logrus.Logger
}

func NewCommentHandler(svc CommentService, logger *logrus.Logger) *CommentHandler {
	return &CommentHandler{Svc: svc, Logger: logger}
}

// List GET /api/events/:id/comments
func (h *CommentHandler) List(c *gin.Context) {
	eventID, ok := pathID(c, "id")
	if !ok {
		return
	}
	list, err := h.Svc.List(c.Request.Context(), eventID)
	if err != nil {
		failWith(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, list, "comments", nil)
}

// Create POST /api/events/:id/comments {comment_text}
func (h *CommentHandler) Create(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	eventID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		CommentText string `json:"comment_text" binding:"required,max=2000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	comment, err := h.Svc.Add(c.Request.Context(), caller, eventID, req.CommentText)
	if err != nil {
		failWith(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, comment, "comment added", nil)
}

// Delete DELETE /api/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), caller, id); err != nil {
		failWith(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "comment deleted", nil)
}

type PhotoHandler struct {
	Svc      PhotoService
	MaxBytes int64
	Logger   *logrus.Logger
}

func NewPhotoHandler(svc PhotoService, maxBytes int64, logger *logrus.Logger) *PhotoHandler {
	return &PhotoHandler{Svc: svc, MaxBytes: maxBytes, Logger: logger}
}

// multipartSlack leaves room for the form boundaries and the caption field.
const multipartSlack = 64 << 10

// List GET /api/events/:id/photos
func (h *PhotoHandler) List(c *gin.Context) {
	eventID, ok := pathID(c, "id")
	if !ok {
		return
	}
	list, err := h.Svc.List(c.Request.Context(), eventID)
	if err != nil {
		failWith(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, list, "photos", nil)
}

// Upload POST /api/events/:id/photos (multipart: photo, caption)
func (h *PhotoHandler) Upload(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	eventID, ok := pathID(c, "id")
	if !ok {
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxBytes+multipartSlack)
	fh, err := c.FormFile("photo")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			failWith(c, h.Logger, application.ErrPhotoTooLarge)
			return
		}
		response.Error[any](c, http.StatusBadRequest, "photo file is required", map[string]string{"photo": "is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		failWith(c, h.Logger, err)
		return
	}
	defer f.Close()

	photo, err := h.Svc.Upload(c.Request.Context(), caller, eventID, application.UploadInput{
		Filename: fh.Filename,
		Body:     f,
		Caption:  c.PostForm("caption"),
	})
	if err != nil {
		failWith(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, photo, "photo uploaded", nil)
}

// Delete DELETE /api/photos/:id
func (h *PhotoHandler) Delete(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), caller, id); err != nil {
		failWith(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "photo deleted", nil)
}
