package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hawkcentral/campus-events/internal/application"
	"github.com/hawkcentral/campus-events/internal/domain/entity"
	"github.com/hawkcentral/campus-events/internal/domain/policy"
	"github.com/hawkcentral/campus-events/internal/interface/middleware"
	"github.com/hawkcentral/campus-events/pkg/response"
)

// failWith writes the envelope for an application error. Unknown errors are
// logged and reported as 500 without detail.
func failWith(c *gin.Context, logger *logrus.Logger, err error) {
	status, msg := http.StatusInternalServerError, "internal server error"
	switch {
	case errors.Is(err, application.ErrForbidden):
		status, msg = http.StatusForbidden, "you do not have permission to modify this resource"
	case errors.Is(err, application.ErrEventNotFound),
		errors.Is(err, application.ErrCommentNotFound),
		errors.Is(err, application.ErrPhotoNotFound),
		errors.Is(err, application.ErrUserNotFound):
		status, msg = http.StatusNotFound, err.Error()
	case errors.Is(err, application.ErrInvalidInput),
		errors.Is(err, application.ErrInvalidImage),
		errors.Is(err, application.ErrInvalidResetToken):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, application.ErrPhotoTooLarge):
		status, msg = http.StatusRequestEntityTooLarge, err.Error()
	case errors.Is(err, application.ErrEmailTaken):
		status, msg = http.StatusConflict, err.Error()
	case errors.Is(err, application.ErrInvalidCredentials):
		status, msg = http.StatusUnauthorized, err.Error()
	case errors.Is(err, application.ErrStorageDisabled):
		status, msg = http.StatusServiceUnavailable, err.Error()
	default:
		if logger != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"path":       c.FullPath(),
				"request_id": c.GetString("request_id"),
			}).Error("request failed")
		}
	}
	response.Error[any](c, status, msg, nil)
}

// pathID parses a numeric route parameter, answering 400 when it is not one.
func pathID(c *gin.Context, name string) (entity.ID, bool) {
	id, err := entity.ParseID(c.Param(name))
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid "+name, nil)
		return 0, false
	}
	return id, true
}

// mustCaller returns the identity set by the Auth middleware.
func mustCaller(c *gin.Context) (caller policy.Caller, ok bool) {
	caller, ok = middleware.CallerFrom(c)
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "unauthorized", nil)
	}
	return caller, ok
}

func requestMeta(c *gin.Context) application.RequestMeta {
	return application.RequestMeta{IP: middleware.ClientIP(c), UserAgent: c.GetHeader("User-Agent")}
}
