package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hawkcentral/campus-events/pkg/response"
	"github.com/hawkcentral/campus-events/pkg/validation"
)

// AuthHandler serves the password reset flow.
type AuthHandler struct {
	Svc    UserService
	Logger *logrus.Logger
}

func NewAuthHandler(svc UserService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

const forgotPasswordMessage = "if that email is registered, a reset link has been sent"

// ForgotPassword POST /api/forgot-password {email}
// The answer is the same whether or not the address is registered.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := h.Svc.ForgotPassword(c.Request.Context(), email, requestMeta(c)); err != nil {
		h.Logger.WithError(err).Error("forgot password failed")
	}
	response.Success[any](c, http.StatusOK, nil, forgotPasswordMessage, nil)
}

// ResetPassword POST /api/reset-password {token, new_password}
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req struct {
		Token       string `json:"token" binding:"required"`
		NewPassword string `json:"new_password" binding:"required,pwd"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.ResetPassword(c.Request.Context(), req.Token, req.NewPassword, requestMeta(c)); err != nil {
		failWith(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"reset": true}, "password updated", nil)
}
