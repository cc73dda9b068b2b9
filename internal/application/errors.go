package application

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")

	ErrEventNotFound   = errors.New("event not found")
	ErrForbidden       = errors.New("not permitted")
	ErrInvalidInput    = errors.New("invalid input")
	ErrCommentNotFound = errors.New("comment not found")
	ErrPhotoNotFound   = errors.New("photo not found")
	ErrInvalidImage    = errors.New("only jpeg, png, gif and webp images are allowed")
	ErrPhotoTooLarge   = errors.New("photo exceeds the upload limit")
	ErrStorageDisabled = errors.New("photo storage is not configured")
)
