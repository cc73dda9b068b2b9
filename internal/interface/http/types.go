package handlers

import (
	"context"

	"github.com/hawkcentral/campus-events/internal/application"
	"github.com/hawkcentral/campus-events/internal/domain/entity"
	"github.com/hawkcentral/campus-events/internal/domain/policy"
)

// The handlers depend on these views of the application services.

type UserService interface {
	Signup(ctx context.Context, in application.SignupInput) (*entity.User, error)
	Login(ctx context.Context, email, password string) (*entity.User, application.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*entity.User, application.TokenPair, error)
	Logout(ctx context.Context, userID entity.ID) error
	GetProfile(ctx context.Context, userID entity.ID) (*entity.User, error)
	ForgotPassword(ctx context.Context, email string, meta application.RequestMeta) error
	ResetPassword(ctx context.Context, token, newPassword string, meta application.RequestMeta) error
}

type EventService interface {
	List(ctx context.Context, category, search string) ([]entity.Event, error)
	Featured(ctx context.Context) ([]entity.Event, error)
	Get(ctx context.Context, id entity.ID) (*entity.Event, error)
	Search(ctx context.Context, q string, size int) ([]entity.Event, error)
	Create(ctx context.Context, caller policy.Caller, in application.EventInput) (*entity.Event, error)
	Update(ctx context.Context, caller policy.Caller, id entity.ID, in application.EventInput) (*entity.Event, error)
	Delete(ctx context.Context, caller policy.Caller, id entity.ID) error
}

type CatalogService interface {
	ListCategories(ctx context.Context) ([]entity.Category, error)
	ListLocations(ctx context.Context) ([]entity.Location, error)
	SearchCategories(ctx context.Context, q string) ([]entity.Category, error)
	SearchLocations(ctx context.Context, q string) ([]entity.Location, error)
}

type CommentService interface {
	List(ctx context.Context, eventID entity.ID) ([]entity.Comment, error)
	Add(ctx context.Context, caller policy.Caller, eventID entity.ID, text string) (*entity.Comment, error)
	Delete(ctx context.Context, caller policy.Caller, id entity.ID) error
}

type PhotoService interface {
	List(ctx context.Context, eventID entity.ID) ([]entity.Photo, error)
	Upload(ctx context.Context, caller policy.Caller, eventID entity.ID, in application.UploadInput) (*entity.Photo, error)
	Delete(ctx context.Context, caller policy.Caller, id entity.ID) error
}

type RSVPService interface {
	Respond(ctx context.Context, caller policy.Caller, eventID entity.ID, status entity.RSVPStatus) (int64, error)
	Cancel(ctx context.Context, caller policy.Caller, eventID entity.ID) (int64, error)
	Count(ctx context.Context, eventID entity.ID) (int64, error)
	AttendingFor(ctx context.Context, caller policy.Caller, userID entity.ID) ([]entity.Event, error)
	Save(ctx context.Context, caller policy.Caller, eventID entity.ID) error
	Unsave(ctx context.Context, caller policy.Caller, eventID entity.ID) error
	Saved(ctx context.Context, caller policy.Caller) ([]entity.Event, error)
}
