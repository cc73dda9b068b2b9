package router

import (
	"github.com/hawkcentral/campus-events/internal/application"
	"github.com/hawkcentral/campus-events/internal/container"
	"github.com/hawkcentral/campus-events/internal/domain/policy"
	pginfra "github.com/hawkcentral/campus-events/internal/infrastructure/postgres"
	handlers "github.com/hawkcentral/campus-events/internal/interface/http"
	"github.com/hawkcentral/campus-events/internal/router/modules"
)

// Services are the application services built from the container.
type Services struct {
	Users    *application.UserService
	Catalog  *application.CatalogService
	Events   *application.EventService
	Comments *application.CommentService
	Photos   *application.PhotoService
	RSVPs    *application.RSVPService
}

func buildServices() Services {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	rdb := container.GetRedis()

	users := pginfra.NewUserRepository(pool)
	events := pginfra.NewEventRepository(pool)

	// keep nil interfaces nil so the services can tell an optional component is off
	var mail application.JobPublisher
	if pub := container.GetRabbitPub(); pub != nil {
		mail = pub
	}
	var index application.EventIndex
	if x := container.GetEventIndex(); x != nil {
		index = x
	}

	catalog := application.NewCatalogService(
		pginfra.NewCategoryRepository(pool),
		pginfra.NewLocationRepository(pool),
		rdb,
		cfg.CatalogCacheTTL,
		logger,
	)

	return Services{
		Users:    application.NewUserService(users, container.GetJWT(), rdb, mail, cfg, logger),
		Catalog:  catalog,
		Events:   application.NewEventService(events, catalog, policy.NewEventAuthorizer(events, logger), index, logger),
		Comments: application.NewCommentService(pginfra.NewCommentRepository(pool), events, logger),
		Photos:   application.NewPhotoService(pginfra.NewPhotoRepository(pool), events, container.GetPhotoStore(), cfg.UploadMaxBytes, logger),
		RSVPs:    application.NewRSVPService(pginfra.NewRSVPRepository(pool), events, logger),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	jwt := container.GetJWT()
	svc := buildServices()

	r.Add(modules.NewUserModule(handlers.NewUserHandler(svc.Users, logger, cfg.CookieDomain, cfg.CookieSecure), jwt))
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(svc.Users, logger)))
	r.Add(modules.NewEventModule(handlers.NewEventHandler(svc.Events, logger), jwt))
	r.Add(modules.NewCatalogModule(handlers.NewCatalogHandler(svc.Catalog, logger)))
	r.Add(modules.NewEngagementModule(
		handlers.NewCommentHandler(svc.Comments, logger),
		handlers.NewPhotoHandler(svc.Photos, cfg.UploadMaxBytes, logger),
		handlers.NewRSVPHandler(svc.RSVPs, logger),
		jwt,
	))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
