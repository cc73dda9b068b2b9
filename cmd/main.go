package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/hawkcentral/campus-events/config"
	"github.com/hawkcentral/campus-events/internal/container"
	"github.com/hawkcentral/campus-events/internal/infrastructure/objectstore"
	pginfra "github.com/hawkcentral/campus-events/internal/infrastructure/postgres"
	"github.com/hawkcentral/campus-events/internal/infrastructure/search"
	"github.com/hawkcentral/campus-events/internal/interface/middleware"
	"github.com/hawkcentral/campus-events/internal/router"
	"github.com/hawkcentral/campus-events/pkg/helpers"
	"github.com/hawkcentral/campus-events/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	// Initialize Postgres pool
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	version, err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir)
	if err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	logger.WithField("version", version).Info("schema up to date")

	// Redis
	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer func() { _ = rdb.Close() }()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.WithError(err).Warn("redis unreachable; sessions and rate limits will fail until it is up")
	}

	// JWT
	jwtManager := helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)

	// Provide infra singletons to container for registry auto-wiring
	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetPGPool(pool)
	container.SetRedis(rdb)
	container.SetJWT(jwtManager)

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logger.WithError(err).Warn("photo storage disabled")
	} else {
		defer closeStore()
		container.SetPhotoStore(store)
		logger.WithField("driver", cfg.StorageDriver).Info("photo storage ready")
	}

	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := search.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			logger.WithError(err).Warn("elasticsearch disabled")
		} else {
			container.SetEventIndex(search.NewEventIndex(es, cfg.ESEventsIndex, logger))
		}
	}

	if cfg.MailSendEnabled {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unreachable; emails will not be queued")
		} else {
			defer pub.Close()
			container.SetRabbitPub(pub)
		}
	}

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	r.Use(middleware.Metrics())
	// CORS
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	r.Use(cors.New(corsCfg))
	if cfg.Env == "development" || cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}
	r.MaxMultipartMemory = cfg.UploadMaxBytes

	router.RegisterSystemRoutes(r, cfg)

	// Registry: auto-register modules using container
	reg := router.NewRegistry(r)
	router.InitModules(reg)
	reg.RegisterAll()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}

// openStore builds the photo backend selected by STORAGE_DRIVER.
func openStore(ctx context.Context, cfg *config.Config) (objectstore.Store, func(), error) {
	noop := func() {}
	switch cfg.StorageDriver {
	case "local", "":
		l, err := objectstore.NewLocal(cfg.UploadsDir, cfg.UploadsPublicPath)
		if err != nil {
			return nil, noop, err
		}
		return l, noop, nil
	case "gcs":
		if cfg.GCSBucket == "" {
			return nil, noop, errors.New("GCS_BUCKET is not set")
		}
		client, err := objectstore.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			return nil, noop, fmt.Errorf("gcs client: %w", err)
		}
		return objectstore.NewGCS(client, cfg.GCSBucket), func() { _ = client.Close() }, nil
	case "s3":
		if cfg.S3Bucket == "" {
			return nil, noop, errors.New("S3_BUCKET is not set")
		}
		s, err := objectstore.NewS3(objectstore.S3Config{
			Bucket:         cfg.S3Bucket,
			Region:         cfg.S3Region,
			Endpoint:       cfg.S3Endpoint,
			AccessKey:      cfg.S3AccessKey,
			SecretKey:      cfg.S3SecretKey,
			ForcePathStyle: cfg.S3ForcePathStyle,
			PublicBaseURL:  cfg.S3PublicBaseURL,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("s3 session: %w", err)
		}
		return s, noop, nil
	}
	return nil, noop, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
}
