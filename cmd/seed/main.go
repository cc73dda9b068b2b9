package main

import (
	"context"
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/hawkcentral/campus-events/config"
	"github.com/hawkcentral/campus-events/internal/domain/entity"
	repo "github.com/hawkcentral/campus-events/internal/domain/repository"
	pginfra "github.com/hawkcentral/campus-events/internal/infrastructure/postgres"
	"github.com/hawkcentral/campus-events/pkg/helpers"
)

var defaultCategories = []string{
	"Academic", "Arts & Culture", "Athletics", "Career", "Clubs & Organizations",
	"Community Service", "Health & Wellness", "Social",
}

var defaultLocations = [][2]string{
	{"Student Union Ballroom", "Student Union"},
	{"Main Library Auditorium", "Main Library"},
	{"Recreation Center Gym", "Recreation Center"},
	{"Quad", "Campus Green"},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), 2, 1, time.Hour)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to postgres")
	}
	defer pool.Close()
	if _, err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir); err != nil {
		logger.WithError(err).Fatal("migration failed")
	}

	seedAdmin(ctx, cfg, pginfra.NewUserRepository(pool), logger)

	categories := pginfra.NewCategoryRepository(pool)
	for _, name := range defaultCategories {
		if _, created, err := categories.GetOrCreate(ctx, name); err != nil {
			logger.WithError(err).WithField("category", name).Fatal("seed category failed")
		} else if created {
			logger.WithField("category", name).Info("category seeded")
		}
	}

	locations := pginfra.NewLocationRepository(pool)
	for _, l := range defaultLocations {
		if _, created, err := locations.GetOrCreate(ctx, l[0], l[1]); err != nil {
			logger.WithError(err).WithField("location", l[0]).Fatal("seed location failed")
		} else if created {
			logger.WithField("location", l[0]).Info("location seeded")
		}
	}
	logger.Info("seed complete")
}

// seedAdmin creates the super_admin account once. Without a password in the
// environment it is skipped so no default credential ever exists.
func seedAdmin(ctx context.Context, cfg *config.Config, users *pginfra.UserRepository, logger *logrus.Logger) {
	if cfg.SeedAdminPassword == "" {
		logger.Warn("SEED_ADMIN_PASSWORD not set; skipping super_admin")
		return
	}
	if _, err := users.GetByEmail(ctx, cfg.SeedAdminEmail); err == nil {
		logger.WithField("email", cfg.SeedAdminEmail).Info("super_admin already present")
		return
	} else if !errors.Is(err, repo.ErrNotFound) {
		logger.WithError(err).Fatal("lookup super_admin failed")
	}

	hash, err := helpers.HashPassword(cfg.SeedAdminPassword, cfg.BcryptCost)
	if err != nil {
		logger.WithError(err).Fatal("failed to hash password")
	}
	admin := &entity.User{
		Email:        cfg.SeedAdminEmail,
		PasswordHash: hash,
		FirstName:    "Hawk",
		LastName:     "Admin",
		Role:         entity.RoleSuperAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		logger.WithError(err).Fatal("seed super_admin failed")
	}
	logger.WithFields(logrus.Fields{"user_id": admin.ID, "email": admin.Email}).Info("super_admin seeded")
}
