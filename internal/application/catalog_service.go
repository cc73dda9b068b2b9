package application

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/hawkcentral/campus-events/internal/domain/entity"
	repo "github.com/hawkcentral/campus-events/internal/domain/repository"
	"github.com/hawkcentral/campus-events/pkg/helpers"
	"github.com/hawkcentral/campus-events/pkg/sanitize"
)

const (
	categoriesCacheKey = "catalog:categories"
	locationsCacheKey  = "catalog:locations"
	catalogSearchLimit = 10
)

// CatalogService serves categories and locations and creates them on demand
// when events reference new names.
type CatalogService struct {
	Categories repo.CategoryRepository
	Locations  repo.LocationRepository
	Redis      *redis.Client
	CacheTTL   time.Duration
	Logger     *logrus.Logger
}

func NewCatalogService(categories repo.CategoryRepository, locations repo.LocationRepository, rdb *redis.Client, ttl time.Duration, logger *logrus.Logger) *CatalogService {
	return &CatalogService{Categories: categories, Locations: locations, Redis: rdb, CacheTTL: ttl, Logger: logger}
}

func cached[T any](ctx context.Context, s *CatalogService, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	if s.Redis != nil && s.CacheTTL > 0 {
		var out []T
		hit, err := helpers.RedisGetJSON(ctx, s.Redis, key, &out)
		if err != nil {
			s.Logger.WithError(err).WithField("key", key).Warn("catalog cache read failed")
		} else if hit {
			return out, nil
		}
	}
	out, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if s.Redis != nil && s.CacheTTL > 0 {
		if err := helpers.RedisSetJSON(ctx, s.Redis, key, out, s.CacheTTL); err != nil {
			s.Logger.WithError(err).WithField("key", key).Warn("catalog cache write failed")
		}
	}
	return out, nil
}

func (s *CatalogService) invalidate(ctx context.Context, key string) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, key); err != nil {
		s.Logger.WithError(err).WithField("key", key).Warn("catalog cache invalidate failed")
	}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return cached(ctx, s, categoriesCacheKey, s.Categories.ListActive)
}

func (s *CatalogService) ListLocations(ctx context.Context) ([]entity.Location, error) {
	return cached(ctx, s, locationsCacheKey, s.Locations.ListActive)
}

func (s *CatalogService) SearchCategories(ctx context.Context, q string) ([]entity.Category, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []entity.Category{}, nil
	}
	return s.Categories.Search(ctx, q, catalogSearchLimit)
}

func (s *CatalogService) SearchLocations(ctx context.Context, q string) ([]entity.Location, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []entity.Location{}, nil
	}
	return s.Locations.Search(ctx, q, catalogSearchLimit)
}

// ResolveCategory returns the id for name, creating the category if needed.
// A blank name resolves to nil.
func (s *CatalogService) ResolveCategory(ctx context.Context, name string) (*entity.ID, error) {
	name = sanitize.Text(name)
	if name == "" {
		return nil, nil
	}
	id, created, err := s.Categories.GetOrCreate(ctx, name)
	if err != nil {
		return nil, err
	}
	if created {
		s.Logger.WithField("category", name).Info("category created")
		s.invalidate(ctx, categoriesCacheKey)
	}
	return &id, nil
}

// ResolveLocation returns the id for a location/building pair, creating it if needed.
// Both names blank resolves to nil.
func (s *CatalogService) ResolveLocation(ctx context.Context, locationName, buildingName string) (*entity.ID, error) {
	locationName = sanitize.Text(locationName)
	buildingName = sanitize.Text(buildingName)
	if locationName == "" && buildingName == "" {
		return nil, nil
	}
	id, created, err := s.Locations.GetOrCreate(ctx, locationName, buildingName)
	if err != nil {
		return nil, err
	}
	if created {
		s.Logger.WithFields(logrus.Fields{"location": locationName, "building": buildingName}).Info("location created")
		s.invalidate(ctx, locationsCacheKey)
	}
	return &id, nil
}
