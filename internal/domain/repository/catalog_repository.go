package repository

import (
	"context"

	"github.com/hawkcentral/campus-events/internal/domain/entity"
)

type CategoryRepository interface {
	ListActive(ctx context.Context) ([]entity.Category, error)
	Search(ctx context.Context, q string, limit int) ([]entity.Category, error)
	// GetOrCreate finds a category by case-insensitive name, creating it when absent.
	GetOrCreate(ctx context.Context, name string) (id entity.ID, created bool, err error)
}

type LocationRepository interface {
	ListActive(ctx context.Context) ([]entity.Location, error)
	Search(ctx context.Context, q string, limit int) ([]entity.Location, error)
	// GetOrCreate matches on either name ignoring case, creating the location when absent.
	GetOrCreate(ctx context.Context, locationName, buildingName string) (id entity.ID, created bool, err error)
}
