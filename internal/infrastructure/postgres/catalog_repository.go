package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hawkcentral/campus-events/internal/domain/entity"
	"github.com/hawkcentral/campus-events/internal/domain/repository"
)

type CategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

func (r *CategoryRepository) query(ctx context.Context, sql string, args ...any) ([]entity.Category, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	out := make([]entity.Category, 0)
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &c.IsActive); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, mapError(rows.Err())
}

func (r *CategoryRepository) ListActive(ctx context.Context) ([]entity.Category, error) {
	return r.query(ctx, `
		SELECT category_id, category_name, COALESCE(color, ''), is_active
		FROM categories WHERE is_active = TRUE
		ORDER BY category_name`)
}

func (r *CategoryRepository) Search(ctx context.Context, q string, limit int) ([]entity.Category, error) {
	return r.query(ctx, `
		SELECT category_id, category_name, COALESCE(color, ''), is_active
		FROM categories
		WHERE category_name ILIKE $1 AND is_active = TRUE
		ORDER BY category_name
		LIMIT $2`, "%"+escapeLike(q)+"%", limit)
}

func (r *CategoryRepository) find(ctx context.Context, name string) (entity.ID, error) {
	var id entity.ID
	err := r.pool.QueryRow(ctx,
		`SELECT category_id FROM categories WHERE LOWER(category_name) = LOWER($1) LIMIT 1`, name).Scan(&id)
	return id, mapError(err)
}

func (r *CategoryRepository) GetOrCreate(ctx context.Context, name string) (entity.ID, bool, error) {
	name = strings.TrimSpace(name)
	id, err := r.find(ctx, name)
	if err == nil {
		return id, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return 0, false, err
	}

	err = mapError(r.pool.QueryRow(ctx,
		`INSERT INTO categories (category_name, is_active) VALUES ($1, TRUE) RETURNING category_id`,
		name).Scan(&id))
	if errors.Is(err, repository.ErrDuplicate) {
		// lost a race with a concurrent insert
		id, err = r.find(ctx, name)
		return id, false, err
	}
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

type LocationRepository struct {
	pool *pgxpool.Pool
}

func NewLocationRepository(pool *pgxpool.Pool) *LocationRepository {
	return &LocationRepository{pool: pool}
}

func (r *LocationRepository) query(ctx context.Context, sql string, args ...any) ([]entity.Location, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	out := make([]entity.Location, 0)
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.LocationName, &l.BuildingName, &l.IsActive); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, mapError(rows.Err())
}

func (r *LocationRepository) ListActive(ctx context.Context) ([]entity.Location, error) {
	return r.query(ctx, `
		SELECT location_id, location_name, building_name, is_active
		FROM locations WHERE is_active = TRUE
		ORDER BY location_name`)
}

func (r *LocationRepository) Search(ctx context.Context, q string, limit int) ([]entity.Location, error) {
	return r.query(ctx, `
		SELECT location_id, location_name, building_name, is_active
		FROM locations
		WHERE (location_name ILIKE $1 OR building_name ILIKE $1) AND is_active = TRUE
		ORDER BY location_name
		LIMIT $2`, "%"+escapeLike(q)+"%", limit)
}

// GetOrCreate fills a missing name from the other one, so a location is never
// stored with an empty location_name.
func (r *LocationRepository) GetOrCreate(ctx context.Context, locationName, buildingName string) (entity.ID, bool, error) {
	locationName = strings.TrimSpace(locationName)
	buildingName = strings.TrimSpace(buildingName)
	if locationName == "" {
		locationName = buildingName
	}
	if buildingName == "" {
		buildingName = locationName
	}

	var id entity.ID
	err := mapError(r.pool.QueryRow(ctx, `
		SELECT location_id FROM locations
		WHERE LOWER(location_name) = LOWER($1) OR LOWER(building_name) = LOWER($2)
		ORDER BY location_id
		LIMIT 1`, locationName, buildingName).Scan(&id))
	if err == nil {
		return id, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return 0, false, err
	}

	err = r.pool.QueryRow(ctx, `
		INSERT INTO locations (location_name, building_name, is_active)
		VALUES ($1, $2, TRUE)
		RETURNING location_id`, locationName, buildingName).Scan(&id)
	if err != nil {
		return 0, false, mapError(err)
	}
	return id, true, nil
}

var (
	_ repository.CategoryRepository = (*CategoryRepository)(nil)
	_ repository.LocationRepository = (*LocationRepository)(nil)
)
