package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hawkcentral/campus-events/internal/domain/entity"
	"github.com/hawkcentral/campus-events/internal/domain/policy"
	"github.com/hawkcentral/campus-events/internal/domain/repository"
)

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

const eventSelect = `
SELECT e.event_id, e.title, COALESCE(e.description, ''), e.event_date,
       COALESCE(to_char(e.start_time, 'HH24:MI'), ''), COALESCE(to_char(e.end_time, 'HH24:MI'), ''),
       e.location_id, e.category_id, COALESCE(e.organizer_name, ''), COALESCE(e.contact_email, ''),
       e.max_capacity, e.created_by, e.is_active, e.is_public, e.is_featured, e.created_at, e.updated_at,
       COALESCE(c.category_name, ''), COALESCE(c.color, ''),
       COALESCE(l.location_name, ''), COALESCE(l.building_name, ''),
       COUNT(DISTINCT ea.user_id) FILTER (WHERE ea.rsvp_status = 'attending'),
       COUNT(DISTINCT ec.comment_id),
       COUNT(DISTINCT ep.photo_id)
FROM events e
LEFT JOIN categories c ON e.category_id = c.category_id
LEFT JOIN locations l ON e.location_id = l.location_id
LEFT JOIN event_attendees ea ON e.event_id = ea.event_id
LEFT JOIN event_comments ec ON e.event_id = ec.event_id
LEFT JOIN event_photos ep ON e.event_id = ep.event_id`

const eventGroupBy = `
GROUP BY e.event_id, c.category_name, c.color, l.location_name, l.building_name`

const eventOrder = `
ORDER BY e.event_date ASC, e.event_id ASC`

func scanEvent(row pgx.Row) (*entity.Event, error) {
	e := &entity.Event{}
	if err := row.Scan(&e.ID, &e.Title, &e.Description, &e.EventDate,
		&e.StartTime, &e.EndTime,
		&e.LocationID, &e.CategoryID, &e.OrganizerName, &e.ContactEmail,
		&e.MaxCapacity, &e.CreatedBy, &e.IsActive, &e.IsPublic, &e.IsFeatured, &e.CreatedAt, &e.UpdatedAt,
		&e.CategoryName, &e.CategoryColor, &e.LocationName, &e.BuildingName,
		&e.RSVPCount, &e.CommentCount, &e.PhotoCount); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *EventRepository) queryEvents(ctx context.Context, sql string, args ...any) ([]entity.Event, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	events := make([]entity.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, mapError(rows.Err())
}

// visibilityClause is the SQL form of policy.Visible.
func visibilityClause(scope policy.Scope) string {
	switch scope {
	case policy.ScopeFeatured:
		return "e.is_featured = TRUE AND e.is_active = TRUE"
	case policy.ScopeDetail:
		return "TRUE"
	default:
		return "e.is_active = TRUE AND e.is_public = TRUE"
	}
}

// escapeLike makes user input match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func buildListQuery(f repository.EventFilter) (string, []any) {
	var sb strings.Builder
	args := make([]any, 0, 2)

	sb.WriteString(eventSelect)
	sb.WriteString("\nWHERE ")
	sb.WriteString(visibilityClause(f.Scope))

	if c := strings.TrimSpace(f.Category); c != "" {
		args = append(args, "%"+escapeLike(c)+"%")
		fmt.Fprintf(&sb, " AND c.category_name ILIKE $%d", len(args))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+escapeLike(s)+"%")
		fmt.Fprintf(&sb, " AND (e.title ILIKE $%d OR e.description ILIKE $%d)", len(args), len(args))
	}

	sb.WriteString(eventGroupBy)
	sb.WriteString(eventOrder)
	return sb.String(), args
}

func (r *EventRepository) List(ctx context.Context, f repository.EventFilter) ([]entity.Event, error) {
	sql, args := buildListQuery(f)
	return r.queryEvents(ctx, sql, args...)
}

func (r *EventRepository) GetByID(ctx context.Context, id entity.ID) (*entity.Event, error) {
	e, err := scanEvent(r.pool.QueryRow(ctx, eventSelect+"\nWHERE e.event_id = $1"+eventGroupBy, id))
	if err != nil {
		return nil, mapError(err)
	}
	return e, nil
}

// GetOwner reads only the owner column.
func (r *EventRepository) GetOwner(ctx context.Context, eventID entity.ID) (entity.ID, bool, error) {
	var owner entity.ID
	err := r.pool.QueryRow(ctx, `SELECT created_by FROM events WHERE event_id = $1`, eventID).Scan(&owner)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get event owner: %w", err)
	}
	return owner, true, nil
}

func (r *EventRepository) Create(ctx context.Context, e *entity.Event) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO events (title, description, event_date, start_time, end_time, location_id, category_id,
		                    organizer_name, contact_email, max_capacity, created_by, is_public, is_active)
		VALUES ($1, $2, $3, $4::time, $5::time, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING event_id, created_at, updated_at
	`, e.Title, nullIfEmpty(e.Description), e.EventDate, nullIfEmpty(e.StartTime), nullIfEmpty(e.EndTime),
		e.LocationID, e.CategoryID, nullIfEmpty(e.OrganizerName), nullIfEmpty(e.ContactEmail), e.MaxCapacity,
		e.CreatedBy, e.IsPublic, e.IsActive,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	return mapError(err)
}

func (r *EventRepository) Update(ctx context.Context, e *entity.Event) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE events
		SET title = $1, description = $2, event_date = $3, start_time = $4::time, end_time = $5::time,
		    location_id = $6, category_id = $7, organizer_name = $8, contact_email = $9,
		    max_capacity = $10, updated_at = NOW()
		WHERE event_id = $11
	`, e.Title, nullIfEmpty(e.Description), e.EventDate, nullIfEmpty(e.StartTime), nullIfEmpty(e.EndTime),
		e.LocationID, e.CategoryID, nullIfEmpty(e.OrganizerName), nullIfEmpty(e.ContactEmail), e.MaxCapacity,
		e.ID)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id entity.ID) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM events WHERE event_id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *EventRepository) ListAttendingByUser(ctx context.Context, userID entity.ID) ([]entity.Event, error) {
	return r.queryEvents(ctx, eventSelect+`
WHERE e.event_id IN (
    SELECT event_id FROM event_attendees WHERE user_id = $1 AND rsvp_status = 'attending'
)`+eventGroupBy+eventOrder, userID)
}

func (r *EventRepository) ListSavedByUser(ctx context.Context, userID entity.ID) ([]entity.Event, error) {
	return r.queryEvents(ctx, eventSelect+`
WHERE e.event_id IN (SELECT event_id FROM saved_events WHERE user_id = $1)`+eventGroupBy+eventOrder, userID)
}

var _ repository.EventRepository = (*EventRepository)(nil)
