package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hawkcentral/campus-events/internal/domain/entity"
	"github.com/hawkcentral/campus-events/internal/domain/repository"
)

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

func (r *CommentRepository) ListByEvent(ctx context.Context, eventID entity.ID) ([]entity.Comment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT ec.comment_id, ec.event_id, ec.user_id, ec.comment_text, ec.created_at,
		       u.first_name, u.last_name, u.email
		FROM event_comments ec
		JOIN users u ON ec.user_id = u.user_id
		WHERE ec.event_id = $1
		ORDER BY ec.created_at DESC, ec.comment_id DESC`, eventID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	out := make([]entity.Comment, 0)
	for rows.Next() {
		var c entity.Comment
		if err := rows.Scan(&c.ID, &c.EventID, &c.UserID, &c.CommentText, &c.CreatedAt,
			&c.FirstName, &c.LastName, &c.Email); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, mapError(rows.Err())
}

func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	err := r.pool.QueryRow(ctx, `
		WITH ins AS (
			INSERT INTO event_comments (event_id, user_id, comment_text)
			VALUES ($1, $2, $3)
			RETURNING comment_id, user_id, created_at
		)
		SELECT ins.comment_id, ins.created_at, u.first_name, u.last_name, u.email
		FROM ins JOIN users u ON ins.user_id = u.user_id`,
		c.EventID, c.UserID, c.CommentText,
	).Scan(&c.ID, &c.CreatedAt, &c.FirstName, &c.LastName, &c.Email)
	return mapError(err)
}

func (r *CommentRepository) GetAuthor(ctx context.Context, id entity.ID) (entity.ID, bool, error) {
	var author entity.ID
	err := r.pool.QueryRow(ctx, `SELECT user_id FROM event_comments WHERE comment_id = $1`, id).Scan(&author)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get comment author: %w", err)
	}
	return author, true, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id entity.ID) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM event_comments WHERE comment_id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

type PhotoRepository struct {
	pool *pgxpool.Pool
}

func NewPhotoRepository(pool *pgxpool.Pool) *PhotoRepository {
	return &PhotoRepository{pool: pool}
}

const photoSelect = `
SELECT ep.photo_id, ep.event_id, ep.uploaded_by, ep.photo_url, ep.object_key, COALESCE(ep.caption, ''),
       ep.uploaded_at, u.first_name, u.last_name
FROM event_photos ep
JOIN users u ON ep.uploaded_by = u.user_id`

func scanPhoto(row pgx.Row) (*entity.Photo, error) {
	p := &entity.Photo{}
	if err := row.Scan(&p.ID, &p.EventID, &p.UploadedBy, &p.PhotoURL, &p.ObjectKey, &p.Caption,
		&p.UploadedAt, &p.FirstName, &p.LastName); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PhotoRepository) ListByEvent(ctx context.Context, eventID entity.ID) ([]entity.Photo, error) {
	rows, err := r.pool.Query(ctx, photoSelect+`
WHERE ep.event_id = $1
ORDER BY ep.uploaded_at DESC, ep.photo_id DESC`, eventID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	out := make([]entity.Photo, 0)
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, mapError(rows.Err())
}

func (r *PhotoRepository) GetByID(ctx context.Context, id entity.ID) (*entity.Photo, error) {
	p, err := scanPhoto(r.pool.QueryRow(ctx, photoSelect+`
WHERE ep.photo_id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return p, nil
}

func (r *PhotoRepository) Create(ctx context.Context, p *entity.Photo) error {
	err := r.pool.QueryRow(ctx, `
		WITH ins AS (
			INSERT INTO event_photos (event_id, uploaded_by, photo_url, object_key, caption)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING photo_id, uploaded_by, uploaded_at
		)
		SELECT ins.photo_id, ins.uploaded_at, u.first_name, u.last_name
		FROM ins JOIN users u ON ins.uploaded_by = u.user_id`,
		p.EventID, p.UploadedBy, p.PhotoURL, p.ObjectKey, nullIfEmpty(p.Caption),
	).Scan(&p.ID, &p.UploadedAt, &p.FirstName, &p.LastName)
	return mapError(err)
}

func (r *PhotoRepository) Delete(ctx context.Context, id entity.ID) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM event_photos WHERE photo_id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

type RSVPRepository struct {
	pool *pgxpool.Pool
}

func NewRSVPRepository(pool *pgxpool.Pool) *RSVPRepository {
	return &RSVPRepository{pool: pool}
}

func (r *RSVPRepository) Upsert(ctx context.Context, eventID, userID entity.ID, status entity.RSVPStatus) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO event_attendees (event_id, user_id, rsvp_status)
		VALUES ($1, $2, $3)
		ON CONFLICT (event_id, user_id) DO UPDATE SET rsvp_status = EXCLUDED.rsvp_status`,
		eventID, userID, string(status))
	return mapError(err)
}

func (r *RSVPRepository) Delete(ctx context.Context, eventID, userID entity.ID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM event_attendees WHERE event_id = $1 AND user_id = $2`, eventID, userID)
	return mapError(err)
}

func (r *RSVPRepository) CountAttending(ctx context.Context, eventID entity.ID) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM event_attendees WHERE event_id = $1 AND rsvp_status = 'attending'`,
		eventID).Scan(&n)
	return n, mapError(err)
}

func (r *RSVPRepository) Save(ctx context.Context, eventID, userID entity.ID) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO saved_events (user_id, event_id) VALUES ($1, $2)
		ON CONFLICT (user_id, event_id) DO NOTHING`, userID, eventID)
	return mapError(err)
}

func (r *RSVPRepository) Unsave(ctx context.Context, eventID, userID entity.ID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM saved_events WHERE user_id = $1 AND event_id = $2`, userID, eventID)
	return mapError(err)
}

var (
	_ repository.CommentRepository = (*CommentRepository)(nil)
	_ repository.PhotoRepository   = (*PhotoRepository)(nil)
	_ repository.RSVPRepository    = (*RSVPRepository)(nil)
)
