package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/KaladaranC/TutorTrack/internal/models"
)

type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type SessionRepository struct {
	db DBTX
}

func NewSessionRepository(db DBTX) *SessionRepository {
	return &SessionRepository{db: db}
}

// List returns every session in insertion order, which keeps downstream
// sorting deterministic on start-time ties.
func (r *SessionRepository) List(ctx context.Context) ([]models.Session, error) {
	query := `
		SELECT id, student_name, subject, start_time, duration_min, rate, status, notes, created_at
		FROM sessions
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]models.Session, 0)
	for rows.Next() {
		var session models.Session
		if err := rows.Scan(
			&session.ID,
			&session.StudentName,
			&session.Subject,
			&session.StartTime,
			&session.DurationMinutes,
			&session.Rate,
			&session.Status,
			&session.Notes,
			&session.CreatedAt,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

func (r *SessionRepository) Insert(ctx context.Context, session models.Session) error {
	query := `
		INSERT INTO sessions (id, student_name, subject, start_time, duration_min, rate, status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(
		ctx,
		query,
		session.ID,
		session.StudentName,
		session.Subject,
		session.StartTime,
		session.DurationMinutes,
		session.Rate,
		session.Status,
		session.Notes,
		session.CreatedAt,
	)
	return err
}

// Replace overwrites the whole record matched by id. A missing id affects
// zero rows, which the store contract treats as a no-op.
func (r *SessionRepository) Replace(ctx context.Context, session models.Session) error {
	query := `
		UPDATE sessions
		SET student_name = $2, subject = $3, start_time = $4, duration_min = $5, rate = $6, status = $7, notes = $8
		WHERE id = $1
	`

	_, err := r.db.Exec(
		ctx,
		query,
		session.ID,
		session.StudentName,
		session.Subject,
		session.StartTime,
		session.DurationMinutes,
		session.Rate,
		session.Status,
		session.Notes,
	)
	return err
}

func (r *SessionRepository) Remove(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return err
}
