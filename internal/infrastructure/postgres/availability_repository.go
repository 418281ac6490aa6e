package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Horarios-api/internal/domain"
	"github.com/jhoicas/Horarios-api/internal/domain/entity"
	"github.com/jhoicas/Horarios-api/internal/domain/repository"
)

var _ repository.AvailabilityRepository = (*AvailabilityRepo)(nil)

const availabilityColumns = `id, user_id, date, start_time, end_time, created_at, updated_at`

// AvailabilityRepo implementación de AvailabilityRepository sobre PostgreSQL.
type AvailabilityRepo struct {
	q Querier
}

// NewAvailabilityRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAvailabilityRepository(q Querier) *AvailabilityRepo {
	return &AvailabilityRepo{q: q}
}

func (r *AvailabilityRepo) Create(ctx context.Context, a *entity.Availability) error {
	query := `INSERT INTO availabilities (` + availabilityColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.q.Exec(ctx, query, a.ID, a.UserID, a.Date, a.StartTime, a.EndTime, a.CreatedAt, a.UpdatedAt); err != nil {
		return fmt.Errorf("insert availability: %w", err)
	}
	return nil
}

func (r *AvailabilityRepo) GetByID(ctx context.Context, id string) (*entity.Availability, error) {
	a, err := scanAvailability(r.q.QueryRow(ctx, `SELECT `+availabilityColumns+` FROM availabilities WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get availability: %w", err)
	}
	return a, nil
}

func (r *AvailabilityRepo) ListByUser(ctx context.Context, userID string, date *time.Time) ([]*entity.Availability, error) {
	query := `SELECT ` + availabilityColumns + ` FROM availabilities WHERE user_id = $1`
	args := []any{userID}
	if date != nil {
		query += ` AND date = $2`
		args = append(args, *date)
	}
	query += ` ORDER BY date ASC, start_time ASC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list availabilities: %w", err)
	}
	defer rows.Close()
	var out []*entity.Availability
	for rows.Next() {
		a, err := scanAvailability(rows)
		if err != nil {
			return nil, fmt.Errorf("scan availability: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AvailabilityRepo) Update(ctx context.Context, a *entity.Availability) error {
	query := `UPDATE availabilities SET date = $2, start_time = $3, end_time = $4, updated_at = $5 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, a.ID, a.Date, a.StartTime, a.EndTime, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update availability: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update availability %s: %w", a.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *AvailabilityRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM availabilities WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete availability: %w", err)
	}
	return nil
}

func (r *AvailabilityRepo) DeleteByUser(ctx context.Context, userID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM availabilities WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete availabilities by user: %w", err)
	}
	return nil
}

func scanAvailability(row pgxScanner) (*entity.Availability, error) {
	var a entity.Availability
	if err := row.Scan(&a.ID, &a.UserID, &a.Date, &a.StartTime, &a.EndTime, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.StartTime, a.EndTime = a.StartTime.UTC(), a.EndTime.UTC()
	return &a, nil
}
