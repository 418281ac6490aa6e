package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Horarios-api/internal/domain"
	"github.com/jhoicas/Horarios-api/internal/domain/entity"
	"github.com/jhoicas/Horarios-api/internal/domain/repository"
)

var _ repository.ScheduleRepository = (*ScheduleRepo)(nil)

const scheduleColumns = `id, restaurant_id, name, start_date, end_date, created_by_id, created_at, updated_at`

// ScheduleRepo implementación de ScheduleRepository sobre PostgreSQL.
type ScheduleRepo struct {
	q Querier
}

// NewScheduleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewScheduleRepository(q Querier) *ScheduleRepo {
	return &ScheduleRepo{q: q}
}

func (r *ScheduleRepo) Create(ctx context.Context, s *entity.Schedule) error {
	query := `
		INSERT INTO schedules (` + scheduleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, s.ID, s.RestaurantID, s.Name, s.StartDate, s.EndDate, s.CreatedByID, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert schedule: %w", err)
	}
	return nil
}

func (r *ScheduleRepo) GetByID(ctx context.Context, id string) (*entity.Schedule, error) {
	s, err := scanSchedule(r.q.QueryRow(ctx, `SELECT `+scheduleColumns+` FROM schedules WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get schedule: %w", err)
	}
	return s, nil
}

func (r *ScheduleRepo) ListByRestaurant(ctx context.Context, restaurantID int) ([]*entity.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE restaurant_id = $1 ORDER BY start_date DESC`
	rows, err := r.q.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	defer rows.Close()
	var out []*entity.Schedule
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *ScheduleRepo) Update(ctx context.Context, s *entity.Schedule) error {
	query := `UPDATE schedules SET name = $2, start_date = $3, end_date = $4, updated_at = $5 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, s.ID, s.Name, s.StartDate, s.EndDate, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update schedule %s: %w", s.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *ScheduleRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM schedules WHERE id = $1`, id); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: el horario tiene turnos", domain.ErrConflict)
		}
		return fmt.Errorf("delete schedule: %w", err)
	}
	return nil
}

func scanSchedule(row pgxScanner) (*entity.Schedule, error) {
	var s entity.Schedule
	if err := row.Scan(&s.ID, &s.RestaurantID, &s.Name, &s.StartDate, &s.EndDate, &s.CreatedByID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
