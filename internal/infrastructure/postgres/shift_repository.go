package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Horarios-api/internal/domain"
	"github.com/jhoicas/Horarios-api/internal/domain/entity"
	"github.com/jhoicas/Horarios-api/internal/domain/repository"
)

var _ repository.ShiftRepository = (*ShiftRepo)(nil)

const shiftColumns = `id, restaurant_id, schedule_id, assigned_to_id, created_by_id, name, role, date, start_time, end_time, created_at, updated_at`

// ShiftRepo implementación de ShiftRepository sobre PostgreSQL.
type ShiftRepo struct {
	q Querier
}

// NewShiftRepository construye el adaptador. Pasar pool o tx (Querier).
func NewShiftRepository(q Querier) *ShiftRepo {
	return &ShiftRepo{q: q}
}

func (r *ShiftRepo) Create(ctx context.Context, s *entity.Shift) error {
	query := `
		INSERT INTO shifts (` + shiftColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.RestaurantID, s.ScheduleID, s.AssignedToID, s.CreatedByID, s.Name, s.Role,
		s.Date, s.StartTime, s.EndTime, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: referencia inexistente en el turno", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert shift: %w", err)
	}
	return nil
}

func (r *ShiftRepo) GetByID(ctx context.Context, id string) (*entity.Shift, error) {
	s, err := scanShift(r.q.QueryRow(ctx, `SELECT `+shiftColumns+` FROM shifts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shift: %w", err)
	}
	return s, nil
}

func (r *ShiftRepo) List(ctx context.Context, f repository.ShiftFilter) ([]*entity.Shift, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.RestaurantID != nil {
		add("restaurant_id = $%d", *f.RestaurantID)
	}
	if f.ScheduleID != nil {
		add("schedule_id = $%d", *f.ScheduleID)
	}
	if f.AssignedToID != nil {
		add("assigned_to_id = $%d", *f.AssignedToID)
	}
	if f.Date != nil {
		add("date = $%d", *f.Date)
	}
	query := `SELECT ` + shiftColumns + ` FROM shifts`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY start_time ASC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	defer rows.Close()
	var out []*entity.Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shift: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *ShiftRepo) CountBySchedule(ctx context.Context, scheduleID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM shifts WHERE schedule_id = $1`, scheduleID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count shifts: %w", err)
	}
	return n, nil
}

// HoursByAssignee suma en SQL; el NUMERIC resultante se lee como decimal.Decimal
// gracias al codec registrado en el pool.
func (r *ShiftRepo) HoursByAssignee(ctx context.Context, scheduleID string) ([]repository.AssigneeHours, error) {
	query := `
		SELECT assigned_to_id, COUNT(*),
		       SUM(FLOOR(EXTRACT(EPOCH FROM (end_time - start_time)) / 60))::numeric / 60
		FROM shifts
		WHERE schedule_id = $1
		GROUP BY assigned_to_id`
	rows, err := r.q.Query(ctx, query, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("hours by assignee: %w", err)
	}
	defer rows.Close()
	var out []repository.AssigneeHours
	for rows.Next() {
		var h repository.AssigneeHours
		if err := rows.Scan(&h.AssignedToID, &h.Shifts, &h.Hours); err != nil {
			return nil, fmt.Errorf("scan hours: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *ShiftRepo) Update(ctx context.Context, s *entity.Shift) error {
	query := `
		UPDATE shifts
		SET schedule_id = $2, assigned_to_id = $3, name = $4, role = $5,
		    date = $6, start_time = $7, end_time = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		s.ID, s.ScheduleID, s.AssignedToID, s.Name, s.Role, s.Date, s.StartTime, s.EndTime, s.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: referencia inexistente en el turno", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update shift %s: %w", s.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *ShiftRepo) UnassignUser(ctx context.Context, userID string) error {
	if _, err := r.q.Exec(ctx, `UPDATE shifts SET assigned_to_id = NULL, updated_at = now() WHERE assigned_to_id = $1`, userID); err != nil {
		return fmt.Errorf("unassign shifts: %w", err)
	}
	return nil
}

func (r *ShiftRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM shifts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete shift: %w", err)
	}
	return nil
}

func scanShift(row pgxScanner) (*entity.Shift, error) {
	var s entity.Shift
	err := row.Scan(
		&s.ID, &s.RestaurantID, &s.ScheduleID, &s.AssignedToID, &s.CreatedByID, &s.Name, &s.Role,
		&s.Date, &s.StartTime, &s.EndTime, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.StartTime, s.EndTime = s.StartTime.UTC(), s.EndTime.UTC()
	return &s, nil
}
