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

var _ repository.RestaurantRepository = (*RestaurantRepo)(nil)

const restaurantColumns = `id, name, location, phone_number, status, created_at, updated_at`

// RestaurantRepo implementación de RestaurantRepository sobre PostgreSQL.
type RestaurantRepo struct {
	q Querier
}

// NewRestaurantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRestaurantRepository(q Querier) *RestaurantRepo {
	return &RestaurantRepo{q: q}
}

// Create inserta con ON CONFLICT DO NOTHING: un ID repetido no aborta la transacción
// en curso y se reporta como ErrDuplicate para que el allocator reintente.
func (r *RestaurantRepo) Create(ctx context.Context, rest *entity.Restaurant) error {
	query := `
		INSERT INTO restaurants (` + restaurantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING`
	tag, err := r.q.Exec(ctx, query,
		rest.ID, rest.Name, rest.Location, rest.PhoneNumber, string(rest.Status), rest.CreatedAt, rest.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert restaurant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDuplicate
	}
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *RestaurantRepo) GetByID(ctx context.Context, id int) (*entity.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = $1`
	rest, err := scanRestaurant(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get restaurant: %w", err)
	}
	return rest, nil
}

func (r *RestaurantRepo) List(ctx context.Context, f repository.RestaurantFilter) ([]*entity.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants`
	var args []any
	if f.Status != nil {
		query += ` WHERE status = $1`
		args = append(args, string(*f.Status))
	}
	query += ` ORDER BY updated_at DESC`
	return r.list(ctx, query, args...)
}

func (r *RestaurantRepo) ListPending(ctx context.Context) ([]*entity.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE status = $1 ORDER BY created_at ASC`
	return r.list(ctx, query, string(entity.StatusPending))
}

func (r *RestaurantRepo) Update(ctx context.Context, rest *entity.Restaurant) error {
	query := `
		UPDATE restaurants
		SET name = $2, location = $3, phone_number = $4, status = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, rest.ID, rest.Name, rest.Location, rest.PhoneNumber, string(rest.Status), rest.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update restaurant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update restaurant %d: %w", rest.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete: si quedan filas que lo referencian (usuarios, horarios, turnos) devuelve ErrConflict.
func (r *RestaurantRepo) Delete(ctx context.Context, id int) error {
	_, err := r.q.Exec(ctx, `DELETE FROM restaurants WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: el restaurante %d tiene registros asociados", domain.ErrConflict, id)
		}
		return fmt.Errorf("delete restaurant: %w", err)
	}
	return nil
}

func (r *RestaurantRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Restaurant, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	defer rows.Close()
	var out []*entity.Restaurant
	for rows.Next() {
		rest, err := scanRestaurant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan restaurant: %w", err)
		}
		out = append(out, rest)
	}
	return out, rows.Err()
}

func scanRestaurant(row pgxScanner) (*entity.Restaurant, error) {
	var (
		rest   entity.Restaurant
		status string
	)
	if err := row.Scan(&rest.ID, &rest.Name, &rest.Location, &rest.PhoneNumber, &status, &rest.CreatedAt, &rest.UpdatedAt); err != nil {
		return nil, err
	}
	st, err := entity.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	rest.Status = st
	return &rest, nil
}
