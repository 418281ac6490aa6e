package repository

import (
	"context"

	"github.com/jhoicas/Horarios-api/internal/domain/entity"
)

// ScheduleRepository define el puerto de persistencia para Schedule (DIP).
type ScheduleRepository interface {
	Create(ctx context.Context, s *entity.Schedule) error
	GetByID(ctx context.Context, id string) (*entity.Schedule, error)
	// ListByRestaurant ordena por start_date descendente.
	ListByRestaurant(ctx context.Context, restaurantID int) ([]*entity.Schedule, error)
	Update(ctx context.Context, s *entity.Schedule) error
	Delete(ctx context.Context, id string) error
}
