package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Horarios-api/internal/domain/entity"
)

// AvailabilityRepository define el puerto de persistencia para Availability (DIP).
type AvailabilityRepository interface {
	Create(ctx context.Context, a *entity.Availability) error
	GetByID(ctx context.Context, id string) (*entity.Availability, error)
	// ListByUser ordena por fecha y hora de inicio ascendentes. date nil = todas las fechas.
	ListByUser(ctx context.Context, userID string, date *time.Time) ([]*entity.Availability, error)
	Update(ctx context.Context, a *entity.Availability) error
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) error
}
