package repository

import (
	"context"

	"github.com/jhoicas/Horarios-api/internal/domain/entity"
)

// RestaurantFilter filtros de listado. Status nil = todos.
type RestaurantFilter struct {
	Status *entity.Status
}

// RestaurantRepository define el puerto de persistencia para Restaurant (DIP).
type RestaurantRepository interface {
	// Create inserta el restaurante con el ID ya asignado. Devuelve domain.ErrDuplicate si el ID
	// existe: el insert es el único árbitro de unicidad.
	Create(ctx context.Context, r *entity.Restaurant) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id int) (*entity.Restaurant, error)
	// List ordena por updated_at descendente.
	List(ctx context.Context, f RestaurantFilter) ([]*entity.Restaurant, error)
	// ListPending ordena por created_at ascendente (los más antiguos primero).
	ListPending(ctx context.Context) ([]*entity.Restaurant, error)
	Update(ctx context.Context, r *entity.Restaurant) error
	Delete(ctx context.Context, id int) error
}
