package repository

import (
	"context"

	"github.com/jhoicas/Horarios-api/internal/domain/entity"
)

// UserFilter filtros de listado; los campos nil no filtran.
type UserFilter struct {
	RestaurantID *int
	Role         *entity.Role
	Status       *entity.Status
}

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	// Create devuelve domain.ErrEmailAlreadyExists si el email ya está registrado.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// FirstByRestaurantAndRole devuelve el usuario más antiguo con ese rol en el restaurante, o nil.
	FirstByRestaurantAndRole(ctx context.Context, restaurantID int, role entity.Role) (*entity.User, error)
	// List ordena por created_at ascendente.
	List(ctx context.Context, f UserFilter) ([]*entity.User, error)
	CountByRestaurant(ctx context.Context, restaurantID int) (int, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id string) error
}
