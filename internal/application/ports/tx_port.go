package ports

import (
	"context"

	"github.com/jhoicas/Horarios-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Restaurants    repository.RestaurantRepository
	Users          repository.UserRepository
	Schedules      repository.ScheduleRepository
	Shifts         repository.ShiftRepository
	Availabilities repository.AvailabilityRepository
}

// TxRunner ejecuta fn dentro de una transacción: si fn devuelve error se hace Rollback,
// si no, Commit. Todo lo escrito a través de los repos de TxRepos es atómico.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
