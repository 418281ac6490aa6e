package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Horarios-api/internal/domain"
	"github.com/jhoicas/Horarios-api/internal/domain/entity"
	"github.com/jhoicas/Horarios-api/internal/domain/repository"
	"github.com/jhoicas/Horarios-api/internal/observability/metrics"
)

// DefaultRestaurantIDAttempts intentos de inserción antes de rendirse.
const DefaultRestaurantIDAttempts = 10

// IDGenerator produce candidatos de ID de restaurante.
type IDGenerator interface {
	Next() int
}

// RandomIDGenerator candidato uniforme en [RestaurantIDMin, RestaurantIDMax].
type RandomIDGenerator struct{}

func (RandomIDGenerator) Next() int {
	return entity.RestaurantIDMin + rand.Intn(entity.RestaurantIDMax-entity.RestaurantIDMin+1)
}

// RestaurantIDAllocator asigna IDs aleatorios de 5 dígitos. No consulta existencia antes de
// insertar: el insert del repositorio es el único árbitro y un ErrDuplicate dispara otro intento.
type RestaurantIDAllocator struct {
	gen         IDGenerator
	maxAttempts int
	log         zerolog.Logger
}

// NewRestaurantIDAllocator construye el allocator; gen nil usa RandomIDGenerator.
func NewRestaurantIDAllocator(gen IDGenerator, maxAttempts int, log zerolog.Logger) *RestaurantIDAllocator {
	if gen == nil {
		gen = RandomIDGenerator{}
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultRestaurantIDAttempts
	}
	return &RestaurantIDAllocator{gen: gen, maxAttempts: maxAttempts, log: log}
}

// Allocate inserta r con un ID nuevo usando repo (que puede estar atado a una transacción).
func (a *RestaurantIDAllocator) Allocate(ctx context.Context, repo repository.RestaurantRepository, r *entity.Restaurant) error {
	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		r.ID = a.gen.Next()
		err := repo.Create(ctx, r)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrDuplicate) {
			r.ID = 0
			return err
		}
		metrics.ObserveRestaurantIDCollision()
		a.log.Debug().Int("candidate", r.ID).Int("attempt", attempt).Msg("colisión de ID de restaurante, reintentando")
	}
	r.ID = 0
	return fmt.Errorf("%w: %d intentos", domain.ErrIDAllocation, a.maxAttempts)
}
