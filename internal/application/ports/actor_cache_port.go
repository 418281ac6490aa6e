package ports

import (
	"context"

	"github.com/jhoicas/Horarios-api/internal/domain/entity"
)

// ActorCache guarda el actor resuelto por userID para no consultar la DB en cada petición.
// Los casos de uso lo invalidan al cambiar rol, estado o al eliminar el usuario.
type ActorCache interface {
	Get(ctx context.Context, userID string) (*entity.Actor, bool, error)
	Set(ctx context.Context, actor *entity.Actor) error
	Invalidate(ctx context.Context, userID string) error
}

// NopActorCache implementación vacía (sin Redis configurado).
type NopActorCache struct{}

func (NopActorCache) Get(context.Context, string) (*entity.Actor, bool, error) { return nil, false, nil }
func (NopActorCache) Set(context.Context, *entity.Actor) error                  { return nil }
func (NopActorCache) Invalidate(context.Context, string) error                   { return nil }
