package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Horarios-api/internal/application/ports"
	"github.com/jhoicas/Horarios-api/internal/domain/entity"
)

var _ ports.ActorCache = (*ActorCache)(nil)

const keyPrefix = "horarios:actor:"

// ActorCache guarda (rol, estado, restaurante) por usuario con TTL.
type ActorCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

// NewActorCache ttl <= 0 usa 5 minutos.
func NewActorCache(rdb redis.Cmdable, ttl time.Duration) *ActorCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ActorCache{rdb: rdb, ttl: ttl}
}

type cachedActor struct {
	ID           string `json:"id"`
	Role         string `json:"role"`
	Status       string `json:"status"`
	RestaurantID *int   `json:"restaurant_id,omitempty"`
}

func actorKey(userID string) string { return keyPrefix + userID }

func encodeActor(a *entity.Actor) ([]byte, error) {
	return json.Marshal(cachedActor{
		ID:           a.ID,
		Role:         string(a.Role),
		Status:       string(a.Status),
		RestaurantID: a.RestaurantID,
	})
}

// decodeActor revalida rol y estado: un valor corrupto en caché no entra al núcleo.
func decodeActor(data []byte) (*entity.Actor, error) {
	var c cachedActor
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	role, err := entity.ParseRole(c.Role)
	if err != nil {
		return nil, err
	}
	status, err := entity.ParseStatus(c.Status)
	if err != nil {
		return nil, err
	}
	return &entity.Actor{ID: c.ID, Role: role, Status: status, RestaurantID: c.RestaurantID}, nil
}

func (c *ActorCache) Get(ctx context.Context, userID string) (*entity.Actor, bool, error) {
	data, err := c.rdb.Get(ctx, actorKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get actor %s: %w", userID, err)
	}
	a, err := decodeActor(data)
	if err != nil {
		// entrada inválida: se descarta y se trata como miss
		_ = c.rdb.Del(ctx, actorKey(userID)).Err()
		return nil, false, nil
	}
	return a, true, nil
}

func (c *ActorCache) Set(ctx context.Context, a *entity.Actor) error {
	data, err := encodeActor(a)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, actorKey(a.ID), data, c.ttl).Err()
}

func (c *ActorCache) Invalidate(ctx context.Context, userID string) error {
	return c.rdb.Del(ctx, actorKey(userID)).Err()
}
