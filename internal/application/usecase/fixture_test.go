package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Horarios-api/internal/application/authz"
	"github.com/jhoicas/Horarios-api/internal/application/ports"
	"github.com/jhoicas/Horarios-api/internal/domain/entity"
	"github.com/jhoicas/Horarios-api/internal/domain/scheduling"
	"github.com/jhoicas/Horarios-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: almacén en memoria + gate + reloj fijo
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	ctx   context.Context
	store *memory.Store
	repos ports.TxRepos
	gate  *authz.Gate
	norm  *scheduling.Normalizer
	now   time.Time
	seq   int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	return &fixture{
		ctx:   context.Background(),
		store: store,
		repos: store.Repos(),
		gate:  authz.NewGate(zerolog.Nop()),
		norm:  scheduling.NewNormalizer(time.UTC),
		now:   time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) clock() time.Time { return f.now }

// tick avanza el reloj para que created_at sea estrictamente creciente entre semillas.
func (f *fixture) tick() time.Time {
	f.seq++
	return f.now.Add(time.Duration(f.seq) * time.Second)
}

func (f *fixture) seedRestaurant(t *testing.T, id int, status entity.Status) *entity.Restaurant {
	t.Helper()
	at := f.tick()
	r := &entity.Restaurant{ID: id, Name: fmt.Sprintf("Restaurante %d", id), Status: status, CreatedAt: at, UpdatedAt: at}
	require.NoError(t, f.repos.Restaurants.Create(f.ctx, r))
	return r
}

func (f *fixture) seedUser(t *testing.T, restaurantID *int, role entity.Role, status entity.Status, name string) *entity.User {
	t.Helper()
	at := f.tick()
	u := &entity.User{
		ID:           uuid.New().String(),
		RestaurantID: restaurantID,
		Name:         name,
		Email:        uuid.New().String() + "@horarios.test",
		PasswordHash: "x",
		Role:         role,
		Status:       status,
		CreatedAt:    at,
		UpdatedAt:    at,
	}
	require.NoError(t, f.repos.Users.Create(f.ctx, u))
	return u
}

func (f *fixture) seedShift(t *testing.T, restaurantID int, assignee *string, date, start, end string) *entity.Shift {
	t.Helper()
	day, from, to, err := f.norm.ComposeStrings(date, start, end)
	require.NoError(t, err)
	sh := &entity.Shift{
		ID:           uuid.New().String(),
		RestaurantID: restaurantID,
		AssignedToID: assignee,
		Role:         "server",
		Date:         day,
		StartTime:    from,
		EndTime:      to,
		CreatedAt:    f.now,
		UpdatedAt:    f.now,
	}
	require.NoError(t, f.repos.Shifts.Create(f.ctx, sh))
	return sh
}

func intPtr(v int) *int                  { return &v }
func strPtr(v string) *string           { return &v }
func actor(u *entity.User) *entity.Actor { return entity.ActorOf(u) }

// tenant crea un restaurante aprobado con un admin y un empleado aprobados.
func (f *fixture) tenant(t *testing.T, id int) (r *entity.Restaurant, admin, employee *entity.User) {
	t.Helper()
	r = f.seedRestaurant(t, id, entity.StatusApproved)
	admin = f.seedUser(t, intPtr(id), entity.RoleAdmin, entity.StatusApproved, "Admin")
	employee = f.seedUser(t, intPtr(id), entity.RoleEmployee, entity.StatusApproved, "Ana")
	return r, admin, employee
}
