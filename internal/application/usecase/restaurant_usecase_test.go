package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Horarios-api/internal/application/dto"
	"github.com/jhoicas/Horarios-api/internal/application/usecase"
	"github.com/jhoicas/Horarios-api/internal/domain"
	"github.com/jhoicas/Horarios-api/internal/domain/entity"
)

// sequenceGenerator devuelve los candidatos en orden y repite el último.
type sequenceGenerator struct {
	ids   []int
	calls int
}

func (g *sequenceGenerator) Next() int {
	i := g.calls
	if i >= len(g.ids) {
		i = len(g.ids) - 1
	}
	g.calls++
	return g.ids[i]
}

func newRestaurantUC(f *fixture, gen usecase.IDGenerator, attempts int) *usecase.RestaurantUseCase {
	alloc := usecase.NewRestaurantIDAllocator(gen, attempts, zerolog.Nop())
	return usecase.NewRestaurantUseCase(f.repos.Restaurants, f.repos.Users, alloc, f.gate, zerolog.Nop(), f.clock)
}

func (f *fixture) superAdmin(t *testing.T) *entity.Actor {
	t.Helper()
	return actor(f.seedUser(t, nil, entity.RoleSuperAdmin, entity.StatusApproved, "Root"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Allocator de IDs
// ──────────────────────────────────────────────────────────────────────────────

func TestAllocate_ReintentaTrasColision(t *testing.T) {
	f := newFixture(t)
	f.seedRestaurant(t, 12345, entity.StatusPending)
	gen := &sequenceGenerator{ids: []int{12345, 54321}}
	alloc := usecase.NewRestaurantIDAllocator(gen, 5, zerolog.Nop())

	r := &entity.Restaurant{Name: "Cafe B", Status: entity.StatusPending}
	require.NoError(t, alloc.Allocate(context.Background(), f.repos.Restaurants, r))

	assert.Equal(t, 54321, r.ID)
	assert.Equal(t, 2, gen.calls)
	stored, err := f.repos.Restaurants.GetByID(f.ctx, 12345)
	require.NoError(t, err)
	assert.Equal(t, "Restaurante 12345", stored.Name, "el restaurante existente no se toca")
}

func TestAllocate_AgotaIntentos(t *testing.T) {
	f := newFixture(t)
	f.seedRestaurant(t, 12345, entity.StatusPending)
	gen := &sequenceGenerator{ids: []int{12345}}
	alloc := usecase.NewRestaurantIDAllocator(gen, 3, zerolog.Nop())

	r := &entity.Restaurant{Name: "Cafe B"}
	err := alloc.Allocate(context.Background(), f.repos.Restaurants, r)

	assert.ErrorIs(t, err, domain.ErrIDAllocation)
	assert.Equal(t, 3, gen.calls)
	assert.Zero(t, r.ID)
}

func TestRandomIDGenerator_RangoCincoDigitos(t *testing.T) {
	gen := usecase.RandomIDGenerator{}
	for i := 0; i < 1000; i++ {
		id := gen.Next()
		assert.GreaterOrEqual(t, id, entity.RestaurantIDMin)
		assert.LessOrEqual(t, id, entity.RestaurantIDMax)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// RestaurantUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestRestaurantCreate_Pendiente(t *testing.T) {
	f := newFixture(t)
	uc := newRestaurantUC(f, &sequenceGenerator{ids: []int{20001}}, 0)

	out, err := uc.Create(f.ctx, f.superAdmin(t), dto.CreateRestaurantRequest{Name: "  Cafe A ", PhoneNumber: "(555) 123-4567"})
	require.NoError(t, err)

	assert.Equal(t, 20001, out.ID)
	assert.Equal(t, "Cafe A", out.Name)
	assert.Equal(t, "5551234567", out.PhoneNumber)
	assert.Equal(t, "pending", out.Status)
}

func TestRestaurantCreate_NombreVacio(t *testing.T) {
	f := newFixture(t)
	uc := newRestaurantUC(f, &sequenceGenerator{ids: []int{20001}}, 0)

	_, err := uc.Create(f.ctx, f.superAdmin(t), dto.CreateRestaurantRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := f.repos.Restaurants.GetByID(f.ctx, 20001)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRestaurantCreate_SoloSuperAdmin(t *testing.T) {
	f := newFixture(t)
	_, admin, _ := f.tenant(t, 10001)
	uc := newRestaurantUC(f, nil, 0)

	_, err := uc.Create(f.ctx, actor(admin), dto.CreateRestaurantRequest{Name: "Otro"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Create(f.ctx, nil, dto.CreateRestaurantRequest{Name: "Otro"})
	assert.ErrorIs(t, err, domain.ErrRequiresLogin)
}

func TestRestaurantDelete_ConUsuarios_Conflicto(t *testing.T) {
	f := newFixture(t)
	f.tenant(t, 10001)
	uc := newRestaurantUC(f, nil, 0)

	err := uc.Delete(f.ctx, f.superAdmin(t), 10001)
	assert.ErrorIs(t, err, domain.ErrConflict)

	got, err := f.repos.Restaurants.GetByID(f.ctx, 10001)
	require.NoError(t, err)
	assert.NotNil(t, got, "el restaurante debe seguir existiendo")
}

func TestRestaurantDelete_SinUsuarios(t *testing.T) {
	f := newFixture(t)
	f.seedRestaurant(t, 10002, entity.StatusPending)
	uc := newRestaurantUC(f, nil, 0)
	root := f.superAdmin(t)

	require.NoError(t, uc.Delete(f.ctx, root, 10002))
	assert.ErrorIs(t, uc.Delete(f.ctx, root, 10002), domain.ErrNotFound)
}

func TestRestaurantDelete_ConTurnos_Conflicto(t *testing.T) {
	f := newFixture(t)
	f.seedRestaurant(t, 10002, entity.StatusPending)
	sh := f.seedShift(t, 10002, nil, "2024-03-10", "09:00", "13:00")
	uc := newRestaurantUC(f, nil, 0)

	err := uc.Delete(f.ctx, f.superAdmin(t), 10002)
	assert.ErrorIs(t, err, domain.ErrConflict)

	got, err := f.repos.Restaurants.GetByID(f.ctx, 10002)
	require.NoError(t, err)
	assert.NotNil(t, got)
	stored, err := f.repos.Shifts.GetByID(f.ctx, sh.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored, "el turno no queda huérfano")
}

func TestRestaurantUpdate_RecortaUbicacion(t *testing.T) {
	f := newFixture(t)
	f.seedRestaurant(t, 10001, entity.StatusPending)
	uc := newRestaurantUC(f, nil, 0)

	out, err := uc.Update(f.ctx, f.superAdmin(t), 10001, dto.UpdateRestaurantRequest{Location: strPtr("  Calle 10 # 5-20  ")})
	require.NoError(t, err)
	assert.Equal(t, "Calle 10 # 5-20", out.Location)
}

func TestRestaurantUpdate_TelefonoInvalido(t *testing.T) {
	f := newFixture(t)
	f.seedRestaurant(t, 10001, entity.StatusPending)
	uc := newRestaurantUC(f, nil, 0)

	_, err := uc.Update(f.ctx, f.superAdmin(t), 10001, dto.UpdateRestaurantRequest{PhoneNumber: strPtr("0123")})
	assert.ErrorIs(t, err, domain.ErrInvalidPhone)
}

func TestRestaurantListPending_MasAntiguoPrimero(t *testing.T) {
	f := newFixture(t)
	f.seedRestaurant(t, 10003, entity.StatusPending)
	f.seedRestaurant(t, 10001, entity.StatusApproved)
	f.seedRestaurant(t, 10002, entity.StatusPending)
	uc := newRestaurantUC(f, nil, 0)

	out, err := uc.ListPending(f.ctx, f.superAdmin(t))
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, 10003, out[0].ID)
	assert.Equal(t, 10002, out[1].ID)
}

func TestRestaurantGet_AdminSoloSuRestaurante(t *testing.T) {
	f := newFixture(t)
	_, admin, _ := f.tenant(t, 10001)
	f.seedRestaurant(t, 10002, entity.StatusApproved)
	uc := newRestaurantUC(f, nil, 0)

	_, err := uc.Get(f.ctx, actor(admin), 10001)
	require.NoError(t, err)
	_, err = uc.Get(f.ctx, actor(admin), 10002)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
