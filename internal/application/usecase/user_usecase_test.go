package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Horarios-api/internal/application/approval"
	"github.com/jhoicas/Horarios-api/internal/application/dto"
	"github.com/jhoicas/Horarios-api/internal/application/usecase"
	"github.com/jhoicas/Horarios-api/internal/domain"
	"github.com/jhoicas/Horarios-api/internal/domain/entity"
)

// recordingCache registra las invalidaciones.
type recordingCache struct {
	invalidated []string
}

func (c *recordingCache) Get(context.Context, string) (*entity.Actor, bool, error) {
	return nil, false, nil
}
func (c *recordingCache) Set(context.Context, *entity.Actor) error { return nil }
func (c *recordingCache) Invalidate(_ context.Context, id string) error {
	c.invalidated = append(c.invalidated, id)
	return nil
}

func newUserUC(f *fixture, cache *recordingCache) *usecase.UserUseCase {
	workflow := approval.NewWorkflow(f.store, f.repos.Users, f.repos.Restaurants, cache, f.gate, zerolog.Nop(), f.clock)
	return usecase.NewUserUseCase(f.repos.Users, f.store, cache, workflow, f.gate, zerolog.Nop(), f.clock)
}

func TestUserDelete_LiberaTurnosYBorraDisponibilidad(t *testing.T) {
	f := newFixture(t)
	_, admin, employee := f.tenant(t, 10001)
	sh := f.seedShift(t, 10001, &employee.ID, "2024-03-10", "09:00", "13:00")
	_, err := newAvailabilityUC(f).Create(f.ctx, actor(employee), window("2024-03-10", "09:00", "13:00"))
	require.NoError(t, err)
	cache := &recordingCache{}

	require.NoError(t, newUserUC(f, cache).Delete(f.ctx, actor(admin), employee.ID))

	gone, err := f.repos.Users.GetByID(f.ctx, employee.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	stored, err := f.repos.Shifts.GetByID(f.ctx, sh.ID)
	require.NoError(t, err)
	require.NotNil(t, stored, "el turno se conserva")
	assert.Nil(t, stored.AssignedToID, "el turno queda sin asignar")

	windows, err := f.repos.Availabilities.ListByUser(f.ctx, employee.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, windows)
	assert.Equal(t, []string{employee.ID}, cache.invalidated)
}

func TestUserDelete_AdminDeOtroRestaurante(t *testing.T) {
	f := newFixture(t)
	_, _, employee := f.tenant(t, 10001)
	_, otherAdmin, _ := f.tenant(t, 10002)

	err := newUserUC(f, &recordingCache{}).Delete(f.ctx, actor(otherAdmin), employee.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUserUpdate_EstadoNoRetrocede(t *testing.T) {
	f := newFixture(t)
	_, admin, employee := f.tenant(t, 10001)

	_, err := newUserUC(f, &recordingCache{}).Update(f.ctx, actor(admin), employee.ID, dto.UpdateUserRequest{Status: strPtr("pending")})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserUpdate_AprobarPasaPorElFlujo(t *testing.T) {
	f := newFixture(t)
	_, admin, _ := f.tenant(t, 10001)
	pending := f.seedUser(t, intPtr(10001), entity.RoleEmployee, entity.StatusPending, "Nuevo")
	cache := &recordingCache{}

	out, err := newUserUC(f, cache).Update(f.ctx, actor(admin), pending.ID, dto.UpdateUserRequest{
		Status: strPtr("approved"), Name: strPtr("Nuevo Nombre"),
	})
	require.NoError(t, err)
	assert.Equal(t, "approved", out.Status)
	assert.Equal(t, "Nuevo Nombre", out.Name)

	stored, err := f.repos.Users.GetByID(f.ctx, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusApproved, stored.Status)
	assert.Equal(t, "Nuevo Nombre", stored.Name)
	assert.Contains(t, cache.invalidated, pending.ID)
}

func TestUserUpdate_NoApruebaAdminDeRestaurantePendiente(t *testing.T) {
	f := newFixture(t)
	f.seedRestaurant(t, 10001, entity.StatusPending)
	admin := f.seedUser(t, intPtr(10001), entity.RoleAdmin, entity.StatusPending, "Marta")

	_, err := newUserUC(f, &recordingCache{}).Update(f.ctx, f.superAdmin(t), admin.ID, dto.UpdateUserRequest{
		Status: strPtr("approved"), Name: strPtr("Otra"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	stored, err := f.repos.Users.GetByID(f.ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, stored.Status)
	assert.Equal(t, "Marta", stored.Name, "un rechazo no escribe el resto del parche")
	r, err := f.repos.Restaurants.GetByID(f.ctx, 10001)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, r.Status)
}

func TestUserUpdate_NoConcedeSuperAdmin(t *testing.T) {
	f := newFixture(t)
	_, admin, employee := f.tenant(t, 10001)

	_, err := newUserUC(f, &recordingCache{}).Update(f.ctx, actor(admin), employee.ID, dto.UpdateUserRequest{Role: strPtr("super-admin")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserUpdate_PromueveAAdminEInvalidaCache(t *testing.T) {
	f := newFixture(t)
	_, admin, employee := f.tenant(t, 10001)
	cache := &recordingCache{}

	out, err := newUserUC(f, cache).Update(f.ctx, actor(admin), employee.ID, dto.UpdateUserRequest{
		Role: strPtr("admin"), Name: strPtr(" Ana María "),
	})
	require.NoError(t, err)
	assert.Equal(t, "admin", out.Role)
	assert.Equal(t, "Ana María", out.Name)
	assert.Equal(t, []string{employee.ID}, cache.invalidated)
}

func TestUserListPending_AdminSoloSuRestaurante(t *testing.T) {
	f := newFixture(t)
	_, admin, _ := f.tenant(t, 10001)
	f.seedUser(t, intPtr(10001), entity.RoleEmployee, entity.StatusPending, "Nuevo")
	f.tenant(t, 10002)
	f.seedUser(t, intPtr(10002), entity.RoleEmployee, entity.StatusPending, "Ajeno")
	uc := newUserUC(f, &recordingCache{})

	own, err := uc.ListPending(f.ctx, actor(admin))
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "Nuevo", own[0].Name)

	all, err := uc.ListPending(f.ctx, f.superAdmin(t))
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUserListAll_AdminProhibido(t *testing.T) {
	f := newFixture(t)
	_, admin, _ := f.tenant(t, 10001)

	_, err := newUserUC(f, &recordingCache{}).ListAll(f.ctx, actor(admin))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
