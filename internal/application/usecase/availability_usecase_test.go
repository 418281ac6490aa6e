package usecase_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Horarios-api/internal/application/dto"
	"github.com/jhoicas/Horarios-api/internal/application/usecase"
	"github.com/jhoicas/Horarios-api/internal/domain"
	"github.com/jhoicas/Horarios-api/internal/domain/entity"
)

func newAvailabilityUC(f *fixture) *usecase.AvailabilityUseCase {
	return usecase.NewAvailabilityUseCase(f.repos.Availabilities, f.repos.Users, f.norm, f.gate, zerolog.Nop(), f.clock)
}

func window(date, start, end string) dto.AvailabilityRequest {
	return dto.AvailabilityRequest{Date: date, StartTime: start, EndTime: end}
}

func TestAvailabilityCreate_SolapeRechazado(t *testing.T) {
	f := newFixture(t)
	_, _, employee := f.tenant(t, 10001)
	uc := newAvailabilityUC(f)

	_, err := uc.Create(f.ctx, actor(employee), window("2024-03-10", "09:00", "13:00"))
	require.NoError(t, err)

	_, err = uc.Create(f.ctx, actor(employee), window("2024-03-10", "12:00", "15:00"))
	assert.ErrorIs(t, err, domain.ErrOverlap)

	_, err = uc.Create(f.ctx, actor(employee), window("2024-03-10", "13:00", "15:00"))
	assert.NoError(t, err, "ventanas consecutivas son válidas")

	_, err = uc.Create(f.ctx, actor(employee), window("2024-03-11", "09:00", "13:00"))
	assert.NoError(t, err, "otro día no solapa")

	mine, err := uc.ListMine(f.ctx, actor(employee))
	require.NoError(t, err)
	assert.Len(t, mine, 3)
}

func TestAvailabilityCreate_RangoInvertido(t *testing.T) {
	f := newFixture(t)
	_, _, employee := f.tenant(t, 10001)

	_, err := newAvailabilityUC(f).Create(f.ctx, actor(employee), window("2024-03-10", "13:00", "13:00"))
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

func TestAvailabilityCreate_AdminNoPuede(t *testing.T) {
	f := newFixture(t)
	_, admin, _ := f.tenant(t, 10001)

	_, err := newAvailabilityUC(f).Create(f.ctx, actor(admin), window("2024-03-10", "09:00", "13:00"))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAvailabilityUpdate_DeOtroEmpleado_Prohibido(t *testing.T) {
	f := newFixture(t)
	_, _, ana := f.tenant(t, 10001)
	bob := f.seedUser(t, intPtr(10001), entity.RoleEmployee, entity.StatusApproved, "Bob")
	uc := newAvailabilityUC(f)

	a, err := uc.Create(f.ctx, actor(ana), window("2024-03-10", "09:00", "13:00"))
	require.NoError(t, err)

	_, err = uc.Update(f.ctx, actor(bob), a.ID, window("2024-03-10", "10:00", "14:00"))
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.ErrorIs(t, uc.Delete(f.ctx, actor(bob), a.ID), domain.ErrForbidden)
}

func TestAvailabilityUpdate_ExcluyeLaPropia(t *testing.T) {
	f := newFixture(t)
	_, _, employee := f.tenant(t, 10001)
	uc := newAvailabilityUC(f)

	a, err := uc.Create(f.ctx, actor(employee), window("2024-03-10", "09:00", "13:00"))
	require.NoError(t, err)

	out, err := uc.Update(f.ctx, actor(employee), a.ID, window("2024-03-10", "10:00", "14:00"))
	require.NoError(t, err)
	assert.Equal(t, 10, out.StartTime.Hour())
}

func TestAvailabilityUpdate_RangoInvalido_NoEscribe(t *testing.T) {
	f := newFixture(t)
	_, _, employee := f.tenant(t, 10001)
	uc := newAvailabilityUC(f)

	a, err := uc.Create(f.ctx, actor(employee), window("2024-03-10", "09:00", "13:00"))
	require.NoError(t, err)

	_, err = uc.Update(f.ctx, actor(employee), a.ID, window("2024-03-11", "13:00", "09:00"))
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
	_, err = uc.Update(f.ctx, actor(employee), a.ID, window("2024-03-10", "10:00", "10:00"))
	assert.ErrorIs(t, err, domain.ErrInvalidRange)

	stored, err := f.repos.Availabilities.GetByID(f.ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, a.StartTime.Equal(stored.StartTime), "la ventana guardada no cambia")
	assert.True(t, a.EndTime.Equal(stored.EndTime))
	assert.Equal(t, 10, stored.Date.Day())
}

func TestAvailabilityListForUser_AdminDelRestaurante(t *testing.T) {
	f := newFixture(t)
	_, admin, employee := f.tenant(t, 10001)
	_, otherAdmin, _ := f.tenant(t, 10002)
	uc := newAvailabilityUC(f)
	_, err := uc.Create(f.ctx, actor(employee), window("2024-03-10", "09:00", "13:00"))
	require.NoError(t, err)

	list, err := uc.ListForUser(f.ctx, actor(admin), employee.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = uc.ListForUser(f.ctx, actor(otherAdmin), employee.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
