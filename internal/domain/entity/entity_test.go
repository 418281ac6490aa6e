package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Horarios-api/internal/domain"
	"github.com/jhoicas/Horarios-api/internal/domain/entity"
)

func TestParseRole(t *testing.T) {
	r, err := entity.ParseRole(" Admin ")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, r)

	r, err = entity.ParseRole("super-admin")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSuperAdmin, r)

	_, err = entity.ParseRole("manager")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "los roles fuera del conjunto cerrado se rechazan")
}

func TestParseStatus(t *testing.T) {
	s, err := entity.ParseStatus("approved")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusApproved, s)

	_, err = entity.ParseStatus("active")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStatus_CanTransition(t *testing.T) {
	assert.True(t, entity.StatusPending.CanTransition(entity.StatusApproved))
	assert.True(t, entity.StatusApproved.CanTransition(entity.StatusApproved))
	assert.False(t, entity.StatusApproved.CanTransition(entity.StatusPending), "nunca se vuelve a pending")
}

func TestNormalizePhone(t *testing.T) {
	valid := map[string]string{
		"+573001234567":   "+573001234567",
		"(555) 123-4567":  "5551234567",
		"+1 202.555.0100": "+12025550100",
		"42":              "42",
		"":                "",
	}
	for in, want := range valid {
		got, err := entity.NormalizePhone(in)
		require.NoError(t, err, "entrada %q", in)
		assert.Equal(t, want, got)
	}

	for _, in := range []string{"+0123456", "0555123456", "1", "+1234567890123456", "555-CALL-NOW"} {
		_, err := entity.NormalizePhone(in)
		assert.ErrorIs(t, err, domain.ErrInvalidPhone, "entrada %q", in)
	}
}

func TestActorOf(t *testing.T) {
	rid := 12345
	u := &entity.User{ID: "u1", Role: entity.RoleAdmin, Status: entity.StatusPending, RestaurantID: &rid}
	a := entity.ActorOf(u)
	assert.Equal(t, "u1", a.ID)
	assert.Equal(t, entity.RoleAdmin, a.Role)
	assert.Equal(t, entity.StatusPending, a.Status)
	assert.True(t, u.BelongsTo(12345))
	assert.Nil(t, entity.ActorOf(nil))
}

func TestNewRestaurant(t *testing.T) {
	now := time.Now()
	r, err := entity.NewRestaurant("  Cafe A ", "Centro", "+57 (300) 123-4567", now)
	require.NoError(t, err)
	assert.Equal(t, "Cafe A", r.Name)
	assert.Equal(t, "+573001234567", r.PhoneNumber)
	assert.Equal(t, entity.StatusPending, r.Status)
	assert.Zero(t, r.ID)

	_, err = entity.NewRestaurant("   ", "", "", now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = entity.NewRestaurant("Cafe B", "", "0123", now)
	assert.ErrorIs(t, err, domain.ErrInvalidPhone)
}

func TestShiftHours_MinutosEnteros(t *testing.T) {
	day := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	s := &entity.Shift{StartTime: day.Add(9 * time.Hour), EndTime: day.Add(11*time.Hour + 45*time.Minute + 30*time.Second)}
	assert.Equal(t, "2.75", s.Hours().String())
}
