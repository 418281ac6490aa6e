package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Horarios-api/internal/application/auth"
	"github.com/jhoicas/Horarios-api/internal/application/authz"
	"github.com/jhoicas/Horarios-api/internal/application/dto"
	"github.com/jhoicas/Horarios-api/internal/application/ports"
	"github.com/jhoicas/Horarios-api/internal/application/usecase"
	"github.com/jhoicas/Horarios-api/internal/domain"
	"github.com/jhoicas/Horarios-api/internal/domain/entity"
	"github.com/jhoicas/Horarios-api/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/Horarios-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

// plainHasher evita el coste de bcrypt en tests.
type plainHasher struct{}

func (plainHasher) Hash(pw string) (string, error) { return "hash:" + pw, nil }
func (plainHasher) Verify(pw, hash string) bool    { return hash == "hash:"+pw }

type fixedGenerator int

func (g fixedGenerator) Next() int { return int(g) }

// mapCache caché en memoria para verificar el llenado desde ResolveActor.
type mapCache struct {
	m map[string]*entity.Actor
}

func (c *mapCache) Get(_ context.Context, id string) (*entity.Actor, bool, error) {
	a, ok := c.m[id]
	return a, ok, nil
}
func (c *mapCache) Set(_ context.Context, a *entity.Actor) error {
	c.m[a.ID] = a
	return nil
}
func (c *mapCache) Invalidate(_ context.Context, id string) error {
	delete(c.m, id)
	return nil
}

type env struct {
	ctx   context.Context
	store *memory.Store
	repos ports.TxRepos
	cache *mapCache
	uc    *auth.AuthUseCase
}

func newEnv(gen usecase.IDGenerator) *env {
	store := memory.NewStore()
	repos := store.Repos()
	cache := &mapCache{m: map[string]*entity.Actor{}}
	uc := auth.NewAuthUseCase(auth.Deps{
		Users:       repos.Users,
		Restaurants: repos.Restaurants,
		Tx:          store,
		Hasher:      plainHasher{},
		Cache:       cache,
		Allocator:   usecase.NewRestaurantIDAllocator(gen, 3, zerolog.Nop()),
		Gate:        authz.NewGate(zerolog.Nop()),
		Log:         zerolog.Nop(),
		Now:         func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) },
	}, auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "horarios-test"})
	return &env{ctx: context.Background(), store: store, repos: repos, cache: cache, uc: uc}
}

func registerCafeA(t *testing.T, e *env) *dto.RestaurantWithAdminResponse {
	t.Helper()
	out, err := e.uc.RegisterRestaurant(e.ctx, dto.RegisterRestaurantRequest{
		RestaurantName: "Cafe A",
		AdminName:      "Marta",
		Email:          "Marta@CafeA.com ",
		Password:       "secreto123",
	})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterRestaurant_CreaRestauranteYAdminPendientes(t *testing.T) {
	e := newEnv(fixedGenerator(48213))
	out := registerCafeA(t, e)

	assert.Equal(t, 48213, out.Restaurant.ID)
	assert.Equal(t, "pending", out.Restaurant.Status)
	require.NotNil(t, out.Admin)
	assert.Equal(t, "admin", out.Admin.Role)
	assert.Equal(t, "pending", out.Admin.Status)
	assert.Equal(t, "marta@cafea.com", out.Admin.Email)
	require.NotNil(t, out.Admin.RestaurantID)
	assert.Equal(t, 48213, *out.Admin.RestaurantID)
}

func TestRegisterRestaurant_SinIDsLibres_NoDejaNada(t *testing.T) {
	e := newEnv(fixedGenerator(48213))
	require.NoError(t, e.repos.Restaurants.Create(e.ctx, &entity.Restaurant{ID: 48213, Name: "Ocupado"}))

	_, err := e.uc.RegisterRestaurant(e.ctx, dto.RegisterRestaurantRequest{
		RestaurantName: "Cafe B", AdminName: "Luis", Email: "luis@cafeb.com", Password: "secreto123",
	})
	assert.ErrorIs(t, err, domain.ErrIDAllocation)

	u, err := e.repos.Users.GetByEmail(e.ctx, "luis@cafeb.com")
	require.NoError(t, err)
	assert.Nil(t, u, "el admin no se crea si el restaurante no se pudo crear")
}

func TestRegisterEmployee_RestauranteInexistente(t *testing.T) {
	e := newEnv(fixedGenerator(48213))

	_, err := e.uc.RegisterEmployee(e.ctx, dto.JoinRequest{
		Name: "Ana", Email: "ana@x.com", Password: "secreto123", RestaurantID: 11111,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterEmployee_EmailDuplicado(t *testing.T) {
	e := newEnv(fixedGenerator(48213))
	registerCafeA(t, e)

	_, err := e.uc.RegisterEmployee(e.ctx, dto.JoinRequest{
		Name: "Otra", Email: "marta@cafea.com", Password: "secreto123", RestaurantID: 48213,
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterEmployee_Validaciones(t *testing.T) {
	e := newEnv(fixedGenerator(48213))
	registerCafeA(t, e)

	cases := map[string]dto.JoinRequest{
		"password corto":    {Name: "Ana", Email: "ana@x.com", Password: "corto", RestaurantID: 48213},
		"email inválido":    {Name: "Ana", Email: "no-es-email", Password: "secreto123", RestaurantID: 48213},
		"nombre vacío":      {Name: "  ", Email: "ana@x.com", Password: "secreto123", RestaurantID: 48213},
		"teléfono inválido": {Name: "Ana", Email: "ana@x.com", Password: "secreto123", PhoneNumber: "0-12", RestaurantID: 48213},
	}
	for name, in := range cases {
		_, err := e.uc.RegisterEmployee(e.ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, name)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Login y actor
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CuentaPendiente(t *testing.T) {
	e := newEnv(fixedGenerator(48213))
	registerCafeA(t, e)

	_, err := e.uc.Login(e.ctx, dto.LoginRequest{Email: "marta@cafea.com", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrUnapproved)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	e := newEnv(fixedGenerator(48213))
	registerCafeA(t, e)

	_, err := e.uc.Login(e.ctx, dto.LoginRequest{Email: "marta@cafea.com", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = e.uc.Login(e.ctx, dto.LoginRequest{Email: "nadie@cafea.com", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_AprobadoEmiteTokenYPanel(t *testing.T) {
	e := newEnv(fixedGenerator(48213))
	out := registerCafeA(t, e)
	u, err := e.repos.Users.GetByID(e.ctx, out.Admin.ID)
	require.NoError(t, err)
	u.Status = entity.StatusApproved
	require.NoError(t, e.repos.Users.Update(e.ctx, u))

	login, err := e.uc.Login(e.ctx, dto.LoginRequest{Email: "MARTA@cafea.com", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, "/admin-dashboard", login.Dashboard)

	claims, err := pkgjwt.Parse(testSecret, login.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	require.NotNil(t, claims.RestaurantID)
	assert.Equal(t, 48213, *claims.RestaurantID)
}

func TestResolveActor_LlenaCache(t *testing.T) {
	e := newEnv(fixedGenerator(48213))
	out := registerCafeA(t, e)

	a, err := e.uc.ResolveActor(e.ctx, out.Admin.ID)
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, entity.RoleAdmin, a.Role)
	assert.Contains(t, e.cache.m, out.Admin.ID)

	missing, err := e.uc.ResolveActor(e.ctx, "no-existe")
	require.NoError(t, err)
	assert.Nil(t, missing, "un usuario inexistente equivale a no tener sesión")
}

func TestCreateAdmin_SoloSuperAdmin(t *testing.T) {
	e := newEnv(fixedGenerator(48213))
	out := registerCafeA(t, e)
	in := dto.CreateAdminRequest{Name: "Segundo", Email: "segundo@cafea.com", Password: "secreto123"}

	pendingAdmin := &entity.Actor{ID: out.Admin.ID, Role: entity.RoleAdmin, Status: entity.StatusPending, RestaurantID: out.Admin.RestaurantID}
	_, err := e.uc.CreateAdmin(e.ctx, pendingAdmin, 48213, in)
	assert.ErrorIs(t, err, domain.ErrUnapproved)

	root, created, err := e.uc.BootstrapSuperAdmin(e.ctx, "Root", "root@horarios.app", "secreto123")
	require.NoError(t, err)
	require.True(t, created)
	rootActor, err := e.uc.ResolveActor(e.ctx, root.ID)
	require.NoError(t, err)

	_, err = e.uc.CreateAdmin(e.ctx, rootActor, 11111, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	admin, err := e.uc.CreateAdmin(e.ctx, rootActor, 48213, in)
	require.NoError(t, err)
	assert.Equal(t, "pending", admin.Status)
}

func TestBootstrapSuperAdmin_Idempotente(t *testing.T) {
	e := newEnv(fixedGenerator(48213))

	first, created, err := e.uc.BootstrapSuperAdmin(e.ctx, "Root", "root@horarios.app", "secreto123")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "approved", first.Status)
	assert.Nil(t, first.RestaurantID)

	again, created, err := e.uc.BootstrapSuperAdmin(e.ctx, "Root", "root@horarios.app", "secreto123")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)

	registerCafeA(t, e)
	_, _, err = e.uc.BootstrapSuperAdmin(e.ctx, "Root", "marta@cafea.com", "secreto123")
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestDashboardFor(t *testing.T) {
	assert.Equal(t, "/super-admin-dashboard", auth.DashboardFor(entity.RoleSuperAdmin))
	assert.Equal(t, "/admin-dashboard", auth.DashboardFor(entity.RoleAdmin))
	assert.Equal(t, "/employee-dashboard", auth.DashboardFor(entity.RoleEmployee))
}
