package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Horarios-api/internal/application/authz"
	"github.com/jhoicas/Horarios-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Horarios-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Horarios-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret  = "test-secret-key-for-unit-tests"
	testIssuer     = "horarios-api-test"
	testExpMin     = 60
	testRestaurant = 48213
)

// fakeResolver devuelve actores fijos por ID, como lo haría AuthUseCase.ResolveActor.
type fakeResolver struct {
	actors map[string]*entity.Actor
	err    error
}

func (f fakeResolver) ResolveActor(_ context.Context, userID string) (*entity.Actor, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.actors[userID], nil
}

func restaurantPtr() *int {
	id := testRestaurant
	return &id
}

func testResolver() fakeResolver {
	return fakeResolver{actors: map[string]*entity.Actor{
		"admin-ok":      {ID: "admin-ok", Role: entity.RoleAdmin, Status: entity.StatusApproved, RestaurantID: restaurantPtr()},
		"admin-pending": {ID: "admin-pending", Role: entity.RoleAdmin, Status: entity.StatusPending, RestaurantID: restaurantPtr()},
		"employee-ok":   {ID: "employee-ok", Role: entity.RoleEmployee, Status: entity.StatusApproved, RestaurantID: restaurantPtr()},
		"root":          {ID: "root", Role: entity.RoleSuperAdmin, Status: entity.StatusApproved},
	}}
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y resolver el actor
//   - Un handler que pasa por el gate con la categoría indicada
func buildTestApp(resolver apphttp.ActorResolver, allowed []entity.Role) *fiber.App {
	gate := authz.NewGate(zerolog.Nop())
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, resolver, zerolog.Nop()),
		func(c *fiber.Ctx) error {
			actor := apphttp.GetActor(c)
			if err := gate.Require(actor, allowed); err != nil {
				return err
			}
			return c.JSON(fiber.Map{"ok": true, "actor": actor.ID, "role": string(actor.Role)})
		},
	)
	return app
}

// tokenFor genera un JWT para el usuario indicado.
func tokenFor(t *testing.T, userID string, role entity.Role) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, restaurantPtr(), string(role), testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func bodyString(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware + gate
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_AdminAprobadoAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp(testResolver(), authz.AdminOnly)
	resp := doRequest(t, app, tokenFor(t, "admin-ok", entity.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "admin-ok", body["actor"])
	assert.Equal(t, "admin", body["role"])
}

func TestAuthMiddleware_SinHeader_LoginRequerido(t *testing.T) {
	app := buildTestApp(testResolver(), authz.AdminOnly)
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "LOGIN_REQUIRED")
}

func TestAuthMiddleware_AdminPendiente_CuentaPendiente(t *testing.T) {
	app := buildTestApp(testResolver(), authz.AdminOnly)
	resp := doRequest(t, app, tokenFor(t, "admin-pending", entity.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "ACCOUNT_PENDING")
}

// El rol del token es solo una pista: manda el actor resuelto.
func TestAuthMiddleware_EmpleadoBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildTestApp(testResolver(), authz.AdminOnly)
	resp := doRequest(t, app, tokenFor(t, "employee-ok", entity.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "FORBIDDEN")
}

func TestAuthMiddleware_SuperAdminNoHeredaRutaAdmin(t *testing.T) {
	app := buildTestApp(testResolver(), authz.AdminOnly)
	resp := doRequest(t, app, tokenFor(t, "root", entity.RoleSuperAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAuthMiddleware_UsuarioEliminado_LoginRequerido(t *testing.T) {
	app := buildTestApp(testResolver(), authz.AnyRole)
	resp := doRequest(t, app, tokenFor(t, "borrado", entity.RoleEmployee))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "LOGIN_REQUIRED")
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(testResolver(), authz.AdminOnly)
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "INVALID_TOKEN")
}

func TestAuthMiddleware_FormatoSinBearer_Retorna401(t *testing.T) {
	app := buildTestApp(testResolver(), authz.AdminOnly)
	resp := doRequest(t, app, "Token abc")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_SecretIncorrecto_Retorna401(t *testing.T) {
	app := buildTestApp(testResolver(), authz.AdminOnly)
	tok, err := pkgjwt.Generate("otro-secret", "admin-ok", restaurantPtr(), "admin", testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_FalloResolver_Retorna500(t *testing.T) {
	app := buildTestApp(fakeResolver{err: errors.New("redis caído")}, authz.AnyRole)
	resp := doRequest(t, app, tokenFor(t, "admin-ok", entity.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := bodyString(t, resp)
	assert.Contains(t, body, "INTERNAL")
	assert.NotContains(t, body, "redis", "los errores internos no se exponen al cliente")
}
