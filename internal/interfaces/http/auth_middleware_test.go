package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/econoarena/inventario-api/internal/domain/access"
	"github.com/econoarena/inventario-api/internal/domain/entity"
	apphttp "github.com/econoarena/inventario-api/internal/interfaces/http"
	pkgjwt "github.com/econoarena/inventario-api/pkg/jwt"
)

// fakeUsers repositorio mínimo para RequirePermission.
type fakeUsers struct {
	byID map[int64]*entity.User
}

func (f *fakeUsers) Create(u *entity.User) error                 { return nil }
func (f *fakeUsers) GetByID(id int64) (*entity.User, error)      { return f.byID[id], nil }
func (f *fakeUsers) FindByUsername(string) (*entity.User, error) { return nil, nil }
func (f *fakeUsers) Update(u *entity.User) error                 { return nil }
func (f *fakeUsers) UpdateLastLogin(int64, time.Time) error      { return nil }
func (f *fakeUsers) List() ([]*entity.User, error)               { return nil, nil }

// buildProtectedApp app mínima: AuthMiddleware + RequirePermission + handler dummy.
func buildProtectedApp(capability string, users *fakeUsers) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequirePermission(capability, users),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true, "username": apphttp.GetUsername(c)})
		},
	)
	return app
}

func tokenFor(t *testing.T, userID int64, username, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, username, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func doProtected(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func operatorUsers() *fakeUsers {
	return &fakeUsers{byID: map[int64]*entity.User{
		2: {
			ID: 2, Username: "operador", Role: access.RoleOperator, IsActive: true,
			Permissions: access.DefaultPermissions(access.RoleOperator),
		},
	}}
}

func TestAuthMiddleware_SinHeader(t *testing.T) {
	app := buildProtectedApp(access.CapRead, operatorUsers())

	resp := doProtected(t, app, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_FormatoInvalido(t *testing.T) {
	app := buildProtectedApp(access.CapRead, operatorUsers())

	for _, header := range []string{"token-sin-esquema", "Basic abc123", "Bearer "} {
		resp := doProtected(t, app, header)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "header %q", header)
	}
}

func TestAuthMiddleware_TokenVencido(t *testing.T) {
	app := buildProtectedApp(access.CapRead, operatorUsers())

	tok, err := pkgjwt.Generate(testJWTSecret, 2, "operador", "operator", testIssuer, -1)
	require.NoError(t, err)
	resp := doProtected(t, app, "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequirePermission_OperadorPuedeLeer(t *testing.T) {
	app := buildProtectedApp(access.CapRead, operatorUsers())

	resp := doProtected(t, app, tokenFor(t, 2, "operador", "operator"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequirePermission_OperadorNoBorra(t *testing.T) {
	app := buildProtectedApp(access.CapDelete, operatorUsers())

	resp := doProtected(t, app, tokenFor(t, 2, "operador", "operator"))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// El admin pasa cualquier verificación aunque la capacidad no esté en su lista.
func TestRequirePermission_AdminSiemprePasa(t *testing.T) {
	users := &fakeUsers{byID: map[int64]*entity.User{
		1: {ID: 1, Username: "admin", Role: access.RoleAdmin, IsActive: true, Permissions: []string{"read"}},
	}}
	app := buildProtectedApp(access.CapSystemConfig, users)

	resp := doProtected(t, app, tokenFor(t, 1, "admin", "admin"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Los permisos se leen del repositorio, no del token: un usuario
// deshabilitado después de emitir su token queda fuera de inmediato.
func TestRequirePermission_CuentaDeshabilitada(t *testing.T) {
	users := &fakeUsers{byID: map[int64]*entity.User{
		2: {ID: 2, Username: "operador", Role: access.RoleOperator, IsActive: false,
			Permissions: access.DefaultPermissions(access.RoleOperator)},
	}}
	app := buildProtectedApp(access.CapRead, users)

	resp := doProtected(t, app, tokenFor(t, 2, "operador", "operator"))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequirePermission_UsuarioInexistente(t *testing.T) {
	app := buildProtectedApp(access.CapRead, &fakeUsers{byID: map[int64]*entity.User{}})

	resp := doProtected(t, app, tokenFor(t, 99, "fantasma", "operator"))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
