package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/econoarena/inventario-api/internal/application/auth"
	"github.com/econoarena/inventario-api/internal/application/dto"
	"github.com/econoarena/inventario-api/internal/domain"
	"github.com/econoarena/inventario-api/internal/domain/access"
	"github.com/econoarena/inventario-api/internal/domain/entity"
	pkgjwt "github.com/econoarena/inventario-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "econoarena-test"
)

// fakeUserRepo directorio fijo en memoria para los tests.
type fakeUserRepo struct {
	users map[int64]*entity.User
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(id int64) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByUsername(username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(id int64, at time.Time) error {
	if u, ok := r.users[id]; ok {
		u.LastLogin = &at
	}
	return nil
}

func (r *fakeUserRepo) List() ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func buildUseCase(t *testing.T) (*auth.AuthUseCase, *fakeUserRepo) {
	t.Helper()
	repo := &fakeUserRepo{users: map[int64]*entity.User{
		1: {
			ID: 1, Username: "admin", Email: "admin@econoarena.com",
			FirstName: "Eduardo", LastName: "Administrador",
			PasswordHash: mustHash(t, "admin123"),
			Role:         access.RoleAdmin, IsActive: true,
			Permissions: access.DefaultPermissions(access.RoleAdmin),
		},
		2: {
			ID: 2, Username: "viewer", Email: "viewer@econoarena.com",
			FirstName: "Juan", LastName: "Visualizador",
			PasswordHash: mustHash(t, "viewer123"),
			Role:         access.RoleViewer, IsActive: true,
			Permissions: access.DefaultPermissions(access.RoleViewer),
		},
		3: {
			ID: 3, Username: "almacenero", Email: "almacen@econoarena.com",
			PasswordHash: mustHash(t, "almacen123"),
			Role:         access.RoleOperator, IsActive: false,
			Permissions: access.DefaultPermissions(access.RoleOperator),
		},
	}}
	uc := auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: testIssuer})
	return uc, repo
}

func TestLogin_AdminConCredencialesValidas(t *testing.T) {
	uc, repo := buildUseCase(t)

	out, err := uc.Login(dto.LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)

	assert.Equal(t, "admin", out.User.Username)
	assert.Contains(t, out.Permissions, access.CapManageUsers,
		"el admin debe traer manage_users en su set de permisos")
	assert.NotEmpty(t, out.RefreshToken)

	claims, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
	assert.Equal(t, "admin", claims.Role)

	// last_login se actualiza al iniciar sesión
	u, _ := repo.GetByID(1)
	require.NotNil(t, u.LastLogin)
}

// El error es uniforme: contraseña incorrecta y usuario inexistente
// producen exactamente el mismo ErrInvalidCredentials.
func TestLogin_ErrorUniforme(t *testing.T) {
	uc, _ := buildUseCase(t)

	_, errPassword := uc.Login(dto.LoginRequest{Username: "admin", Password: "wrong"})
	_, errUsuario := uc.Login(dto.LoginRequest{Username: "no-existe", Password: "admin123"})

	assert.ErrorIs(t, errPassword, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errUsuario, domain.ErrInvalidCredentials)
	assert.Equal(t, errPassword.Error(), errUsuario.Error())
}

func TestLogin_CuentaInactiva(t *testing.T) {
	uc, _ := buildUseCase(t)

	_, err := uc.Login(dto.LoginRequest{Username: "almacenero", Password: "almacen123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// El refresh token es de un solo uso: el segundo canje falla.
func TestRefresh_UnSoloUso(t *testing.T) {
	uc, _ := buildUseCase(t)

	out, err := uc.Login(dto.LoginRequest{Username: "viewer", Password: "viewer123"})
	require.NoError(t, err)

	renovado, err := uc.Refresh(out.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, renovado.Access)
	assert.NotEqual(t, out.RefreshToken, renovado.Refresh)

	_, err = uc.Refresh(out.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrTokenExpired, "reusar el refresh ya canjeado debe fallar")
}

func TestRefresh_TokenDesconocido(t *testing.T) {
	uc, _ := buildUseCase(t)

	_, err := uc.Refresh("token-inventado")
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestLogout_RevocaElRefresh(t *testing.T) {
	uc, _ := buildUseCase(t)

	out, err := uc.Login(dto.LoginRequest{Username: "viewer", Password: "viewer123"})
	require.NoError(t, err)

	require.NoError(t, uc.Logout(out.RefreshToken))
	_, err = uc.Refresh(out.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestChangePassword(t *testing.T) {
	uc, _ := buildUseCase(t)

	err := uc.ChangePassword(2, dto.ChangePasswordRequest{OldPassword: "incorrecta", NewPassword: "nuevaClave123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	err = uc.ChangePassword(2, dto.ChangePasswordRequest{OldPassword: "viewer123", NewPassword: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "mínimo 8 caracteres")

	require.NoError(t, uc.ChangePassword(2, dto.ChangePasswordRequest{OldPassword: "viewer123", NewPassword: "nuevaClave123"}))

	_, err = uc.Login(dto.LoginRequest{Username: "viewer", Password: "viewer123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = uc.Login(dto.LoginRequest{Username: "viewer", Password: "nuevaClave123"})
	assert.NoError(t, err)
}

func TestVerifyToken_Vencido(t *testing.T) {
	uc, _ := buildUseCase(t)

	vencido, err := pkgjwt.Generate(testSecret, 1, "admin", "admin", testIssuer, -1)
	require.NoError(t, err)

	_, err = uc.VerifyToken(vencido)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}
