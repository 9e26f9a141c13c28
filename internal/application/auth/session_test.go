package auth_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/econoarena/inventario-api/internal/application/auth"
	"github.com/econoarena/inventario-api/internal/application/dto"
	"github.com/econoarena/inventario-api/internal/domain"
	"github.com/econoarena/inventario-api/internal/domain/access"
	pkgjwt "github.com/econoarena/inventario-api/pkg/jwt"
)

// fakeLoginSvc implementación controlable del servicio de login.
type fakeLoginSvc struct {
	loginFn   func(in dto.LoginRequest) (*dto.LoginResponse, error)
	verifyFn  func(token string) (*pkgjwt.Claims, error)
	refreshFn func(rt string) (*dto.RefreshResponse, error)

	mu        sync.Mutex
	loggedOut []string
}

func (f *fakeLoginSvc) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	return f.loginFn(in)
}

func (f *fakeLoginSvc) Logout(refreshToken string) error {
	f.mu.Lock()
	f.loggedOut = append(f.loggedOut, refreshToken)
	f.mu.Unlock()
	return nil
}

func (f *fakeLoginSvc) Refresh(rt string) (*dto.RefreshResponse, error) {
	if f.refreshFn == nil {
		return nil, domain.ErrTokenExpired
	}
	return f.refreshFn(rt)
}

func (f *fakeLoginSvc) VerifyToken(token string) (*pkgjwt.Claims, error) {
	if f.verifyFn == nil {
		return &pkgjwt.Claims{}, nil
	}
	return f.verifyFn(token)
}

// fakeStore almacenamiento de sesión en memoria para los tests.
type fakeStore struct {
	mu      sync.Mutex
	saved   *auth.PersistedSession
	loadFn  func() (*auth.PersistedSession, error)
	cleared int
}

func (s *fakeStore) Save(rec auth.PersistedSession) error {
	s.mu.Lock()
	s.saved = &rec
	s.mu.Unlock()
	return nil
}

func (s *fakeStore) Load() (*auth.PersistedSession, error) {
	if s.loadFn != nil {
		return s.loadFn()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saved, nil
}

func (s *fakeStore) Clear() error {
	s.mu.Lock()
	s.saved = nil
	s.cleared++
	s.mu.Unlock()
	return nil
}

func adminUser() *dto.UserResponse {
	return &dto.UserResponse{ID: 1, Username: "admin", Role: "admin"}
}

func okLogin(user *dto.UserResponse, perms []string) func(dto.LoginRequest) (*dto.LoginResponse, error) {
	return func(dto.LoginRequest) (*dto.LoginResponse, error) {
		return &dto.LoginResponse{
			Token:        "access-1",
			RefreshToken: "refresh-1",
			User:         *user,
			Permissions:  perms,
		}, nil
	}
}

func TestSession_LoginExitoso(t *testing.T) {
	svc := &fakeLoginSvc{loginFn: okLogin(adminUser(), access.DefaultPermissions(access.RoleAdmin))}
	store := &fakeStore{}
	m := auth.NewSessionManager(svc, store)

	snap, err := m.Login("admin", "admin123")
	require.NoError(t, err)

	assert.Equal(t, auth.StateAuthenticated, snap.State)
	require.NotNil(t, snap.User)
	assert.Equal(t, "admin", snap.User.Username)
	assert.Contains(t, snap.Permissions, access.CapManageUsers)
	assert.Empty(t, snap.Err)

	// la sesión queda persistida junto con sus tokens
	require.NotNil(t, store.saved)
	assert.Equal(t, "access-1", store.saved.Token)
	assert.Equal(t, "refresh-1", store.saved.RefreshToken)
}

func TestSession_LoginFallido(t *testing.T) {
	svc := &fakeLoginSvc{loginFn: func(dto.LoginRequest) (*dto.LoginResponse, error) {
		return nil, domain.ErrInvalidCredentials
	}}
	store := &fakeStore{}
	m := auth.NewSessionManager(svc, store)

	snap, err := m.Login("admin", "incorrecta")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	assert.Equal(t, auth.StateError, snap.State)
	assert.Nil(t, snap.User)
	assert.Empty(t, snap.Permissions)
	assert.NotEmpty(t, snap.Err)
	assert.Nil(t, store.saved, "un login fallido no debe persistir nada")

	// sin sesión, ningún permiso se concede
	assert.False(t, m.HasPermission(access.CapRead))
}

// Dos logins solapados: gana el más reciente, el primero se descarta con
// ErrSuperseded aunque termine después.
func TestSession_LoginReemplazado(t *testing.T) {
	primeroEnCurso := make(chan struct{})
	soltarPrimero := make(chan struct{})

	operador := &dto.UserResponse{ID: 2, Username: "operador", Role: "operator"}
	svc := &fakeLoginSvc{loginFn: func(in dto.LoginRequest) (*dto.LoginResponse, error) {
		if in.Username == "lento" {
			close(primeroEnCurso)
			<-soltarPrimero
			return &dto.LoginResponse{Token: "viejo", RefreshToken: "viejo-rt", User: *adminUser()}, nil
		}
		return &dto.LoginResponse{
			Token: "nuevo", RefreshToken: "nuevo-rt",
			User:        *operador,
			Permissions: access.DefaultPermissions(access.RoleOperator),
		}, nil
	}}
	store := &fakeStore{}
	m := auth.NewSessionManager(svc, store)

	var (
		wg       sync.WaitGroup
		errLento error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, errLento = m.Login("lento", "x")
	}()

	<-primeroEnCurso
	snap, err := m.Login("operador", "operador123")
	require.NoError(t, err)
	assert.Equal(t, "operador", snap.User.Username)

	close(soltarPrimero)
	wg.Wait()

	assert.ErrorIs(t, errLento, auth.ErrSuperseded)

	// el resultado tardío no pisó la sesión vigente
	final := m.Snapshot()
	assert.Equal(t, auth.StateAuthenticated, final.State)
	assert.Equal(t, "operador", final.User.Username)
	assert.Equal(t, "nuevo", store.saved.Token)
}

func TestSession_Logout(t *testing.T) {
	svc := &fakeLoginSvc{loginFn: okLogin(adminUser(), access.DefaultPermissions(access.RoleAdmin))}
	store := &fakeStore{}
	m := auth.NewSessionManager(svc, store)

	_, err := m.Login("admin", "admin123")
	require.NoError(t, err)

	m.Logout()

	snap := m.Snapshot()
	assert.Equal(t, auth.StateUnauthenticated, snap.State)
	assert.Nil(t, snap.User)
	assert.False(t, m.HasPermission(access.CapRead))
	assert.Nil(t, store.saved)
	assert.Equal(t, []string{"refresh-1"}, svc.loggedOut, "debe revocar el refresh en el servicio")
}

func TestSession_RestoreDesdeRegistro(t *testing.T) {
	svc := &fakeLoginSvc{}
	store := &fakeStore{saved: &auth.PersistedSession{
		User:        &dto.UserResponse{ID: 3, Username: "viewer", Role: "viewer"},
		Permissions: access.DefaultPermissions(access.RoleViewer),
		Token:       "persistido",
	}}
	m := auth.NewSessionManager(svc, store)

	m.Restore()

	snap := m.Snapshot()
	assert.Equal(t, auth.StateAuthenticated, snap.State)
	assert.Equal(t, "viewer", snap.User.Username)
	assert.True(t, m.HasPermission(access.CapRead))
	assert.False(t, m.HasPermission(access.CapDelete), "viewer solo lee")
}

// Registro malformado: se descarta en silencio y la sesión queda limpia.
func TestSession_RestoreRegistroMalformado(t *testing.T) {
	svc := &fakeLoginSvc{}
	store := &fakeStore{loadFn: func() (*auth.PersistedSession, error) {
		return nil, errors.New("json corrupto")
	}}
	m := auth.NewSessionManager(svc, store)

	m.Restore()

	assert.Equal(t, auth.StateUnauthenticated, m.Snapshot().State)
	assert.Equal(t, 1, store.cleared, "el registro ilegible se elimina")
}

func TestSession_RestoreSinUsuario(t *testing.T) {
	svc := &fakeLoginSvc{}
	store := &fakeStore{saved: &auth.PersistedSession{Token: "sin-usuario"}}
	m := auth.NewSessionManager(svc, store)

	m.Restore()

	assert.Equal(t, auth.StateUnauthenticated, m.Snapshot().State)
}

// Token vencido: un único refresh silencioso repone el access token sin
// alterar el estado de la sesión.
func TestSession_AccessTokenConRefreshSilencioso(t *testing.T) {
	verificados := 0
	svc := &fakeLoginSvc{
		loginFn: okLogin(adminUser(), access.DefaultPermissions(access.RoleAdmin)),
		verifyFn: func(token string) (*pkgjwt.Claims, error) {
			verificados++
			if token == "access-1" {
				return nil, domain.ErrTokenExpired
			}
			return &pkgjwt.Claims{}, nil
		},
		refreshFn: func(rt string) (*dto.RefreshResponse, error) {
			require.Equal(t, "refresh-1", rt)
			return &dto.RefreshResponse{Access: "access-2", Refresh: "refresh-2"}, nil
		},
	}
	store := &fakeStore{}
	m := auth.NewSessionManager(svc, store)

	_, err := m.Login("admin", "admin123")
	require.NoError(t, err)

	token, err := m.AccessToken()
	require.NoError(t, err)
	assert.Equal(t, "access-2", token)
	assert.Equal(t, auth.StateAuthenticated, m.Snapshot().State)
	assert.Equal(t, "refresh-2", store.saved.RefreshToken, "el par renovado se persiste")
}

// Si el refresh también falla, la sesión se cierra y el caller recibe
// ErrTokenExpired.
func TestSession_AccessTokenRefreshFallido(t *testing.T) {
	svc := &fakeLoginSvc{
		loginFn: okLogin(adminUser(), access.DefaultPermissions(access.RoleAdmin)),
		verifyFn: func(string) (*pkgjwt.Claims, error) {
			return nil, domain.ErrTokenExpired
		},
		refreshFn: func(string) (*dto.RefreshResponse, error) {
			return nil, domain.ErrTokenExpired
		},
	}
	store := &fakeStore{}
	m := auth.NewSessionManager(svc, store)

	_, err := m.Login("admin", "admin123")
	require.NoError(t, err)

	_, err = m.AccessToken()
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
	assert.Equal(t, auth.StateUnauthenticated, m.Snapshot().State)
	assert.Nil(t, store.saved)
}

func TestSession_AccessTokenSinSesion(t *testing.T) {
	m := auth.NewSessionManager(&fakeLoginSvc{}, &fakeStore{})

	_, err := m.AccessToken()
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}
