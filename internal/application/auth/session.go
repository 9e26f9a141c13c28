package auth

import (
	"errors"
	"sync"

	"github.com/econoarena/inventario-api/internal/application/dto"
	"github.com/econoarena/inventario-api/internal/domain"
	"github.com/econoarena/inventario-api/internal/domain/access"
	pkgjwt "github.com/econoarena/inventario-api/pkg/jwt"
)

// ErrSuperseded indica que un login fue reemplazado por un intento más
// reciente: su resultado se descarta (gana el último).
var ErrSuperseded = errors.New("login reemplazado por un intento más reciente")

// State estado de la sesión. La combinación Autenticado-sin-usuario es
// irrepresentable: solo la transición de éxito (que exige usuario) llega ahí.
type State int

const (
	StateUnauthenticated State = iota
	StateAuthenticating
	StateAuthenticated
	StateError
)

func (s State) String() string {
	switch s {
	case StateAuthenticating:
		return "autenticando"
	case StateAuthenticated:
		return "autenticado"
	case StateError:
		return "error"
	default:
		return "no_autenticado"
	}
}

// Snapshot es la vista inmutable de la sesión que reciben los callers.
type Snapshot struct {
	State       State
	User        *dto.UserResponse
	Permissions []string
	Err         string
}

// ── Máquina de estados ────────────────────────────────────────────────────────

type event interface{ isEvent() }

type evStart struct{}
type evSuccess struct {
	user        *dto.UserResponse
	permissions []string
}
type evFailure struct{ msg string }
type evLogout struct{}

func (evStart) isEvent()   {}
func (evSuccess) isEvent() {}
func (evFailure) isEvent() {}
func (evLogout) isEvent()  {}

// transition es la función pura de transición. Eventos no aplicables al
// estado actual dejan la sesión intacta.
func transition(s Snapshot, ev event) Snapshot {
	switch e := ev.(type) {
	case evStart:
		return Snapshot{State: StateAuthenticating}
	case evSuccess:
		if e.user == nil {
			return s
		}
		if s.State != StateAuthenticating && s.State != StateUnauthenticated {
			return s
		}
		return Snapshot{State: StateAuthenticated, User: e.user, Permissions: e.permissions}
	case evFailure:
		if s.State != StateAuthenticating {
			return s
		}
		return Snapshot{State: StateError, Err: e.msg}
	case evLogout:
		return Snapshot{State: StateUnauthenticated}
	}
	return s
}

// ── SessionManager ────────────────────────────────────────────────────────────

// loginService es el contrato mínimo que el manager necesita del caso de uso
// de auth. Lo implementa *AuthUseCase; la interfaz permite fakes en tests.
type loginService interface {
	Login(in dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(refreshToken string) error
	Refresh(refreshToken string) (*dto.RefreshResponse, error)
	VerifyToken(token string) (*pkgjwt.Claims, error)
}

// SessionManager mantiene la única sesión del cliente: máquina de estados
// explícita, persistencia local del registro {user, permissions, token} y
// refresh silencioso de un solo intento ante token vencido.
type SessionManager struct {
	svc   loginService
	store SessionStore

	mu           sync.Mutex
	gen          uint64 // generación del último login lanzado; resultados viejos se descartan
	snap         Snapshot
	token        string
	refreshToken string
}

// NewSessionManager construye el manager en estado NoAutenticado.
func NewSessionManager(svc loginService, store SessionStore) *SessionManager {
	return &SessionManager{svc: svc, store: store}
}

// Login inicia sesión. Pasa por Autenticando mientras valida; si durante la
// validación se lanza otro login, el resultado de este se descarta con
// ErrSuperseded. El flag de carga nunca queda colgado: éxito o fallo siempre
// cierran la transición.
func (m *SessionManager) Login(username, password string) (Snapshot, error) {
	m.mu.Lock()
	m.gen++
	g := m.gen
	m.snap = transition(m.snap, evStart{})
	m.mu.Unlock()

	out, err := m.svc.Login(dto.LoginRequest{Username: username, Password: password})

	m.mu.Lock()
	defer m.mu.Unlock()
	if g != m.gen {
		// Un login más reciente ya decidió el estado: descartar este resultado.
		return m.snapshotLocked(), ErrSuperseded
	}
	if err != nil {
		m.snap = transition(m.snap, evFailure{msg: err.Error()})
		m.token = ""
		m.refreshToken = ""
		return m.snapshotLocked(), err
	}
	user := out.User
	m.snap = transition(m.snap, evSuccess{user: &user, permissions: out.Permissions})
	m.token = out.Token
	m.refreshToken = out.RefreshToken
	m.persistLocked()
	return m.snapshotLocked(), nil
}

// Logout limpia el estado local primero y luego, best-effort, la sesión
// persistida y la revocación remota. Siempre termina en NoAutenticado.
func (m *SessionManager) Logout() {
	m.mu.Lock()
	rt := m.refreshToken
	m.snap = transition(m.snap, evLogout{})
	m.token = ""
	m.refreshToken = ""
	m.mu.Unlock()

	_ = m.store.Clear()
	if rt != "" {
		_ = m.svc.Logout(rt)
	}
}

// Restore repuebla la sesión desde el registro persistido, sin tocar red.
// Registro ausente o malformado: queda NoAutenticado sin error visible.
func (m *SessionManager) Restore() {
	rec, err := m.store.Load()
	if err != nil || rec == nil {
		if err != nil {
			_ = m.store.Clear()
		}
		return
	}
	if rec.User == nil || rec.Token == "" {
		_ = m.store.Clear()
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = transition(m.snap, evSuccess{user: rec.User, permissions: rec.Permissions})
	m.token = rec.Token
	m.refreshToken = rec.RefreshToken
}

// HasPermission responde si la sesión actual otorga la capacidad
// (admin siempre puede). Sin sesión autenticada: false.
func (m *SessionManager) HasPermission(capability string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snap.State != StateAuthenticated || m.snap.User == nil {
		return false
	}
	return access.Can(access.Role(m.snap.User.Role), m.snap.Permissions, capability)
}

// AccessToken devuelve un access token vigente. Si el actual venció, hace un
// único intento silencioso de refresh; si falla, fuerza logout y retorna
// ErrTokenExpired.
func (m *SessionManager) AccessToken() (string, error) {
	m.mu.Lock()
	token := m.token
	rt := m.refreshToken
	m.mu.Unlock()

	if token == "" {
		return "", domain.ErrTokenExpired
	}
	_, err := m.svc.VerifyToken(token)
	if err == nil {
		return token, nil
	}
	if !errors.Is(err, domain.ErrTokenExpired) || rt == "" {
		m.Logout()
		return "", domain.ErrTokenExpired
	}

	out, err := m.svc.Refresh(rt)
	if err != nil {
		m.Logout()
		return "", domain.ErrTokenExpired
	}
	m.mu.Lock()
	m.token = out.Access
	m.refreshToken = out.Refresh
	m.persistLocked()
	m.mu.Unlock()
	return out.Access, nil
}

// Snapshot devuelve una copia del estado actual.
func (m *SessionManager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *SessionManager) snapshotLocked() Snapshot {
	out := m.snap
	if m.snap.Permissions != nil {
		out.Permissions = make([]string, len(m.snap.Permissions))
		copy(out.Permissions, m.snap.Permissions)
	}
	return out
}

// persistLocked guarda el registro de sesión; best-effort (un fallo de disco
// no invalida la sesión en memoria).
func (m *SessionManager) persistLocked() {
	if m.snap.State != StateAuthenticated || m.snap.User == nil {
		return
	}
	_ = m.store.Save(PersistedSession{
		User:         m.snap.User,
		Permissions:  m.snap.Permissions,
		Token:        m.token,
		RefreshToken: m.refreshToken,
	})
}
