package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/econoarena/inventario-api/internal/application/dto"
	"github.com/econoarena/inventario-api/internal/domain"
	"github.com/econoarena/inventario-api/internal/domain/repository"
	pkgjwt "github.com/econoarena/inventario-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// refreshTTL vigencia de los refresh tokens (de un solo uso).
const refreshTTL = 7 * 24 * time.Hour

type refreshEntry struct {
	userID    int64
	expiresAt time.Time
}

// AuthUseCase casos de uso de autenticación: login, refresh, logout, perfil
// y cambio de contraseña. El validador de credenciales compara contra el
// directorio fijo de usuarios con error uniforme (no revela si falló el
// usuario o la contraseña).
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig

	mu      sync.Mutex
	refresh map[string]refreshEntry
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		jwtCfg:   jwtCfg,
		refresh:  make(map[string]refreshEntry),
	}
}

// Login verifica username/password, actualiza last_login, genera el par de
// tokens y retorna usuario + permisos. Error uniforme ErrInvalidCredentials
// tanto para usuario inexistente como para contraseña incorrecta.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	if err := uc.userRepo.UpdateLastLogin(user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = &now

	token, err := pkgjwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, string(user.Role), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:        token,
		RefreshToken: uc.issueRefresh(user.ID),
		User:         *dto.ToUserResponse(user),
		Permissions:  user.Permissions,
	}, nil
}

// Refresh canjea un refresh token (un solo uso) por un par nuevo.
// Token desconocido, vencido o de un usuario inactivo: ErrTokenExpired.
func (uc *AuthUseCase) Refresh(refreshToken string) (*dto.RefreshResponse, error) {
	uc.mu.Lock()
	entry, ok := uc.refresh[refreshToken]
	if ok {
		delete(uc.refresh, refreshToken)
	}
	uc.mu.Unlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, domain.ErrTokenExpired
	}
	user, err := uc.userRepo.GetByID(entry.userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, domain.ErrTokenExpired
	}
	access, err := pkgjwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, string(user.Role), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.RefreshResponse{Access: access, Refresh: uc.issueRefresh(user.ID)}, nil
}

// Logout revoca el refresh token. Siempre retorna nil: el cierre de sesión
// local nunca depende del resultado remoto.
func (uc *AuthUseCase) Logout(refreshToken string) error {
	uc.mu.Lock()
	delete(uc.refresh, refreshToken)
	uc.mu.Unlock()
	return nil
}

// VerifyToken valida un access token. Vencido: ErrTokenExpired.
func (uc *AuthUseCase) VerifyToken(token string) (*pkgjwt.Claims, error) {
	claims, err := pkgjwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		if pkgjwt.IsExpired(err) {
			return nil, domain.ErrTokenExpired
		}
		return nil, err
	}
	return claims, nil
}

// Profile devuelve el usuario autenticado.
func (uc *AuthUseCase) Profile(userID int64) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToUserResponse(user), nil
}

// ChangePassword valida la contraseña actual y guarda la nueva (bcrypt).
func (uc *AuthUseCase) ChangePassword(userID int64, in dto.ChangePasswordRequest) error {
	if len(in.NewPassword) < 8 {
		return domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.OldPassword)); err != nil {
		return domain.ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	return uc.userRepo.Update(user)
}

func (uc *AuthUseCase) issueRefresh(userID int64) string {
	token := uuid.New().String()
	uc.mu.Lock()
	uc.refresh[token] = refreshEntry{userID: userID, expiresAt: time.Now().Add(refreshTTL)}
	uc.mu.Unlock()
	return token
}
