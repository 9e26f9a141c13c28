package usecase

import (
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/econoarena/inventario-api/internal/application/dto"
	"github.com/econoarena/inventario-api/internal/application/listquery"
	"github.com/econoarena/inventario-api/internal/domain"
	"github.com/econoarena/inventario-api/internal/domain/access"
	"github.com/econoarena/inventario-api/internal/domain/entity"
	"github.com/econoarena/inventario-api/internal/domain/repository"
)

var userSorters = map[string]func(a, b *entity.User) int{
	"username":   func(a, b *entity.User) int { return strings.Compare(a.Username, b.Username) },
	"name":       func(a, b *entity.User) int { return strings.Compare(listquery.Normalize(a.FullName()), listquery.Normalize(b.FullName())) },
	"role":       func(a, b *entity.User) int { return strings.Compare(string(a.Role), string(b.Role)) },
	"created_at": func(a, b *entity.User) int { return a.CreatedAt.Compare(b.CreatedAt) },
}

// UserUseCase administración de usuarios (requiere manage_users en HTTP).
type UserUseCase struct {
	repo repository.UserRepository
	log  zerolog.Logger
}

// NewUserUseCase construye el caso de uso de usuarios.
func NewUserUseCase(repo repository.UserRepository, log zerolog.Logger) *UserUseCase {
	return &UserUseCase{repo: repo, log: log}
}

// Create da de alta un usuario con los permisos por defecto de su rol.
// Username duplicado: ErrDuplicate.
func (uc *UserUseCase) Create(in dto.CreateUserRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || len(in.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	role := access.Role(in.Role)
	if !role.Valid() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	u := &entity.User{
		Username:     username,
		Email:        strings.TrimSpace(in.Email),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
		Permissions:  access.DefaultPermissions(role),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(u); err != nil {
		return nil, err
	}
	uc.log.Info().Str("username", u.Username).Str("role", string(u.Role)).Msg("usuario creado")
	return dto.ToUserResponse(u), nil
}

// GetByID obtiene un usuario. Inexistente: ErrNotFound.
func (uc *UserUseCase) GetByID(id int64) (*dto.UserResponse, error) {
	u, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToUserResponse(u), nil
}

// Update aplica los campos presentes. Cambiar el rol reinicia los permisos
// a los por defecto del rol nuevo.
func (uc *UserUseCase) Update(id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	u, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}

	if in.Email != nil {
		u.Email = strings.TrimSpace(*in.Email)
	}
	if in.FirstName != nil {
		u.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		u.LastName = *in.LastName
	}
	if in.Role != nil {
		role := access.Role(*in.Role)
		if !role.Valid() {
			return nil, domain.ErrInvalidInput
		}
		if role != u.Role {
			u.Role = role
			u.Permissions = access.DefaultPermissions(role)
		}
	}
	u.UpdatedAt = time.Now()

	if err := uc.repo.Update(u); err != nil {
		return nil, err
	}
	return dto.ToUserResponse(u), nil
}

// SetActive habilita o deshabilita la cuenta. Una cuenta inactiva no puede
// iniciar sesión ni renovar tokens.
func (uc *UserUseCase) SetActive(id int64, active bool) (*dto.UserResponse, error) {
	u, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	u.IsActive = active
	u.UpdatedAt = time.Now()
	if err := uc.repo.Update(u); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("id", id).Bool("is_active", active).Msg("estado de usuario actualizado")
	return dto.ToUserResponse(u), nil
}

// List busca, filtra por rol, ordena y pagina.
func (uc *UserUseCase) List(q dto.ListQuery) (*dto.UserListResponse, error) {
	q.DefaultPage()
	users, err := uc.repo.List()
	if err != nil {
		return nil, err
	}

	result, err := listquery.Apply(users, listquery.Query{
		Term:    q.Term,
		Filter:  q.Filter,
		SortKey: q.SortKey,
		Desc:    q.Dir == "desc",
		Page:    q.Page,
		Size:    q.Size,
	}, listquery.Options[*entity.User]{
		SearchFields: func(u *entity.User) []string {
			return []string{u.Username, u.Email, u.FirstName, u.LastName}
		},
		FilterField: func(u *entity.User) string { return string(u.Role) },
		Sorters:     userSorters,
	})
	if err != nil {
		return nil, err
	}

	items := make([]dto.UserResponse, 0, len(result.Items))
	for _, u := range result.Items {
		items = append(items, *dto.ToUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page: dto.PageResponse{
			Page:       result.Page,
			Size:       q.Size,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	}, nil
}
