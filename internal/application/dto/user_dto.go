package dto

// CreateUserRequest body para POST /api/users (requiere manage_users).
type CreateUserRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

// UpdateUserRequest body para PUT /api/users/:id (campos opcionales).
// Cambiar el rol reinicia los permisos a los del rol nuevo.
type UpdateUserRequest struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Role      *string `json:"role"`
}

// SetUserStatusRequest body para PATCH /api/users/:id/status.
type SetUserStatusRequest struct {
	IsActive bool `json:"is_active"`
}

// UserListResponse listado paginado de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
