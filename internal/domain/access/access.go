// Package access define los roles del sistema y el evaluador de permisos.
// Regla: admin pasa cualquier verificación; el resto depende de la lista de
// capacidades almacenada en el usuario.
package access

// Role es el rol cerrado de un usuario.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
	RoleViewer   Role = "viewer"
)

// Valid indica si el rol pertenece al conjunto cerrado.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOperator, RoleViewer:
		return true
	}
	return false
}

// Capacidades conocidas del sistema.
const (
	CapCreate       = "create"
	CapRead         = "read"
	CapUpdate       = "update"
	CapDelete       = "delete"
	CapManageUsers  = "manage_users"
	CapViewReports  = "view_reports"
	CapSystemConfig = "system_config"
)

// rolePermissions es la tabla de capacidades por rol.
var rolePermissions = map[Role][]string{
	RoleAdmin:    {CapCreate, CapRead, CapUpdate, CapDelete, CapManageUsers, CapViewReports, CapSystemConfig},
	RoleOperator: {CapCreate, CapRead, CapUpdate},
	RoleViewer:   {CapRead},
}

// DefaultPermissions devuelve una copia de las capacidades por defecto del rol.
func DefaultPermissions(r Role) []string {
	perms := rolePermissions[r]
	out := make([]string, len(perms))
	copy(out, perms)
	return out
}

// Can responde si el rol/permisos otorgan la capacidad. Admin siempre puede.
func Can(role Role, permissions []string, capability string) bool {
	if role == RoleAdmin {
		return true
	}
	for _, p := range permissions {
		if p == capability {
			return true
		}
	}
	return false
}
