package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/econoarena/inventario-api/internal/domain/access"
)

// Admin pasa cualquier verificación, incluso con lista de permisos vacía.
func TestCan_AdminBypassTotal(t *testing.T) {
	assert.True(t, access.Can(access.RoleAdmin, nil, access.CapManageUsers))
	assert.True(t, access.Can(access.RoleAdmin, []string{}, "capacidad_inexistente"))
}

func TestCan_OperadorSoloSusPermisos(t *testing.T) {
	perms := access.DefaultPermissions(access.RoleOperator)

	assert.True(t, access.Can(access.RoleOperator, perms, access.CapCreate))
	assert.True(t, access.Can(access.RoleOperator, perms, access.CapUpdate))
	assert.False(t, access.Can(access.RoleOperator, perms, access.CapManageUsers),
		"operator no debe poder administrar usuarios")
	assert.False(t, access.Can(access.RoleOperator, perms, access.CapDelete))
}

func TestCan_ViewerSoloLectura(t *testing.T) {
	perms := access.DefaultPermissions(access.RoleViewer)

	assert.True(t, access.Can(access.RoleViewer, perms, access.CapRead))
	assert.False(t, access.Can(access.RoleViewer, perms, access.CapCreate))
}

func TestDefaultPermissions_DevuelveCopia(t *testing.T) {
	a := access.DefaultPermissions(access.RoleViewer)
	a[0] = "mutado"
	b := access.DefaultPermissions(access.RoleViewer)
	assert.Equal(t, access.CapRead, b[0], "mutar la copia no debe afectar la tabla")
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, access.RoleAdmin.Valid())
	assert.True(t, access.RoleOperator.Valid())
	assert.True(t, access.RoleViewer.Valid())
	assert.False(t, access.Role("bodeguero").Valid())
	assert.False(t, access.Role("").Valid())
}
