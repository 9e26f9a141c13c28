package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/econoarena/inventario-api/internal/application/auth"
	"github.com/econoarena/inventario-api/internal/application/dto"
	"github.com/econoarena/inventario-api/internal/infrastructure/session"
)

func TestFileStore_CicloCompleto(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := session.NewFileStore(path)

	// sin archivo: (nil, nil)
	rec, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, rec)

	saved := auth.PersistedSession{
		User:         &dto.UserResponse{ID: 1, Username: "admin", Role: "admin"},
		Permissions:  []string{"read", "create"},
		Token:        "access-token",
		RefreshToken: "refresh-token",
	}
	require.NoError(t, store.Save(saved))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), "el archivo de sesión es privado")

	rec, err = store.Load()
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "admin", rec.User.Username)
	assert.Equal(t, saved.Permissions, rec.Permissions)
	assert.Equal(t, "access-token", rec.Token)

	require.NoError(t, store.Clear())
	rec, err = store.Load()
	require.NoError(t, err)
	assert.Nil(t, rec)

	// Clear sobre archivo inexistente no es error
	require.NoError(t, store.Clear())
}

func TestFileStore_ArchivoCorrupto(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{no es json"), 0o600))

	store := session.NewFileStore(path)
	rec, err := store.Load()
	assert.Error(t, err, "el contenido ilegible se reporta para que el caller lo descarte")
	assert.Nil(t, rec)
}
