// Package session persiste la sesión del cliente en un archivo JSON local,
// el equivalente al almacenamiento del navegador en la versión de escritorio.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/econoarena/inventario-api/internal/application/auth"
)

var _ auth.SessionStore = (*FileStore)(nil)

// FileStore guarda el registro de sesión en disco con permisos 0600.
type FileStore struct {
	path string
}

// NewFileStore crea el store sobre la ruta dada.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Save(rec auth.PersistedSession) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("serializar sesión: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("guardar sesión: %w", err)
	}
	return nil
}

// Load lee el registro persistido. Archivo ausente: (nil, nil).
// Contenido ilegible: error, para que el caller lo descarte.
func (s *FileStore) Load() (*auth.PersistedSession, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("leer sesión: %w", err)
	}
	var rec auth.PersistedSession
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("sesión malformada: %w", err)
	}
	return &rec, nil
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("eliminar sesión: %w", err)
	}
	return nil
}
