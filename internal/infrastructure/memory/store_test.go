package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/econoarena/inventario-api/internal/domain/entity"
	"github.com/econoarena/inventario-api/internal/domain/repository"
	"github.com/econoarena/inventario-api/internal/infrastructure/memory"
)

func newSeededStore(t *testing.T) *memory.Store {
	t.Helper()
	s := memory.NewStore()
	require.NoError(t, memory.Seed(s))
	return s
}

func TestSeed_CargaCompleta(t *testing.T) {
	s := newSeededStore(t)

	products, err := memory.NewProductRepository(s).List()
	require.NoError(t, err)
	assert.Len(t, products, 12)

	users, err := memory.NewUserRepository(s).List()
	require.NoError(t, err)
	assert.Len(t, users, 4)

	movements, err := memory.NewMovementRepository(s).List()
	require.NoError(t, err)
	assert.Len(t, movements, 5)

	admin, err := memory.NewUserRepository(s).FindByUsername("admin")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.True(t, admin.IsActive)

	// la cuenta de demostración deshabilitada viene inactiva
	almacenero, err := memory.NewUserRepository(s).FindByUsername("almacenero")
	require.NoError(t, err)
	require.NotNil(t, almacenero)
	assert.False(t, almacenero.IsActive)
}

// Si fn falla a mitad de camino, el stock ya escrito se revierte y la
// bitácora no conserva el asiento.
func TestTxRunner_RollbackCompleto(t *testing.T) {
	s := newSeededStore(t)
	runner := memory.NewTxRunner(s)
	productRepo := memory.NewProductRepository(s)

	before, err := productRepo.GetByID(1)
	require.NoError(t, err)

	boom := errors.New("fallo simulado")
	err = runner.Run(context.Background(), func(movements repository.MovementRepository, products repository.ProductRepository) error {
		if err := products.UpdateStock(1, 0); err != nil {
			return err
		}
		if err := movements.Create(&entity.Movement{ProductID: 1, Type: entity.MovementTypeSalida, Quantity: before.Stock}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	after, err := productRepo.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, before.Stock, after.Stock, "el stock vuelve al valor previo")

	movements, err := memory.NewMovementRepository(s).List()
	require.NoError(t, err)
	assert.Len(t, movements, 5, "la bitácora no crece en una transacción fallida")
}

func TestTxRunner_CommitAplicaTodo(t *testing.T) {
	s := newSeededStore(t)
	runner := memory.NewTxRunner(s)

	err := runner.Run(context.Background(), func(movements repository.MovementRepository, products repository.ProductRepository) error {
		if err := products.UpdateStock(2, 75); err != nil {
			return err
		}
		return movements.Create(&entity.Movement{ProductID: 2, Type: entity.MovementTypeSalida, Quantity: 5})
	})
	require.NoError(t, err)

	p, err := memory.NewProductRepository(s).GetByID(2)
	require.NoError(t, err)
	assert.Equal(t, 75, p.Stock)

	movements, err := memory.NewMovementRepository(s).List()
	require.NoError(t, err)
	require.Len(t, movements, 6)
	assert.NotZero(t, movements[5].ID)
}

// Las lecturas devuelven copias: mutar el resultado no toca el store.
func TestRepos_DevuelvenCopias(t *testing.T) {
	s := newSeededStore(t)
	repo := memory.NewProductRepository(s)

	p, err := repo.GetByID(1)
	require.NoError(t, err)
	p.Stock = -999
	p.Value = decimal.RequireFromString("0.01")

	again, err := repo.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, 120, again.Stock)
}
