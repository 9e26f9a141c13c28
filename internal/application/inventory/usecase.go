package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/econoarena/inventario-api/internal/application/dto"
	"github.com/econoarena/inventario-api/internal/domain"
	"github.com/econoarena/inventario-api/internal/domain/entity"
	"github.com/econoarena/inventario-api/internal/domain/repository"
)

// RegisterMovementUseCase registra entradas y salidas de stock. El ajuste del
// producto y el asiento en la bitácora de movimientos ocurren en la misma
// transacción: nunca queda estado parcial.
type RegisterMovementUseCase struct {
	tx       TxRunner
	products repository.ProductRepository
	log      zerolog.Logger
}

// NewRegisterMovementUseCase construye el caso de uso de registro de movimientos.
func NewRegisterMovementUseCase(tx TxRunner, products repository.ProductRepository, log zerolog.Logger) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{tx: tx, products: products, log: log}
}

// Register valida y aplica un movimiento. Orden de validación: producto
// existente, tipo válido, cantidad positiva y, para salidas, stock suficiente.
// Una salida mayor al disponible falla con InsufficientStockError sin tocar
// ni el stock ni la bitácora.
func (uc *RegisterMovementUseCase) Register(ctx context.Context, userID int64, userName string, in dto.RegisterMovementRequest) (*entity.Movement, error) {
	product, err := uc.products.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrUnknownProduct
	}
	if !entity.ValidMovementType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	reference := strings.TrimSpace(in.Reference)
	if reference == "" {
		reference = newReference()
	}

	var movement *entity.Movement
	err = uc.tx.Run(ctx, func(movements repository.MovementRepository, products repository.ProductRepository) error {
		p, err := products.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrUnknownProduct
		}

		stock := p.Stock
		switch in.Type {
		case entity.MovementTypeEntrada:
			stock += in.Quantity
		case entity.MovementTypeSalida:
			if in.Quantity > p.Stock {
				return &domain.InsufficientStockError{Available: p.Stock}
			}
			stock -= in.Quantity
		}

		if err := products.UpdateStock(p.ID, stock); err != nil {
			return err
		}

		m := &entity.Movement{
			Date:        time.Now(),
			ProductID:   p.ID,
			ProductName: p.Name,
			Type:        in.Type,
			Quantity:    in.Quantity,
			UserID:      userID,
			UserName:    userName,
			Reason:      in.Reason,
			Notes:       in.Notes,
			Reference:   reference,
		}
		if err := movements.Create(m); err != nil {
			return err
		}
		movement = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Int64("product_id", movement.ProductID).
		Str("type", movement.Type).
		Int("quantity", movement.Quantity).
		Str("reference", movement.Reference).
		Msg("movimiento registrado")
	return movement, nil
}

// newReference genera una referencia corta tipo MOV-3F2A9C1B.
func newReference() string {
	id := uuid.New().String()
	return fmt.Sprintf("MOV-%s", strings.ToUpper(id[:8]))
}
