package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/econoarena/inventario-api/internal/application/dto"
	"github.com/econoarena/inventario-api/internal/application/inventory"
	"github.com/econoarena/inventario-api/internal/application/usecase"
	"github.com/econoarena/inventario-api/internal/domain"
	"github.com/econoarena/inventario-api/internal/domain/repository"
)

// MovementHandler registro y consulta de movimientos de stock.
type MovementHandler struct {
	register *inventory.RegisterMovementUseCase
	query    *usecase.MovementUseCase
	users    repository.UserRepository
}

// NewMovementHandler construye el handler de movimientos.
func NewMovementHandler(register *inventory.RegisterMovementUseCase, query *usecase.MovementUseCase, users repository.UserRepository) *MovementHandler {
	return &MovementHandler{register: register, query: query, users: users}
}

// Register godoc
// @Summary      Registrar entrada o salida de stock
// @Tags         movements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.RegisterMovementRequest  true  "movimiento a registrar"
// @Success      201  {object}  dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "stock insuficiente (incluye el disponible en el mensaje)"
// @Router       /api/movements [post]
func (h *MovementHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	// el asiento guarda el nombre visible del usuario, no solo el username
	userName := GetUsername(c)
	if u, err := h.users.GetByID(GetUserID(c)); err == nil && u != nil && u.FullName() != "" {
		userName = u.FullName()
	}

	m, err := h.register.Register(c.Context(), GetUserID(c), userName, in)
	if err != nil {
		var stockErr *domain.InsufficientStockError
		switch {
		case errors.As(err, &stockErr):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: stockErr.Error()})
		case errors.Is(err, domain.ErrUnknownProduct):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "UNKNOWN_PRODUCT", Message: "el producto no existe"})
		case errors.Is(err, domain.ErrInvalidQuantity):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "la cantidad debe ser mayor que cero"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo de movimiento desconocido (Entrada | Salida)"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(m))
}

// List godoc
// @Summary      Listar movimientos (búsqueda, filtro por tipo, orden y paginación)
// @Tags         movements
// @Produce      json
// @Security     BearerAuth
// @Param        q       query  string  false  "término de búsqueda"
// @Param        filter  query  string  false  "Entrada | Salida"
// @Param        sort    query  string  false  "date | product | type | quantity | user"
// @Param        dir     query  string  false  "asc | desc"
// @Param        page    query  int     false  "página 1-based"
// @Param        size    query  int     false  "tamaño de página (default 5)"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var q dto.ListQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de consulta inválidos"})
	}
	out, err := h.query.List(q)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidQuery) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "tamaño de página o clave de orden inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Conteos del día (entradas, salidas, total histórico)
// @Tags         movements
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.MovementSummaryResponse
// @Router       /api/movements/summary [get]
func (h *MovementHandler) Summary(c *fiber.Ctx) error {
	out, err := h.query.TodaySummary()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
