package memory

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/econoarena/inventario-api/internal/domain/access"
	"github.com/econoarena/inventario-api/internal/domain/entity"
)

type seedUser struct {
	username, email, first, last, password string
	role                                   access.Role
	active                                 bool
}

type seedProduct struct {
	sku, name, description string
	stock, minStock        int
	value                  string
	location, supplier     string
}

// Seed carga los datos de demostración: usuarios con sus roles, el catálogo
// de arenas para gatos y algunos movimientos recientes.
func Seed(s *Store) error {
	now := time.Now()

	users := []seedUser{
		{"admin", "admin@econoarena.com", "Eduardo", "Administrador", "admin123", access.RoleAdmin, true},
		{"operador", "operador@econoarena.com", "María", "Operadora", "operador123", access.RoleOperator, true},
		{"viewer", "viewer@econoarena.com", "Juan", "Visualizador", "viewer123", access.RoleViewer, true},
		{"almacenero", "almacen@econoarena.com", "Carlos", "Almacén", "almacen123", access.RoleOperator, false},
	}
	userRepo := NewUserRepository(s)
	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed usuario %s: %w", u.username, err)
		}
		if err := userRepo.Create(&entity.User{
			Username:     u.username,
			Email:        u.email,
			FirstName:    u.first,
			LastName:     u.last,
			PasswordHash: string(hash),
			Role:         u.role,
			IsActive:     u.active,
			Permissions:  access.DefaultPermissions(u.role),
			CreatedAt:    now.AddDate(0, -6, 0),
			UpdatedAt:    now.AddDate(0, -6, 0),
		}); err != nil {
			return err
		}
	}

	products := []seedProduct{
		{"AP-5KG-001", "Arena Perlada 5 kg", "Arena perlada absorbente, bolsa de 5 kg", 120, 30, "8.50", "Almacén Principal", "Distribuidora Mascotas SA"},
		{"AP-10KG-002", "Arena Perlada 10 kg", "Arena perlada absorbente, bolsa de 10 kg", 80, 20, "15.00", "Almacén Principal", "Distribuidora Mascotas SA"},
		{"AP-25KG-003", "Arena Perlada 25 kg", "Arena perlada absorbente, saco de 25 kg", 40, 10, "35.00", "Almacén Principal", "Distribuidora Mascotas SA"},
		{"AP-50KG-004", "Arena Perlada 50 kg", "Arena perlada absorbente, saco de 50 kg", 15, 5, "65.00", "Almacén Principal", "Distribuidora Mascotas SA"},
		{"AF-5KG-005", "Arena Fina 5 kg", "Arena fina aglomerante, bolsa de 5 kg", 150, 40, "7.00", "Almacén Principal", "Suministros Felinos Ltda"},
		{"AF-10KG-006", "Arena Fina 10 kg", "Arena fina aglomerante, bolsa de 10 kg", 90, 25, "12.50", "Almacén Principal", "Suministros Felinos Ltda"},
		{"AF-25KG-007", "Arena Fina 25 kg", "Arena fina aglomerante, saco de 25 kg", 50, 15, "30.00", "Almacén Principal", "Suministros Felinos Ltda"},
		{"AF-50KG-008", "Arena Fina 50 kg", "Arena fina aglomerante, saco de 50 kg", 20, 8, "55.00", "Almacén Principal", "Suministros Felinos Ltda"},
		{"AG-5KG-009", "Arena Granulada 5 kg", "Arena granulada gruesa, bolsa de 5 kg", 100, 25, "7.50", "Almacén Secundario", "Productos Animales SA"},
		{"AG-10KG-010", "Arena Granulada 10 kg", "Arena granulada gruesa, bolsa de 10 kg", 70, 18, "13.50", "Almacén Secundario", "Productos Animales SA"},
		{"AG-25KG-011", "Arena Granulada 25 kg", "Arena granulada gruesa, saco de 25 kg", 30, 8, "32.00", "Almacén Secundario", "Productos Animales SA"},
		{"AG-50KG-012", "Arena Granulada 50 kg", "Arena granulada gruesa, saco de 50 kg", 10, 3, "60.00", "Almacén Secundario", "Productos Animales SA"},
	}
	productRepo := NewProductRepository(s)
	ids := make(map[string]int64, len(products))
	for _, p := range products {
		product := &entity.Product{
			SKU:         p.sku,
			Name:        p.name,
			Description: p.description,
			Category:    "Arena para Gatos",
			Location:    p.location,
			Stock:       p.stock,
			MinStock:    p.minStock,
			Value:       decimal.RequireFromString(p.value),
			Supplier:    p.supplier,
			CreatedAt:   now.AddDate(0, -3, 0),
			UpdatedAt:   now.AddDate(0, 0, -7),
		}
		if err := productRepo.Create(product); err != nil {
			return err
		}
		ids[p.sku] = product.ID
	}

	movements := []*entity.Movement{
		{Date: now.Add(-2 * time.Hour), ProductID: ids["AP-10KG-002"], ProductName: "Arena Perlada 10 kg", Type: entity.MovementTypeSalida, Quantity: 5, UserID: 1, UserName: "Eduardo Administrador", Reason: "Venta", Reference: "VEN-2024-001"},
		{Date: now.Add(-26 * time.Hour), ProductID: ids["AF-5KG-005"], ProductName: "Arena Fina 5 kg", Type: entity.MovementTypeEntrada, Quantity: 50, UserID: 2, UserName: "María Operadora", Reason: "Compra", Reference: "COM-2024-015"},
		{Date: now.Add(-30 * time.Hour), ProductID: ids["AG-25KG-011"], ProductName: "Arena Granulada 25 kg", Type: entity.MovementTypeSalida, Quantity: 2, UserID: 3, UserName: "Juan Visualizador", Reason: "Venta", Reference: "VEN-2024-002"},
		{Date: now.Add(-50 * time.Hour), ProductID: ids["AP-50KG-004"], ProductName: "Arena Perlada 50 kg", Type: entity.MovementTypeSalida, Quantity: 1, UserID: 2, UserName: "María Operadora", Reason: "Venta", Reference: "VEN-2024-003"},
		{Date: now.Add(-72 * time.Hour), ProductID: ids["AF-10KG-006"], ProductName: "Arena Fina 10 kg", Type: entity.MovementTypeEntrada, Quantity: 30, UserID: 2, UserName: "María Operadora", Reason: "Compra", Reference: "COM-2024-014"},
	}
	movementRepo := NewMovementRepository(s)
	for _, m := range movements {
		if err := movementRepo.Create(m); err != nil {
			return err
		}
	}
	return nil
}
