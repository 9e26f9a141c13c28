package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeEntrada = "Entrada"
	MovementTypeSalida  = "Salida"
)

// ValidMovementType indica si el tipo pertenece al conjunto conocido.
func ValidMovementType(t string) bool {
	return t == MovementTypeEntrada || t == MovementTypeSalida
}

// Movement representa un ajuste registrado de stock (log append-only,
// inmutable una vez creado).
type Movement struct {
	ID          int64
	Date        time.Time
	ProductID   int64
	ProductName string
	Type        string // Entrada | Salida
	Quantity    int    // siempre positivo; el tipo define el signo
	UserID      int64
	UserName    string
	Reason      string
	Notes       string
	Reference   string
}
