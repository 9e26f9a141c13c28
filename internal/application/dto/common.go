package dto

// ListQuery parámetros de listado: búsqueda, filtro, orden y paginación.
type ListQuery struct {
	Term    string `query:"q"`
	Filter  string `query:"filter"` // categoría (productos) o tipo (movimientos)
	SortKey string `query:"sort"`
	Dir     string `query:"dir"` // asc | desc
	Page    int    `query:"page"`
	Size    int    `query:"size"`
}

// DefaultPage aplica valores por defecto si Page/Size vienen en cero.
func (q *ListQuery) DefaultPage() {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Size == 0 {
		q.Size = 5 // igual que las tablas del front
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Page       int `json:"page"`
	Size       int `json:"size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
