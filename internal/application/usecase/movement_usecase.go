package usecase

import (
	"strings"
	"time"

	"github.com/econoarena/inventario-api/internal/application/dto"
	"github.com/econoarena/inventario-api/internal/application/listquery"
	"github.com/econoarena/inventario-api/internal/domain/entity"
	"github.com/econoarena/inventario-api/internal/domain/repository"
)

var movementSorters = map[string]func(a, b *entity.Movement) int{
	"date":     func(a, b *entity.Movement) int { return a.Date.Compare(b.Date) },
	"product":  func(a, b *entity.Movement) int { return strings.Compare(listquery.Normalize(a.ProductName), listquery.Normalize(b.ProductName)) },
	"type":     func(a, b *entity.Movement) int { return strings.Compare(a.Type, b.Type) },
	"quantity": func(a, b *entity.Movement) int { return a.Quantity - b.Quantity },
	"user":     func(a, b *entity.Movement) int { return strings.Compare(listquery.Normalize(a.UserName), listquery.Normalize(b.UserName)) },
}

// MovementUseCase consultas sobre la bitácora de movimientos.
type MovementUseCase struct {
	repo repository.MovementRepository
}

// NewMovementUseCase construye el caso de uso de consulta de movimientos.
func NewMovementUseCase(repo repository.MovementRepository) *MovementUseCase {
	return &MovementUseCase{repo: repo}
}

// List busca, filtra por tipo (Entrada/Salida), ordena y pagina.
// Sin clave de orden explícita lista del más reciente al más antiguo.
func (uc *MovementUseCase) List(q dto.ListQuery) (*dto.MovementListResponse, error) {
	q.DefaultPage()
	if q.SortKey == "" {
		q.SortKey = "date"
		q.Dir = "desc"
	}
	movements, err := uc.repo.List()
	if err != nil {
		return nil, err
	}

	result, err := listquery.Apply(movements, listquery.Query{
		Term:    q.Term,
		Filter:  q.Filter,
		SortKey: q.SortKey,
		Desc:    q.Dir == "desc",
		Page:    q.Page,
		Size:    q.Size,
	}, listquery.Options[*entity.Movement]{
		SearchFields: func(m *entity.Movement) []string {
			return []string{m.ProductName, m.UserName, m.Reason, m.Reference}
		},
		FilterField: func(m *entity.Movement) string { return m.Type },
		Sorters:     movementSorters,
	})
	if err != nil {
		return nil, err
	}

	items := make([]dto.MovementResponse, 0, len(result.Items))
	for _, m := range result.Items {
		items = append(items, *dto.ToMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page: dto.PageResponse{
			Page:       result.Page,
			Size:       q.Size,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	}, nil
}

// TodaySummary conteos de entradas y salidas del día en curso.
func (uc *MovementUseCase) TodaySummary() (*dto.MovementSummaryResponse, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	today, err := uc.repo.ListByDateRange(start, start.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	all, err := uc.repo.List()
	if err != nil {
		return nil, err
	}

	summary := &dto.MovementSummaryResponse{Total: len(all)}
	for _, m := range today {
		switch m.Type {
		case entity.MovementTypeEntrada:
			summary.EntriesToday++
		case entity.MovementTypeSalida:
			summary.ExitsToday++
		}
	}
	return summary, nil
}
