package usecase

import (
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/econoarena/inventario-api/internal/application/dto"
	"github.com/econoarena/inventario-api/internal/application/listquery"
	"github.com/econoarena/inventario-api/internal/domain"
	"github.com/econoarena/inventario-api/internal/domain/entity"
	"github.com/econoarena/inventario-api/internal/domain/repository"
)

// productSorters claves de orden admitidas en el listado de productos.
var productSorters = map[string]func(a, b *entity.Product) int{
	"name":       func(a, b *entity.Product) int { return strings.Compare(listquery.Normalize(a.Name), listquery.Normalize(b.Name)) },
	"sku":        func(a, b *entity.Product) int { return strings.Compare(a.SKU, b.SKU) },
	"category":   func(a, b *entity.Product) int { return strings.Compare(listquery.Normalize(a.Category), listquery.Normalize(b.Category)) },
	"location":   func(a, b *entity.Product) int { return strings.Compare(listquery.Normalize(a.Location), listquery.Normalize(b.Location)) },
	"stock":      func(a, b *entity.Product) int { return a.Stock - b.Stock },
	"min_stock":  func(a, b *entity.Product) int { return a.MinStock - b.MinStock },
	"value":      func(a, b *entity.Product) int { return a.Value.Cmp(b.Value) },
	"created_at": func(a, b *entity.Product) int { return a.CreatedAt.Compare(b.CreatedAt) },
}

// ProductUseCase CRUD y listados de productos.
type ProductUseCase struct {
	repo repository.ProductRepository
	log  zerolog.Logger
}

// NewProductUseCase construye el caso de uso de productos.
func NewProductUseCase(repo repository.ProductRepository, log zerolog.Logger) *ProductUseCase {
	return &ProductUseCase{repo: repo, log: log}
}

// Create da de alta un producto. SKU duplicado: ErrDuplicate.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if strings.TrimSpace(in.SKU) == "" || strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Stock < 0 || in.MinStock < 0 || in.Value.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	p := &entity.Product{
		SKU:         strings.TrimSpace(in.SKU),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Category:    in.Category,
		Location:    in.Location,
		Stock:       in.Stock,
		MinStock:    in.MinStock,
		Value:       in.Value,
		Supplier:    in.Supplier,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(p); err != nil {
		return nil, err
	}
	uc.log.Info().Str("sku", p.SKU).Int64("id", p.ID).Msg("producto creado")
	return dto.ToProductResponse(p), nil
}

// GetByID obtiene un producto. Inexistente: ErrNotFound.
func (uc *ProductUseCase) GetByID(id int64) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToProductResponse(p), nil
}

// Update aplica los campos presentes. El stock editado directo no puede
// quedar negativo.
func (uc *ProductUseCase) Update(id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Location != nil {
		p.Location = *in.Location
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, domain.ErrInvalidInput
		}
		p.Stock = *in.Stock
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		p.MinStock = *in.MinStock
	}
	if in.Value != nil {
		if in.Value.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		p.Value = *in.Value
	}
	if in.Supplier != nil {
		p.Supplier = *in.Supplier
	}
	p.UpdatedAt = time.Now()

	if err := uc.repo.Update(p); err != nil {
		return nil, err
	}
	return dto.ToProductResponse(p), nil
}

// Delete elimina el producto. Inexistente: ErrNotFound.
func (uc *ProductUseCase) Delete(id int64) error {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.log.Info().Int64("id", id).Str("sku", p.SKU).Msg("producto eliminado")
	return nil
}

// List busca, filtra por categoría, ordena y pagina.
func (uc *ProductUseCase) List(q dto.ListQuery) (*dto.ProductListResponse, error) {
	q.DefaultPage()
	products, err := uc.repo.List()
	if err != nil {
		return nil, err
	}

	result, err := listquery.Apply(products, listquery.Query{
		Term:    q.Term,
		Filter:  q.Filter,
		SortKey: q.SortKey,
		Desc:    q.Dir == "desc",
		Page:    q.Page,
		Size:    q.Size,
	}, listquery.Options[*entity.Product]{
		SearchFields: func(p *entity.Product) []string {
			return []string{p.Name, p.SKU, p.Category, p.Location, p.Supplier}
		},
		FilterField: func(p *entity.Product) string { return p.Category },
		Sorters:     productSorters,
	})
	if err != nil {
		return nil, err
	}

	items := make([]dto.ProductResponse, 0, len(result.Items))
	for _, p := range result.Items {
		items = append(items, *dto.ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page: dto.PageResponse{
			Page:       result.Page,
			Size:       q.Size,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	}, nil
}

// LowStock devuelve los productos en o por debajo de su umbral mínimo.
func (uc *ProductUseCase) LowStock() ([]dto.ProductResponse, error) {
	products, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0)
	for _, p := range products {
		if p.LowStock() {
			out = append(out, *dto.ToProductResponse(p))
		}
	}
	return out, nil
}

// Categories devuelve las categorías distintas presentes (para el selector
// de filtros del front).
func (uc *ProductUseCase) Categories() ([]string, error) {
	products, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, p := range products {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out, nil
}
