package usecase

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/econoarena/inventario-api/internal/application/dto"
	"github.com/econoarena/inventario-api/internal/domain/entity"
	"github.com/econoarena/inventario-api/internal/domain/repository"
)

// ReportGenerator puerto del generador de reportes en PDF.
type ReportGenerator interface {
	InventoryReport(data dto.InventoryReportData) ([]byte, error)
	MovementsReport(data dto.MovementsReportData) ([]byte, error)
}

// ReportUseCase arma los datos de los reportes y delega el PDF al generador.
type ReportUseCase struct {
	products  repository.ProductRepository
	movements repository.MovementRepository
	generator ReportGenerator
	log       zerolog.Logger
}

// NewReportUseCase construye el caso de uso de reportes.
func NewReportUseCase(products repository.ProductRepository, movements repository.MovementRepository, generator ReportGenerator, log zerolog.Logger) *ReportUseCase {
	return &ReportUseCase{products: products, movements: movements, generator: generator, log: log}
}

// InventoryPDF genera el reporte de inventario completo.
func (uc *ReportUseCase) InventoryPDF(generatedBy string) ([]byte, error) {
	products, err := uc.products.List()
	if err != nil {
		return nil, err
	}

	data := dto.InventoryReportData{
		GeneratedAt:   time.Now(),
		GeneratedBy:   generatedBy,
		TotalProducts: len(products),
		TotalValue:    decimal.Zero,
	}
	data.Products = make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		data.Products = append(data.Products, *dto.ToProductResponse(p))
		data.TotalStock += p.Stock
		data.TotalValue = data.TotalValue.Add(p.TotalValue())
		if p.LowStock() {
			data.LowStockCount++
		}
	}

	pdf, err := uc.generator.InventoryReport(data)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int("products", len(products)).Msg("reporte de inventario generado")
	return pdf, nil
}

// MovementsPDF genera el reporte de movimientos del rango [from, to).
// Rango vacío: últimos 30 días.
func (uc *ReportUseCase) MovementsPDF(generatedBy string, from, to time.Time) ([]byte, error) {
	if from.IsZero() || to.IsZero() {
		to = time.Now()
		from = to.AddDate(0, 0, -30)
	}
	movements, err := uc.movements.ListByDateRange(from, to)
	if err != nil {
		return nil, err
	}

	data := dto.MovementsReportData{
		GeneratedAt: time.Now(),
		GeneratedBy: generatedBy,
		From:        from,
		To:          to,
	}
	data.Movements = make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		data.Movements = append(data.Movements, *dto.ToMovementResponse(m))
		switch m.Type {
		case entity.MovementTypeEntrada:
			data.Entries++
		case entity.MovementTypeSalida:
			data.Exits++
		}
	}

	pdf, err := uc.generator.MovementsReport(data)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int("movements", len(movements)).Msg("reporte de movimientos generado")
	return pdf, nil
}
