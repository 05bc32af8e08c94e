package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/biblioteca-api/internal/domain/repository"
)

// reportMaxBooks tope de filas del reporte (una página A4 por ~40 filas).
const reportMaxBooks = 500

// ReportUseCase genera el reporte PDF del catálogo para administración:
// libros con conteo y promedio de rating del feedback aprobado.
type ReportUseCase struct {
	bookRepo repository.BookRepository
	gen      CatalogReportGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(bookRepo repository.BookRepository, gen CatalogReportGenerator) *ReportUseCase {
	return &ReportUseCase{bookRepo: bookRepo, gen: gen}
}

// CatalogPDF devuelve los bytes del PDF con el catálogo completo.
func (uc *ReportUseCase) CatalogPDF(ctx context.Context) ([]byte, error) {
	rows, _, err := uc.bookRepo.List(repository.BookFilter{}, reportMaxBooks, 0)
	if err != nil {
		return nil, err
	}
	return uc.gen.GenerateCatalogReport(ctx, rows, time.Now())
}
