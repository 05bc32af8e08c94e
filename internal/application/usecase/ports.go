package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/biblioteca-api/internal/domain/entity"
)

// CatalogReportGenerator puerto de generación del reporte PDF del catálogo
// (implementado en infrastructure/pdf con Maroto).
type CatalogReportGenerator interface {
	GenerateCatalogReport(ctx context.Context, items []*entity.BookWithStats, generatedAt time.Time) ([]byte, error)
}
