package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/biblioteca-api/internal/application/usecase"
)

// ReportHandler maneja la descarga del reporte PDF del catálogo (ADMIN).
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// CatalogPDF godoc
// @Summary      Descargar reporte PDF del catálogo
// @Tags         books
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/books/report/pdf [get]
func (h *ReportHandler) CatalogPDF(c *fiber.Ctx) error {
	pdf, err := h.uc.CatalogPDF(c.Context())
	if err != nil {
		return fail(c, err)
	}
	filename := fmt.Sprintf("catalogo-%s.pdf", time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
