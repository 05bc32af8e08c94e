package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/biblioteca-api/internal/application/dto"
	"github.com/jhoicas/biblioteca-api/internal/application/usecase"
)

// BookHandler maneja las peticiones HTTP del catálogo. Las lecturas son
// públicas; las mutaciones exigen rol ADMIN (lo impone el router).
type BookHandler struct {
	uc *usecase.BookUseCase
}

// NewBookHandler construye el handler.
func NewBookHandler(uc *usecase.BookUseCase) *BookHandler {
	return &BookHandler{uc: uc}
}

// Create godoc
// @Summary      Crear libro
// @Tags         books
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBookRequest  true  "Datos del libro"
// @Success      201   {object}  dto.BookResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/books [post]
func (h *BookHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBookRequest
	if err := c.BodyParser(&in); err != nil {
		return failWith(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
	}
	if in.Title == "" || in.Author == "" || in.ISBN == "" {
		return failWith(c, fiber.StatusBadRequest, "VALIDATION", "title, author and isbn are required")
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener libro por ID
// @Tags         books
// @Produce      json
// @Param        id   path  string  true  "ID del libro"
// @Success      200  {object}  dto.BookResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/books/{id} [get]
func (h *BookHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar catálogo
// @Tags         books
// @Produce      json
// @Param        title   query  string  false  "Filtro contains por título"
// @Param        author  query  string  false  "Filtro contains por autor"
// @Param        isbn    query  string  false  "Filtro contains por ISBN"
// @Param        page    query  int     false  "Página"  default(1)
// @Param        limit   query  int     false  "Tamaño de página"  default(10)
// @Success      200     {object}  dto.BookListResponse
// @Router       /api/books [get]
func (h *BookHandler) List(c *fiber.Ctx) error {
	q := usecase.QueryBooks{
		Title:  c.Query("title"),
		Author: c.Query("author"),
		ISBN:   c.Query("isbn"),
	}
	q.Page = c.QueryInt("page", 1)
	q.Limit = c.QueryInt("limit", 10)
	out, err := h.uc.List(q)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar libro
// @Tags         books
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del libro"
// @Param        body  body  dto.UpdateBookRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.BookResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/books/{id} [patch]
func (h *BookHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateBookRequest
	if err := c.BodyParser(&in); err != nil {
		return failWith(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar libro (su feedback cae en cascada)
// @Tags         books
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del libro"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/books/{id} [delete]
func (h *BookHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Book deleted successfully"})
}
