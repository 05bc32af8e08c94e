package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/biblioteca-api/internal/application/dto"
	"github.com/jhoicas/biblioteca-api/internal/application/feedback"
)

// FeedbackHandler maneja las peticiones HTTP del ciclo de vida del feedback.
// Quién puede mutar qué lo decide el motor (política de autorización); aquí
// solo se resuelve la identidad y se normalizan los query params.
type FeedbackHandler struct {
	uc *feedback.UseCase
}

// NewFeedbackHandler construye el handler.
func NewFeedbackHandler(uc *feedback.UseCase) *FeedbackHandler {
	return &FeedbackHandler{uc: uc}
}

// Create godoc
// @Summary      Enviar feedback de un libro
// @Tags         feedback
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFeedbackRequest  true  "Rating y comentario"
// @Success      201   {object}  dto.FeedbackResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/feedback [post]
func (h *FeedbackHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFeedbackRequest
	if err := c.BodyParser(&in); err != nil {
		return failWith(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
	}
	out, err := h.uc.Create(GetUserID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar todo el feedback con filtros (moderación)
// @Tags         feedback
// @Security     Bearer
// @Produce      json
// @Param        bookId      query  string  false  "Filtro por libro"
// @Param        userId      query  string  false  "Filtro por usuario"
// @Param        isApproved  query  bool    false  "Filtro por estado de aprobación"
// @Param        minRating   query  int     false  "Rating mínimo (1-5)"
// @Param        page        query  int     false  "Página"  default(1)
// @Param        limit       query  int     false  "Tamaño de página"  default(10)
// @Success      200         {object}  dto.FeedbackListResponse
// @Router       /api/feedback [get]
func (h *FeedbackHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(queryFeedback(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// GetBookFeedback godoc
// @Summary      Feedback aprobado de un libro (público)
// @Tags         feedback
// @Produce      json
// @Param        bookId     path   string  true   "ID del libro"
// @Param        minRating  query  int     false  "Rating mínimo (1-5)"
// @Param        page       query  int     false  "Página"  default(1)
// @Param        limit      query  int     false  "Tamaño de página"  default(10)
// @Success      200        {object}  dto.FeedbackListResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/feedback/book/{bookId} [get]
func (h *FeedbackHandler) GetBookFeedback(c *fiber.Ctx) error {
	out, err := h.uc.GetBookFeedback(c.Params("bookId"), queryFeedback(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// GetUserFeedback godoc
// @Summary      Feedback de un usuario
// @Tags         feedback
// @Security     Bearer
// @Produce      json
// @Param        userId  path   string  true   "ID del usuario"
// @Param        page    query  int     false  "Página"  default(1)
// @Param        limit   query  int     false  "Tamaño de página"  default(10)
// @Success      200     {object}  dto.FeedbackListResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/feedback/user/{userId} [get]
func (h *FeedbackHandler) GetUserFeedback(c *fiber.Ctx) error {
	out, err := h.uc.GetUserFeedback(c.Params("userId"), queryFeedback(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// MyFeedback godoc
// @Summary      Feedback del usuario autenticado
// @Tags         feedback
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "Página"  default(1)
// @Param        limit  query  int  false  "Tamaño de página"  default(10)
// @Success      200    {object}  dto.FeedbackListResponse
// @Router       /api/feedback/my-feedback [get]
func (h *FeedbackHandler) MyFeedback(c *fiber.Ctx) error {
	out, err := h.uc.GetUserFeedback(GetUserID(c), queryFeedback(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener feedback por ID
// @Tags         feedback
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del feedback"
// @Success      200  {object}  dto.FeedbackResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/feedback/{id} [get]
func (h *FeedbackHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar feedback (patch parcial bajo política)
// @Tags         feedback
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del feedback"
// @Param        body  body  dto.UpdateFeedbackRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.FeedbackResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/feedback/{id} [patch]
func (h *FeedbackHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateFeedbackRequest
	if err := c.BodyParser(&in); err != nil {
		return failWith(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
	}
	out, err := h.uc.Update(c.Params("id"), in, actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar feedback (dueño o admin)
// @Tags         feedback
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del feedback"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/feedback/{id} [delete]
func (h *FeedbackHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Remove(c.Params("id"), actor(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Feedback deleted successfully"})
}

// Approve godoc
// @Summary      Aprobar feedback (ADMIN)
// @Tags         feedback
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del feedback"
// @Success      200  {object}  dto.FeedbackResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/feedback/{id}/approve [patch]
func (h *FeedbackHandler) Approve(c *fiber.Ctx) error {
	out, err := h.uc.Approve(c.Params("id"), actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Reject godoc
// @Summary      Rechazar feedback: lo devuelve a pendiente (ADMIN)
// @Tags         feedback
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del feedback"
// @Success      200  {object}  dto.FeedbackResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/feedback/{id}/reject [patch]
func (h *FeedbackHandler) Reject(c *fiber.Ctx) error {
	out, err := h.uc.Reject(c.Params("id"), actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// queryFeedback normaliza los query params de listado; isApproved acepta
// booleano nativo o su serialización en string.
func queryFeedback(c *fiber.Ctx) dto.QueryFeedbackRequest {
	q := dto.QueryFeedbackRequest{
		BookID:     c.Query("bookId"),
		UserID:     c.Query("userId"),
		IsApproved: dto.ParseOptionalBool(c.Query("isApproved")),
		MinRating:  c.QueryInt("minRating", 0),
	}
	q.Page = c.QueryInt("page", 1)
	q.Limit = c.QueryInt("limit", 10)
	return q
}
