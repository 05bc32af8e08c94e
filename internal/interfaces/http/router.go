package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/biblioteca-api/internal/application/auth"
	"github.com/jhoicas/biblioteca-api/internal/application/feedback"
	"github.com/jhoicas/biblioteca-api/internal/application/usecase"
	"github.com/jhoicas/biblioteca-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	BookUC     *usecase.BookUseCase
	UserUC     *usecase.UserUseCase
	FeedbackUC *feedback.UseCase
	ReportUC   *usecase.ReportUseCase
	JWTSecret  string
}

// Router registra las rutas de la API. El orden importa: las rutas públicas
// y las específicas se registran antes que los wildcards protegidos.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authn := AuthMiddleware(deps.JWTSecret)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)

	// Books: lecturas públicas, mutaciones y reporte solo ADMIN
	books := api.Group("/books")
	bookHandler := NewBookHandler(deps.BookUC)
	reportHandler := NewReportHandler(deps.ReportUC)
	books.Get("/report/pdf", authn, adminOnly, reportHandler.CatalogPDF)
	books.Get("/", bookHandler.List)
	books.Get("/:id", bookHandler.GetByID)
	books.Post("/", authn, adminOnly, bookHandler.Create)
	books.Patch("/:id", authn, adminOnly, bookHandler.Update)
	books.Delete("/:id", authn, adminOnly, bookHandler.Delete)

	// Feedback: la lectura por libro es pública (solo aprobado); el resto
	// autenticado. La política fina de mutación vive dentro del motor.
	fb := api.Group("/feedback")
	feedbackHandler := NewFeedbackHandler(deps.FeedbackUC)
	fb.Get("/book/:bookId", feedbackHandler.GetBookFeedback)
	fb.Get("/my-feedback", authn, feedbackHandler.MyFeedback)
	fb.Get("/user/:userId", authn, feedbackHandler.GetUserFeedback)
	fb.Get("/", authn, adminOnly, feedbackHandler.List)
	fb.Post("/", authn, feedbackHandler.Create)
	fb.Get("/:id", authn, feedbackHandler.GetByID)
	fb.Patch("/:id/approve", authn, adminOnly, feedbackHandler.Approve)
	fb.Patch("/:id/reject", authn, adminOnly, feedbackHandler.Reject)
	fb.Patch("/:id", authn, feedbackHandler.Update)
	fb.Delete("/:id", authn, feedbackHandler.Delete)

	// Users (administración, todo ADMIN)
	users := api.Group("/users", authn, adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/stats", userHandler.Stats)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Patch("/:id/role", userHandler.ChangeRole)
	users.Patch("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
}
