package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/auth"
	"github.com/jhoicas/Taller-api/internal/application/inventory"
	"github.com/jhoicas/Taller-api/internal/application/jobs"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	JobsUC      *jobs.UseCase
	InventoryUC *inventory.UseCase
	ManagerUC   *usecase.ManagerUseCase
	SettingsUC  *usecase.SettingsUseCase
	FeedbackUC  *usecase.FeedbackUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Mecánico: ciclo de vida de sus citas
	mechanic := protected.Group("/mechanic", RequireCapability(entity.CapWorkJobs))
	jobHandler := NewJobHandler(deps.JobsUC)
	mechanic.Get("/jobs", jobHandler.ListMyJobs)
	mechanic.Get("/jobs/:id", jobHandler.GetJob)
	mechanic.Put("/jobs/:id/start", jobHandler.Start)
	mechanic.Post("/jobs/:id/parts", jobHandler.AddPart)
	mechanic.Post("/jobs/:id/labor", jobHandler.AddLabor)
	mechanic.Put("/jobs/:id/complete", jobHandler.Complete)
	mechanic.Get("/stats", jobHandler.Stats)

	// Manager: plantel, asignación y tablero
	manager := protected.Group("/manager", RequireCapability(entity.CapAssignJobs))
	managerHandler := NewManagerHandler(deps.JobsUC, deps.ManagerUC, deps.FeedbackUC)
	manager.Get("/mechanics", managerHandler.ListMechanics)
	manager.Post("/mechanics", managerHandler.CreateMechanic)
	manager.Get("/mechanics/ratings", managerHandler.MechanicRatings)
	manager.Get("/appointments/unassigned", managerHandler.ListUnassigned)
	manager.Put("/appointments/:id/assign", managerHandler.Assign)
	manager.Put("/appointments/:id/cancel", managerHandler.Cancel)
	manager.Get("/stats", managerHandler.Stats)
	manager.Get("/dashboard", managerHandler.Dashboard)
	manager.Get("/feedback", managerHandler.ListFeedback)

	// Inventario: lectura para manager y mecánico, escritura solo manager
	invGroup := protected.Group("/inventory", RequireCapability(entity.CapViewInventory))
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	invGroup.Get("/", inventoryHandler.List)
	invGroup.Get("/low-stock", RequireCapability(entity.CapManageInventory), inventoryHandler.ListLowStock)
	invGroup.Get("/:id", inventoryHandler.Get)
	invGroup.Post("/", RequireCapability(entity.CapManageInventory), inventoryHandler.Create)
	invGroup.Put("/:id", RequireCapability(entity.CapManageInventory), inventoryHandler.Update)
	invGroup.Delete("/:id", RequireCapability(entity.CapManageInventory), inventoryHandler.Delete)

	// Configuración del taller (solo manager)
	settings := protected.Group("/settings", RequireCapability(entity.CapManageSettings))
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	settings.Get("/", settingsHandler.Get)
	settings.Put("/", settingsHandler.Update)

	// Calificaciones (clientes)
	feedback := protected.Group("/feedback", RequireCapability(entity.CapSubmitFeedback))
	feedbackHandler := NewFeedbackHandler(deps.FeedbackUC)
	feedback.Post("/", feedbackHandler.Submit)
	feedback.Get("/mine", feedbackHandler.ListMine)
}
