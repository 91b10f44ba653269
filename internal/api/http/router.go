package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/talent-marketplace/internal/api/http/handlers"
	"github.com/spec-kit/talent-marketplace/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Jobs           *handlers.JobsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Post("/password/reset/request", cfg.Users.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Users.ConfirmPasswordReset)
	authGroup.Post("/password/change", cfg.AuthMiddleware.Handle, auth.RequireAuth(), cfg.Users.ChangePassword)

	users := app.Group("/users")
	users.Get("/me", cfg.AuthMiddleware.Handle, auth.RequireAuth(), cfg.Users.GetMe)
	users.Put("/me", cfg.AuthMiddleware.Handle, auth.RequireAuth(), cfg.Users.UpdateMe)
	users.Delete("/me", cfg.AuthMiddleware.Handle, auth.RequireAuth(), cfg.Users.DeleteMe)
	users.Get("/:id", cfg.Users.GetUser)

	jobs := app.Group("/jobs")
	jobs.Get("/", cfg.AuthMiddleware.HandleOptional, cfg.Jobs.ListJobs)
	jobs.Get("/:id", cfg.AuthMiddleware.HandleOptional, cfg.Jobs.GetJob)

	jobsAuth := jobs.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuth())
	jobsAuth.Post("/", cfg.Jobs.CreateJob)
	jobsAuth.Put("/:id", cfg.Jobs.UpdateJob)
	jobsAuth.Delete("/:id", cfg.Jobs.DeleteJob)
	jobsAuth.Post("/:id/apply", cfg.Jobs.Apply)
	jobsAuth.Put("/:id/applicants/:applicantId/accept", cfg.Jobs.AcceptApplicant)
	jobsAuth.Put("/:id/applicants/:applicantId/reject", cfg.Jobs.RejectApplicant)
	jobsAuth.Put("/:id/complete", cfg.Jobs.CompleteJob)
	jobsAuth.Put("/:id/cancel", cfg.Jobs.CancelJob)
}
