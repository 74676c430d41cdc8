package routes

import (
	"classhub/backend/config"
	"classhub/backend/controllers"
	"classhub/backend/middleware"
	"classhub/backend/storage"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, store storage.Store) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(db, cfg)

	// User routes
	app.Get("/api/user/profile", authMiddleware, authController.GetProfile)
	app.Put("/api/user/profile", authMiddleware, authController.UpdateProfile)

	// Program routes
	programsController := controllers.NewProgramsController(db)
	assignmentsController := controllers.NewAssignmentsController(db)
	gradesController := controllers.NewGradesController(db)
	programs := app.Group("/api/programs", authMiddleware)
	programs.Post("/", programsController.Create)
	programs.Get("/", programsController.List)
	programs.Get("/:id", programsController.Detail)
	programs.Delete("/:id", programsController.Delete)
	programs.Post("/:id/enrollments", programsController.Enroll)
	programs.Delete("/:id/enrollments/:participantId", programsController.Unenroll)
	programs.Post("/:id/assignments", assignmentsController.Create)
	programs.Get("/:id/assignments", assignmentsController.List)
	programs.Get("/:id/grades", gradesController.ProgramGrades)

	// Assignment routes
	submissionsController := controllers.NewSubmissionsController(db, store)
	assignments := app.Group("/api/assignments", authMiddleware)
	assignments.Get("/:id", assignmentsController.Get)
	assignments.Put("/:id", assignmentsController.Update)
	assignments.Delete("/:id", assignmentsController.Delete)
	assignments.Post("/:id/submissions", submissionsController.Submit)
	assignments.Get("/:id/submissions", submissionsController.ListForAssignment)
	assignments.Get("/:id/submissions/own", submissionsController.Own)
	assignments.Post("/:id/grades", gradesController.Upsert)

	// Grade and artifact routes
	app.Get("/api/grades", authMiddleware, gradesController.OwnGrades)
	app.Get("/api/submissions/:id/artifact", authMiddleware, submissionsController.DownloadArtifact)

	// Notification routes
	notificationsController := controllers.NewNotificationsController(db)
	app.Get("/api/notifications", authMiddleware, notificationsController.List)
	app.Get("/api/notifications/unread_count", authMiddleware, notificationsController.UnreadCount)
}
