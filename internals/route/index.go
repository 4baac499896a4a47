// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	searchRoute "tutorhub_backend/internals/features/search/route"
	tutorRoute "tutorhub_backend/internals/features/tutors/route"
	middlewares "tutorhub_backend/internals/middlewares"
	routeDetails "tutorhub_backend/internals/route/details"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// ===================== API =====================
	log.Println("[INFO] Setting up API group...")
	api := app.Group("/api",
		middlewares.GlobalRateLimiter(),
	)

	log.Println("[INFO] Setting up TutorRoutes...")
	tutorRoute.TutorRoutes(api, db, middlewares.WriteRateLimiter())

	log.Println("[INFO] Setting up SearchRoutes...")
	searchRoute.SearchRoutes(api)

	// ===================== PAGES =====================
	log.Println("[INFO] Setting up PageRoutes...")
	routeDetails.PageRoutes(app, db)
}
