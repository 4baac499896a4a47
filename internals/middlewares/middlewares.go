package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"tutorhub_backend/internals/middlewares/logger"
	"tutorhub_backend/internals/middlewares/rolegate"
)

func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(rolegate.New())
}
