package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tutorhub_backend/internals/configs"
	tutorController "tutorhub_backend/internals/features/tutors/controller"
	authMw "tutorhub_backend/internals/middlewares/auth"
)

// TutorRoutes mounts the profile intake/publish/read pipeline under /api.
func TutorRoutes(api fiber.Router, db *gorm.DB, writeLimiter fiber.Handler) {
	tc := tutorController.NewTutorController(db, nil)

	// intake pipeline (write path)
	api.Post("/save-profile", writeLimiter, tc.SaveProfile)
	api.Post("/upload-image", writeLimiter, tc.UploadImage)

	// dashboard read needs the session token from the identity boundary
	api.Get("/my-profile",
		authMw.AuthJWT(authMw.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
		tc.GetMyProfile,
	)

	// public reads
	api.Get("/tutors", tc.ListTutors)
	api.Get("/tutor/:slug", tc.GetBySlug)
}
