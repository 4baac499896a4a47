package details

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tutorhub_backend/internals/configs"
	tutorController "tutorhub_backend/internals/features/tutors/controller"
	helper "tutorhub_backend/internals/helpers"
	authMw "tutorhub_backend/internals/middlewares/auth"
	"tutorhub_backend/internals/middlewares/rolegate"
)

/*
Navigation routes of the web app. The rolegate middleware (mounted
globally) already redirected anyone who should not be here, so these
handlers only serve page data. Sign-in/up stay stubs: the identity
provider owns those flows.
*/
func PageRoutes(app *fiber.App, db *gorm.DB) {
	tc := tutorController.NewTutorController(db, nil)

	app.Get("/", func(c *fiber.Ctx) error {
		return helper.JsonOK(c, "TutorHub", fiber.Map{
			"find":        "/find",
			"role_select": "/role-select",
		})
	})

	app.Get("/find", tc.ListTutors)
	app.Get("/tutor/:slug", tc.GetBySlug)

	app.Get("/role-select", func(c *fiber.Ctx) error {
		return helper.JsonOK(c, "Pick a role", fiber.Map{
			"roles": []string{rolegate.RoleStudent, rolegate.RoleTeacher},
		})
	})

	// The role cookie mirrors the identity provider's role attribute;
	// the role-select page writes it here after updating the provider.
	app.Post("/api/role", func(c *fiber.Ctx) error {
		var req struct {
			Role string `json:"role"`
		}
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid JSON body")
		}
		role := strings.TrimSpace(req.Role)
		if role != rolegate.RoleStudent && role != rolegate.RoleTeacher {
			return helper.JsonError(c, fiber.StatusBadRequest, "Role must be student or teacher")
		}
		c.Cookie(&fiber.Cookie{
			Name:     rolegate.CookieName,
			Value:    role,
			Path:     "/",
			Expires:  time.Now().Add(30 * 24 * time.Hour),
			HTTPOnly: false, // the web client reads it for nav state
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		return helper.JsonOK(c, "Role set", fiber.Map{"role": role})
	})

	app.Get("/sign-in", func(c *fiber.Ctx) error {
		return helper.JsonOK(c, "Sign in with the identity provider", nil)
	})
	app.Get("/sign-up", func(c *fiber.Ctx) error {
		return helper.JsonOK(c, "Sign up with the identity provider", nil)
	})

	// teacher-only (rolegate) + authenticated (AuthJWT); 404 here tells
	// the dashboard to open the form in create mode
	app.Get("/tutor-dashboard",
		authMw.AuthJWT(authMw.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
		tc.GetMyProfile,
	)
}
