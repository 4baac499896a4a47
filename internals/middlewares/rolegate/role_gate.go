package rolegate

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Role values mirrored from the identity provider into the "role" cookie.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"

	CookieName = "role"

	// Locals key the gate resolves once per request; downstream handlers
	// read this instead of the cookie.
	LocRole = "role"
)

type Decision int

const (
	Pass Decision = iota
	RedirectSignIn
	RedirectRoleSelect
)

// Page routes reachable without a role cookie. API and health endpoints
// pass through as well: a JSON client must get a status code, never a
// redirect to a page.
var publicPaths = map[string]struct{}{
	"/":            {},
	"/sign-in":     {},
	"/sign-up":     {},
	"/role-select": {},
	"/find":        {},
}

var publicPrefixes = []string{
	"/sign-up/",
	"/tutor/",
	"/api/",
	"/health",
}

func isPublic(path string) bool {
	if _, ok := publicPaths[path]; ok {
		return true
	}
	for _, p := range publicPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// Decide is the whole gate: a pure function over (path, role).
// The no-cookie check runs first, so an anonymous visitor is sent to
// role selection even on teacher-only paths; only a visitor who already
// picked the wrong role lands on sign-in.
func Decide(path, role string) Decision {
	if role == "" {
		if isPublic(path) {
			return Pass
		}
		return RedirectRoleSelect
	}
	if strings.HasPrefix(path, "/tutor-dashboard") && role != RoleTeacher {
		return RedirectSignIn
	}
	return Pass
}

func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := strings.TrimSpace(c.Cookies(CookieName))
		c.Locals(LocRole, role)

		switch Decide(c.Path(), role) {
		case RedirectSignIn:
			return c.Redirect("/sign-in", fiber.StatusFound)
		case RedirectRoleSelect:
			return c.Redirect("/role-select", fiber.StatusFound)
		}
		return c.Next()
	}
}
