package route

import (
	"github.com/gofiber/fiber/v2"

	searchController "tutorhub_backend/internals/features/search/controller"
	searchService "tutorhub_backend/internals/features/search/service"
	"tutorhub_backend/internals/configs"
)

// SearchRoutes mounts the find-tutor relay under /api.
func SearchRoutes(api fiber.Router) {
	sc := searchController.NewSearchController(
		searchService.NewMatcherClient(configs.MatchingAPIURL),
	)
	api.Post("/find-tutor", sc.FindTutor)
}
