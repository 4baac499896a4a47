package controller

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	searchService "tutorhub_backend/internals/features/search/service"
)

type SearchController struct {
	Matcher *searchService.MatcherClient
}

func NewSearchController(matcher *searchService.MatcherClient) *SearchController {
	return &SearchController{Matcher: matcher}
}

/*
=========================
POST /api/find-tutor — relay to the external matching service.
Upstream failure degrades to an empty list: the UI shows "no tutors
found", never an error page.
=========================
*/
func (sc *SearchController) FindTutor(c *fiber.Ctx) error {
	var req struct {
		Query string `json:"query"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON body"})
	}

	if strings.TrimSpace(req.Query) == "" {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"matchingTutors": json.RawMessage("[]")})
	}

	tutors, err := sc.Matcher.FindTutors(c.UserContext(), req.Query)
	if err != nil {
		log.Println("[ERROR] find-tutor relay failed:", err)
		tutors = json.RawMessage("[]")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"matchingTutors": tutors})
}
