package controller

import (
	"context"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tutorhub_backend/internals/features/tutors/dto"
	"tutorhub_backend/internals/features/tutors/service"
	helper "tutorhub_backend/internals/helpers"
	helperOSS "tutorhub_backend/internals/helpers/oss"
	authMw "tutorhub_backend/internals/middlewares/auth"
)

type TutorController struct {
	Service *service.TutorService
	OSS     *helperOSS.OSSService
}

func NewTutorController(db *gorm.DB, oss *helperOSS.OSSService) *TutorController {
	return &TutorController{
		Service: service.NewTutorService(db),
		OSS:     oss,
	}
}

func (tc *TutorController) ensureOSS() (*helperOSS.OSSService, error) {
	if tc.OSS != nil {
		return tc.OSS, nil
	}
	svc, err := helperOSS.NewOSSServiceFromEnv("tutors")
	if err != nil {
		return nil, err
	}
	tc.OSS = svc
	return svc, nil
}

type objectDeleter interface {
	DeleteObject(ctx context.Context, key string) error
}

// reapReplacedPhoto removes the previous photo variants after a save has
// replaced or dropped them. Best-effort: the document is already
// committed, a failed delete only leaves an unreferenced object behind.
func reapReplacedPhoto(ctx context.Context, d objectDeleter, oldKey, newKey string) {
	if oldKey == "" || oldKey == newKey {
		return
	}
	if err := d.DeleteObject(ctx, oldKey); err != nil {
		log.Println("[WARN] orphan photo delete failed:", err)
		return
	}
	_ = d.DeleteObject(ctx, helperOSS.ThumbKey(oldKey))
}

/*
=========================
POST /api/save-profile
Create-or-replace keyed on userId. Response shape is part of the client
contract: {message, slug} on 200, {error} on 400/500.
=========================
*/
func (tc *TutorController) SaveProfile(c *fiber.Ctx) error {
	var req dto.SaveProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON body"})
	}

	if strings.TrimSpace(req.UserID) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing userId"})
	}

	// full-payload re-validation, independent of the client wizard
	if err := helper.ValidateStruct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}

	// remember the photo the replace is about to overwrite
	var oldPhotoKey string
	if prev, err := tc.Service.GetByUserID(c.UserContext(), req.UserID); err == nil && prev.TutorPhotoKey != nil {
		oldPhotoKey = *prev.TutorPhotoKey
	}

	slug, err := tc.Service.SaveProfile(c.UserContext(), req)
	if err != nil {
		log.Println("[ERROR] Failed to save profile:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if oldPhotoKey != "" {
		if svc, err := tc.ensureOSS(); err == nil {
			reapReplacedPhoto(c.UserContext(), svc, oldPhotoKey, strings.TrimSpace(req.Photo))
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Profile saved successfully",
		"slug":    slug,
	})
}

/*
=========================
POST /api/upload-image
Multipart field "file" → {assetId}. The asset id is embedded in a later
save-profile call; nothing references it until then.
=========================
*/
func (tc *TutorController) UploadImage(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No file uploaded"})
	}

	svc, err := tc.ensureOSS()
	if err != nil {
		log.Println("[ERROR] OSS init failed:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Image upload failed"})
	}

	assetID, err := svc.UploadTutorPhoto(c.UserContext(), fh)
	if err != nil {
		log.Println("[ERROR] Image upload failed:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"assetId": assetID})
}

/*
=========================
GET /api/my-profile (JWT) — dashboard read; 404 puts the form wizard in
create mode.
=========================
*/
func (tc *TutorController) GetMyProfile(c *fiber.Ctx) error {
	userID := authMw.UserIDFromLocals(c)
	if userID == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	m, err := tc.Service.GetByUserID(c.UserContext(), userID)
	if err == service.ErrTutorNotFound {
		return helper.JsonError(c, fiber.StatusNotFound, "Tutor profile not found")
	}
	if err != nil {
		log.Println("[ERROR] DB error:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch profile")
	}
	return helper.JsonOK(c, "Profile fetched", dto.ToTutorDTO(*m))
}

/*
=========================
GET /api/tutor/:slug — public profile page data
=========================
*/
func (tc *TutorController) GetBySlug(c *fiber.Ctx) error {
	slug := strings.TrimSpace(c.Params("slug"))
	if slug == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Missing slug")
	}

	m, err := tc.Service.GetBySlug(c.UserContext(), slug)
	if err == service.ErrTutorNotFound {
		return helper.JsonError(c, fiber.StatusNotFound, "Tutor not found")
	}
	if err != nil {
		log.Println("[ERROR] DB error:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch tutor")
	}
	return helper.JsonOK(c, "Tutor fetched", dto.ToTutorDTO(*m))
}

/*
=========================
GET /api/tutors — find page listing
=========================
*/
func (tc *TutorController) ListTutors(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	ms, total, err := tc.Service.List(c.UserContext(), paging.Offset, paging.Limit)
	if err != nil {
		log.Println("[ERROR] Failed to list tutors:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch tutors")
	}

	return helper.JsonList(c, "Tutors fetched", dto.ToTutorDTOs(ms),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}
