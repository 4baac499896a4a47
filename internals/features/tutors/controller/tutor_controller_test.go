package controller

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The write path rejects bad requests before touching the store or the
// asset bucket, so these run with nil DB and nil OSS: any accidental
// store access would panic the test.
func newTestApp() *fiber.App {
	tc := NewTutorController(nil, nil)
	app := fiber.New()
	app.Post("/api/save-profile", tc.SaveProfile)
	app.Post("/api/upload-image", tc.UploadImage)
	return app
}

func TestSaveProfileMissingUserID(t *testing.T) {
	app := newTestApp()

	body := `{"name":"Ali Khan","subject":"Math"}`
	req := httptest.NewRequest("POST", "/api/save-profile", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)

	var out map[string]string
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	assert.Equal(t, "Missing userId", out["error"])
}

func TestSaveProfileInvalidJSON(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("POST", "/api/save-profile", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
}

func TestSaveProfileValidationFailure(t *testing.T) {
	app := newTestApp()

	// userId present but the payload misses required fields everywhere
	body := `{"userId":"user_1","name":"","subject":"","gender":"x","mode":"x","contact":"123"}`
	req := httptest.NewRequest("POST", "/api/save-profile", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, res.StatusCode)

	raw, _ := io.ReadAll(res.Body)
	assert.Contains(t, string(raw), "VALIDATION_ERROR")
}

type fakeDeleter struct {
	deleted []string
	err     error
}

func (f *fakeDeleter) DeleteObject(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return f.err
}

func TestReapReplacedPhotoDeletesBothVariants(t *testing.T) {
	d := &fakeDeleter{}
	reapReplacedPhoto(context.Background(), d, "tutors/photos/old.webp", "tutors/photos/new.webp")
	assert.Equal(t, []string{
		"tutors/photos/old.webp",
		"tutors/photos/old-thumb.webp",
	}, d.deleted)
}

func TestReapReplacedPhotoKeepsRetainedAsset(t *testing.T) {
	d := &fakeDeleter{}
	// edit re-sent the same asset id: nothing was replaced
	reapReplacedPhoto(context.Background(), d, "tutors/photos/old.webp", "tutors/photos/old.webp")
	assert.Empty(t, d.deleted)

	// no previous photo to reap
	reapReplacedPhoto(context.Background(), d, "", "tutors/photos/new.webp")
	assert.Empty(t, d.deleted)
}

func TestReapReplacedPhotoStopsAfterFailedDelete(t *testing.T) {
	d := &fakeDeleter{err: errors.New("bucket down")}
	reapReplacedPhoto(context.Background(), d, "tutors/photos/old.webp", "")
	assert.Equal(t, []string{"tutors/photos/old.webp"}, d.deleted, "thumb delete is skipped when the main delete fails")
}

func TestUploadImageMissingFile(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("POST", "/api/upload-image", nil)

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)

	var out map[string]string
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	assert.Equal(t, "No file uploaded", out["error"])
}
