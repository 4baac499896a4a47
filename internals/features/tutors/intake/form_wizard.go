package intake

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"sync"

	"tutorhub_backend/internals/features/tutors/dto"
	helper "tutorhub_backend/internals/helpers"
)

const (
	StepTutorInfo = 1
	StepEducation = 2
	StepAddress   = 3
)

// ErrSubmitInFlight: a second Submit while one is running is rejected,
// never run concurrently. Double-clicks and client retries must not
// produce two upload+save pipelines.
var ErrSubmitInFlight = errors.New("a submission is already in flight")

// Uploader forwards the staged photo to the asset store.
type Uploader interface {
	UploadImage(ctx context.Context, fh *multipart.FileHeader) (assetID string, err error)
}

// Saver performs the keyed create-or-replace write.
type Saver interface {
	SaveProfile(ctx context.Context, req dto.SaveProfileRequest) (slug string, err error)
}

// FormValues is the wizard's working copy of the profile fields,
// step 1 flattened the way the save payload carries them.
type FormValues struct {
	Info      dto.TutorInfoSection
	Education dto.EducationSection
	Address   dto.AddressSection

	// PhotoAssetID carries the already-stored asset id in edit mode.
	// Saves are full replaces, so omitting it would drop the photo; a
	// freshly uploaded file overrides it.
	PhotoAssetID string
}

// FormWizard drives the three-step intake flow: per-step validation on
// Advance, free backward navigation, and an upload-then-save Submit that
// aborts wholesale on the first failure.
type FormWizard struct {
	mu       sync.Mutex
	inFlight bool

	userID  string
	editing bool
	step    int
	values  FormValues
	photo   *multipart.FileHeader

	uploader Uploader
	saver    Saver
}

// NewFormWizard starts at step 1. A non-nil seed puts the wizard in edit
// mode with the existing profile's values; nil means create mode.
func NewFormWizard(userID string, seed *FormValues, up Uploader, sv Saver) *FormWizard {
	w := &FormWizard{
		userID:   userID,
		step:     StepTutorInfo,
		uploader: up,
		saver:    sv,
	}
	if seed != nil {
		w.values = *seed
		w.editing = true
	}
	return w
}

func (w *FormWizard) Step() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

func (w *FormWizard) Editing() bool { return w.editing }

func (w *FormWizard) Values() FormValues {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.values
}

func (w *FormWizard) SetValues(v FormValues) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.values = v
}

// StagePhoto keeps at most one image file for Submit. Passing nil clears
// the staged file.
func (w *FormWizard) StagePhoto(fh *multipart.FileHeader) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.photo = fh
}

// Advance validates only the current step's section. On success the step
// increments (capped at the last step); on failure the step stays put and
// the field errors come back.
func (w *FormWizard) Advance() (map[string][]string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	var err error
	switch w.step {
	case StepTutorInfo:
		err = helper.ValidateStruct(w.values.Info)
	case StepEducation:
		err = helper.ValidateStruct(w.values.Education)
	case StepAddress:
		err = helper.ValidateStruct(w.values.Address)
	}
	if err != nil {
		return helper.ValidationErrorMap(err), false
	}
	if w.step < StepAddress {
		w.step++
	}
	return nil, true
}

// Retreat never validates; backward navigation is always allowed.
func (w *FormWizard) Retreat() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step > StepTutorInfo {
		w.step--
	}
}

// Submit re-validates the complete payload (independent of step checks),
// uploads the staged photo if any, then saves. Upload failure means the
// document is never written; either failure aborts the submission whole.
func (w *FormWizard) Submit(ctx context.Context) (string, error) {
	w.mu.Lock()
	if w.inFlight {
		w.mu.Unlock()
		return "", ErrSubmitInFlight
	}
	w.inFlight = true
	req := w.buildRequest()
	photo := w.photo
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.inFlight = false
		w.mu.Unlock()
	}()

	if err := helper.ValidateStruct(req); err != nil {
		return "", fmt.Errorf("profile payload invalid: %w", err)
	}

	if photo != nil {
		assetID, err := w.uploader.UploadImage(ctx, photo)
		if err != nil {
			return "", fmt.Errorf("image upload failed: %w", err)
		}
		req.Photo = assetID
	}

	slug, err := w.saver.SaveProfile(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to save profile: %w", err)
	}
	return slug, nil
}

func (w *FormWizard) buildRequest() dto.SaveProfileRequest {
	return dto.SaveProfileRequest{
		UserID:     w.userID,
		Name:       w.values.Info.Name,
		Subject:    w.values.Info.Subject,
		Gender:     w.values.Info.Gender,
		Mode:       w.values.Info.Mode,
		Experience: w.values.Info.Experience,
		Bio:        w.values.Info.Bio,
		Contact:    w.values.Info.Contact,
		Education:  w.values.Education,
		Address:    w.values.Address,
		Photo:      w.values.PhotoAssetID,
	}
}
