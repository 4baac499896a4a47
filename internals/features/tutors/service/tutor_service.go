package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tutorhub_backend/internals/features/tutors/dto"
	tutorModel "tutorhub_backend/internals/features/tutors/model"
	helper "tutorhub_backend/internals/helpers"

	"gorm.io/datatypes"
)

var (
	ErrMissingUserID = errors.New("missing userId")
	ErrTutorNotFound = errors.New("tutor not found")
)

// Columns replaced on every save. The write is a full-document replace:
// an omitted photo overwrites a previously stored one with NULL, the
// caller re-sends the current asset id on edit to keep it. tutor_verified
// and created_at are deliberately absent — the intake flow can never set
// the trust flag.
var replaceColumns = []string{
	"tutor_name",
	"tutor_slug",
	"tutor_subject",
	"tutor_gender",
	"tutor_mode",
	"tutor_experience",
	"tutor_bio",
	"tutor_contact",
	"tutor_education",
	"tutor_address",
	"tutor_location",
	"tutor_photo_key",
	"updated_at",
}

type TutorService struct {
	DB *gorm.DB
}

func NewTutorService(db *gorm.DB) *TutorService {
	return &TutorService{DB: db}
}

// BuildTutorModel shapes the flat save payload into the stored document:
// slug from name, subject lowercased, legacy location fallback, photo key
// only when an asset id came with the same call.
func BuildTutorModel(req dto.SaveProfileRequest, slug string) tutorModel.TutorModel {
	m := tutorModel.TutorModel{
		TutorUserID:     strings.TrimSpace(req.UserID),
		TutorName:       strings.TrimSpace(req.Name),
		TutorSlug:       slug,
		TutorSubject:    strings.ToLower(strings.TrimSpace(req.Subject)),
		TutorGender:     tutorModel.Gender(req.Gender),
		TutorMode:       tutorModel.TeachingMode(req.Mode),
		TutorExperience: req.Experience,
		TutorContact:    strings.TrimSpace(req.Contact),
		TutorEducation: datatypes.NewJSONType(tutorModel.Education{
			HighestDegree:  req.Education.HighestDegree,
			Field:          req.Education.Field,
			Institute:      req.Education.Institute,
			GraduationYear: req.Education.GraduationYear,
		}),
		TutorAddress: datatypes.NewJSONType(tutorModel.Address{
			City:        req.Address.City,
			Area:        req.Address.Area,
			AddressLine: req.Address.AddressLine,
			PostalCode:  req.Address.PostalCode,
		}),
	}

	if bio := strings.TrimSpace(req.Bio); bio != "" {
		m.TutorBio = &bio
	}

	// legacy readers expect a flat location: area first, then city
	if loc := strings.TrimSpace(req.Address.Area); loc != "" {
		m.TutorLocation = &loc
	} else if loc := strings.TrimSpace(req.Address.City); loc != "" {
		m.TutorLocation = &loc
	}

	if key := strings.TrimSpace(req.Photo); key != "" {
		m.TutorPhotoKey = &key
	}

	return m
}

// SaveProfile is the create-or-replace write keyed on the user id.
// Returns the computed slug so the caller can build the public URL.
func (s *TutorService) SaveProfile(ctx context.Context, req dto.SaveProfileRequest) (string, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return "", ErrMissingUserID
	}

	base := helper.Slugify(req.Name, 120)
	slug, err := helper.EnsureOwnedSlug(ctx, s.DB, "tutors", "tutor_slug", "tutor_user_id", base, req.UserID)
	if err != nil {
		return "", err
	}

	m := BuildTutorModel(req, slug)
	if err := s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tutor_user_id"}},
			DoUpdates: clause.AssignmentColumns(replaceColumns),
		}).
		Create(&m).Error; err != nil {
		return "", err
	}
	return slug, nil
}

// GetByUserID is the authenticated dashboard read: the viewer's own
// profile, or ErrTutorNotFound so the form starts in create mode.
func (s *TutorService) GetByUserID(ctx context.Context, userID string) (*tutorModel.TutorModel, error) {
	var m tutorModel.TutorModel
	err := s.DB.WithContext(ctx).
		Where("tutor_user_id = ?", userID).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTutorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetBySlug is the public profile read; misses render as 404.
func (s *TutorService) GetBySlug(ctx context.Context, slug string) (*tutorModel.TutorModel, error) {
	var m tutorModel.TutorModel
	err := s.DB.WithContext(ctx).
		Where("LOWER(tutor_slug) = ?", strings.ToLower(strings.TrimSpace(slug))).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTutorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// List backs the find page; newest first.
func (s *TutorService) List(ctx context.Context, offset, limit int) ([]tutorModel.TutorModel, int64, error) {
	var (
		ms    []tutorModel.TutorModel
		total int64
	)
	q := s.DB.WithContext(ctx).Model(&tutorModel.TutorModel{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&ms).Error; err != nil {
		return nil, 0, err
	}
	return ms, total, nil
}
