package dto

import (
	tutorModel "tutorhub_backend/internals/features/tutors/model"
	helper "tutorhub_backend/internals/helpers"
	helperOSS "tutorhub_backend/internals/helpers/oss"
)

/* ===========================
   Form sections (one per wizard step)
   =========================== */

// Step 1 — tutor info
type TutorInfoSection struct {
	Name       string `json:"name" validate:"required"`
	Subject    string `json:"subject" validate:"required"`
	Gender     string `json:"gender" validate:"required,oneof=male female"`
	Mode       string `json:"mode" validate:"required,oneof=online home institute"`
	Experience int    `json:"experience" validate:"gte=0"`
	Bio        string `json:"bio,omitempty" validate:"-"`
	Contact    string `json:"contact" validate:"required,min=10"`
}

// Step 2 — education
type EducationSection struct {
	HighestDegree  string `json:"highestDegree" validate:"required"`
	Field          string `json:"field" validate:"required"`
	Institute      string `json:"institute" validate:"required"`
	GraduationYear *int   `json:"graduationYear,omitempty" validate:"omitempty,gte=1950,gradyear"`
}

// Step 3 — address
type AddressSection struct {
	City        string `json:"city" validate:"required"`
	Area        string `json:"area" validate:"required"`
	AddressLine string `json:"addressLine" validate:"required"`
	PostalCode  string `json:"postalCode,omitempty" validate:"-"`
}

/* ===========================
   Save request (full payload)
   =========================== */

type SaveProfileRequest struct {
	UserID     string           `json:"userId"`
	Name       string           `json:"name" validate:"required"`
	Subject    string           `json:"subject" validate:"required"`
	Gender     string           `json:"gender" validate:"required,oneof=male female"`
	Mode       string           `json:"mode" validate:"required,oneof=online home institute"`
	Experience int              `json:"experience" validate:"gte=0"`
	Bio        string           `json:"bio,omitempty" validate:"-"`
	Contact    string           `json:"contact" validate:"required,min=10"`
	Education  EducationSection `json:"education"`
	Address    AddressSection   `json:"address"`
	Photo      string           `json:"photo,omitempty" validate:"-"` // asset id from /api/upload-image
}

/* ===========================
   Response DTO
   =========================== */

type TutorDTO struct {
	TutorID    string `json:"tutor_id"`
	UserID     string `json:"user_id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	Subject    string `json:"subject"`
	Gender     string `json:"gender"`
	Mode       string `json:"mode"`
	Experience int    `json:"experience"`
	Bio        string `json:"bio,omitempty"`
	Contact    string `json:"contact"`

	Education tutorModel.Education `json:"education"`
	Address   tutorModel.Address   `json:"address"`
	Location  string               `json:"location,omitempty"`

	PhotoAssetID string `json:"photo_asset_id,omitempty"`
	PhotoURL     string `json:"photo_url,omitempty"`
	ThumbURL     string `json:"thumb_url,omitempty"`

	// render-time deep link derived from the contact digits
	WhatsAppURL string `json:"whatsapp_url,omitempty"`

	Verified bool `json:"verified"`
}

func ToTutorDTO(m tutorModel.TutorModel) TutorDTO {
	out := TutorDTO{
		TutorID:    m.TutorID.String(),
		UserID:     m.TutorUserID,
		Name:       m.TutorName,
		Slug:       m.TutorSlug,
		Subject:    m.TutorSubject,
		Gender:     string(m.TutorGender),
		Mode:       string(m.TutorMode),
		Experience: m.TutorExperience,
		Contact:    m.TutorContact,
		Education:  m.TutorEducation.Data(),
		Address:    m.TutorAddress.Data(),
		Verified:   m.TutorVerified,
	}
	if m.TutorBio != nil {
		out.Bio = *m.TutorBio
	}
	if m.TutorLocation != nil {
		out.Location = *m.TutorLocation
	}
	if m.TutorPhotoKey != nil && *m.TutorPhotoKey != "" {
		out.PhotoAssetID = *m.TutorPhotoKey
		out.PhotoURL = helperOSS.PublicAssetURL(*m.TutorPhotoKey)
		out.ThumbURL = helperOSS.PublicAssetURL(helperOSS.ThumbKey(*m.TutorPhotoKey))
	}
	out.WhatsAppURL = helper.WhatsAppLink(m.TutorContact)
	return out
}

func ToTutorDTOs(ms []tutorModel.TutorModel) []TutorDTO {
	out := make([]TutorDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToTutorDTO(m))
	}
	return out
}
