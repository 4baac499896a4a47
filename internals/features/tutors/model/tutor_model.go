package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

type TeachingMode string

const (
	ModeOnline    TeachingMode = "online"
	ModeHome      TeachingMode = "home"
	ModeInstitute TeachingMode = "institute"
)

// Education is stored as a JSONB column: the profile document keeps its
// nested shape, reads never join.
type Education struct {
	HighestDegree  string `json:"highestDegree"`
	Field          string `json:"field"`
	Institute      string `json:"institute"`
	GraduationYear *int   `json:"graduationYear,omitempty"`
}

type Address struct {
	City        string `json:"city"`
	Area        string `json:"area"`
	AddressLine string `json:"addressLine"`
	PostalCode  string `json:"postalCode,omitempty"`
}

type TutorModel struct {
	// PK
	TutorID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"tutor_id"`

	// Identity-provider subject id. The unique index makes the
	// one-profile-per-user invariant explicit: saves upsert on this key.
	TutorUserID string `gorm:"size:64;not null;uniqueIndex:uq_tutors_user_id" json:"tutor_user_id"`

	TutorName       string       `gorm:"size:100;not null" json:"tutor_name"`
	TutorSlug       string       `gorm:"size:160;not null;index:idx_tutors_slug" json:"tutor_slug"`
	TutorSubject    string       `gorm:"size:100;not null;index:idx_tutors_subject" json:"tutor_subject"` // stored lowercase
	TutorGender     Gender       `gorm:"type:varchar(10);not null" json:"tutor_gender"`
	TutorMode       TeachingMode `gorm:"type:varchar(16);not null" json:"tutor_mode"`
	TutorExperience int          `gorm:"not null;default:0" json:"tutor_experience"`
	TutorBio        *string      `gorm:"size:1000" json:"tutor_bio,omitempty"`
	TutorContact    string       `gorm:"size:30;not null" json:"tutor_contact"`

	TutorEducation datatypes.JSONType[Education] `gorm:"column:tutor_education" json:"tutor_education"`
	TutorAddress   datatypes.JSONType[Address]   `gorm:"column:tutor_address" json:"tutor_address"`

	// Legacy fallback (area, else city) kept for older readers.
	TutorLocation *string `gorm:"size:100" json:"tutor_location,omitempty"`

	// OSS object key of the uploaded photo; nil means no photo.
	TutorPhotoKey *string `gorm:"size:255;column:tutor_photo_key" json:"tutor_photo_key,omitempty"`

	// Administrative trust flag, never writable through the intake flow.
	TutorVerified bool `gorm:"not null;default:false" json:"tutor_verified"`

	CreatedAt time.Time  `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime;column:updated_at" json:"updated_at,omitempty"`
}

func (TutorModel) TableName() string { return "tutors" }
