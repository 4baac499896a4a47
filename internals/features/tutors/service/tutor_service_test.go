package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutorhub_backend/internals/features/tutors/dto"
)

func saveReq() dto.SaveProfileRequest {
	return dto.SaveProfileRequest{
		UserID:     "user_1",
		Name:       "Ali Khan",
		Subject:    "MATH",
		Gender:     "male",
		Mode:       "online",
		Experience: 5,
		Bio:        "Ten years teaching calculus.",
		Contact:    "0300-1234567",
		Education: dto.EducationSection{
			HighestDegree: "MSc",
			Field:         "Mathematics",
			Institute:     "NED",
		},
		Address: dto.AddressSection{
			City:        "Karachi",
			Area:        "Nazimabad",
			AddressLine: "House 12, Street 4",
		},
	}
}

func TestBuildTutorModelSubjectLowercased(t *testing.T) {
	m := BuildTutorModel(saveReq(), "ali-khan")
	assert.Equal(t, "math", m.TutorSubject)
	assert.Equal(t, "ali-khan", m.TutorSlug)
	assert.Equal(t, "user_1", m.TutorUserID)
}

func TestBuildTutorModelLocationFallback(t *testing.T) {
	req := saveReq()
	m := BuildTutorModel(req, "ali-khan")
	require.NotNil(t, m.TutorLocation)
	assert.Equal(t, "Nazimabad", *m.TutorLocation)

	req.Address.Area = ""
	m = BuildTutorModel(req, "ali-khan")
	require.NotNil(t, m.TutorLocation)
	assert.Equal(t, "Karachi", *m.TutorLocation)

	req.Address.City = ""
	m = BuildTutorModel(req, "ali-khan")
	assert.Nil(t, m.TutorLocation)
}

func TestBuildTutorModelPhotoConditional(t *testing.T) {
	req := saveReq()
	m := BuildTutorModel(req, "ali-khan")
	assert.Nil(t, m.TutorPhotoKey, "no asset id, no photo reference")

	req.Photo = "tutors/photos/ali_20250101_abcd1234.webp"
	m = BuildTutorModel(req, "ali-khan")
	require.NotNil(t, m.TutorPhotoKey)
	assert.Equal(t, req.Photo, *m.TutorPhotoKey)
}

func TestBuildTutorModelBioOptional(t *testing.T) {
	req := saveReq()
	req.Bio = "  "
	m := BuildTutorModel(req, "ali-khan")
	assert.Nil(t, m.TutorBio)

	req.Bio = "hello"
	m = BuildTutorModel(req, "ali-khan")
	require.NotNil(t, m.TutorBio)
	assert.Equal(t, "hello", *m.TutorBio)
}

func TestBuildTutorModelEducationAddressCarried(t *testing.T) {
	m := BuildTutorModel(saveReq(), "ali-khan")
	edu := m.TutorEducation.Data()
	assert.Equal(t, "MSc", edu.HighestDegree)
	assert.Equal(t, "NED", edu.Institute)
	addr := m.TutorAddress.Data()
	assert.Equal(t, "Karachi", addr.City)
	assert.Equal(t, "House 12, Street 4", addr.AddressLine)
}

func TestBuildTutorModelNeverSetsVerified(t *testing.T) {
	m := BuildTutorModel(saveReq(), "ali-khan")
	assert.False(t, m.TutorVerified)

	// the replace column list is the write surface; the trust flag and
	// creation time must stay out of it
	assert.NotContains(t, replaceColumns, "tutor_verified")
	assert.NotContains(t, replaceColumns, "created_at")
	assert.Contains(t, replaceColumns, "tutor_photo_key")
}
