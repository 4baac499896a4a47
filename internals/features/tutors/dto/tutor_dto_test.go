package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helper "tutorhub_backend/internals/helpers"
)

func validInfo() TutorInfoSection {
	return TutorInfoSection{
		Name:       "Ali Khan",
		Subject:    "Math",
		Gender:     "male",
		Mode:       "online",
		Experience: 3,
		Contact:    "0300-1234567",
	}
}

func TestTutorInfoSectionValid(t *testing.T) {
	assert.NoError(t, helper.ValidateStruct(validInfo()))
}

func TestTutorInfoSectionRules(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*TutorInfoSection)
		field  string
	}{
		{"missing name", func(s *TutorInfoSection) { s.Name = "" }, "name"},
		{"missing subject", func(s *TutorInfoSection) { s.Subject = "" }, "subject"},
		{"bad gender", func(s *TutorInfoSection) { s.Gender = "other" }, "gender"},
		{"bad mode", func(s *TutorInfoSection) { s.Mode = "remote" }, "mode"},
		{"negative experience", func(s *TutorInfoSection) { s.Experience = -1 }, "experience"},
		{"short contact", func(s *TutorInfoSection) { s.Contact = "12345" }, "contact"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := validInfo()
			tc.mutate(&s)
			err := helper.ValidateStruct(s)
			require.Error(t, err)
			assert.Contains(t, helper.ValidationErrorMap(err), tc.field)
		})
	}
}

func TestTutorInfoSectionBioOptional(t *testing.T) {
	s := validInfo()
	s.Bio = ""
	assert.NoError(t, helper.ValidateStruct(s))
}

func TestEducationSectionRules(t *testing.T) {
	ok := EducationSection{HighestDegree: "MSc", Field: "Mathematics", Institute: "NED"}
	assert.NoError(t, helper.ValidateStruct(ok))

	year := 2015
	ok.GraduationYear = &year
	assert.NoError(t, helper.ValidateStruct(ok))

	tooOld := 1949
	ok.GraduationYear = &tooOld
	assert.Error(t, helper.ValidateStruct(ok))

	future := time.Now().Year() + 1
	ok.GraduationYear = &future
	assert.Error(t, helper.ValidateStruct(ok))

	missing := EducationSection{}
	err := helper.ValidateStruct(missing)
	require.Error(t, err)
	errs := helper.ValidationErrorMap(err)
	assert.Contains(t, errs, "highestDegree")
	assert.Contains(t, errs, "field")
	assert.Contains(t, errs, "institute")
}

func TestAddressSectionRules(t *testing.T) {
	ok := AddressSection{City: "Karachi", Area: "Nazimabad", AddressLine: "House 1, Street 2"}
	assert.NoError(t, helper.ValidateStruct(ok))

	// postal code stays optional
	ok.PostalCode = ""
	assert.NoError(t, helper.ValidateStruct(ok))

	missing := AddressSection{}
	err := helper.ValidateStruct(missing)
	require.Error(t, err)
	errs := helper.ValidationErrorMap(err)
	assert.Contains(t, errs, "city")
	assert.Contains(t, errs, "area")
	assert.Contains(t, errs, "addressLine")
}

func TestSaveProfileRequestNestedValidation(t *testing.T) {
	req := SaveProfileRequest{
		UserID:     "user_1",
		Name:       "Ali Khan",
		Subject:    "Math",
		Gender:     "male",
		Mode:       "home",
		Experience: 2,
		Contact:    "0300-1234567",
		Education:  EducationSection{HighestDegree: "BSc", Field: "Math", Institute: "KU"},
		Address:    AddressSection{City: "Karachi", Area: "Gulshan", AddressLine: "X"},
	}
	assert.NoError(t, helper.ValidateStruct(req))

	req.Education.Institute = ""
	err := helper.ValidateStruct(req)
	require.Error(t, err)
	assert.Contains(t, helper.ValidationErrorMap(err), "education.institute")
}
