package helper

import (
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// graduation year upper bound is the current calendar year, which a
	// static tag value cannot express
	if err := v.RegisterValidation("gradyear", func(fl validator.FieldLevel) bool {
		return int(fl.Field().Int()) <= time.Now().Year()
	}); err != nil {
		log.Fatalf("❌ register gradyear validation: %v", err)
	}

	return v
}

// Validator exposes the shared validator instance.
func Validator() *validator.Validate {
	return validate
}

// ValidateStruct runs the shared validator over any tagged struct.
func ValidateStruct(s any) error {
	return validate.Struct(s)
}

// ValidationErrorMap flattens validator.ValidationErrors into
// field → messages for JsonValidationError.
func ValidationErrorMap(err error) map[string][]string {
	out := map[string][]string{}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		out["_"] = []string{"invalid input"}
		return out
	}
	for _, fe := range ve {
		// drop the root struct name: "SaveProfileRequest.Education.Field" → "education.field"
		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		parts := strings.Split(field, ".")
		for i, p := range parts {
			if p != "" {
				parts[i] = strings.ToLower(p[:1]) + p[1:]
			}
		}
		field = strings.Join(parts, ".")
		out[field] = append(out[field], messageForTag(fe))
	}
	return out
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Required"
	case "min":
		return "Too short (min " + fe.Param() + ")"
	case "gte":
		return "Must be >= " + fe.Param()
	case "oneof":
		return "Must be one of: " + fe.Param()
	case "gradyear":
		return "Must not be in the future"
	default:
		return "Invalid value"
	}
}
