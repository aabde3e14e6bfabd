package forms

import (
	"github.com/go-playground/validator/v10"
)

// Validator adapts go-playground/validator to echo.Validator.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator for binding to echo's e.Validator.
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// FieldErrors converts a validation error into a field -> message map
// suitable for redisplaying a form with inline errors. Messages are
// deliberately plain; templates show them next to the field.
func FieldErrors(err error) map[string]string {
	out := make(map[string]string)
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out["__all__"] = "Invalid submission."
		return out
	}
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			out[fe.Field()] = "This field is required."
		case "email":
			out[fe.Field()] = "Enter a valid email address."
		case "min":
			out[fe.Field()] = "This value is too short."
		case "max":
			out[fe.Field()] = "This value is too long."
		case "eqfield":
			out[fe.Field()] = "The two password fields didn't match."
		case "alphanumunicode":
			out[fe.Field()] = "Enter a valid username."
		default:
			out[fe.Field()] = "Invalid value."
		}
	}
	return out
}
