package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatorAcceptsCompleteSignup(t *testing.T) {
	v := NewValidator()
	err := v.Validate(&SignupForm{
		Username:  "leo",
		Email:     "leo@example.com",
		Password1: "war-and-peace",
		Password2: "war-and-peace",
	})
	assert.NoError(t, err)
}

func TestFieldErrorsForEmptyPostText(t *testing.T) {
	v := NewValidator()
	err := v.Validate(&PostForm{Text: ""})
	require.Error(t, err)

	fieldErrors := FieldErrors(err)
	assert.Equal(t, "This field is required.", fieldErrors["Text"])
}

func TestFieldErrorsForPasswordMismatch(t *testing.T) {
	v := NewValidator()
	err := v.Validate(&SignupForm{
		Username:  "leo",
		Email:     "leo@example.com",
		Password1: "war-and-peace",
		Password2: "anna-karenina",
	})
	require.Error(t, err)

	fieldErrors := FieldErrors(err)
	assert.Equal(t, "The two password fields didn't match.", fieldErrors["Password2"])
}

func TestFieldErrorsForBadEmailAndShortPassword(t *testing.T) {
	v := NewValidator()
	err := v.Validate(&SignupForm{
		Username:  "leo",
		Email:     "not-an-email",
		Password1: "short",
		Password2: "short",
	})
	require.Error(t, err)

	fieldErrors := FieldErrors(err)
	assert.Equal(t, "Enter a valid email address.", fieldErrors["Email"])
	assert.Equal(t, "This value is too short.", fieldErrors["Password1"])
}

func TestFieldErrorsForNonValidationError(t *testing.T) {
	fieldErrors := FieldErrors(assert.AnError)
	assert.Equal(t, "Invalid submission.", fieldErrors["__all__"])
}
