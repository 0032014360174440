package validator

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type signupForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	Role     string `validate:"oneof=player coach"`
}

func TestParseErrorFieldMessages(t *testing.T) {
	v := validator.New()
	err := v.Struct(signupForm{Email: "not-an-email", Password: "short", Role: "umpire"})

	fields := ParseError(err)
	assert.Equal(t, "Must be a valid email address", fields["Email"])
	assert.Equal(t, "Must be at least 8 characters", fields["Password"])
	assert.Equal(t, "Must be one of: player coach", fields["Role"])
}

func TestParseErrorNonValidatorError(t *testing.T) {
	fields := ParseError(errors.New("unexpected EOF"))
	assert.Equal(t, map[string]string{"error": "unexpected EOF"}, fields)
}
