package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

// phonePattern matches the loose international format the booking form
// accepts: digits, +, -, spaces and parentheses, 8 to 15 characters.
var phonePattern = regexp.MustCompile(`^[0-9+\-\s()]{8,15}$`)

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
}

// Validate checks struct fields and returns a field-to-tag map of failures,
// nil when everything passes.
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}
	out := make(map[string]string, len(errs))
	for _, e := range errs {
		out[e.Field()] = e.Tag()
	}
	return out
}
