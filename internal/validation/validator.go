package validation

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Tags registered on the validator returned by New.
const (
	TagEmail    = "resume_email"
	TagPhone    = "phone_digits"
	TagPastDate = "past_date"
)

// New returns a struct validator that understands the candidate-specific tags
// in addition to the built-in ones. now supplies "today" for past_date; nil means time.Now.
// Field names in errors come from the `form` tag when present.
func New(now func() time.Time) *validator.Validate {
	if now == nil {
		now = time.Now
	}
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation(TagEmail, func(fl validator.FieldLevel) bool {
		return ValidateEmail(fl.Field().String())
	})
	_ = v.RegisterValidation(TagPhone, func(fl validator.FieldLevel) bool {
		return ValidatePhone(fl.Field().String())
	})
	_ = v.RegisterValidation(TagPastDate, func(fl validator.FieldLevel) bool {
		_, err := ValidateDateOfBirthAt(fl.Field().String(), now())
		return err == nil
	})
	return v
}
