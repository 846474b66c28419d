package validators

import (
	"net/http"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var slugPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// CustomValidator wraps go-playground/validator for echo
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates the validator used as echo's e.Validator
func NewValidator() *CustomValidator {
	v := validator.New()
	// URL-safe token: latin letters, digits, hyphens, underscores
	v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// Fields flattens a validation error into a field -> message map, the
// shape handlers return when a form re-renders with errors.
func Fields(err error) map[string]string {
	out := map[string]string{}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out["_form"] = err.Error()
		return out
	}
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			out[fe.Field()] = "this field is required"
		case "email":
			out[fe.Field()] = "enter a valid email address"
		case "min":
			out[fe.Field()] = "value is too short"
		case "max":
			out[fe.Field()] = "value is too long"
		case "slug":
			out[fe.Field()] = "use only latin letters, digits, hyphens and underscores"
		default:
			out[fe.Field()] = "invalid value"
		}
	}
	return out
}

// Check validates a struct directly and returns the field error map,
// or nil when the struct is valid.
func Check(i interface{}) map[string]string {
	v := NewValidator()
	if err := v.validator.Struct(i); err != nil {
		return Fields(err)
	}
	return nil
}
