package dto

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/jsamuelsen/movie-gateway/internal/domain"
)

// tagParts is the number of parts when splitting a struct tag by comma.
const tagParts = 2

var (
	// validate is the singleton validator instance.
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the singleton validator instance.
// Field names in messages come from the `form` tag, the query parameter name.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("form"), ",", tagParts)[0]
			if name == "-" {
				return ""
			}

			return name
		})

		_ = validate.RegisterValidation("notblank", validateNotBlank)
	})

	return validate
}

// check validates v and converts the first failure into a validation error with code.
func check(v any, code string) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return domain.NewValidationError(code, fe.Field(), fe.Field()+" "+validationMessage(fe))
	}

	return domain.NewValidationError(code, "", err.Error())
}

// validationMessages maps validation tags to message templates.
// Use {param} as placeholder for the validation parameter.
var validationMessages = map[string]string{
	"required": "is required",
	"notblank": "must not be blank",
	"gt":       "must be greater than {param}",
	"lte":      "must be less than or equal to {param}",
}

// validationMessage returns a human-readable message for a validation error.
func validationMessage(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()

	if tag == "min" || tag == "max" {
		return minMaxMessage(tag, param, fe.Kind())
	}

	if msg, ok := validationMessages[tag]; ok {
		return strings.ReplaceAll(msg, "{param}", param)
	}

	return "failed validation: " + tag
}

// minMaxMessage returns a message for min/max that reads right for the field's
// kind, e.g. "at least 1 id" or "at most 100 characters".
func minMaxMessage(tag, param string, kind reflect.Kind) string {
	var unit string

	switch kind {
	case reflect.String:
		unit = "character"
	case reflect.Slice:
		unit = "id"
	}

	bound := param
	if unit != "" {
		if param != "1" {
			unit += "s"
		}

		bound += " " + unit
	}

	if tag == "min" {
		return "must be at least " + bound
	}

	return "must be at most " + bound
}

// validateNotBlank validates that a string is not empty after trimming whitespace.
func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
