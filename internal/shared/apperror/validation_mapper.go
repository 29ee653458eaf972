package apperror

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func formatFieldName(s string) string {
	// first_name -> First Name
	s = strings.ReplaceAll(s, "_", " ")
	caser := cases.Title(language.English)
	return caser.String(s)
}

func describeTag(tag string) string {
	switch tag {
	case "required", "notblank":
		return "required"
	case "digits":
		return "must contain digits only"
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	case "min", "gte":
		return "is too small"
	case "max", "lte":
		return "is too large"
	default:
		return "invalid"
	}
}

// MapValidationError converts validator failures into a single INVALID_INPUT
// error whose details map every offending field to its reason.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return ErrInvalidInput.WithDetails(err.Error())
	}

	details := make(map[string]string, len(errs))
	for _, e := range errs {
		details[e.Field()] = describeTag(e.Tag())
	}

	if len(errs) == 1 {
		e := errs[0]
		humanReadableField := formatFieldName(e.Field())
		if e.Tag() == "required" || e.Tag() == "notblank" {
			return RequiredField(humanReadableField).WithDetails(details)
		}
		return InvalidField(humanReadableField).WithDetails(details)
	}

	return New(
		CodeInvalidInput,
		"Invalid input",
		http.StatusBadRequest,
	).WithDetails(details)
}
