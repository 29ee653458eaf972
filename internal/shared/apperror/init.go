package apperror

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var (
	digitsPattern = regexp.MustCompile(`^\d+$`)

	validateOnce sync.Once
	validate     *validator.Validate
)

// Init registers the project's tag name function and custom rules on Gin's
// validator so binding errors report json/form field names.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		configure(v)
	}
}

// Validator returns the shared validator used by services.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		configure(validate)
	})
	return validate
}

// ValidateStruct runs the shared validator and maps failures to INVALID_INPUT.
func ValidateStruct(s any) error {
	if err := Validator().Struct(s); err != nil {
		return MapValidationError(err)
	}
	return nil
}

// IsDigits reports whether s is a non-empty run of ASCII digits.
func IsDigits(s string) bool {
	return digitsPattern.MatchString(s)
}

func configure(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	_ = v.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
		return IsDigits(fl.Field().String())
	})
	// Values are trimmed before they are stored, so whitespace-only input
	// counts as missing.
	_ = v.RegisterValidation("notblank", validators.NotBlank)
}
