// Package validation checks names and configuration structs used by the
// scenario tooling.
package validation

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// Validation constants
	MaxLabelLength    = 255
	MaxVariableLength = 128

	// Regular expressions
	labelPattern    = regexp.MustCompile(`^[_a-zA-Z][_a-zA-Z0-9]*$`)
	variablePattern = regexp.MustCompile(`^\w+$`)
)

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("label", func(fl validator.FieldLevel) bool {
		return labelPattern.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("variable", func(fl validator.FieldLevel) bool {
		return variablePattern.MatchString(fl.Field().String())
	})
}

// ValidateStruct validates a struct using its `validate` tags. Besides the
// stock tags, "label" and "variable" check identifier syntax.
func ValidateStruct(s any) error {
	if s == nil {
		return errors.New("cannot validate nil")
	}
	if err := validate.Struct(s); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateLabel validates a function, tag or edge type name
func ValidateLabel(name string) error {
	return validateName("label", name, fmt.Sprintf("required,max=%d,label", MaxLabelLength))
}

// ValidateVariableName validates a name usable in a <[name]> placeholder
func ValidateVariableName(name string) error {
	return validateName("variable name", name, fmt.Sprintf("required,max=%d,variable", MaxVariableLength))
}

// validateName runs tags against a single name and words the first failure
func validateName(kind, name, tags string) error {
	err := validate.Var(name, tags)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return err
	}

	switch e := validationErrs[0]; e.Tag() {
	case "required":
		return fmt.Errorf("%s cannot be empty", kind)
	case "max":
		return fmt.Errorf("%s '%s' exceeds maximum length of %s characters", kind, name, e.Param())
	case "label":
		return fmt.Errorf("%s '%s' is invalid (must start with letter or underscore, followed by alphanumeric or underscore)", kind, name)
	case "variable":
		return fmt.Errorf("%s '%s' is invalid (only letters, digits and underscore allowed)", kind, name)
	default:
		return fmt.Errorf("%s '%s' is invalid (%s)", kind, name, e.Tag())
	}
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Namespace()
		tag := e.Tag()
		param := e.Param()

		switch tag {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s]", field, param)
		case "label":
			return fmt.Errorf("%s: '%v' is not a valid label", field, e.Value())
		case "variable":
			return fmt.Errorf("%s: '%v' is not a valid variable name", field, e.Value())
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, tag)
		}
	}

	return err
}
