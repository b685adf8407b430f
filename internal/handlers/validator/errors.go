package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidConfiguration is returned when a configuration fails validation.
// Fields holds one "field: reason" entry per failed rule.
type ErrInvalidConfiguration struct {
	error
	Fields []string
}

func NewErrInvalidConfiguration(fields []string) *ErrInvalidConfiguration {
	return &ErrInvalidConfiguration{
		error:  fmt.Errorf("invalid configuration: %s", strings.Join(fields, "; ")),
		Fields: fields,
	}
}

// fromValidationErrors converts the underlying validator error into an ErrInvalidConfiguration.
func fromValidationErrors(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fields := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fields = append(fields, fmt.Sprintf("%s: %s", fieldPath(fe), reason(fe)))
	}
	return NewErrInvalidConfiguration(fields)
}

// fieldPath strips the root struct name: "configurationForm.samples.targets[1]" -> "samples.targets[1]"
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, found := strings.Cut(ns, "."); found {
		return rest
	}
	return ns
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "qpcr_name":
		return "must start with a letter or digit and contain only letters, digits, spaces or ._+-"
	case "unique":
		return "must not contain duplicates"
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters long", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "max_reactions":
		return fmt.Sprintf("groups x repeat x targets must not exceed %s reactions", fe.Param())
	case "finite":
		return "must be a finite number"
	default:
		return fmt.Sprintf("failed on the %q rule", fe.Tag())
	}
}
