// Package validation applies per-entity field rules to request payloads.
//
// Presence follows the payload's truthiness: an empty string, a zero number
// and an omitted or null key are all absent. Request types declare their rules
// with struct tags: "required" for create-mode mandatory fields and
// "required_without_all" for the update-mode at-least-one rule.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/bookseller-api/pkg/util/errorutil"
)

// Mode selects which message a missing-field failure produces.
type Mode int

const (
	// Create reports every missing mandatory field.
	Create Mode = iota
	// Update reports the set of fields of which at least one is needed.
	Update
)

// Validator wraps go-playground/validator with payload field names.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator that reports fields by their json names.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return &Validator{v: v}
}

// Validate checks req and returns a 400 DomainError describing the failure.
func (val *Validator) Validate(mode Mode, req any) error {
	err := val.v.Struct(req)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	var missing, malformed []string
	for _, fe := range ve {
		switch fe.Tag() {
		case "required", "required_without_all":
			missing = append(missing, fe.Field())
		default:
			malformed = append(malformed, fieldError(fe))
		}
	}

	if len(missing) > 0 {
		details := map[string]any{"fields": missing}
		if mode == Update {
			return apperrors.NewValidationError(atLeastOneMessage(missing), details)
		}
		return apperrors.NewValidationError(missingMessage(missing), details)
	}
	return apperrors.NewValidationError(strings.Join(malformed, "; "), nil)
}

func missingMessage(fields []string) string {
	if len(fields) == 1 {
		return fmt.Sprintf("Missing required field: %s is mandatory", fields[0])
	}
	return fmt.Sprintf("Missing required fields: %s are mandatory", joinFields(fields, "and"))
}

func atLeastOneMessage(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = "'" + f + "'"
	}
	if len(quoted) == 1 {
		return fmt.Sprintf("%s must be provided", quoted[0])
	}
	return fmt.Sprintf("At least one of %s must be provided", joinFields(quoted, "or"))
}

// joinFields renders "a", "a and b", or "a, b, and c".
func joinFields(fields []string, conj string) string {
	switch len(fields) {
	case 0:
		return ""
	case 1:
		return fields[0]
	case 2:
		return fields[0] + " " + conj + " " + fields[1]
	}
	return strings.Join(fields[:len(fields)-1], ", ") + ", " + conj + " " + fields[len(fields)-1]
}

func fieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "datetime":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", fe.Field())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", fe.Field(), fe.Tag())
	}
}
