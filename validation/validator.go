package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	javaIdentifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
	moduleName     = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)
)

// Validator wraps go-playground/validator with the descriptor rules used by
// module models.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator with the custom tags registered:
//   - javaident: a legal Java identifier
//   - modulename: a lowercase, hyphenated module name usable in schema locations
//   - kind: a value exposing Valid() bool that reports true
func NewValidator() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("javaident", validateJavaIdentifier)
	_ = v.RegisterValidation("modulename", validateModuleName)
	_ = v.RegisterValidation("kind", validateKind)

	return &Validator{validate: v}
}

// GetValidator returns the underlying validator instance.
func (v *Validator) GetValidator() *validator.Validate {
	return v.validate
}

// Validate validates a struct and converts field failures into an *Error.
func (v *Validator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return NewError(validationErrors)
		}
		return err
	}
	return nil
}

// Error collects descriptor field failures.
type Error struct {
	Errors []FieldError `json:"errors"`
}

// FieldError is one failed rule on one descriptor field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

// NewError converts validator errors into an *Error.
func NewError(errs validator.ValidationErrors) *Error {
	fieldErrors := make([]FieldError, 0, len(errs))

	for _, err := range errs {
		fieldErrors = append(fieldErrors, FieldError{
			Field:   err.Namespace(),
			Message: getErrorMessage(err),
			Value:   fmt.Sprintf("%v", err.Value()),
		})
	}

	return &Error{Errors: fieldErrors}
}

func (e *Error) Error() string {
	switch len(e.Errors) {
	case 0:
		return "descriptor validation failed"
	case 1:
		return fmt.Sprintf("descriptor validation failed: %s", e.Errors[0].Message)
	default:
		messages := make([]string, 0, len(e.Errors))
		for _, fe := range e.Errors {
			messages = append(messages, fe.Message)
		}
		return fmt.Sprintf("descriptor validation failed: %d errors: %s", len(e.Errors), strings.Join(messages, "; "))
	}
}

func getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Namespace())
	case "min":
		return fmt.Sprintf("%s must have at least %s entries", fe.Namespace(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must have at most %s entries", fe.Namespace(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Namespace(), fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fe.Namespace())
	case "javaident":
		return fmt.Sprintf("%s must be a valid Java identifier", fe.Namespace())
	case "modulename":
		return fmt.Sprintf("%s must be lowercase letters, digits and hyphens", fe.Namespace())
	case "kind":
		return fmt.Sprintf("%s is not a known type kind", fe.Namespace())
	default:
		return fmt.Sprintf("%s failed validation", fe.Namespace())
	}
}

func validateJavaIdentifier(fl validator.FieldLevel) bool {
	return javaIdentifier.MatchString(fl.Field().String())
}

func validateModuleName(fl validator.FieldLevel) bool {
	return moduleName.MatchString(fl.Field().String())
}

type validKind interface {
	Valid() bool
}

func validateKind(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.CanInterface() {
		if k, ok := field.Interface().(validKind); ok {
			return k.Valid()
		}
	}
	return false
}
