package model

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors wrapped by GenerationError causes.
var (
	ErrUnknownKind       = errors.New("unknown type kind")
	ErrTypeArguments     = errors.New("invalid type arguments")
	ErrEmptyEnum         = errors.New("enum declares no constants")
	ErrDuplicateElement  = errors.New("duplicate element name")
	ErrMissingParameters = errors.New("transformer requires a source parameter")
	ErrMissingReturnType = errors.New("transformer requires a return type")
	ErrVoidSourceType    = errors.New("transformer source type is void")
)

// GenerationError aborts generation of one module. It names the offending
// module and element (type, method or parameter) so a build log points at the
// annotated source. All messages are lowercase.
type GenerationError struct {
	Module  string // module name
	Element string // offending type, method or parameter path, e.g. "send.retries"
	Message string // lowercase description
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	parts := []string{"generation_failed:"}
	if e.Module != "" {
		parts = append(parts, "module "+e.Module)
	}
	if e.Element != "" {
		parts = append(parts, e.Element)
	}
	if e.Message != "" {
		parts = append(parts, e.Message)
	}
	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("(%v)", e.Cause))
	}
	return strings.Join(parts, " ")
}

// Unwrap exposes the cause for errors.Is checks against the sentinels.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// NewGenerationError creates a GenerationError for an element of a module.
func NewGenerationError(module, element, message string, cause error) *GenerationError {
	return &GenerationError{
		Module:  module,
		Element: element,
		Message: message,
		Cause:   cause,
	}
}

// IsGenerationError reports whether err is or wraps a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}
