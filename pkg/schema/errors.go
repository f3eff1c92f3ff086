package schema

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package matches one of them with
// errors.Is.
var (
	ErrInvalidFileSource     = errors.New("invalid file source")
	ErrInvalidSchema         = errors.New("invalid schema")
	ErrInvalidAttribute      = errors.New("invalid attribute")
	ErrInvalidAttributeLogic = errors.New("invalid attribute logic")
)

// Violation codes carried by ValidationError.
const (
	CodeUnknownProperty = "unknown_property"
	CodeMissingRequired = "missing_required"
	CodeInvalidValue    = "invalid_value"
	CodeLogic           = "logic"
)

// Attribute property keys.
const (
	PropertyName        = "name"
	PropertyDataType    = "dataType"
	PropertyType        = "type"
	PropertyConstraints = "constraints"
)

// properties lists the accepted attribute property keys in scan order.
var properties = []string{PropertyName, PropertyDataType, PropertyType, PropertyConstraints}

// ValidationError describes the first violation found while building an
// attribute.
type ValidationError struct {
	Kind      error  // ErrInvalidAttribute or ErrInvalidAttributeLogic
	Code      string // one of the Code constants
	Attribute string // attribute name, when known
	Property  string // offending property key
	Rule      Rule   // offending constraint rule, for constraint violations
	Value     string // rendered offending value
	Reason    string
}

func (e *ValidationError) Error() string {
	switch e.Code {
	case CodeLogic:
		return fmt.Sprintf("Logic: [%s] %s", e.Attribute, e.Reason)
	case CodeUnknownProperty, CodeMissingRequired:
		return e.Reason
	}
	if e.Rule != "" {
		return fmt.Sprintf("%s: rule %q value %s: %s", e.Property, e.Rule, e.Value, e.Reason)
	}
	return fmt.Sprintf("%s: value %s: %s", e.Property, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Kind }

func logicError(name, format string, args ...any) *ValidationError {
	return &ValidationError{
		Kind:      ErrInvalidAttributeLogic,
		Code:      CodeLogic,
		Attribute: name,
		Reason:    fmt.Sprintf(format, args...),
	}
}

func valueError(property string, rule Rule, value, reason string) *ValidationError {
	return &ValidationError{
		Kind:     ErrInvalidAttribute,
		Code:     CodeInvalidValue,
		Property: property,
		Rule:     rule,
		Value:    value,
		Reason:   reason,
	}
}
