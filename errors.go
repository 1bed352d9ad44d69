package validators

import (
	"errors"
	"strings"

	"github.com/reoring/validators/i18n"
	"github.com/reoring/validators/internal/resolve"
	"github.com/reoring/validators/schema"
)

// Overall message tokens expanded from the first detail.
const (
	ErrorToken  = "{error}"
	DetailToken = "{detail}"
	FieldToken  = "{field}"
)

// CodeInvalidValue keys the default overall message in the i18n catalogue.
const CodeInvalidValue = "invalid_value"

// ConfigError reports a malformed union schema. It is returned (or, from
// Test, Errors and FirstError, panicked) on every call once detected.
type ConfigError = resolve.ConfigError

// Configuration error kinds, for use with errors.Is.
var (
	ErrDiscriminantKeyMissing     = resolve.ErrDiscriminantKeyMissing
	ErrOptionalTypeIdentifyingKey = resolve.ErrOptionalTypeIdentifyingKey
	ErrMemberWithMultipleKeys     = resolve.ErrMemberWithMultipleKeys
	ErrMembersWithSameKey         = resolve.ErrMembersWithSameKey
	ErrMemberWithNoUniqueKey      = resolve.ErrMemberWithNoUniqueKey
)

// ValidationError is returned when a value fails validation. Assert-style
// calls carry exactly one detail; Validate-style calls carry all of them.
type ValidationError struct {
	// Message is the overall message with its tokens expanded.
	Message string
	Details []schema.ValueError
}

// Error renders the overall message followed by the details:
//
//	Invalid value: int1: Expected integer
//	Invalid value:
//	 - int1: Expected integer
//	 - int2: must be an int
func (e *ValidationError) Error() string {
	switch len(e.Details) {
	case 0:
		return e.Message
	case 1:
		return e.Message + ": " + e.Details[0].String()
	}
	b := &strings.Builder{}
	b.WriteString(e.Message)
	b.WriteString(":")
	for _, d := range e.Details {
		b.WriteString("\n - ")
		b.WriteString(d.String())
	}
	return b.String()
}

// AsValidationError extracts a *ValidationError from err using errors.As.
func AsValidationError(err error) (*ValidationError, bool) {
	if err == nil {
		return nil, false
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// IsConfigError reports whether err is a union configuration error.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

func newValidationError(overall []string, details []schema.ValueError) *ValidationError {
	msg := ""
	if len(overall) > 0 {
		msg = overall[len(overall)-1]
	}
	if msg == "" {
		msg = i18n.T(CodeInvalidValue, nil)
	}
	return &ValidationError{Message: expandOverall(msg, details), Details: details}
}

func expandOverall(msg string, details []schema.ValueError) string {
	if !strings.Contains(msg, "{") {
		return msg
	}
	var detail, field string
	if len(details) > 0 {
		detail, field = details[0].String(), details[0].Field()
	}
	return strings.NewReplacer(ErrorToken, detail, DetailToken, detail, FieldToken, field).Replace(msg)
}
