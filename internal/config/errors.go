package config

import (
	"errors"
	"fmt"
)

// ParseError indicates a settings file line that matches neither the
// "key value" nor the "prefix.attr NAME => VALUE" pattern.
type ParseError struct {
	// Source is the file path or label the line came from.
	Source string

	// Line is the 1-based line number.
	Line int

	// Text is the offending line, stripped of comments and whitespace.
	Text string

	// Reason describes what made the line unparseable.
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s: %q", e.Source, e.Line, e.Reason, e.Text)
}

// UnknownTargetError indicates a --target name with no entry in the
// loaded target table.
type UnknownTargetError struct {
	// Name is the target as the user supplied it.
	Name string

	// Known lists the declared target names, in declaration order.
	Known []string
}

// Error implements the error interface.
func (e *UnknownTargetError) Error() string {
	return fmt.Sprintf("invalid integration target: %s", e.Name)
}

// UnknownSettingError indicates a key not in the schema, reported only
// when the loader runs in strict mode.
type UnknownSettingError struct {
	Source string
	Line   int
	Key    string
}

// Error implements the error interface.
func (e *UnknownSettingError) Error() string {
	return fmt.Sprintf("%s:%d: unrecognized setting %q", e.Source, e.Line, e.Key)
}

// IsParseError returns true if the error is a ParseError.
// Uses errors.As to handle wrapped errors.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// IsUnknownTarget returns true if the error is an UnknownTargetError.
// Uses errors.As to handle wrapped errors.
func IsUnknownTarget(err error) bool {
	var ute *UnknownTargetError
	return errors.As(err, &ute)
}

// IsUnknownSetting returns true if the error is an UnknownSettingError.
// Uses errors.As to handle wrapped errors.
func IsUnknownSetting(err error) bool {
	var use *UnknownSettingError
	return errors.As(err, &use)
}
