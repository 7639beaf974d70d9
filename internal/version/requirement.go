package version

import (
	"errors"
	"fmt"
)

// Requirement identifiers the target catalog's prereq attributes may
// reference, with the tor version that introduced the feature.
var requirements = map[string]Version{
	// ControlSocket support.
	"TOR_CONTROL_SOCKET": {Major: 0, Minor: 2, Micro: 0, Patch: 30},

	// DisableDebuggerAttachment option.
	"TOR_PTRACE": {Major: 0, Minor: 2, Micro: 3, Patch: 16, Status: "alpha"},
}

// UnknownRequirementError indicates a prereq identifier with no entry
// in the requirement table.
type UnknownRequirementError struct {
	ID string
}

// Error implements the error interface.
func (e *UnknownRequirementError) Error() string {
	return fmt.Sprintf("unrecognized version requirement: %s", e.ID)
}

// IsUnknownRequirement returns true if the error is an
// UnknownRequirementError. Uses errors.As to handle wrapped errors.
func IsUnknownRequirement(err error) bool {
	var ure *UnknownRequirementError
	return errors.As(err, &ure)
}

// Requirement looks up the minimum version for a prereq identifier.
func Requirement(id string) (Version, error) {
	minimum, ok := requirements[id]
	if !ok {
		return Version{}, &UnknownRequirementError{ID: id}
	}
	return minimum, nil
}

// Check verifies that the running tor version satisfies the named
// requirement.
func Check(id string, running Version) error {
	minimum, err := Requirement(id)
	if err != nil {
		return err
	}
	if !running.AtLeast(minimum) {
		return fmt.Errorf("%s requires tor %s or later, running %s", id, minimum, running)
	}
	return nil
}
