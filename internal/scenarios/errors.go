package scenarios

import (
	"fmt"

	"github.com/myrjola/bayescalc/internal/errors"
)

// ErrScenarioFormat is matched by every [ScenarioFormatError] with errors.Is.
var ErrScenarioFormat = errors.NewSentinel("malformed scenario")

// ErrTemplateNotFound is returned by [LoadTemplate] for unknown names.
var ErrTemplateNotFound = errors.NewSentinel("scenario template not found")

// ScenarioFormatError describes why a scenario record set could not be read.
type ScenarioFormatError struct {
	// Line is the 1-based line of the record set, 0 when the error is not tied to a line.
	Line int
	// Field is the column involved, if any.
	Field  string
	Reason string
}

func (e *ScenarioFormatError) Error() string {
	switch {
	case e.Line > 0 && e.Field != "":
		return fmt.Sprintf("malformed scenario: line %d, field %q: %s", e.Line, e.Field, e.Reason)
	case e.Field != "":
		return fmt.Sprintf("malformed scenario: field %q: %s", e.Field, e.Reason)
	default:
		return "malformed scenario: " + e.Reason
	}
}

func (e *ScenarioFormatError) Is(target error) bool {
	return target == ErrScenarioFormat //nolint:errorlint // sentinel comparison
}
