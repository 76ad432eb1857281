package citybike

import (
	"fmt"

	"github.com/rowaidaawad07-sudo/citybike-project/internal/validate"
)

// ValidationError reports a single raw field that violated a constraint.
// Validation errors are recoverable: the offending record is rejected and
// collected into the rejection report, and the pipeline continues over the
// remaining dataset.
type ValidationError = validate.Error

// ConfigurationError reports an invalid engine setup, such as an unknown
// user category, entity kind or grouping key. It indicates a programming or
// setup defect and aborts the run.
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration %s: %s", e.Key, e.Reason)
}

// StageOrderError reports an operation issued before the pipeline stage it
// depends on has completed. It is fatal to that call only.
type StageOrderError struct {
	Op       string
	Stage    Stage
	Required Stage
}

func (e *StageOrderError) Error() string {
	return fmt.Sprintf("%s requires stage %s, current stage is %s", e.Op, e.Required, e.Stage)
}
