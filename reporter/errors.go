package reporter

import (
	"errors"
	"fmt"
)

// ErrNoMatchedCases is reported when a run ends without any test title that contains a
// case marker. Nothing is published, but the run is otherwise complete.
var ErrNoMatchedCases = errors.New(
	"no test cases were matched; ensure that test titles contain case markers such as C123")

var (
	ErrRunAlreadyStarted = errors.New("run has already been started")
	ErrRunFinished       = errors.New("run has already finished")
)

// ConfigurationError means the reporter options were missing, malformed, or lacked a
// required value. No run is started when this happens.
type ConfigurationError struct {
	// Field is the missing required option; it is empty if the options as a whole were
	// missing or could not be read.
	Field string
	Err   error
}

func (e *ConfigurationError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("invalid reporter options: %s", e.Err)
	case e.Field == "":
		return "missing reporter options"
	default:
		return fmt.Sprintf("missing %s value; please update the reporter options", e.Field)
	}
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// NotificationError wraps a failure to deliver the end-of-run notification. It is reported
// as a warning and never stops results from being published.
type NotificationError struct {
	Err error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notification delivery failed: %s", e.Err)
}

func (e *NotificationError) Unwrap() error { return e.Err }

// RunCreationError wraps a failure to create the run in the test management system.
// Results cannot be published without a run.
type RunCreationError struct {
	Err error
}

func (e *RunCreationError) Error() string {
	return fmt.Sprintf("test run creation failed: %s", e.Err)
}

func (e *RunCreationError) Unwrap() error { return e.Err }

// PublishError wraps a failure of the results batch call. It is not retried.
type PublishError struct {
	Entries int
	Err     error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publishing %d results failed: %s", e.Entries, e.Err)
}

func (e *PublishError) Unwrap() error { return e.Err }
