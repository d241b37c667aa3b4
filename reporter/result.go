package reporter

import (
	"fmt"

	"github.com/casereport/testrail-reporter/caseid"
)

// Status is a TestRail result status. The values are TestRail's built-in status IDs.
type Status int

const (
	StatusPassed Status = 1
	StatusFailed Status = 5
)

func (s Status) String() string {
	switch s {
	case StatusPassed:
		return "passed"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// ResultEntry is one result destined for the published batch. Several entries may refer to
// the same case; they are all sent and TestRail decides how to merge them.
type ResultEntry struct {
	CaseID  caseid.ID
	Status  Status
	Comment string
}

// Counters counts every pass and fail of a run, whether or not the test was mapped to a case.
type Counters struct {
	Passes int
	Fails  int
}

func (c Counters) Total() int {
	return c.Passes + c.Fails
}

// PassRatio is Passes/Total. A run with no tests has a ratio of 0.
func (c Counters) PassRatio() float64 {
	if c.Total() == 0 {
		return 0
	}
	return float64(c.Passes) / float64(c.Total())
}

// PassThreshold is the lowest pass ratio for which a run is classified as passing.
const PassThreshold = 0.9

// Outcome is the classification of a whole run.
type Outcome string

const (
	OutcomePass Outcome = "pass"
	OutcomeFail Outcome = "fail"
)

// Classify returns OutcomePass if the pass ratio reaches PassThreshold. A run with no tests
// is classified as OutcomeFail.
func Classify(c Counters) Outcome {
	if c.Total() > 0 && c.PassRatio() >= PassThreshold {
		return OutcomePass
	}
	return OutcomeFail
}

// Summary describes how a run ended.
type Summary struct {
	RunName   string
	Counters  Counters
	Ratio     float64
	Outcome   Outcome
	Entries   int
	Published bool
	Notified  bool
	// Warnings holds non-fatal problems such as ErrNoMatchedCases or a *NotificationError.
	Warnings []error
}

func (s Summary) String() string {
	return fmt.Sprintf("%s: %d/%d passed (%s), %d results",
		s.RunName, s.Counters.Passes, s.Counters.Total(), s.Outcome, s.Entries)
}
