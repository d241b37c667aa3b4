package reporter

import (
	"fmt"
	"time"

	"github.com/casereport/testrail-reporter/caseid"
)

// Aggregator accumulates the results of one run. The zero value is ready to use.
//
// It is not safe for concurrent use; the Controller only calls it from event handlers,
// which the host delivers one at a time.
type Aggregator struct {
	counters Counters
	entries  []ResultEntry
}

// RecordPass counts a passed test and adds a passed entry for each case in its title.
func (a *Aggregator) RecordPass(title string, duration time.Duration) {
	a.counters.Passes++
	a.record(title, StatusPassed, fmt.Sprintf("Execution time: %dms", duration.Milliseconds()))
}

// RecordFail counts a failed test and adds a failed entry for each case in its title, with
// the failure message as the comment.
func (a *Aggregator) RecordFail(title, message string) {
	a.counters.Fails++
	a.record(title, StatusFailed, message)
}

func (a *Aggregator) record(title string, status Status, comment string) {
	for _, id := range caseid.Extract(title) {
		a.entries = append(a.entries, ResultEntry{CaseID: id, Status: status, Comment: comment})
	}
}

func (a *Aggregator) Counters() Counters {
	return a.counters
}

// Entries returns a copy of the recorded entries in the order they were recorded.
func (a *Aggregator) Entries() []ResultEntry {
	return append([]ResultEntry(nil), a.entries...)
}
