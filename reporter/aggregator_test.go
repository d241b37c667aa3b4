package reporter

import (
	"testing"
	"time"

	"github.com/casereport/testrail-reporter/caseid"

	"github.com/stretchr/testify/assert"
)

func TestRecordPassAddsEntryPerCase(t *testing.T) {
	var a Aggregator
	a.RecordPass("C101 login works", 50*time.Millisecond)

	assert.Equal(t, Counters{Passes: 1}, a.Counters())
	assert.Equal(t, []ResultEntry{
		{CaseID: 101, Status: StatusPassed, Comment: "Execution time: 50ms"},
	}, a.Entries())
}

func TestRecordFailSharesMessageAcrossCases(t *testing.T) {
	var a Aggregator
	a.RecordFail("C202, C203 checkout", "Timeout")

	assert.Equal(t, Counters{Fails: 1}, a.Counters())
	assert.Equal(t, []ResultEntry{
		{CaseID: 202, Status: StatusFailed, Comment: "Timeout"},
		{CaseID: 203, Status: StatusFailed, Comment: "Timeout"},
	}, a.Entries())
}

func TestUnmappedTestsStillCount(t *testing.T) {
	var a Aggregator
	a.RecordPass("no marker here", time.Second)
	a.RecordFail("nor here", "boom")

	assert.Equal(t, Counters{Passes: 1, Fails: 1}, a.Counters())
	assert.Empty(t, a.Entries())
}

func TestEntriesKeepArrivalOrderAndDuplicates(t *testing.T) {
	var a Aggregator
	a.RecordPass("C3 first", time.Millisecond)
	a.RecordFail("C1 second", "bad")
	a.RecordPass("C3 third", 2*time.Millisecond)

	var ids []caseid.ID
	for _, e := range a.Entries() {
		ids = append(ids, e.CaseID)
	}
	assert.Equal(t, []caseid.ID{3, 1, 3}, ids)
}

func TestCountersMatchNumberOfEvents(t *testing.T) {
	var a Aggregator
	titles := []string{"C1", "C2 C3", "none", "C4", "C5, C6, C7"}
	for i, title := range titles {
		if i%2 == 0 {
			a.RecordPass(title, 0)
		} else {
			a.RecordFail(title, "x")
		}
	}
	assert.Equal(t, len(titles), a.Counters().Total())
	assert.Equal(t, Counters{Passes: 3, Fails: 2}, a.Counters())
	assert.Len(t, a.Entries(), 7)
}

func TestEntriesReturnsCopy(t *testing.T) {
	var a Aggregator
	a.RecordPass("C1", 0)
	entries := a.Entries()
	entries[0].Comment = "changed"
	assert.Equal(t, "Execution time: 0ms", a.Entries()[0].Comment)
}
