package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/casereport/testrail-reporter/logging"
	"github.com/casereport/testrail-reporter/reporter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleRunLoggerNoMatchedCases(t *testing.T) {
	var buf bytes.Buffer
	NewConsoleRunLogger(&buf).RunWarning(reporter.ErrNoMatchedCases)
	assert.Contains(t, buf.String(), "(TestRail Reporter)")
	assert.Contains(t, buf.String(), "match Cxxx")
}

func TestConsoleRunLoggerOtherWarning(t *testing.T) {
	var buf bytes.Buffer
	NewConsoleRunLogger(&buf).RunWarning(&reporter.NotificationError{Err: errors.New("timeout")})
	assert.Contains(t, buf.String(), "Warning: notification delivery failed: timeout")
}

func TestConsoleRunLoggerFinished(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleRunLogger(&buf)
	logger.RunFinished(reporter.Summary{
		Counters:  reporter.Counters{Passes: 9, Fails: 1},
		Outcome:   reporter.OutcomePass,
		Entries:   12,
		Published: true,
	}, nil)
	assert.Equal(t, "(TestRail Reporter) 9/10 passed\n  Published 12 results\n", buf.String())
}

func TestConsoleRunLoggerDumpsDebugOutputOnFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleRunLogger(&buf)
	logger.Debug = &logging.CapturingLogger{}
	logger.DebugOutputOnFailure = true
	logger.Debug.Printf("Publishing %d results", 3)

	logger.RunFinished(reporter.Summary{Counters: reporter.Counters{Passes: 3}, Outcome: reporter.OutcomePass},
		&reporter.PublishError{Entries: 3, Err: errors.New("HTTP 500")})

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[2], "    DEBUG ["), lines[2])
	assert.True(t, strings.HasSuffix(lines[2], "] Publishing 3 results"), lines[2])
}

func TestConsoleRunLoggerDebugOutputOnSuccess(t *testing.T) {
	summary := reporter.Summary{Counters: reporter.Counters{Passes: 1}, Outcome: reporter.OutcomePass, Published: true, Entries: 1}

	var quiet bytes.Buffer
	logger := NewConsoleRunLogger(&quiet)
	logger.Debug = &logging.CapturingLogger{}
	logger.DebugOutputOnFailure = true
	logger.Debug.Printf("Publishing 1 results")
	logger.RunFinished(summary, nil)
	assert.NotContains(t, quiet.String(), "DEBUG")

	var verbose bytes.Buffer
	logger = NewConsoleRunLogger(&verbose)
	logger.Debug = &logging.CapturingLogger{}
	logger.DebugOutputOnSuccess = true
	logger.Debug.Printf("Publishing 1 results")
	logger.RunFinished(summary, nil)
	assert.Contains(t, verbose.String(), "    DEBUG [")
}
