// Package gotest drives a reporter from the event stream written by "go test -json".
//
// Each leaf test becomes one pass or fail event, titled with the test's full name such as
// "TestCheckout/C202,_C203_checkout". A test that has subtests is not reported itself,
// since its outcome is the combination of its subtests' outcomes, unless it fails while
// none of its subtests did.
package gotest

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math"
	"strings"
	"time"

	"github.com/casereport/testrail-reporter/logging"
	"github.com/casereport/testrail-reporter/reporter"
)

const maxLineSize = 4 * 1024 * 1024

const defaultFailureMessage = "test failed"

// Event is one line of "go test -json" output, as defined by "go doc test2json".
type Event struct {
	Time    time.Time
	Action  string
	Package string
	Test    string
	Elapsed float64
	Output  string
}

// Observer receives the lifecycle of one run; *reporter.Controller implements it.
type Observer interface {
	OnStart(ctx context.Context) error
	OnPass(title string, duration time.Duration)
	OnFail(title, message string)
	OnEnd(ctx context.Context) (reporter.Summary, error)
}

type testKey struct {
	pkg  string
	test string
}

// Adapter translates test2json events into Observer calls.
type Adapter struct {
	observer Observer
	filter   Filter
	logger   logging.Logger
	output   map[testKey]*strings.Builder
	parents  map[testKey]bool
	// tests with a failed subtest at any depth
	failedBelow map[testKey]bool
}

// NewAdapter creates an Adapter. A nil filter reports every test.
func NewAdapter(observer Observer, filter Filter, logger logging.Logger) *Adapter {
	if logger == nil {
		logger = logging.NullLogger()
	}
	return &Adapter{
		observer: observer,
		filter:   filter,
		logger:   logger,
		output:   make(map[testKey]*strings.Builder),
		parents:  make(map[testKey]bool),

		failedBelow: make(map[testKey]bool),
	}
}

// Run starts the run, handles every event read from r, and ends the run when r is
// exhausted. Lines that are not JSON events, such as build output, are ignored.
//
// If reading r fails the run is still ended, and the read error is returned unless ending
// the run produced an error of its own.
func (a *Adapter) Run(ctx context.Context, r io.Reader) (reporter.Summary, error) {
	if err := a.observer.OnStart(ctx); err != nil {
		return reporter.Summary{}, err
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		a.handleLine(scanner.Bytes())
	}
	readErr := scanner.Err()
	if readErr != nil {
		a.logger.Printf("Error reading test events: %s", readErr)
	}
	summary, err := a.observer.OnEnd(ctx)
	if err == nil {
		err = readErr
	}
	return summary, err
}

func (a *Adapter) handleLine(line []byte) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 || line[0] != '{' {
		return
	}
	var ev Event
	if err := json.Unmarshal(line, &ev); err != nil {
		a.logger.Printf("Ignoring malformed test event %q: %s", string(line), err)
		return
	}
	a.HandleEvent(ev)
}

// HandleEvent processes a single event. Events without a test name describe a whole
// package and are ignored.
func (a *Adapter) HandleEvent(ev Event) {
	if ev.Test == "" {
		return
	}
	key := testKey{pkg: ev.Package, test: ev.Test}
	a.markParents(key)

	switch ev.Action {
	case "output":
		b := a.output[key]
		if b == nil {
			b = &strings.Builder{}
			a.output[key] = b
		}
		b.WriteString(ev.Output)
	case "pass":
		if a.shouldReport(key, false) {
			a.observer.OnPass(ev.Test, elapsed(ev.Elapsed))
		}
		delete(a.output, key)
	case "fail":
		if a.shouldReport(key, true) {
			a.observer.OnFail(ev.Test, failureMessage(a.output[key]))
		}
		a.markFailedAncestors(key)
		delete(a.output, key)
	case "skip":
		a.logger.Printf("Test %s was skipped", ev.Test)
		delete(a.output, key)
	}
}

func (a *Adapter) markParents(key testKey) {
	name := key.test
	for {
		i := strings.LastIndex(name, "/")
		if i < 0 {
			return
		}
		name = name[:i]
		a.parents[testKey{pkg: key.pkg, test: name}] = true
	}
}

func (a *Adapter) markFailedAncestors(key testKey) {
	name := key.test
	for {
		i := strings.LastIndex(name, "/")
		if i < 0 {
			return
		}
		name = name[:i]
		a.failedBelow[testKey{pkg: key.pkg, test: name}] = true
	}
}

func (a *Adapter) shouldReport(key testKey, failed bool) bool {
	if a.parents[key] && (!failed || a.failedBelow[key]) {
		return false
	}
	if a.filter != nil && !a.filter(key.test) {
		a.logger.Printf("Test %s excluded by filter parameters", key.test)
		return false
	}
	return true
}

func elapsed(seconds float64) time.Duration {
	return time.Duration(math.Round(seconds * float64(time.Second)))
}

// failureMessage keeps the test's own log lines and drops the framing that go test adds
// around them.
func failureMessage(output *strings.Builder) string {
	if output == nil {
		return defaultFailureMessage
	}
	var lines []string
	for _, line := range strings.Split(output.String(), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || isFramingLine(trimmed) {
			continue
		}
		lines = append(lines, trimmed)
	}
	if len(lines) == 0 {
		return defaultFailureMessage
	}
	return strings.Join(lines, "\n")
}

func isFramingLine(line string) bool {
	for _, prefix := range []string{"=== ", "--- PASS", "--- FAIL", "--- SKIP"} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}
