package reporter

import (
	"context"
	"sync"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

type fakeTestRail struct {
	createErr  error
	publishErr error
	runs       []createdRun
	published  [][]ResultEntry
	lock       sync.Mutex
}

type createdRun struct {
	name        string
	description string
}

func (f *fakeTestRail) CreateRun(ctx context.Context, name, description string) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.runs = append(f.runs, createdRun{name: name, description: description})
	return f.createErr
}

func (f *fakeTestRail) PublishResults(ctx context.Context, entries []ResultEntry) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.published = append(f.published, entries)
	return f.publishErr
}

func (f *fakeTestRail) createdRuns() []createdRun {
	f.lock.Lock()
	defer f.lock.Unlock()
	return append([]createdRun(nil), f.runs...)
}

type fakeNotifier struct {
	err  error
	sent []Notification
	lock sync.Mutex
}

func (f *fakeNotifier) Send(ctx context.Context, n Notification) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.sent = append(f.sent, n)
	return f.err
}

func (f *fakeNotifier) notifications() []Notification {
	f.lock.Lock()
	defer f.lock.Unlock()
	return append([]Notification(nil), f.sent...)
}

type recordingRunLogger struct {
	started  []string
	warnings []error
	finished []Summary
	errs     []error
}

func (r *recordingRunLogger) RunStarted(name string) { r.started = append(r.started, name) }
func (r *recordingRunLogger) RunWarning(err error)   { r.warnings = append(r.warnings, err) }
func (r *recordingRunLogger) RunFinished(summary Summary, err error) {
	r.finished = append(r.finished, summary)
	r.errs = append(r.errs, err)
}

func makeValidConfig() RunConfig {
	createTestRun := false
	return RunConfig{
		Domain:        ldvalue.NewOptionalString("example.testrail.io"),
		Username:      ldvalue.NewOptionalString("user@example.com"),
		Password:      ldvalue.NewOptionalString("secret"),
		ProjectID:     ldvalue.NewOptionalInt(1),
		SuiteID:       ldvalue.NewOptionalInt(2),
		CreateTestRun: &createTestRun,
	}
}

func boolPtr(b bool) *bool { return &b }
