package reporter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/casereport/testrail-reporter/logging"
)

// TestManagementClient is the remote system that receives the run's results.
type TestManagementClient interface {
	// CreateRun creates a new run that subsequent PublishResults calls will target.
	CreateRun(ctx context.Context, name, description string) error
	// PublishResults sends every entry in a single batch.
	PublishResults(ctx context.Context, entries []ResultEntry) error
}

// State is the lifecycle state of a Controller.
type State int

const (
	StateIdle State = iota
	StateStarted
	StateCollecting
	StateFinalizing
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStarted:
		return "started"
	case StateCollecting:
		return "collecting"
	case StateFinalizing:
		return "finalizing"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Controller observes a single test run. It is driven by the host's lifecycle events,
// which must be delivered one at a time: OnStart, any number of OnPass and OnFail, then
// OnEnd. A Controller cannot be reused for a second run.
type Controller struct {
	config     RunConfig
	testRail   TestManagementClient
	notifier   Notifier
	runLogger  RunLogger
	logger     logging.Logger
	now        func() time.Time
	state      State
	runName    string
	aggregator Aggregator
	created    chan error
}

type Option func(*Controller)

func WithDebugLogger(logger logging.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithRunLogger(runLogger RunLogger) Option {
	return func(c *Controller) {
		if runLogger != nil {
			c.runLogger = runLogger
		}
	}
}

// WithClock replaces time.Now as the source of the run's start time.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// NewController validates the configuration and creates a Controller for one run. If the
// configuration is incomplete it returns a *ConfigurationError and no Controller.
//
// notifier may be nil, in which case no notification is sent.
func NewController(
	config RunConfig,
	testRail TestManagementClient,
	notifier Notifier,
	options ...Option,
) (*Controller, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if testRail == nil {
		return nil, errors.New("a test management client is required")
	}
	c := &Controller{
		config:    config,
		testRail:  testRail,
		notifier:  notifier,
		runLogger: nullRunLogger{},
		logger:    logging.NullLogger(),
		now:       time.Now,
	}
	for _, o := range options {
		o(c)
	}
	return c, nil
}

func (c *Controller) State() State {
	return c.state
}

// RunName returns the display name of the run; it is empty until the run has started.
func (c *Controller) RunName() string {
	return c.runName
}

func (c *Controller) Counters() Counters {
	return c.aggregator.Counters()
}

func (c *Controller) Entries() []ResultEntry {
	return c.aggregator.Entries()
}

// OnStart begins the run. If the configuration asks for a new TestRail run, its creation is
// started in the background; OnStart does not wait for it, and any failure is reported by
// OnEnd.
func (c *Controller) OnStart(ctx context.Context) error {
	if c.state != StateIdle {
		return ErrRunAlreadyStarted
	}
	c.begin()
	if c.config.ShouldCreateTestRun() {
		name, description := c.runName, c.runDescription()
		c.created = make(chan error, 1)
		go func() {
			c.logger.Printf("Creating test run %q", name)
			c.created <- c.testRail.CreateRun(ctx, name, description)
		}()
	}
	return nil
}

func (c *Controller) begin() {
	c.state = StateStarted
	c.runName = RunName(c.config.RunName, c.now())
	c.runLogger.RunStarted(c.runName)
}

func (c *Controller) runDescription() string {
	if c.config.DashboardURL == "" {
		return ""
	}
	return "For the test run visit " + c.config.DashboardURL
}

// OnPass records a passed test.
func (c *Controller) OnPass(title string, duration time.Duration) {
	if c.acceptEvent("pass", title) {
		c.aggregator.RecordPass(title, duration)
	}
}

// OnFail records a failed test.
func (c *Controller) OnFail(title, message string) {
	if c.acceptEvent("fail", title) {
		c.aggregator.RecordFail(title, message)
	}
}

func (c *Controller) acceptEvent(kind, title string) bool {
	switch c.state {
	case StateFinalizing, StateDone:
		c.logger.Printf("Ignoring %s event for %q after the run ended", kind, title)
		return false
	case StateIdle:
		c.logger.Printf("Received %s event for %q before the run started", kind, title)
		c.begin()
	}
	c.state = StateCollecting
	return true
}

// OnEnd finishes the run: it sends the summary notification and publishes the results.
// It may only be called once.
//
// The returned error is a *PublishError or *RunCreationError if results could not be
// published. Non-fatal problems, including ErrNoMatchedCases, are in Summary.Warnings.
func (c *Controller) OnEnd(ctx context.Context) (Summary, error) {
	switch c.state {
	case StateFinalizing, StateDone:
		return Summary{}, ErrRunFinished
	case StateIdle:
		c.begin()
	}
	c.state = StateFinalizing
	summary, err := c.finalize(ctx)
	c.state = StateDone
	c.runLogger.RunFinished(summary, err)
	return summary, err
}

func (c *Controller) finalize(ctx context.Context) (Summary, error) {
	counters := c.aggregator.Counters()
	entries := c.aggregator.Entries()
	summary := Summary{
		RunName:  c.runName,
		Counters: counters,
		Ratio:    counters.PassRatio(),
		Outcome:  Classify(counters),
		Entries:  len(entries),
	}

	var notified chan error
	if c.shouldNotify(summary.Outcome) {
		n := BuildNotification(c.runName, c.config.DashboardURL, c.config.EndIcon, counters)
		notified = make(chan error, 1)
		go func() {
			notified <- c.notifier.Send(ctx, n)
		}()
	}

	err := c.publish(ctx, entries, &summary)

	if notified != nil {
		if nerr := <-notified; nerr != nil {
			c.warn(&summary, &NotificationError{Err: nerr})
		} else {
			summary.Notified = true
		}
	}
	return summary, err
}

func (c *Controller) shouldNotify(outcome Outcome) bool {
	if c.notifier == nil {
		c.logger.Printf("No notifier configured, skipping notification")
		return false
	}
	if c.config.FailureOnly && outcome == OutcomePass {
		c.logger.Printf("Run passed and notifications are for failures only, skipping notification")
		return false
	}
	return true
}

func (c *Controller) publish(ctx context.Context, entries []ResultEntry, summary *Summary) error {
	var createErr error
	if c.created != nil {
		if err := <-c.created; err != nil {
			createErr = &RunCreationError{Err: err}
		}
	}
	if len(entries) == 0 {
		c.warn(summary, ErrNoMatchedCases)
		return createErr
	}
	if createErr != nil {
		return createErr
	}
	c.logger.Printf("Publishing %d results", len(entries))
	if err := c.testRail.PublishResults(ctx, entries); err != nil {
		return &PublishError{Entries: len(entries), Err: err}
	}
	summary.Published = true
	return nil
}

func (c *Controller) warn(summary *Summary, err error) {
	c.logger.Printf("Warning: %s", err)
	c.runLogger.RunWarning(err)
	summary.Warnings = append(summary.Warnings, err)
}
