package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/casereport/testrail-reporter/logging"
	"github.com/casereport/testrail-reporter/reporter"

	"github.com/fatih/color"
)

const bannerText = "(TestRail Reporter)"

// ConsoleRunLogger prints the operator-facing notices of a run.
//
// If Debug is set, its captured output is printed after the run's result when the run
// could not be published (DebugOutputOnFailure) or when it could (DebugOutputOnSuccess).
type ConsoleRunLogger struct {
	Debug                *logging.CapturingLogger
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool

	out     io.Writer
	banner  *color.Color
	warning *color.Color
	failure *color.Color
	success *color.Color
}

func NewConsoleRunLogger(out io.Writer) *ConsoleRunLogger {
	return &ConsoleRunLogger{
		out:     out,
		banner:  color.New(color.FgMagenta, color.Underline, color.Bold),
		warning: color.New(color.FgYellow),
		failure: color.New(color.FgRed),
		success: color.New(color.FgGreen),
	}
}

func (c *ConsoleRunLogger) RunStarted(name string) {
	fmt.Fprintf(c.out, "%s Starting run: %s\n", c.banner.Sprint(bannerText), name)
}

func (c *ConsoleRunLogger) RunWarning(err error) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, c.banner.Sprint(bannerText))
	if errors.Is(err, reporter.ErrNoMatchedCases) {
		fmt.Fprintf(c.out, "  %s\n\n", c.warning.Sprint(
			"No test cases were matched. Ensure that your tests are declared correctly and match Cxxx"))
		return
	}
	fmt.Fprintf(c.out, "  %s\n\n", c.warning.Sprintf("Warning: %s", err))
}

func (c *ConsoleRunLogger) RunFinished(summary reporter.Summary, err error) {
	result := c.success
	if summary.Outcome != reporter.OutcomePass {
		result = c.failure
	}
	fmt.Fprintf(c.out, "%s %s\n", c.banner.Sprint(bannerText),
		result.Sprintf("%d/%d passed", summary.Counters.Passes, summary.Counters.Total()))
	switch {
	case err != nil:
		fmt.Fprintf(c.out, "  %s\n", c.failure.Sprintf("Results were not published: %s", err))
	case summary.Published:
		fmt.Fprintf(c.out, "  Published %d results\n", summary.Entries)
	}
	if c.Debug != nil && ((err != nil && c.DebugOutputOnFailure) || (err == nil && c.DebugOutputOnSuccess)) {
		c.Debug.Output().Dump(c.out, "    DEBUG ")
	}
}
