package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/casereport/testrail-reporter/gotest"
	"github.com/casereport/testrail-reporter/logging"
	"github.com/casereport/testrail-reporter/reporter"
	"github.com/casereport/testrail-reporter/slack"
	"github.com/casereport/testrail-reporter/testrail"
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}
	os.Exit(run(context.Background(), params, os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, params commandParams, stdin io.Reader, stdout, stderr io.Writer) int {
	config, err := reporter.LoadConfig(params.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error: %s\n", err)
		return 1
	}

	runLogger := NewConsoleRunLogger(stdout)
	debugLogger := logging.NullLogger()
	if params.debug || params.debugAll {
		capture := &logging.CapturingLogger{}
		debugLogger = capture
		runLogger.Debug = capture
		runLogger.DebugOutputOnFailure = true
		runLogger.DebugOutputOnSuccess = params.debugAll
	}

	var notifier reporter.Notifier
	if config.SlackURL != "" {
		notifier = slack.NewWebhook(config.SlackURL, nil, debugLogger)
	}
	controller, err := reporter.NewController(
		config,
		testrail.NewClient(config, nil, debugLogger),
		notifier,
		reporter.WithDebugLogger(debugLogger),
		reporter.WithRunLogger(runLogger),
	)
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error: %s\n", err)
		return 1
	}

	gotest.PrintFilterDescription(stdout, params.filters)
	adapter := gotest.NewAdapter(controller, params.filters.AsFilter, debugLogger)

	if len(params.command) == 0 {
		if _, err := adapter.Run(ctx, stdin); err != nil {
			return 1
		}
		return 0
	}
	return runTestCommand(ctx, params, adapter, stdout, stderr)
}

// runTestCommand runs the test command and reports its output. The exit status is the
// command's own, unless results could not be published.
func runTestCommand(
	ctx context.Context,
	params commandParams,
	adapter *gotest.Adapter,
	stdout, stderr io.Writer,
) int {
	var cb commandBuilder
	cb.add(params.command...)
	fmt.Fprintf(stdout, "Running %s\n", cb)

	cmd := exec.CommandContext(ctx, params.command[0], params.command[1:]...)
	cmd.Stderr = stderr
	pipe, err := cmd.StdoutPipe()
	if err != nil {
		fmt.Fprintf(stderr, "Test command error: %s\n", err)
		return 1
	}
	if err := cmd.Start(); err != nil {
		fmt.Fprintf(stderr, "Test command error: %s\n", err)
		return 1
	}

	var events io.Reader = pipe
	if !params.quiet {
		events = io.TeeReader(pipe, stdout)
	}
	_, reportErr := adapter.Run(ctx, events)
	// the adapter stops reading on a read error; the command blocks until stdout is drained
	_, _ = io.Copy(io.Discard, events)
	waitErr := cmd.Wait()

	if reportErr != nil {
		return 1
	}
	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		return exitErr.ExitCode()
	}
	if waitErr != nil {
		fmt.Fprintf(stderr, "Test command error: %s\n", waitErr)
		return 1
	}
	return 0
}
