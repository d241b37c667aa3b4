package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/casereport/testrail-reporter/gotest"

	"github.com/alessio/shellescape"
)

const defaultConfigPath = "testrail-reporter.json"

type commandParams struct {
	configPath string
	filters    gotest.RegexFilters
	debug      bool
	debugAll   bool
	quiet      bool
	command    []string
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [options] [-- test command...]\n\n", args[0])
		fmt.Fprintln(fs.Output(), "Reads \"go test -json\" output from the test command, or from stdin if there is none.")
		fmt.Fprintln(fs.Output())
		fs.PrintDefaults()
	}
	fs.StringVar(&c.configPath, "config", defaultConfigPath, "reporter options file (JSON)")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to report")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to report")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed runs")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all runs")
	fs.BoolVar(&c.quiet, "quiet", false, "do not echo the test command's output")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	if c.configPath == "" {
		fmt.Fprintln(os.Stderr, "-config is required")
		fs.Usage()
		return false
	}
	c.command = fs.Args()
	return true
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
