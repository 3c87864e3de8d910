package mocktest

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var consolePassedColor = color.New(color.FgGreen)              //nolint:gochecknoglobals
var consoleFailedColor = color.New(color.FgRed)                //nolint:gochecknoglobals
var consoleErrorColor = color.New(color.FgYellow)              //nolint:gochecknoglobals
var consoleSkippedColor = color.New(color.Faint, color.FgBlue) //nolint:gochecknoglobals

// TestLogger receives progress events while a group runs. Implementations
// may print as they go (console, TAP, subunit) or buffer everything and emit
// a document at the end (JUnit).
type TestLogger interface {
	GroupStarted(group string, count int)
	TestStarted(name string)
	TestFinished(result TestResult)
	GroupFinished(summary Summary) error
}

type nullTestLogger struct{}

func (nullTestLogger) GroupStarted(string, int)    {}
func (nullTestLogger) TestStarted(string)          {}
func (nullTestLogger) TestFinished(TestResult)     {}
func (nullTestLogger) GroupFinished(Summary) error { return nil }

// ConsoleTestLogger prints bracketed progress lines as tests run:
//
//	[==========] demo: Running 2 test(s).
//	[ RUN      ] first_test
//	[       OK ] first_test
//	[ RUN      ] second_test
//	[  FAILED  ] second_test
type ConsoleTestLogger struct {
	Output io.Writer
	group  string
}

func (c *ConsoleTestLogger) GroupStarted(group string, count int) {
	c.group = group
	fmt.Fprintf(c.Output, "[==========] %s: Running %d test(s).\n", group, count)
}

func (c *ConsoleTestLogger) TestStarted(name string) {
	fmt.Fprintf(c.Output, "[ RUN      ] %s\n", name)
}

func (c *ConsoleTestLogger) TestFinished(result TestResult) {
	for _, err := range result.Errors {
		for _, line := range strings.Split(err.Error(), "\n") {
			_, _ = consoleErrorColor.Fprintf(c.Output, "  %s\n", line)
		}
	}
	switch result.Status {
	case StatusPassed:
		_, _ = consolePassedColor.Fprintf(c.Output, "[       OK ] %s\n", result.Name)
	case StatusFailed:
		_, _ = consoleFailedColor.Fprintf(c.Output, "[  FAILED  ] %s\n", result.Name)
	case StatusErrored:
		_, _ = consoleFailedColor.Fprintf(c.Output, "[  ERROR   ] %s\n", result.Name)
	case StatusSkipped:
		if result.SkipReason == "" {
			_, _ = consoleSkippedColor.Fprintf(c.Output, "[  SKIPPED ] %s\n", result.Name)
		} else {
			_, _ = consoleSkippedColor.Fprintf(c.Output, "[  SKIPPED ] %s (%s)\n", result.Name, result.SkipReason)
		}
	}
}

func (c *ConsoleTestLogger) GroupFinished(summary Summary) error {
	fmt.Fprintf(c.Output, "[==========] %s: %d test(s) run.\n", summary.Group, summary.Executed)
	_, _ = consolePassedColor.Fprintf(c.Output, "[  PASSED  ] %d test(s).\n", summary.Passed)
	if summary.Skipped != 0 {
		_, _ = consoleSkippedColor.Fprintf(c.Output, "[  SKIPPED ] %d test(s).\n", summary.Skipped)
	}
	if broken := summary.Failed + summary.Errored; broken != 0 {
		_, _ = consoleFailedColor.Fprintf(c.Output, "[  FAILED  ] %s: %d test(s), listed below:\n", summary.Group, broken)
		for _, r := range summary.Tests {
			if !r.OK() {
				_, _ = consoleFailedColor.Fprintf(c.Output, "[  FAILED  ] %s\n", r.Name)
			}
		}
	}
	return nil
}

// MultiTestLogger fans events out to several loggers, so for example a
// console report and a JUnit file can be produced by one run.
type MultiTestLogger struct {
	Loggers []TestLogger
}

func (m *MultiTestLogger) GroupStarted(group string, count int) {
	for _, l := range m.Loggers {
		l.GroupStarted(group, count)
	}
}

func (m *MultiTestLogger) TestStarted(name string) {
	for _, l := range m.Loggers {
		l.TestStarted(name)
	}
}

func (m *MultiTestLogger) TestFinished(result TestResult) {
	for _, l := range m.Loggers {
		l.TestFinished(result)
	}
}

func (m *MultiTestLogger) GroupFinished(summary Summary) error {
	var errs []error
	for _, l := range m.Loggers {
		if err := l.GroupFinished(summary); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
