package mocktest

import (
	"fmt"
	"io"
	"strings"
)

// TAPTestLogger emits the Test Anything Protocol, version 13:
//
//	TAP version 13
//	1..2
//	ok 1 - first_test
//	not ok 2 - second_test
//	# expected: equal to 3
//	# actual value was: 4
type TAPTestLogger struct {
	Output io.Writer
}

func (l *TAPTestLogger) GroupStarted(group string, count int) {
	fmt.Fprintln(l.Output, "TAP version 13")
	fmt.Fprintf(l.Output, "1..%d\n", count)
}

func (l *TAPTestLogger) TestStarted(string) {}

func (l *TAPTestLogger) TestFinished(result TestResult) {
	switch result.Status {
	case StatusPassed:
		fmt.Fprintf(l.Output, "ok %d - %s\n", result.Number, result.Name)
	case StatusSkipped:
		reason := result.SkipReason
		if reason == "" {
			reason = "skipped"
		}
		fmt.Fprintf(l.Output, "ok %d - %s # SKIP %s\n", result.Number, result.Name, reason)
	case StatusNotStarted:
		fmt.Fprintf(l.Output, "ok %d - %s # SKIP not started\n", result.Number, result.Name)
	default:
		fmt.Fprintf(l.Output, "not ok %d - %s\n", result.Number, result.Name)
		for _, err := range result.Errors {
			for _, line := range strings.Split(err.Error(), "\n") {
				fmt.Fprintf(l.Output, "# %s\n", line)
			}
		}
	}
}

func (l *TAPTestLogger) GroupFinished(summary Summary) error {
	fmt.Fprintf(l.Output, "# %s: %d passed, %d failed, %d errored, %d skipped\n",
		summary.Group, summary.Passed, summary.Failed, summary.Errored, summary.Skipped)
	return nil
}
