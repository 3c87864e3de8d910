package mocktest

import (
	"fmt"
	"io"
)

// SubunitTestLogger emits the subunit v1 text stream consumed by tools like
// subunit2junitxml:
//
//	test: first_test
//	success: first_test
//	test: second_test
//	failure: second_test [
//	expected: equal to 3
//	actual value was: 4
//	]
type SubunitTestLogger struct {
	Output io.Writer
}

func (l *SubunitTestLogger) GroupStarted(string, int) {}

func (l *SubunitTestLogger) TestStarted(name string) {
	fmt.Fprintf(l.Output, "test: %s\n", name)
}

func (l *SubunitTestLogger) TestFinished(result TestResult) {
	switch result.Status {
	case StatusPassed:
		fmt.Fprintf(l.Output, "success: %s\n", result.Name)
	case StatusSkipped:
		if result.SkipReason == "" {
			fmt.Fprintf(l.Output, "skip: %s\n", result.Name)
		} else {
			fmt.Fprintf(l.Output, "skip: %s [\n%s\n]\n", result.Name, result.SkipReason)
		}
	case StatusFailed:
		fmt.Fprintf(l.Output, "failure: %s [\n%s]\n", result.Name, errorLines(result.Errors))
	case StatusErrored:
		fmt.Fprintf(l.Output, "error: %s [\n%s]\n", result.Name, errorLines(result.Errors))
	}
}

func (l *SubunitTestLogger) GroupFinished(Summary) error { return nil }

func errorLines(errs []error) string {
	var out string
	for _, err := range errs {
		out += err.Error() + "\n"
	}
	return out
}
