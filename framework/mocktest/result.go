package mocktest

import "time"

// Status is the outcome of one test.
type Status int

const (
	// StatusNotStarted means the test was never attempted, for example when
	// the group setup failed or the test was excluded by a filter.
	StatusNotStarted Status = iota
	// StatusPassed means every phase of the test completed cleanly.
	StatusPassed
	// StatusFailed means an assertion or expectation check failed.
	StatusFailed
	// StatusErrored means the test crashed: a runtime fault or an
	// unrecognized panic interrupted a phase.
	StatusErrored
	// StatusSkipped means the test asked to be skipped.
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "not started"
	case StatusPassed:
		return "passed"
	case StatusFailed:
		return "failed"
	case StatusErrored:
		return "errored"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// TestResult is the recorded outcome of one test in a group.
type TestResult struct {
	// Name is the test's name as given in its Test definition.
	Name string
	// Number is the test's 1-based position within the group, used by the
	// TAP reporter and for stable ordering.
	Number int
	// Status is the final outcome.
	Status Status
	// Errors holds every failure reported while the test ran, in order.
	Errors []error
	// SkipReason is the optional message given to SkipWithReason.
	SkipReason string
	// Elapsed is how long the test's phases took.
	Elapsed time.Duration
}

// OK returns true if the test did not fail or error. Skipped and
// not-started tests are OK.
func (r TestResult) OK() bool {
	return r.Status != StatusFailed && r.Status != StatusErrored
}

// Summary aggregates the outcomes of one group run.
type Summary struct {
	// Group is the group's name.
	Group string
	// Executed counts tests that were attempted (everything except
	// not-started).
	Executed int
	// Passed, Failed, Errored, and Skipped count final statuses.
	Passed  int
	Failed  int
	Errored int
	Skipped int
	// Elapsed is the wall time for the whole group including fixtures.
	Elapsed time.Duration
	// Tests holds the per-test results in run order.
	Tests []TestResult
}

// ExitCode returns the number of tests that failed or crashed, suitable for
// use as a process exit status.
func (s Summary) ExitCode() int {
	return s.Failed + s.Errored
}

func summarize(group string, elapsed time.Duration, tests []TestResult) Summary {
	s := Summary{Group: group, Elapsed: elapsed, Tests: tests}
	for _, r := range tests {
		switch r.Status {
		case StatusPassed:
			s.Passed++
		case StatusFailed:
			s.Failed++
		case StatusErrored:
			s.Errored++
		case StatusSkipped:
			s.Skipped++
		}
		if r.Status != StatusNotStarted {
			s.Executed++
		}
	}
	return s
}
