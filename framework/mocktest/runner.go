package mocktest

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"time"
)

// Runner executes test groups. The zero value runs every test and reports
// through a ConsoleTestLogger on stdout.
type Runner struct {
	// Logger receives run progress and the final summary.
	Logger TestLogger
	// Filter excludes tests by name; nil runs everything.
	Filter Filter
	// AbortOnFailure stops the group at the first test that fails or
	// crashes. Remaining tests are not attempted.
	AbortOnFailure bool
	// ListOnly prints the names of the tests that would run, without
	// running them.
	ListOnly bool
	// Out is where ListOnly writes; defaults to os.Stdout.
	Out io.Writer
}

// phaseOutcome is how a protected phase ended.
type phaseOutcome int

const (
	phaseCompleted phaseOutcome = iota
	phaseFailed                 // assertion failure or FailNow
	phaseSkipped                // Skip
	phaseStopped                // Stop
	phaseCrashed                // runtime fault or unrecognized panic
)

// Run executes the group and returns its summary. Group setup failure marks
// every selected test as errored without running it; group teardown failures
// are reported on the summary's last test slot via an extra errored result.
func (r *Runner) Run(group Group) Summary {
	logger := r.Logger
	if logger == nil {
		logger = &ConsoleTestLogger{Output: os.Stdout}
	}

	selected := make([]Test, 0, len(group.Tests))
	for _, test := range group.Tests {
		if r.Filter.Match(test.Name) {
			selected = append(selected, test)
		}
	}

	if r.ListOnly {
		out := r.Out
		if out == nil {
			out = os.Stdout
		}
		for _, test := range selected {
			fmt.Fprintln(out, test.Name)
		}
		return Summary{Group: group.Name}
	}

	logger.GroupStarted(group.Name, len(selected))
	started := time.Now()
	results := make([]TestResult, 0, len(selected))

	groupScope := newT(group.Name, nil)
	groupOutcome := runProtected(groupScope, group.Setup)
	if groupOutcome != phaseCompleted || groupScope.failed {
		// Nothing ran; every selected test is reported as errored so the
		// exit code reflects the broken fixture.
		reason := fmt.Errorf("group setup failed: %s", firstError(groupScope, groupOutcome))
		for i, test := range selected {
			results = append(results, TestResult{
				Name:   test.Name,
				Number: i + 1,
				Status: StatusErrored,
				Errors: []error{reason},
			})
		}
	} else {
		aborted := false
		for i, test := range selected {
			if aborted {
				results = append(results, TestResult{
					Name:   test.Name,
					Number: i + 1,
					Status: StatusNotStarted,
				})
				continue
			}
			logger.TestStarted(test.Name)
			result := r.runTest(test, groupScope.state)
			result.Number = i + 1
			logger.TestFinished(result)
			results = append(results, result)
			if r.AbortOnFailure && !result.OK() {
				aborted = true
			}
		}

		teardownScope := newT(group.Name, groupScope.state)
		if outcome := runProtected(teardownScope, group.Teardown); outcome == phaseFailed || outcome == phaseCrashed || teardownScope.failed {
			results = append(results, TestResult{
				Name:   group.Name + " (group teardown)",
				Number: len(results) + 1,
				Status: StatusErrored,
				Errors: teardownScope.errors,
			})
		}
	}

	summary := summarize(group.Name, time.Since(started), results)
	if err := logger.GroupFinished(summary); err != nil {
		fmt.Fprintf(os.Stderr, "error writing test report: %s\n", err)
	}
	return summary
}

// runTest executes one test's setup, body, and teardown with crash
// protection, converting expectation leftovers and memory leaks into
// failures at the appropriate phase boundaries.
func (r *Runner) runTest(test Test, groupState interface{}) TestResult {
	state := test.InitialState
	if groupState != nil {
		state = groupState
	}
	t := newT(test.Name, state)
	started := time.Now()

	fixtureCP := t.alloc.Checkpoint()
	setupOutcome := runProtected(t, test.Setup)
	switch {
	case setupOutcome == phaseSkipped:
		return finishResult(t, StatusSkipped, started)
	case setupOutcome == phaseFailed, setupOutcome == phaseCrashed, t.failed:
		// A broken fixture is an error, not a test failure; the body and
		// teardown never run.
		t.Errorf("setup failed, test not run")
		return finishResult(t, StatusErrored, started)
	}
	// A stopped setup terminates only that phase; the body still runs.
	t.clearPhaseFlags()

	// Fixture-time mock activity must not leak into the test's own
	// expectations.
	t.resetExpectations()
	bodyCP := t.alloc.Checkpoint()

	bodyOutcome := runProtected(t, test.Body)
	t.clearPhaseFlags()
	if bodyOutcome == phaseCompleted {
		t.leftoverFailures()
	}
	// Teardown gets its own leftover scope: whatever the body queued has
	// been reported (or suppressed by Stop) by now.
	t.resetExpectations()
	t.leakFailures(bodyCP)

	status := StatusPassed
	switch {
	case bodyOutcome == phaseCrashed:
		status = StatusErrored
	case bodyOutcome == phaseSkipped:
		status = StatusSkipped
	case t.failed:
		status = StatusFailed
	}

	// Teardown runs whenever setup succeeded, even after a crashed body, so
	// fixtures are released and fixture leaks are still reported.
	teardownOutcome := runProtected(t, test.Teardown)
	switch teardownOutcome {
	case phaseCrashed:
		status = StatusErrored
	case phaseCompleted:
		t.leftoverFailures()
	}
	t.leakFailures(fixtureCP)
	if t.failed && status == StatusPassed {
		status = StatusFailed
	}

	return finishResult(t, status, started)
}

func finishResult(t *T, status Status, started time.Time) TestResult {
	return TestResult{
		Name:       t.name,
		Status:     status,
		Errors:     t.errors,
		SkipReason: t.skipReason,
		Elapsed:    time.Since(started),
	}
}

// runProtected executes one phase function with non-local exit and crash
// recovery. Panics carrying the scope itself are the fail/skip/stop exits;
// runtime errors (nil dereference, index out of range, divide by zero, and
// memory faults surfaced by SetPanicOnFault) and any other panic are crashes.
func runProtected(t *T, fn func(*T)) (outcome phaseOutcome) {
	if fn == nil {
		return phaseCompleted
	}
	prev := debug.SetPanicOnFault(true)
	defer debug.SetPanicOnFault(prev)
	defer func() {
		r := recover()
		switch {
		case r == nil:
			// Normal return, even with non-fatal errors recorded; the caller
			// consults t.failed for the status.
		case r == interface{}(t):
			switch {
			case t.skipped:
				outcome = phaseSkipped
			case t.stopped:
				outcome = phaseStopped
			default:
				outcome = phaseFailed
				if len(t.errors) == 0 {
					t.errors = append(t.errors, fmt.Errorf("test failed with no failure message"))
				}
			}
		default:
			outcome = phaseCrashed
			t.errors = append(t.errors,
				fmt.Errorf("test crashed: %v\n%s", r, debug.Stack()))
		}
	}()
	fn(t)
	return phaseCompleted
}

func firstError(t *T, outcome phaseOutcome) string {
	if len(t.errors) != 0 {
		return t.errors[0].Error()
	}
	if outcome == phaseSkipped {
		return "fixture skipped"
	}
	return "no failure message"
}

// RunGroup is the convenience entry point: it builds a runner from the
// environment configuration, runs the group, and returns the summary. The
// process exit code should be Summary.ExitCode().
func RunGroup(group Group) Summary {
	config := ConfigFromEnv()
	logger, err := config.Loggers(os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %s\n", err)
		os.Exit(2)
	}
	runner := &Runner{
		Logger:         logger,
		Filter:         config.Filters().AsFilter(),
		AbortOnFailure: config.AbortOnFailure,
		ListOnly:       config.ListOnly,
	}
	return runner.Run(group)
}
