package mocktest

import (
	"fmt"

	"github.com/mockharness/mockharness/framework"
	"github.com/mockharness/mockharness/framework/expect"
	"github.com/mockharness/mockharness/framework/matchers"
	"github.com/mockharness/mockharness/framework/memguard"
)

// Test defines one test in a group. Body is the test function itself; Setup
// and Teardown are optional per-test fixtures. InitialState seeds the value
// returned by T.State when the group fixture has not already set one.
type Test struct {
	Name     string
	Setup    func(*T)
	Body     func(*T)
	Teardown func(*T)
	// InitialState is the starting value for T.State. A state set by the
	// group setup fixture takes precedence.
	InitialState interface{}
}

// Group is a named collection of tests with optional shared fixtures. The
// group Setup runs once before the first test and Teardown once after the
// last; state set by the group Setup is visible to every test.
type Group struct {
	Name     string
	Setup    func(*T)
	Teardown func(*T)
	Tests    []Test
}

// T represents a test scope: the mock expectation stores, the guarded
// allocator, and the failure state for one running test. It is similar to
// Go's testing.T and satisfies the testify assert/require interfaces.
type T struct {
	name     string
	returns  *expect.Store
	checks   *expect.Store
	ordering *expect.Ordering
	alloc    *memguard.Allocator

	state      interface{}
	errors     []error
	failed     bool
	skipped    bool
	stopped    bool
	skipReason string
}

func newT(name string, state interface{}) *T {
	return &T{
		name:     name,
		returns:  expect.NewStore(),
		checks:   expect.NewStore(),
		ordering: expect.NewOrdering(),
		alloc:    memguard.New(),
		state:    state,
	}
}

// Name returns the name of the running test.
func (t *T) Name() string { return t.name }

// State returns the shared state value: the value set by the group setup
// fixture if there is one, otherwise the test's InitialState.
func (t *T) State() interface{} { return t.state }

// SetState replaces the shared state value. When called from a group setup
// fixture, the value persists across every test in the group.
func (t *T) SetState(state interface{}) { t.state = state }

// Errorf reports a test failure without terminating the test. It is part of
// this type's implementation of assert.TestingT, so testify assertions and
// matchers can report through it.
func (t *T) Errorf(format string, args ...interface{}) {
	t.failed = true
	t.errors = append(t.errors, fmt.Errorf(format, args...))
}

// Fatalf reports a test failure and terminates the test immediately.
func (t *T) Fatalf(format string, args ...interface{}) {
	t.Errorf(format, args...)
	t.FailNow()
}

// Fail marks the test as failed without terminating it.
func (t *T) Fail() { t.failed = true }

// FailNow terminates the test immediately, marking it as failed. It is part
// of this type's implementation of require.TestingT.
func (t *T) FailNow() {
	t.failed = true
	panic(t)
}

// Skip terminates the test immediately, marking it as skipped.
func (t *T) Skip() {
	t.skipped = true
	panic(t)
}

// SkipWithReason is Skip with a message recorded in the test result.
func (t *T) SkipWithReason(reason string) {
	t.skipReason = reason
	t.Skip()
}

// Stop terminates the current phase immediately without failing the test;
// later phases still run. Expectations queued in the stopped phase and never
// consumed are not reported; memory leak and guard checks still run.
func (t *T) Stop() {
	t.stopped = true
	panic(t)
}

// --- mock return values ---

// WillReturn queues a value to be returned by the next Mock(function) call.
// Values queue FIFO per function.
func (t *T) WillReturn(function string, value interface{}) {
	t.returns.Enqueue([]string{function}, value, expect.Once(), framework.CallerSite(1))
}

// WillReturnTimes queues a value to be returned by the next n Mock(function)
// calls.
func (t *T) WillReturnTimes(function string, value interface{}, n int) {
	t.returns.Enqueue([]string{function}, value, expect.Exactly(n), framework.CallerSite(1))
}

// WillReturnAlways queues a value to be returned by every subsequent
// Mock(function) call.
func (t *T) WillReturnAlways(function string, value interface{}) {
	t.returns.Enqueue([]string{function}, value, expect.Always(), framework.CallerSite(1))
}

// WillReturnMaybe queues a value that Mock(function) may consume once; the
// test does not fail if it is never consumed.
func (t *T) WillReturnMaybe(function string, value interface{}) {
	t.returns.Enqueue([]string{function}, value, expect.Optional(), framework.CallerSite(1))
}

// Mock returns the next queued return value for the named mock function.
// If no value is queued the test fails immediately.
func (t *T) Mock(function string) interface{} {
	d, err := t.returns.Dispense([]string{function})
	if err != nil {
		t.Fatalf("mock %s: %s", function, err)
	}
	return d.Value
}

// --- parameter checks ---

// ExpectParam queues a checker to be applied to the next value the mock
// function reports for the named parameter via CheckParam.
func (t *T) ExpectParam(function, param string, m matchers.Matcher) {
	t.expectParam(function, param, m, expect.Once())
}

// ExpectParamTimes queues a checker for the next n reported values.
func (t *T) ExpectParamTimes(function, param string, m matchers.Matcher, n int) {
	t.expectParam(function, param, m, expect.Exactly(n))
}

// ExpectParamAlways queues a checker for every subsequent reported value.
func (t *T) ExpectParamAlways(function, param string, m matchers.Matcher) {
	t.expectParam(function, param, m, expect.Always())
}

// ExpectParamMaybe queues a checker that may be consumed once; the test does
// not fail if the parameter is never reported.
func (t *T) ExpectParamMaybe(function, param string, m matchers.Matcher) {
	t.expectParam(function, param, m, expect.Optional())
}

func (t *T) expectParam(function, param string, m matchers.Matcher, mult expect.Multiplicity) {
	t.checks.Enqueue([]string{function, param}, m, mult, framework.CallerSite(2))
}

// ExpectValue queues a check that the parameter equals the given value.
func (t *T) ExpectValue(function, param string, value interface{}) {
	t.expectParam(function, param, matchers.Equal(value), expect.Once())
}

// ExpectNotValue queues a check that the parameter differs from the value.
func (t *T) ExpectNotValue(function, param string, value interface{}) {
	t.expectParam(function, param, matchers.NotEqual(value), expect.Once())
}

// ExpectInRange queues a check that the parameter is within [min, max].
func (t *T) ExpectInRange(function, param string, min, max int64) {
	t.expectParam(function, param, matchers.InRange(min, max), expect.Once())
}

// ExpectNotInRange queues a check that the parameter is outside [min, max].
func (t *T) ExpectNotInRange(function, param string, min, max int64) {
	t.expectParam(function, param, matchers.NotInRange(min, max), expect.Once())
}

// ExpectInSet queues a check that the parameter is one of the given values.
func (t *T) ExpectInSet(function, param string, values ...int64) {
	t.expectParam(function, param, matchers.InSet(values...), expect.Once())
}

// ExpectNotInSet queues a check that the parameter is none of the values.
func (t *T) ExpectNotInSet(function, param string, values ...int64) {
	t.expectParam(function, param, matchers.NotInSet(values...), expect.Once())
}

// ExpectMemory queues a check that the parameter is a []byte identical to
// the given region.
func (t *T) ExpectMemory(function, param string, expected []byte) {
	t.expectParam(function, param, matchers.MemoryEqual(expected), expect.Once())
}

// ExpectNotMemory queues a check that the parameter differs from the region.
func (t *T) ExpectNotMemory(function, param string, expected []byte) {
	t.expectParam(function, param, matchers.MemoryNotEqual(expected), expect.Once())
}

// ExpectAny queues a check that accepts any value, to mark the parameter as
// checked without constraining it.
func (t *T) ExpectAny(function, param string) {
	t.expectParam(function, param, matchers.Anything(), expect.Once())
}

// CheckParam applies the next queued checker for the mock function's
// parameter to the given value. The test fails immediately if no checker is
// queued or the value does not satisfy it.
func (t *T) CheckParam(function, param string, value interface{}) {
	d, err := t.checks.Dispense([]string{function, param})
	if err != nil {
		t.Fatalf("parameter %s of %s: %s", param, function, err)
	}
	m, ok := d.Value.(matchers.Matcher)
	if !ok {
		t.Fatalf("parameter %s of %s: expectation queued at %s is not a checker",
			param, function, d.Site)
	}
	if pass, desc := m.Test(value); !pass {
		t.Fatalf("parameter %s of %s did not satisfy the check declared at %s\n%s",
			param, function, d.Site, desc)
	}
}

// --- call ordering ---

// ExpectCall declares that the named mock function must be called next, in
// declaration order relative to other ExpectCall declarations.
func (t *T) ExpectCall(function string) {
	t.ordering.Expect(function, expect.Once(), framework.CallerSite(1))
}

// ExpectCallTimes declares n consecutive expected calls to the function.
func (t *T) ExpectCallTimes(function string, n int) {
	t.ordering.Expect(function, expect.Exactly(n), framework.CallerSite(1))
}

// ExpectCallMaybe declares a call that may or may not happen; if the
// function is not called, later expectations simply shift up.
func (t *T) ExpectCallMaybe(function string) {
	t.ordering.Expect(function, expect.Optional(), framework.CallerSite(1))
}

// Called reports that the named mock function was invoked, checking it
// against the declared call order. An out-of-order or unexpected call fails
// the test immediately.
func (t *T) Called(function string) {
	if err := t.ordering.Observe(function); err != nil {
		t.Fatalf("%s", err)
	}
}

// --- guarded allocation ---

// Malloc allocates a guarded block of the given size, tracked for leak
// detection at the end of the current phase.
func (t *T) Malloc(size int) []byte {
	return t.alloc.Allocate(size, framework.CallerSite(1))
}

// Calloc allocates a zeroed guarded block of count*size bytes.
func (t *T) Calloc(count, size int) []byte {
	return t.alloc.AllocateZeroed(count, size, framework.CallerSite(1))
}

// Realloc resizes a guarded block, preserving its prefix. A nil block
// allocates; a zero size frees.
func (t *T) Realloc(block []byte, size int) []byte {
	out, err := t.alloc.Reallocate(block, size, framework.CallerSite(1))
	if err != nil {
		t.Fatalf("realloc: %s", err)
	}
	return out
}

// Free releases a guarded block, failing the test if a guard region was
// overwritten.
func (t *T) Free(block []byte) {
	if err := t.alloc.Free(block); err != nil {
		t.Fatalf("free: %s", err)
	}
}

// leftoverFailures converts unconsumed mandatory expectations into test
// failures. Called by the runner after the body phase unless the test was
// stopped.
func (t *T) leftoverFailures() {
	for _, l := range t.returns.Leftovers() {
		t.Errorf("mock %s still has %d queued return value(s), declared at %s",
			l.Keys[0], l.Remaining, l.Site)
	}
	for _, l := range t.checks.Leftovers() {
		t.Errorf("parameter %s of %s still has %d queued check(s), declared at %s",
			l.Keys[1], l.Keys[0], l.Remaining, l.Site)
	}
	for _, c := range t.ordering.Leftovers() {
		t.Errorf("expected call to %s never happened, declared at %s",
			c.Function, c.Site)
	}
}

// resetExpectations clears all three stores. The runner calls this at the
// start of the body phase so fixture-time activity cannot satisfy or pollute
// the test's own expectations.
func (t *T) resetExpectations() {
	t.returns.Reset()
	t.checks.Reset()
	t.ordering.Reset()
}

// clearPhaseFlags resets the skip/stop exits between phases so a Skip or Stop
// in one phase is not misread when a later phase unwinds.
func (t *T) clearPhaseFlags() {
	t.skipped = false
	t.stopped = false
}

// leakFailures reports blocks allocated after the checkpoint that are still
// live, then force-frees them so later tests start on a clean heap.
func (t *T) leakFailures(cp memguard.Checkpoint) {
	blocks := t.alloc.BlocksSince(cp)
	for _, b := range blocks {
		t.Errorf("block of %d byte(s) allocated at %s was never freed", b.Size, b.Site)
	}
	if len(blocks) != 0 {
		t.alloc.FreeSince(cp)
	}
}
