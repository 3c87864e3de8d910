// Package matchers provides composable value expectations, used both as
// standalone test assertions and as parameter checkers queued against mock
// function arguments. A Matcher is built separately from the value it will
// test, so the same expectation can be applied to many values, negated, or
// combined.
//
// Matchers take values of type interface{}; use Matcher.EnsureType to get a
// type-checked failure instead of a cast panic when the value might be of
// the wrong type.
package matchers

import (
	"fmt"
	"reflect"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFunc is a function used in defining a new Matcher. It returns true if
// the value passes the test or false for failure.
type TestFunc func(value interface{}) bool

// DescribeFailureFunc is a function used in defining a new Matcher. Given the
// value that was tested, and assuming that the test failed, it returns a
// description of the expectation (like "equal to 3"); a description of the
// actual value is always appended automatically.
//
// The second parameter is the function to use for making a string
// description of a value of the expected type.
type DescribeFailureFunc func(value interface{}, describeValueFunc DescribeValueFunc) string

// DescribeValueFunc is a function that can optionally be added to a Matcher
// to control how values are rendered in failure messages. The default logic
// is DefaultDescription.
type DescribeValueFunc func(value interface{}) string

// Matcher is a general mechanism for declaring expectations about a value.
// Expectations can be combined, and they self-describe on failure.
type Matcher struct {
	maybeTest            TestFunc
	maybeDescribeFailure DescribeFailureFunc
	maybeDescribeValue   DescribeValueFunc
}

// New creates a Matcher from a test function and a failure description
// function.
func New(test TestFunc, describeFailure DescribeFailureFunc) Matcher {
	return Matcher{maybeTest: test, maybeDescribeFailure: describeFailure}
}

// Test executes the expectation for a specific value. It returns true if the
// value passes, or false plus a string describing the expectation that
// failed.
func (m Matcher) Test(value interface{}) (pass bool, failDescription string) {
	if m.test(value) {
		return true, ""
	}
	testDesc := m.describeFailure(value, m.describeValue)
	return false, fmt.Sprintf("expected: %s\nactual value was: %s", testDesc, m.describeValue(value))
}

func (m Matcher) test(value interface{}) bool {
	if m.maybeTest == nil {
		return true
	}
	return m.maybeTest(value)
}

func (m Matcher) describeFailure(value interface{}, describeValue DescribeValueFunc) string {
	if m.maybeDescribeFailure == nil {
		return "no test description given"
	}
	return m.maybeDescribeFailure(value, describeValue)
}

func (m Matcher) describeValue(value interface{}) string {
	if m.maybeDescribeValue != nil {
		return m.maybeDescribeValue(value)
	}
	return DefaultDescription(value)
}

// Assert is for use with the testify/assert package (or any API with a
// compatible interface, such as mocktest.T). It tests a value and, on
// failure, calls assert.Fail with the appropriate message.
func (m Matcher) Assert(t assert.TestingT, value interface{}) bool {
	if pass, desc := m.Test(value); !pass {
		assert.Fail(t, desc)
		return false
	}
	return true
}

// Require is like Assert but stops the test immediately on failure, via
// require.Fail.
func (m Matcher) Require(t require.TestingT, value interface{}) bool {
	if pass, desc := m.Test(value); !pass {
		require.Fail(t, desc)
		return false
	}
	return true
}

// AssertThat tests a value against a matcher, reporting any failure to t and
// continuing.
func AssertThat(t assert.TestingT, value interface{}, m Matcher) bool {
	return m.Assert(t, value)
}

// RequireThat tests a value against a matcher, stopping the test on failure.
func RequireThat(t require.TestingT, value interface{}, m Matcher) bool {
	return m.Require(t, value)
}

// EnsureType adds type safety to a matcher. The valueOfType parameter should
// be any value of the expected type. The returned Matcher will guarantee that
// the value is of that type before calling the original test function, so it
// is safe for the test function to cast the value.
func (m Matcher) EnsureType(valueOfType interface{}) Matcher {
	return New(
		func(value interface{}) bool {
			if valueOfType != nil && (reflect.TypeOf(value) != reflect.TypeOf(valueOfType)) {
				return false
			}
			return m.test(value)
		},
		func(value interface{}, desc DescribeValueFunc) string {
			if valueOfType != nil && reflect.TypeOf(value) != reflect.TypeOf(valueOfType) {
				return fmt.Sprintf("value of type %T, was %T", valueOfType, value)
			}
			return m.describeFailure(value, m.describeValue)
		},
	)
}

// WithValueDescription adds custom behavior for rendering the input value as
// a string in failure messages. If not specified, the default behavior is
// DefaultDescription.
func (m Matcher) WithValueDescription(describeValue DescribeValueFunc) Matcher {
	ret := m
	ret.maybeDescribeValue = describeValue
	return ret
}

// DefaultDescription renders an input value as a string for failure
// messages. It uses the value's fmt.Stringer implementation if there is one,
// and the "%+v" format otherwise.
func DefaultDescription(value interface{}) string {
	if s, ok := value.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%+v", value)
}
