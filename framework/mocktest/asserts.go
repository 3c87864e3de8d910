package mocktest

import (
	"reflect"

	"github.com/mockharness/mockharness/framework/matchers"
)

// Assertion primitives. All of them terminate the test on failure, in the
// manner of require rather than assert; use Errorf directly for a non-fatal
// failure.

// AssertTrue fails the test unless the value is true.
func (t *T) AssertTrue(value bool) {
	if !value {
		t.Fatalf("expected condition to be true")
	}
}

// AssertFalse fails the test unless the value is false.
func (t *T) AssertFalse(value bool) {
	if value {
		t.Fatalf("expected condition to be false")
	}
}

// AssertEqual fails the test unless the two values are deeply equal.
func (t *T) AssertEqual(actual, expected interface{}) {
	matchers.RequireThat(t, actual, matchers.Equal(expected))
}

// AssertNotEqual fails the test if the two values are deeply equal.
func (t *T) AssertNotEqual(actual, expected interface{}) {
	matchers.RequireThat(t, actual, matchers.NotEqual(expected))
}

// AssertNil fails the test unless the value is nil. Typed nil pointers,
// slices, maps, channels, and funcs count as nil.
func (t *T) AssertNil(value interface{}) {
	if !isNil(value) {
		t.Fatalf("expected nil, got %+v", value)
	}
}

// AssertNotNil fails the test if the value is nil.
func (t *T) AssertNotNil(value interface{}) {
	if isNil(value) {
		t.Fatalf("expected a non-nil value")
	}
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return v.IsNil()
	default:
		return false
	}
}

// AssertInRange fails the test unless the integer value is in [min, max].
func (t *T) AssertInRange(value interface{}, min, max int64) {
	matchers.RequireThat(t, value, matchers.InRange(min, max))
}

// AssertNotInRange fails the test unless the integer value is outside
// [min, max].
func (t *T) AssertNotInRange(value interface{}, min, max int64) {
	matchers.RequireThat(t, value, matchers.NotInRange(min, max))
}

// AssertInSet fails the test unless the integer value is one of the given
// values.
func (t *T) AssertInSet(value interface{}, values ...int64) {
	matchers.RequireThat(t, value, matchers.InSet(values...))
}

// AssertNotInSet fails the test if the integer value is one of the given
// values.
func (t *T) AssertNotInSet(value interface{}, values ...int64) {
	matchers.RequireThat(t, value, matchers.NotInSet(values...))
}

// AssertMemoryEqual fails the test unless the two byte regions are
// identical; mismatched offsets are listed in the failure.
func (t *T) AssertMemoryEqual(actual, expected []byte) {
	matchers.RequireThat(t, actual, matchers.MemoryEqual(expected))
}

// AssertMemoryNotEqual fails the test if the two byte regions are identical.
func (t *T) AssertMemoryNotEqual(actual, expected []byte) {
	matchers.RequireThat(t, actual, matchers.MemoryNotEqual(expected))
}

// AssertStringEqual fails the test unless the two strings are equal.
func (t *T) AssertStringEqual(actual, expected string) {
	matchers.RequireThat(t, actual, matchers.Equal(expected).EnsureType(""))
}

// AssertStringNotEqual fails the test if the two strings are equal.
func (t *T) AssertStringNotEqual(actual, expected string) {
	matchers.RequireThat(t, actual, matchers.NotEqual(expected).EnsureType(""))
}

// AssertFloatEqual fails the test unless the two floats are within epsilon
// of each other (or within one ulp at their magnitude).
func (t *T) AssertFloatEqual(actual, expected, epsilon float64) {
	matchers.RequireThat(t, actual, matchers.FloatEqual(expected, epsilon))
}

// AssertFloatNotEqual fails the test if the two floats are within epsilon of
// each other.
func (t *T) AssertFloatNotEqual(actual, expected, epsilon float64) {
	matchers.RequireThat(t, actual, matchers.FloatNotEqual(expected, epsilon))
}
