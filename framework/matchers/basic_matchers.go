package matchers

import (
	"fmt"
	"reflect"
)

// Equal tests whether the input value matches the expected value according
// to reflect.DeepEqual.
func Equal(expectedValue interface{}) Matcher {
	return New(
		func(value interface{}) bool {
			return reflect.DeepEqual(value, expectedValue)
		},
		func(value interface{}, desc DescribeValueFunc) string {
			return fmt.Sprintf("equal to %s", desc(expectedValue))
		},
	)
}

// NotEqual tests whether the input value differs from the expected value
// according to reflect.DeepEqual.
func NotEqual(expectedValue interface{}) Matcher {
	return New(
		func(value interface{}) bool {
			return !reflect.DeepEqual(value, expectedValue)
		},
		func(value interface{}, desc DescribeValueFunc) string {
			return fmt.Sprintf("not equal to %s", desc(expectedValue))
		},
	)
}

// Anything matches any value. It is useful as a placeholder argument checker
// when only the other arguments of a call matter.
func Anything() Matcher {
	return New(
		func(interface{}) bool { return true },
		func(interface{}, DescribeValueFunc) string { return "any value" },
	)
}
