package matchers

import (
	"fmt"
	"strings"
)

// Not negates the result of another Matcher.
//
//	matchers.Not(Equal(3)).Assert(t, 4)
//	// failure message will describe expectation as "not (equal to 3)"
func Not(matcher Matcher) Matcher {
	return New(
		func(value interface{}) bool {
			return !matcher.test(value)
		},
		func(value interface{}, desc DescribeValueFunc) string {
			return fmt.Sprintf("not (%s)", matcher.describeFailure(value, matcher.describeValue))
		},
	).WithValueDescription(matcher.describeValue)
}

// AllOf requires that the input value passes all of the specified Matchers.
// If it fails, the failure message describes all of the Matchers that failed.
func AllOf(matchers ...Matcher) Matcher {
	return combine(matchers, " and ", func(value interface{}) bool {
		for _, m := range matchers {
			if !m.test(value) {
				return false
			}
		}
		return true
	})
}

// AnyOf requires that the input value passes at least one of the specified
// Matchers. If it fails, the failure message describes all of the Matchers
// that failed.
func AnyOf(matchers ...Matcher) Matcher {
	return combine(matchers, " or ", func(value interface{}) bool {
		for _, m := range matchers {
			if m.test(value) {
				return true
			}
		}
		return false
	})
}

// combine builds a composite Matcher whose failure message lists every
// component matcher the value did not pass, joined by separator. The value
// description of the first component carries over to the composite.
func combine(matchers []Matcher, separator string, test TestFunc) Matcher {
	var describeValueFn DescribeValueFunc
	if len(matchers) != 0 {
		describeValueFn = matchers[0].describeValue
	}
	describeFailure := func(value interface{}, desc DescribeValueFunc) string {
		var failed []string
		for _, m := range matchers {
			if !m.test(value) {
				failed = append(failed, m.describeFailure(value, m.describeValue))
			}
		}
		if len(failed) == 1 {
			return failed[0]
		}
		parts := make([]string, 0, len(failed))
		for _, f := range failed {
			parts = append(parts, "("+f+")")
		}
		return strings.Join(parts, separator)
	}
	return New(test, describeFailure).WithValueDescription(describeValueFn)
}
