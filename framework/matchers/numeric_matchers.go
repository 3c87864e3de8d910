package matchers

import (
	"fmt"
	"math"
	"reflect"

	"golang.org/x/exp/slices"
)

// InRange tests whether an integer value falls within [min, max] inclusive.
// Any signed or unsigned integer type is accepted.
func InRange(min, max int64) Matcher {
	return New(
		func(value interface{}) bool {
			n, ok := toInt64(value)
			return ok && n >= min && n <= max
		},
		func(value interface{}, desc DescribeValueFunc) string {
			if _, ok := toInt64(value); !ok {
				return fmt.Sprintf("an integer value, was %T", value)
			}
			return fmt.Sprintf("in range [%d, %d]", min, max)
		},
	)
}

// NotInRange tests whether an integer value falls outside [min, max].
func NotInRange(min, max int64) Matcher {
	return New(
		func(value interface{}) bool {
			n, ok := toInt64(value)
			return ok && (n < min || n > max)
		},
		func(value interface{}, desc DescribeValueFunc) string {
			if _, ok := toInt64(value); !ok {
				return fmt.Sprintf("an integer value, was %T", value)
			}
			return fmt.Sprintf("not in range [%d, %d]", min, max)
		},
	)
}

// InSet tests whether an integer value is one of the given values.
func InSet(values ...int64) Matcher {
	return New(
		func(value interface{}) bool {
			n, ok := toInt64(value)
			return ok && slices.Contains(values, n)
		},
		func(value interface{}, desc DescribeValueFunc) string {
			return fmt.Sprintf("one of %v", values)
		},
	)
}

// NotInSet tests whether an integer value is none of the given values.
func NotInSet(values ...int64) Matcher {
	return New(
		func(value interface{}) bool {
			n, ok := toInt64(value)
			return ok && !slices.Contains(values, n)
		},
		func(value interface{}, desc DescribeValueFunc) string {
			return fmt.Sprintf("none of %v", values)
		},
	)
}

// FloatEqual tests whether a float64 value equals the expected value within
// the given absolute epsilon. Values that differ by more than epsilon are
// still considered equal if their difference is within one machine epsilon
// scaled by the larger magnitude, so very large near-identical values
// compare equal.
func FloatEqual(expected, epsilon float64) Matcher {
	return New(
		func(value interface{}) bool {
			f, ok := value.(float64)
			return ok && floatsEqual(f, expected, epsilon)
		},
		func(value interface{}, desc DescribeValueFunc) string {
			if _, ok := value.(float64); !ok {
				return fmt.Sprintf("a float64 value, was %T", value)
			}
			return fmt.Sprintf("within %g of %g", epsilon, expected)
		},
	)
}

// FloatNotEqual is the negation of FloatEqual.
func FloatNotEqual(expected, epsilon float64) Matcher {
	return New(
		func(value interface{}) bool {
			f, ok := value.(float64)
			return ok && !floatsEqual(f, expected, epsilon)
		},
		func(value interface{}, desc DescribeValueFunc) string {
			if _, ok := value.(float64); !ok {
				return fmt.Sprintf("a float64 value, was %T", value)
			}
			return fmt.Sprintf("not within %g of %g", epsilon, expected)
		},
	)
}

func floatsEqual(a, b, epsilon float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	if a == b {
		return true
	}
	diff := math.Abs(a - b)
	if diff <= epsilon {
		return true
	}
	largest := math.Max(math.Abs(a), math.Abs(b))
	return diff <= largest*machineEpsilon
}

// machineEpsilon is the difference between 1.0 and the next larger float64.
const machineEpsilon = 0x1p-52

// toInt64 widens any integer value to int64. Unsigned values above
// math.MaxInt64 do not convert.
func toInt64(value interface{}) (int64, bool) {
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := v.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	default:
		return 0, false
	}
}
