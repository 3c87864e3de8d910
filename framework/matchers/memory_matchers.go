package matchers

import (
	"bytes"
	"fmt"
	"strings"
)

// maxReportedDiffs caps how many mismatched offsets a MemoryEqual failure
// message lists.
const maxReportedDiffs = 16

// MemoryEqual tests whether a []byte value is byte-for-byte identical to
// the expected region. A failure message lists the first mismatched offsets
// with the differing bytes at each.
func MemoryEqual(expected []byte) Matcher {
	return New(
		func(value interface{}) bool {
			b, ok := value.([]byte)
			return ok && bytes.Equal(b, expected)
		},
		func(value interface{}, desc DescribeValueFunc) string {
			b, ok := value.([]byte)
			if !ok {
				return fmt.Sprintf("a []byte value, was %T", value)
			}
			if len(b) != len(expected) {
				return fmt.Sprintf("%d bytes of memory (got %d bytes)", len(expected), len(b))
			}
			return fmt.Sprintf("identical memory, but %s", describeMemoryDiffs(b, expected))
		},
	).WithValueDescription(hexDescription)
}

// MemoryNotEqual tests whether a []byte value differs from the expected
// region in at least one byte (or in length).
func MemoryNotEqual(expected []byte) Matcher {
	return New(
		func(value interface{}) bool {
			b, ok := value.([]byte)
			return ok && !bytes.Equal(b, expected)
		},
		func(value interface{}, desc DescribeValueFunc) string {
			if _, ok := value.([]byte); !ok {
				return fmt.Sprintf("a []byte value, was %T", value)
			}
			return fmt.Sprintf("memory differing from %s", hexDescription(expected))
		},
	).WithValueDescription(hexDescription)
}

func describeMemoryDiffs(actual, expected []byte) string {
	var parts []string
	total := 0
	for i := range expected {
		if actual[i] != expected[i] {
			total++
			if len(parts) < maxReportedDiffs {
				parts = append(parts, fmt.Sprintf("[%d] 0x%02x != 0x%02x", i, actual[i], expected[i]))
			}
		}
	}
	report := strings.Join(parts, ", ")
	if total > len(parts) {
		report += fmt.Sprintf(", and %d more", total-len(parts))
	}
	return fmt.Sprintf("%d byte(s) differ: %s", total, report)
}

func hexDescription(value interface{}) string {
	b, ok := value.([]byte)
	if !ok {
		return DefaultDescription(value)
	}
	return fmt.Sprintf("0x%x", b)
}
