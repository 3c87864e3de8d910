package matchers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryEqual(t *testing.T) {
	assertPasses(t, []byte{1, 2, 3}, MemoryEqual([]byte{1, 2, 3}))
	assertPasses(t, []byte{}, MemoryEqual([]byte{}))

	assertFails(t, []byte{1, 2}, MemoryEqual([]byte{1, 2, 3}),
		"expected: 3 bytes of memory (got 2 bytes)\nactual value was: 0x0102")

	pass, desc := MemoryEqual([]byte{1, 2, 3}).Test([]byte{1, 9, 3})
	assert.False(t, pass)
	assert.Contains(t, desc, "1 byte(s) differ")
	assert.Contains(t, desc, "[1] 0x09 != 0x02")

	pass, desc = MemoryEqual([]byte{1, 2, 3}).Test("not bytes")
	assert.False(t, pass)
	assert.Contains(t, desc, "a []byte value, was string")
}

func TestMemoryEqualCapsReportedDiffs(t *testing.T) {
	expected := make([]byte, 32)
	actual := make([]byte, 32)
	for i := range actual {
		actual[i] = 0xFF
	}
	_, desc := MemoryEqual(expected).Test(actual)
	assert.Contains(t, desc, "32 byte(s) differ")
	assert.Contains(t, desc, "and 16 more")
}

func TestMemoryNotEqual(t *testing.T) {
	assertPasses(t, []byte{1, 9, 3}, MemoryNotEqual([]byte{1, 2, 3}))
	assertPasses(t, []byte{1, 2}, MemoryNotEqual([]byte{1, 2, 3}))
	assertFails(t, []byte{1, 2, 3}, MemoryNotEqual([]byte{1, 2, 3}),
		"expected: memory differing from 0x010203\nactual value was: 0x010203")
}
