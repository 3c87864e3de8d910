package mocktest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchGlob(t *testing.T) {
	assert.True(t, matchGlob("abc", "abc"))
	assert.False(t, matchGlob("abc", "abd"))
	assert.False(t, matchGlob("abc", "abcd"))

	assert.True(t, matchGlob("a?c", "abc"))
	assert.False(t, matchGlob("a?c", "ac"))

	assert.True(t, matchGlob("*", "anything"))
	assert.True(t, matchGlob("*", ""))
	assert.True(t, matchGlob("test_*", "test_foo"))
	assert.False(t, matchGlob("test_*", "foo_test"))
	assert.True(t, matchGlob("*_foo", "test_foo"))
	assert.True(t, matchGlob("a*b*c", "a-xx-b-yy-c"))
	assert.False(t, matchGlob("a*b*c", "a-xx-c"))
	assert.True(t, matchGlob("*middle*", "has middle part"))
	assert.True(t, matchGlob("a*", "a"))
	assert.False(t, matchGlob("a*?", "a"))
	assert.True(t, matchGlob("a*?", "ab"))
}

func TestGlobFilters(t *testing.T) {
	all := GlobFilters{}.AsFilter()
	assert.True(t, all.Match("anything"))

	runOnly := GlobFilters{Run: []string{"alloc_*", "order_*"}}.AsFilter()
	assert.True(t, runOnly.Match("alloc_basic"))
	assert.True(t, runOnly.Match("order_basic"))
	assert.False(t, runOnly.Match("misc"))

	withSkip := GlobFilters{Skip: []string{"*_slow"}}.AsFilter()
	assert.True(t, withSkip.Match("alloc_basic"))
	assert.False(t, withSkip.Match("alloc_slow"))

	both := GlobFilters{Run: []string{"alloc_*"}, Skip: []string{"*_slow"}}.AsFilter()
	assert.True(t, both.Match("alloc_basic"))
	assert.False(t, both.Match("alloc_slow"))
	assert.False(t, both.Match("order_basic"))
}

func TestNilFilterMatchesEverything(t *testing.T) {
	var f Filter
	assert.True(t, f.Match("anything"))
}
