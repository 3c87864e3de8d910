package expect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockharness/mockharness/framework"
)

func site(line int) framework.Site {
	return framework.Site{File: "example_test.go", Line: line}
}

func TestStoreDispensesInDeclarationOrder(t *testing.T) {
	s := NewStore()
	s.Enqueue([]string{"f"}, 1, Once(), site(1))
	s.Enqueue([]string{"f"}, 2, Once(), site(2))

	d1, err := s.Dispense([]string{"f"})
	require.NoError(t, err)
	d2, err := s.Dispense([]string{"f"})
	require.NoError(t, err)

	assert.Equal(t, 1, d1.Value)
	assert.Equal(t, 2, d2.Value)
	assert.Equal(t, site(1), d1.Site)
	assert.Equal(t, site(2), d2.Site)
}

func TestStoreExactlyNIsDispensableExactlyNTimes(t *testing.T) {
	const n = 3
	s := NewStore()
	s.Enqueue([]string{"f"}, "v", Exactly(n), site(1))

	for i := n; i >= 1; i-- {
		d, err := s.Dispense([]string{"f"})
		require.NoError(t, err)
		assert.Equal(t, "v", d.Value)
		assert.Equal(t, i-1, d.Remaining)
	}

	_, err := s.Dispense([]string{"f"})
	var noExp *NoExpectationError
	require.ErrorAs(t, err, &noExp)
	assert.Equal(t, []string{"f"}, noExp.Keys)
	assert.True(t, noExp.LastSite.IsDefined())
}

func TestStoreAlwaysIsNeverExhausted(t *testing.T) {
	s := NewStore()
	s.Enqueue([]string{"f"}, 42, Always(), site(1))

	for i := 0; i < 10; i++ {
		d, err := s.Dispense([]string{"f"})
		require.NoError(t, err)
		assert.Equal(t, 42, d.Value)
		assert.Equal(t, Unbounded, d.Remaining)
	}
	assert.Empty(t, s.Leftovers())
}

func TestStoreOptionalIsRemovedAfterUseAndNeverLeftover(t *testing.T) {
	s := NewStore()
	s.Enqueue([]string{"f"}, "maybe", Optional(), site(1))
	assert.Empty(t, s.Leftovers())

	d, err := s.Dispense([]string{"f"})
	require.NoError(t, err)
	assert.Equal(t, "maybe", d.Value)

	_, err = s.Dispense([]string{"f"})
	assert.Error(t, err)
	assert.Empty(t, s.Leftovers())
}

func TestStoreMissingKeyPathFails(t *testing.T) {
	s := NewStore()
	s.Enqueue([]string{"f", "p"}, 1, Once(), site(1))

	_, err := s.Dispense([]string{"f", "other"})
	var noExp *NoExpectationError
	require.ErrorAs(t, err, &noExp)
	assert.Equal(t, []string{"f", "other"}, noExp.Keys)

	_, err = s.Dispense([]string{"g", "p"})
	assert.Error(t, err)
}

func TestStorePrunesEmptySubtrees(t *testing.T) {
	s := NewStore()
	s.Enqueue([]string{"f", "p"}, 1, Once(), site(1))

	_, err := s.Dispense([]string{"f", "p"})
	require.NoError(t, err)

	// Both the parameter queue and the now-empty function node are gone.
	assert.True(t, s.Empty())
	_, err = s.Dispense([]string{"f", "p"})
	assert.Error(t, err)
}

func TestStoreLeftoversReportRequiredUnitsOnly(t *testing.T) {
	s := NewStore()
	s.Enqueue([]string{"f"}, 1, Exactly(2), site(10))
	s.Enqueue([]string{"f"}, 2, Always(), site(11))
	s.Enqueue([]string{"g", "p"}, 3, Once(), site(12))
	s.Enqueue([]string{"g", "p"}, 4, Optional(), site(13))

	_, err := s.Dispense([]string{"f"})
	require.NoError(t, err)

	left := s.Leftovers()
	require.Len(t, left, 2)
	assert.Equal(t, []string{"f"}, left[0].Keys)
	assert.Equal(t, 1, left[0].Remaining)
	assert.Equal(t, site(10), left[0].Site)
	assert.Equal(t, []string{"g", "p"}, left[1].Keys)
	assert.Equal(t, site(12), left[1].Site)
}

func TestStoreSeparateQueuesPerKeyPath(t *testing.T) {
	s := NewStore()
	s.Enqueue([]string{"f", "a"}, "fa", Once(), site(1))
	s.Enqueue([]string{"f", "b"}, "fb", Once(), site(2))

	d, err := s.Dispense([]string{"f", "b"})
	require.NoError(t, err)
	assert.Equal(t, "fb", d.Value)

	d, err = s.Dispense([]string{"f", "a"})
	require.NoError(t, err)
	assert.Equal(t, "fa", d.Value)
}

func TestStoreReset(t *testing.T) {
	s := NewStore()
	s.Enqueue([]string{"f"}, 1, Once(), site(1))
	s.Reset()

	assert.True(t, s.Empty())
	assert.Empty(t, s.Leftovers())
	_, err := s.Dispense([]string{"f"})
	var noExp *NoExpectationError
	require.ErrorAs(t, err, &noExp)
	assert.False(t, noExp.LastSite.IsDefined())
}
