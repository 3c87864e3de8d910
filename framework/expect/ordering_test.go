package expect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderingMatchesInDeclarationOrder(t *testing.T) {
	o := NewOrdering()
	o.Expect("a", Once(), site(1))
	o.Expect("b", Once(), site(2))

	assert.NoError(t, o.Observe("a"))
	assert.NoError(t, o.Observe("b"))
	assert.True(t, o.Empty())
}

func TestOrderingOutOfOrderIsViolation(t *testing.T) {
	o := NewOrdering()
	o.Expect("a", Once(), site(1))
	o.Expect("b", Once(), site(2))

	err := o.Observe("b")
	var violation *OrderViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "a", violation.Expected)
	assert.Equal(t, "b", violation.Observed)
	assert.Equal(t, site(1), violation.ExpectedSite)
}

func TestOrderingEmptyQueueIsViolation(t *testing.T) {
	o := NewOrdering()

	err := o.Observe("a")
	var unexpected *UnexpectedCallError
	require.ErrorAs(t, err, &unexpected)
	assert.Equal(t, "a", unexpected.Observed)
}

func TestOrderingSurplusCallIsViolation(t *testing.T) {
	o := NewOrdering()
	o.Expect("a", Once(), site(1))
	o.Expect("b", Once(), site(2))

	require.NoError(t, o.Observe("a"))
	err := o.Observe("a")
	var violation *OrderViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "b", violation.Expected)
	assert.Equal(t, "a", violation.Observed)
}

func TestOrderingMultiplicityConsumesUnits(t *testing.T) {
	o := NewOrdering()
	o.Expect("a", Exactly(2), site(1))
	o.Expect("b", Once(), site(2))

	require.NoError(t, o.Observe("a"))
	require.NoError(t, o.Observe("a"))
	require.NoError(t, o.Observe("b"))
	assert.True(t, o.Empty())
}

func TestOrderingOptionalIsSkippable(t *testing.T) {
	o := NewOrdering()
	o.Expect("opt", Optional(), site(1))
	o.Expect("b", Once(), site(2))

	// The optional record does not block the mandatory one.
	require.NoError(t, o.Observe("b"))
	assert.Empty(t, o.Leftovers())
}

func TestOrderingOptionalMatchesWhenPresent(t *testing.T) {
	o := NewOrdering()
	o.Expect("opt", Optional(), site(1))
	o.Expect("b", Once(), site(2))

	require.NoError(t, o.Observe("opt"))
	require.NoError(t, o.Observe("b"))
	assert.True(t, o.Empty())
}

func TestOrderingOptionalDoesNotShadowMandatorySameName(t *testing.T) {
	o := NewOrdering()
	o.Expect("a", Optional(), site(1))
	o.Expect("a", Once(), site(2))

	require.NoError(t, o.Observe("a"))
	require.NoError(t, o.Observe("a"))
	left := o.Leftovers()
	assert.Empty(t, left)
}

func TestOrderingAlwaysMatchesRepeatedly(t *testing.T) {
	o := NewOrdering()
	o.Expect("log", Always(), site(1))

	require.NoError(t, o.Observe("log"))
	require.NoError(t, o.Observe("log"))
	require.NoError(t, o.Observe("log"))
	assert.Empty(t, o.Leftovers())
}

func TestOrderingAlwaysRecordStopsScan(t *testing.T) {
	o := NewOrdering()
	o.Expect("log", Always(), site(1))
	o.Expect("b", Once(), site(2))

	// An Always record at the head is not skippable: only Optional records
	// may be scanned past, so a call to "b" stops at "log" and fails.
	err := o.Observe("b")
	var violation *OrderViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "log", violation.Expected)
	assert.Equal(t, "b", violation.Observed)
	assert.Equal(t, site(1), violation.ExpectedSite)
}

func TestOrderingMandatoryRecordStopsScan(t *testing.T) {
	o := NewOrdering()
	o.Expect("a", Once(), site(1))
	o.Expect("c", Optional(), site(2))

	// "c" is declared after the mandatory "a", so observing it first stops
	// at "a" and fails.
	err := o.Observe("c")
	var violation *OrderViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "a", violation.Expected)
}

func TestOrderingLeftoversAreMandatoryOnly(t *testing.T) {
	o := NewOrdering()
	o.Expect("a", Exactly(2), site(1))
	o.Expect("opt", Optional(), site(2))
	o.Expect("any", Always(), site(3))

	require.NoError(t, o.Observe("a"))

	left := o.Leftovers()
	require.Len(t, left, 1)
	assert.Equal(t, "a", left[0].Function)
	assert.Equal(t, 1, left[0].Remaining)
	assert.Equal(t, site(1), left[0].Site)
}

func TestOrderingReset(t *testing.T) {
	o := NewOrdering()
	o.Expect("a", Once(), site(1))
	o.Reset()
	assert.True(t, o.Empty())
	assert.Error(t, o.Observe("a"))
}
