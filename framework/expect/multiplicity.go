// Package expect implements the queues of consumable facts that drive the
// mock engine: return values queued for named functions, parameter checks
// queued for named parameters, and the FIFO of expected calls. Every queued
// item carries a Multiplicity saying how many times it may be dispensed and
// a Site saying where the test declared it.
package expect

import (
	"fmt"

	"github.com/mockharness/mockharness/framework"
)

type multKind int

const (
	multExactly multKind = iota
	multAlways
	multOptional
)

// Multiplicity describes how many times an expectation may be consumed.
// The zero value is Exactly(1).
type Multiplicity struct {
	kind multKind
	n    int
}

// Exactly returns a multiplicity that allows n consumptions and requires all
// of them: unconsumed units are reported as leftovers at the end of a test.
// Values of n below 1 are treated as 1.
func Exactly(n int) Multiplicity {
	if n < 1 {
		n = 1
	}
	return Multiplicity{kind: multExactly, n: n}
}

// Once is shorthand for Exactly(1), the default for every declaration
// primitive.
func Once() Multiplicity { return Exactly(1) }

// Always returns a multiplicity with no consumption limit. An Always item is
// never removed by dispensing and is never reported as a leftover.
func Always() Multiplicity { return Multiplicity{kind: multAlways} }

// Optional returns a multiplicity that allows at most one consumption but
// does not require any. In the call-ordering queue an Optional record may
// also be skipped over by a later mandatory match.
func Optional() Multiplicity { return Multiplicity{kind: multOptional} }

// IsRequired returns true if unconsumed units of this multiplicity count as
// leftovers.
func (m Multiplicity) IsRequired() bool { return m.kind == multExactly }

func (m Multiplicity) String() string {
	switch m.kind {
	case multAlways:
		return "always"
	case multOptional:
		return "optional"
	default:
		if m.n <= 1 {
			return "once"
		}
		return fmt.Sprintf("%d times", m.n)
	}
}

// item is one queued unit of work: a return value, a parameter check, or a
// call expectation.
type item struct {
	value     any
	mult      Multiplicity
	remaining int // meaningful only for Exactly
	site      framework.Site
}

func newItem(value any, mult Multiplicity, site framework.Site) *item {
	it := &item{value: value, mult: mult, site: site}
	if mult.kind == multExactly {
		it.remaining = mult.n
	}
	return it
}

// consume takes one unit from the item and reports whether the item is now
// exhausted and should be removed from its queue.
func (it *item) consume() (remaining int, exhausted bool) {
	switch it.mult.kind {
	case multAlways:
		return Unbounded, false
	case multOptional:
		return 0, true
	default:
		it.remaining--
		return it.remaining, it.remaining == 0
	}
}

// Unbounded is the remaining count reported when dispensing an Always item.
const Unbounded = -1
