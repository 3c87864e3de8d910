package expect

import (
	"fmt"

	"github.com/mockharness/mockharness/framework"
	"github.com/mockharness/mockharness/framework/dlist"
)

// Ordering is the FIFO of expected calls. Records are matched against the
// observed call stream strictly in declaration order, except that Optional
// records that do not name the observed function may be skipped without
// being consumed.
type Ordering struct {
	queue *dlist.List[*callRecord]
}

type callRecord struct {
	function  string
	mult      Multiplicity
	remaining int
	site      framework.Site
}

// ExpectedCall describes a mandatory call record that was never matched.
type ExpectedCall struct {
	Function  string
	Remaining int
	Site      framework.Site
}

// OrderViolationError is returned by Observe when the observed function does
// not match the next mandatory record in the queue.
type OrderViolationError struct {
	Observed     string
	Expected     string
	ExpectedSite framework.Site
}

func (e *OrderViolationError) Error() string {
	return fmt.Sprintf("expected call to %s (declared at %s) but %s was called",
		e.Expected, e.ExpectedSite, e.Observed)
}

// UnexpectedCallError is returned by Observe when the queue is empty.
type UnexpectedCallError struct {
	Observed string
}

func (e *UnexpectedCallError) Error() string {
	return fmt.Sprintf("no calls expected but %s was called", e.Observed)
}

// NewOrdering creates an empty call-ordering queue.
func NewOrdering() *Ordering {
	return &Ordering{queue: dlist.New[*callRecord]()}
}

// Expect appends a call record for the named function.
func (o *Ordering) Expect(function string, mult Multiplicity, site framework.Site) {
	rec := &callRecord{function: function, mult: mult, site: site}
	if mult.kind == multExactly {
		rec.remaining = mult.n
	}
	o.queue.PushBack(rec)
}

// Observe matches a call against the queue. Scanning starts at the head and
// skips over Optional records that do not name the function; it stops at the
// first record that either names the function or is not Optional. A stop on
// a non-matching record, or an exhausted queue, is a violation.
func (o *Ordering) Observe(function string) error {
	if o.queue.Len() == 0 {
		return &UnexpectedCallError{Observed: function}
	}
	node := o.queue.Front()
	for node != nil {
		rec := node.Value
		if rec.function == function || rec.mult.kind != multOptional {
			break
		}
		node = node.Next()
	}
	if node == nil {
		return &UnexpectedCallError{Observed: function}
	}

	rec := node.Value
	if rec.function != function {
		return &OrderViolationError{
			Observed:     function,
			Expected:     rec.function,
			ExpectedSite: rec.site,
		}
	}
	switch rec.mult.kind {
	case multAlways:
		// Matches indefinitely, never consumed.
	case multOptional:
		o.queue.Remove(node)
	default:
		rec.remaining--
		if rec.remaining == 0 {
			o.queue.Remove(node)
		}
	}
	return nil
}

// Leftovers reports the mandatory records that were never fully matched, in
// declaration order. Optional and Always records are discarded silently.
func (o *Ordering) Leftovers() []ExpectedCall {
	var out []ExpectedCall
	for n := o.queue.Front(); n != nil; n = n.Next() {
		rec := n.Value
		if rec.mult.IsRequired() {
			out = append(out, ExpectedCall{
				Function:  rec.function,
				Remaining: rec.remaining,
				Site:      rec.site,
			})
		}
	}
	return out
}

// Empty returns true if no records remain in the queue.
func (o *Ordering) Empty() bool { return o.queue.Len() == 0 }

// Reset discards every record.
func (o *Ordering) Reset() {
	o.queue = dlist.New[*callRecord]()
}
