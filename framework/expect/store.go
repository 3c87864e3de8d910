package expect

import (
	"fmt"
	"strings"

	"github.com/mockharness/mockharness/framework"
	"github.com/mockharness/mockharness/framework/dlist"
	"github.com/mockharness/mockharness/framework/opt"
)

// Store is a forest of name-keyed FIFO queues. The engine keeps two
// instances per test: one keyed by function name holding queued return
// values, and one keyed by (function, parameter) holding queued checks.
// Values are dispensed in declaration order. A queue that runs dry is
// pruned from its parent, and interior nodes whose subtrees become empty
// are removed with it.
type Store struct {
	roots *dlist.List[*storeEntry]

	// Site of the most recently dispensed item, reported when a later
	// dispensation finds nothing, to point at the declaration that ran out.
	lastDispensed opt.Maybe[framework.Site]
}

type storeEntry struct {
	name     string
	children *dlist.List[*storeEntry]
	values   *dlist.List[*item]
}

// Dispensed is the result of a successful Dispense.
type Dispensed struct {
	Value any
	// Remaining is the number of further dispensations the item allows:
	// a count for Exactly items, Unbounded for Always, 0 for Optional.
	Remaining int
	// Site is where the item was declared.
	Site framework.Site
}

// Leftover describes a required item that was never fully consumed.
type Leftover struct {
	Keys      []string
	Remaining int
	Site      framework.Site
}

func (l Leftover) String() string {
	return fmt.Sprintf("%s (%d remaining, declared at %s)",
		strings.Join(l.Keys, "."), l.Remaining, l.Site)
}

// NoExpectationError is returned by Dispense when no item is queued under
// the given key path. It is a protocol violation: the test declared fewer
// expectations than the code under test consumed.
type NoExpectationError struct {
	Keys []string
	// LastSite is where the most recently dispensed item for this store was
	// declared, if any, to help locate the declaration that ran out.
	LastSite opt.Maybe[framework.Site]
}

func (e *NoExpectationError) Error() string {
	msg := fmt.Sprintf("no expectation queued for %s", strings.Join(e.Keys, "."))
	if e.LastSite.IsDefined() {
		msg += fmt.Sprintf(" (previous value was declared at %s)", e.LastSite.Value())
	}
	return msg
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{roots: dlist.New[*storeEntry]()}
}

// Enqueue appends a value to the queue at the given key path, creating the
// path as needed. Keys must be non-empty.
func (s *Store) Enqueue(keys []string, value any, mult Multiplicity, site framework.Site) {
	if len(keys) == 0 {
		panic("expect: Enqueue requires at least one key")
	}
	level := s.roots
	for _, key := range keys[:len(keys)-1] {
		level = findOrAddEntry(level, key).children
	}
	leaf := findOrAddEntry(level, keys[len(keys)-1])
	leaf.values.PushBack(newItem(value, mult, site))
}

func findOrAddEntry(level *dlist.List[*storeEntry], name string) *storeEntry {
	for n := level.Front(); n != nil; n = n.Next() {
		if n.Value.name == name {
			return n.Value
		}
	}
	e := &storeEntry{
		name:     name,
		children: dlist.New[*storeEntry](),
		values:   dlist.New[*item](),
	}
	level.PushBack(e)
	return e
}

// Dispense consumes one unit of the oldest item queued under the key path.
// Empty subtrees left behind by the consumption are pruned bottom-up.
func (s *Store) Dispense(keys []string) (Dispensed, error) {
	if len(keys) == 0 {
		panic("expect: Dispense requires at least one key")
	}
	// Walk the key path, remembering each level so pruning can run upward.
	type step struct {
		level *dlist.List[*storeEntry]
		node  *dlist.Node[*storeEntry]
	}
	path := make([]step, 0, len(keys))
	level := s.roots
	for _, key := range keys {
		node := findEntryNode(level, key)
		if node == nil {
			return Dispensed{}, &NoExpectationError{Keys: keys, LastSite: s.lastDispensed}
		}
		path = append(path, step{level: level, node: node})
		level = node.Value.children
	}

	leaf := path[len(path)-1].node.Value
	head := leaf.values.Front()
	if head == nil {
		return Dispensed{}, &NoExpectationError{Keys: keys, LastSite: s.lastDispensed}
	}
	it := head.Value
	remaining, exhausted := it.consume()
	if exhausted {
		leaf.values.Remove(head)
	}
	s.lastDispensed = opt.Some(it.site)

	for i := len(path) - 1; i >= 0; i-- {
		e := path[i].node.Value
		if e.values.Len() == 0 && e.children.Len() == 0 {
			path[i].level.Remove(path[i].node)
		}
	}

	return Dispensed{Value: it.value, Remaining: remaining, Site: it.site}, nil
}

func findEntryNode(level *dlist.List[*storeEntry], name string) *dlist.Node[*storeEntry] {
	for n := level.Front(); n != nil; n = n.Next() {
		if n.Value.name == name {
			return n
		}
	}
	return nil
}

// Leftovers reports every required item that still has unconsumed units, in
// declaration order. Always and Optional items are never leftovers.
func (s *Store) Leftovers() []Leftover {
	var out []Leftover
	collectLeftovers(s.roots, nil, &out)
	return out
}

func collectLeftovers(level *dlist.List[*storeEntry], prefix []string, out *[]Leftover) {
	for n := level.Front(); n != nil; n = n.Next() {
		e := n.Value
		keys := append(append([]string(nil), prefix...), e.name)
		for v := e.values.Front(); v != nil; v = v.Next() {
			if v.Value.mult.IsRequired() {
				*out = append(*out, Leftover{
					Keys:      keys,
					Remaining: v.Value.remaining,
					Site:      v.Value.site,
				})
			}
		}
		collectLeftovers(e.children, keys, out)
	}
}

// Empty returns true if no items are queued anywhere in the store.
func (s *Store) Empty() bool { return s.roots.Len() == 0 }

// Reset discards every queued item and forgets the last-dispensed site.
func (s *Store) Reset() {
	s.roots = dlist.New[*storeEntry]()
	s.lastDispensed = opt.None[framework.Site]()
}
