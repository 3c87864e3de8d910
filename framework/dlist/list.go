// Package dlist implements the doubly-linked list that underlies the
// expectation store, the call-ordering queue, and the guarded allocator's
// block list. Unlike container/list it is generic, and node handles remain
// valid position markers after later insertions, which is what makes the
// allocator's checkpoints cheap.
package dlist

// List is an ordered sequence of values with O(1) append and removal.
// A zero List is not usable; call New.
type List[T any] struct {
	front, back *Node[T]
	size        int
}

// Node is an element of a List. Nodes are owned exclusively by the list
// that holds them.
type Node[T any] struct {
	Value      T
	prev, next *Node[T]
	list       *List[T]
}

// New creates an empty list.
func New[T any]() *List[T] {
	return &List[T]{}
}

// Len returns the number of nodes in the list.
func (l *List[T]) Len() int { return l.size }

// Front returns the oldest node, or nil if the list is empty.
func (l *List[T]) Front() *Node[T] { return l.front }

// Back returns the newest node, or nil if the list is empty.
func (l *List[T]) Back() *Node[T] { return l.back }

// PushBack appends a value and returns its node.
func (l *List[T]) PushBack(value T) *Node[T] {
	n := &Node[T]{Value: value, list: l, prev: l.back}
	if l.back != nil {
		l.back.next = n
	} else {
		l.front = n
	}
	l.back = n
	l.size++
	return n
}

// Remove unlinks a node from its list. Removing a node that is not in the
// list (or removing it twice) is a no-op.
func (l *List[T]) Remove(n *Node[T]) {
	if n == nil || n.list != l {
		return
	}
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.front = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.back = n.prev
	}
	n.prev, n.next, n.list = nil, nil, nil
	l.size--
}

// Next returns the node after n, or nil at the end of the list.
func (n *Node[T]) Next() *Node[T] { return n.next }

// Prev returns the node before n, or nil at the front of the list.
func (n *Node[T]) Prev() *Node[T] { return n.prev }
