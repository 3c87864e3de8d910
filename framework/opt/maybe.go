// Package opt provides a minimal optional-value type, used where "no value"
// and "zero value" must be distinguished (skip reasons, last-dispensed
// declaration sites).
package opt

import "fmt"

// Maybe is an optional value of type V.
type Maybe[V any] struct {
	defined bool
	value   V
}

// Some returns a Maybe holding a value.
func Some[V any](value V) Maybe[V] {
	return Maybe[V]{defined: true, value: value}
}

// None returns a Maybe with no value.
func None[V any]() Maybe[V] { return Maybe[V]{} }

// IsDefined returns true if the Maybe holds a value.
func (m Maybe[V]) IsDefined() bool { return m.defined }

// Value returns the held value, or the zero value of V if none is defined.
func (m Maybe[V]) Value() V { return m.value }

// OrElse returns the held value if defined, or valueIfUndefined otherwise.
func (m Maybe[V]) OrElse(valueIfUndefined V) V {
	if m.defined {
		return m.value
	}
	return valueIfUndefined
}

// String formats the held value with fmt.Stringer if it implements it, or
// %v otherwise; an undefined Maybe formats as "[none]".
func (m Maybe[V]) String() string {
	if !m.defined {
		return "[none]"
	}
	var v interface{} = m.value
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", m.value)
}
