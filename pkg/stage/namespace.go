// Package stage holds the controlled vocabulary of pipeline stages and the
// dependency graph between them
package stage

import (
	"errors"
	"fmt"
	"strings"
)

// Namespace lookup errors
var (
	ErrUnknownName      = errors.New("name is not a member of the namespace")
	ErrInvalidValue     = errors.New("value is not a valid member of the namespace")
	ErrValueNotAssigned = errors.New("value is not assigned to a name")
)

// Member is a single (name, value) pair of a Namespace
type Member[V comparable] struct {
	Name  string
	Value V
}

// Namespace is a closed, ordered set of named values. It is built once and
// never modified afterwards, so it is safe for concurrent reads.
type Namespace[V comparable] struct {
	members []Member[V]
	byName  map[string]V
}

// NewNamespace builds a namespace from members in definition order
func NewNamespace[V comparable](members ...Member[V]) *Namespace[V] {
	ns := &Namespace[V]{
		members: make([]Member[V], 0, len(members)),
		byName:  make(map[string]V, len(members)),
	}

	for _, m := range members {
		if _, exists := ns.byName[m.Name]; exists {
			panic(fmt.Sprintf("duplicate namespace name %q", m.Name))
		}
		ns.members = append(ns.members, m)
		ns.byName[m.Name] = m.Value
	}

	return ns
}

// Values returns all values in definition order
func (n *Namespace[V]) Values() []V {
	values := make([]V, 0, len(n.members))
	for _, m := range n.members {
		values = append(values, m.Value)
	}
	return values
}

// Keys returns all names in definition order
func (n *Namespace[V]) Keys() []string {
	keys := make([]string, 0, len(n.members))
	for _, m := range n.members {
		keys = append(keys, m.Name)
	}
	return keys
}

// Len returns the number of members
func (n *Namespace[V]) Len() int {
	return len(n.members)
}

// Contains reports whether value is one of the namespace values
func (n *Namespace[V]) Contains(value V) bool {
	for _, m := range n.members {
		if m.Value == value {
			return true
		}
	}
	return false
}

// Lookup returns the value registered under name
func (n *Namespace[V]) Lookup(name string) (V, error) {
	value, ok := n.byName[name]
	if !ok {
		return value, fmt.Errorf("%w: %s", ErrUnknownName, name)
	}
	return value, nil
}

// Enforce returns value unchanged when it is a member, and an error listing the
// valid values otherwise
func (n *Namespace[V]) Enforce(value V) (V, error) {
	if !n.Contains(value) {
		valid := make([]string, 0, len(n.members))
		for _, m := range n.members {
			valid = append(valid, fmt.Sprint(m.Value))
		}
		return value, fmt.Errorf("%w: %v (expected one of: %s)", ErrInvalidValue, value, strings.Join(valid, ", "))
	}
	return value, nil
}

// Reverse returns the name whose value equals value. When several names share
// a value the first one in definition order is returned.
func (n *Namespace[V]) Reverse(value V) (string, error) {
	for _, m := range n.members {
		if m.Value == value {
			return m.Name, nil
		}
	}
	return "", fmt.Errorf("%w: %v", ErrValueNotAssigned, value)
}

// ToMap returns a name to value copy of the namespace
func (n *Namespace[V]) ToMap() map[string]V {
	out := make(map[string]V, len(n.members))
	for _, m := range n.members {
		out[m.Name] = m.Value
	}
	return out
}
