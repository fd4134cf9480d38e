// Package fsm holds a typed transition table: state × event → state, with an
// optional guard evaluated against the subject before the move. Each lot
// aggregate declares its legal transitions in one table so the full graph can
// be listed and tested in one place.
package fsm

import "fmt"

// Guard reports why the subject may not take a transition, or nil.
type Guard[T any] func(subject T) error

// Transition is one edge of the graph.
type Transition[S comparable, E comparable, T any] struct {
	From  S
	Event E
	To    S
	Guard Guard[T]
}

type key[S comparable, E comparable] struct {
	from  S
	event E
}

// Table is an immutable set of transitions. It is safe for concurrent reads.
type Table[S comparable, E comparable, T any] struct {
	edges map[key[S, E]]Transition[S, E, T]
	order []Transition[S, E, T]
}

// NewTable builds a table. Declaring the same (From, Event) pair twice is a
// programming error and panics.
func NewTable[S comparable, E comparable, T any](transitions ...Transition[S, E, T]) *Table[S, E, T] {
	t := &Table[S, E, T]{
		edges: make(map[key[S, E]]Transition[S, E, T], len(transitions)),
		order: make([]Transition[S, E, T], 0, len(transitions)),
	}
	for _, tr := range transitions {
		k := key[S, E]{from: tr.From, event: tr.Event}
		if _, dup := t.edges[k]; dup {
			panic(fmt.Sprintf("fsm: duplicate transition from %v on %v", tr.From, tr.Event))
		}
		t.edges[k] = tr
		t.order = append(t.order, tr)
	}
	return t
}

// Lookup returns the transition for (from, event).
func (t *Table[S, E, T]) Lookup(from S, event E) (Transition[S, E, T], bool) {
	tr, ok := t.edges[key[S, E]{from: from, event: event}]
	return tr, ok
}

// Evaluate finds the transition and runs its guard against subject.
// ok is false when no edge exists; err carries the guard failure.
func (t *Table[S, E, T]) Evaluate(from S, event E, subject T) (to S, ok bool, err error) {
	tr, found := t.Lookup(from, event)
	if !found {
		return to, false, nil
	}
	if tr.Guard != nil {
		if err = tr.Guard(subject); err != nil {
			return to, true, err
		}
	}
	return tr.To, true, nil
}

// Transitions lists every edge in declaration order.
func (t *Table[S, E, T]) Transitions() []Transition[S, E, T] {
	out := make([]Transition[S, E, T], len(t.order))
	copy(out, t.order)
	return out
}

// Events lists the events accepted in state from, in declaration order.
func (t *Table[S, E, T]) Events(from S) []E {
	var events []E
	for _, tr := range t.order {
		if tr.From == from {
			events = append(events, tr.Event)
		}
	}
	return events
}
