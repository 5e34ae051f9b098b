// Package fsm provides a small generic finite-state-machine engine: a
// state/transition table plus a Machine that applies it. An invalid
// transition is reported to the caller, never panics — the analytics
// services log it and keep running.
package fsm

import "fmt"

// ErrInvalidTransition is returned by Machine.Fire when no table entry
// matches (state, transition). The machine's current state is left
// unchanged.
type ErrInvalidTransition[S comparable, T comparable] struct {
	State      S
	Transition T
}

func (e *ErrInvalidTransition[S, T]) Error() string {
	return fmt.Sprintf("invalid transition %v from state %v", e.Transition, e.State)
}

type edge[S comparable, T comparable] struct {
	from S
	on   T
}

// Table maps (state, transition) pairs to a resulting state. Built once
// via NewTable().Add(...), then shared read-only across every Machine
// instance using it (one Table per subscription type, many Machines —
// one per active (subscription, target) pair).
type Table[S comparable, T comparable] struct {
	edges map[edge[S, T]]S
}

// NewTable creates an empty transition table.
func NewTable[S comparable, T comparable]() *Table[S, T] {
	return &Table[S, T]{edges: make(map[edge[S, T]]S)}
}

// Add registers a transition. Returns the table for chaining.
func (tbl *Table[S, T]) Add(from S, on T, to S) *Table[S, T] {
	tbl.edges[edge[S, T]{from: from, on: on}] = to
	return tbl
}

// Next looks up the resulting state for (from, on), reporting ok=false
// if the table has no such edge.
func (tbl *Table[S, T]) Next(from S, on T) (S, bool) {
	to, ok := tbl.edges[edge[S, T]{from: from, on: on}]
	return to, ok
}

// Machine holds a single current state and applies a shared Table to it.
type Machine[S comparable, T comparable] struct {
	table   *Table[S, T]
	current S
}

// NewMachine creates a Machine starting at initial.
func NewMachine[S comparable, T comparable](table *Table[S, T], initial S) *Machine[S, T] {
	return &Machine[S, T]{table: table, current: initial}
}

// State returns the machine's current state.
func (m *Machine[S, T]) State() S {
	return m.current
}

// Fire applies transition t. On success it updates the current state and
// returns nil. On an unknown (state, transition) pair it returns
// *ErrInvalidTransition and leaves the state untouched — callers log this
// at the caller's discretion and continue processing other events.
func (m *Machine[S, T]) Fire(t T) error {
	next, ok := m.table.Next(m.current, t)
	if !ok {
		return &ErrInvalidTransition[S, T]{State: m.current, Transition: t}
	}
	m.current = next
	return nil
}
