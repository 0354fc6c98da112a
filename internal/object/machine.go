package object

import (
	"fmt"
	"quill/internal/ast"
	"quill/internal/syntax"
)

// Route is the ordered chain of source ids the evaluation descended
// through. It is threaded by value down the call chain; sibling calls
// never observe each other's extensions.
type Route []syntax.SourceID

func (r Route) Clone() Route {
	out := make(Route, len(r))
	copy(out, r)
	return out
}

func (r Route) Contains(id syntax.SourceID) bool {
	for _, entry := range r {
		if entry == id {
			return true
		}
	}
	return false
}

// DepSet accumulates the source ids an evaluation depended on.
type DepSet map[syntax.SourceID]struct{}

func NewDepSet() DepSet { return DepSet{} }

func (d DepSet) Add(id syntax.SourceID) { d[id] = struct{}{} }

func (d DepSet) Contains(id syntax.SourceID) bool {
	_, ok := d[id]
	return ok
}

// Extend merges another dependency set into this one.
func (d DepSet) Extend(other DepSet) {
	for id := range other {
		d[id] = struct{}{}
	}
}

type FlowKind int

const (
	FlowBreak FlowKind = iota
	FlowContinue
	FlowReturn
)

// Flow is a pending non-local control-flow signal. Value is non-nil only
// for a return with an explicit value.
type Flow struct {
	Kind  FlowKind
	Span  syntax.Span
	Value Object
}

// Forbidden is the error for a signal escaping a context that cannot
// resolve it.
func (f *Flow) Forbidden() error {
	switch f.Kind {
	case FlowBreak:
		return fmt.Errorf("cannot break outside of loop")
	case FlowContinue:
		return fmt.Errorf("cannot continue outside of loop")
	default:
		return fmt.Errorf("cannot return outside of function")
	}
}

// Machine is the execution context a call runs against: a scope chain, a
// recursion route, a dependency set and an optional pending control-flow
// signal. The evaluator owns the implementation.
type Machine interface {
	// Eval evaluates an expression in this machine.
	Eval(expr ast.Expr) (Object, error)
	// Scopes is the variable scope chain.
	Scopes() *Scopes
	// Route is the current recursion route.
	Route() Route
	// Deps is the mutable dependency set of this machine.
	Deps() DepSet
	// Flow returns the pending control-flow signal, if any.
	Flow() *Flow
	// SetFlow installs or clears the pending signal.
	SetFlow(flow *Flow)
	// Sub creates a sibling machine over the same outer context with its
	// own scopes, route, dependency set and flow.
	Sub(route Route, scopes *Scopes) Machine
}

// Context creates machines. It stands in for the evaluation context that
// outlives any single machine; detached calls bootstrap from it.
type Context interface {
	Machine(route Route, scopes *Scopes) Machine
}
