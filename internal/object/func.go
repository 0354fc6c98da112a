package object

import (
	"fmt"
	"log/slog"

	"quill/internal/ast"
	"quill/internal/diag"
	"quill/internal/style"
	"quill/internal/syntax"
)

// NativeFn is the entry point of a built-in function.
type NativeFn func(vm Machine, args *Args) (Object, error)

// SetFn parses arguments into style properties for a native's set rule.
type SetFn func(args *Args) (style.Map, error)

// Func is a callable value: a native function, a user closure or a partial
// application. Handles are immutable once created; two handles are equal
// only if they reference the same allocation.
type Func struct {
	repr repr
}

type repr interface {
	funcName() string
}

// Native is a built-in function, optionally carrying a set rule and the
// identity tag of the node it constructs.
type Native struct {
	Name string
	Fn   NativeFn
	Set  SetFn        // nil when the native has no set rule
	Node style.NodeID // zero when the native is not customizable
}

func (n *Native) funcName() string { return n.Name }

// applied is a wrapped function with pre-bound arguments.
type applied struct {
	target *Func
	args   *Args
}

func (a *applied) funcName() string { return a.target.Name() }

// FromFn creates a function from a native entry point.
func FromFn(name string, fn NativeFn) *Func {
	return &Func{repr: &Native{Name: name, Fn: fn}}
}

// FromNode creates a constructor function for a stylable node. The node's
// identity tag is registered under the given name.
func FromNode(name string, construct NativeFn, set SetFn) *Func {
	return &Func{repr: &Native{
		Name: name,
		Fn:   construct,
		Set:  set,
		Node: style.NodeOf(name),
	}}
}

// FromClosure creates a function from a user closure.
func FromClosure(closure *Closure) *Func {
	return &Func{repr: closure}
}

// With returns a new function with the given arguments pre-applied.
// Applications nest; the outermost pre-bound arguments end up first.
func (f *Func) With(args *Args) *Func {
	return &Func{repr: &applied{target: f, args: args.Clone()}}
}

// Name returns the function's name, or "" for anonymous closures. Partial
// applications are transparent.
func (f *Func) Name() string {
	return f.repr.funcName()
}

// Argc returns the number of positional parameters without defaults, if
// known. Native functions report an unknown arity.
func (f *Func) Argc() (int, bool) {
	switch r := f.repr.(type) {
	case *Closure:
		count := 0
		for _, param := range r.Params {
			if param.Default == nil {
				count++
			}
		}
		return count, true
	case *applied:
		wrapped, known := r.target.Argc()
		if !known {
			return 0, false
		}
		bound := 0
		for _, item := range r.args.Items {
			if item.Name == "" {
				bound++
			}
		}
		if bound > wrapped {
			return 0, true
		}
		return wrapped - bound, true
	}
	return 0, false
}

// Is reports whether both handles reference the same allocation.
func (f *Func) Is(other *Func) bool {
	return f == other || f.repr == other.repr
}

// Call invokes the function with the given arguments and asserts that all
// of them were consumed. Partial applications prepend their pre-bound
// arguments and delegate, so the consumption check runs once, in the
// innermost call.
func (f *Func) Call(vm Machine, args *Args) (Object, error) {
	var value Object
	var err error
	switch r := f.repr.(type) {
	case *Native:
		value, err = r.Fn(vm, args)
	case *Closure:
		value, err = r.call(vm, args)
	case *applied:
		args.Prepend(r.args.Items)
		return r.target.Call(vm, args)
	}
	if err != nil {
		return nil, err
	}
	if err := args.Finish(); err != nil {
		return nil, err
	}
	return value, nil
}

// CallDetached calls the function with a fresh, route-less machine and an
// empty scope chain. Used when no enclosing evaluation is running.
func (f *Func) CallDetached(ctx Context, args *Args) (Object, error) {
	vm := ctx.Machine(Route{}, NewScopes(nil))
	return f.Call(vm, args)
}

// Set executes the function's set rule. Functions without one yield an
// empty style map; either way all arguments must be consumed.
func (f *Func) Set(args *Args) (style.Map, error) {
	styles := style.NewMap()
	if native, ok := f.repr.(*Native); ok && native.Set != nil {
		var err error
		styles, err = native.Set(args)
		if err != nil {
			return style.Map{}, err
		}
	}
	if err := args.Finish(); err != nil {
		return style.Map{}, err
	}
	return styles, nil
}

// Node returns the identity tag of the node this function constructs.
func (f *Func) Node() (style.NodeID, error) {
	if native, ok := f.repr.(*Native); ok && native.Node != 0 {
		return native.Node, nil
	}
	return 0, fmt.Errorf("this function cannot be customized with show")
}

func (f *Func) Type() ObjectType { return FUNC_OBJ }

func (f *Func) Inspect() string {
	if name := f.Name(); name != "" {
		return name
	}
	return "(..) => {..}"
}

// Param is one declared closure parameter. A non-nil default makes the
// parameter satisfiable only by a named argument.
type Param struct {
	Name    string
	Default Object
}

// Closure is a user-defined function: a body expression closed over the
// bindings visible at its definition.
type Closure struct {
	// Location is the source the closure was defined in; the detached id
	// for synthesized closures.
	Location syntax.SourceID
	// Name is "" for anonymous closures.
	Name string
	// Captured holds the values of the bindings visible at the moment the
	// closure literal was evaluated. Never written after construction.
	Captured *Scope
	Params   []Param
	// Sink is the name collecting all unconsumed arguments, or "".
	Sink string
	Body ast.Expr
}

func (c *Closure) funcName() string { return c.Name }

// call runs the closure binding protocol and evaluates the body.
func (c *Closure) call(vm Machine, args *Args) (Object, error) {
	// The call site's scopes must not leak into the body; the captured
	// snapshot is the only base.
	scopes := NewScopes(nil)
	scopes.Top = c.Captured.Copy()

	for _, param := range c.Params {
		if param.Default == nil {
			value, err := args.Expect(param.Name)
			if err != nil {
				return nil, err
			}
			scopes.Top.Define(param.Name, value)
			continue
		}
		// Defaulted parameters are satisfied by name only.
		if value, ok := args.Named(param.Name); ok {
			scopes.Top.Define(param.Name, value)
		} else {
			scopes.Top.Define(param.Name, param.Default)
		}
	}

	if c.Sink != "" {
		scopes.Top.Define(c.Sink, args.Take())
	}

	// A detached caller starts a fresh route at the defining source; an
	// in-context caller passes its route through unchanged.
	var route Route
	if len(vm.Route()) == 0 {
		if !c.Location.IsDetached() {
			route = Route{c.Location}
		}
	} else {
		route = vm.Route().Clone()
	}

	slog.Debug("calling closure",
		slog.String("name", c.Name),
		slog.Int("route-depth", len(route)))

	sub := vm.Sub(route, scopes)
	result, err := sub.Eval(c.Body)
	vm.Deps().Extend(sub.Deps())

	if flow := sub.Flow(); flow != nil {
		switch {
		case flow.Kind == FlowReturn && flow.Value != nil:
			return flow.Value, nil
		case flow.Kind == FlowReturn:
			// A bare return yields the body's own value.
		default:
			return nil, diag.At(flow.Forbidden(), flow.Span)
		}
	}

	return result, err
}
