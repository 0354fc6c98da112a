package object

import (
	"fmt"
	"quill/internal/diag"
	"quill/internal/syntax"
)

// Arg is a single argument: an optional name, a value and the span the
// value was produced at.
type Arg struct {
	Span  syntax.Span
	Name  string // "" for positional
	Value Object
}

// Args is the ordered argument list of one call. Consumption is
// destructive; whatever is left when the call finishes is an error.
type Args struct {
	Span  syntax.Span
	Items []Arg
}

func NewArgs(span syntax.Span, values ...Object) *Args {
	args := &Args{Span: span}
	for _, v := range values {
		args.Push(span, v)
	}
	return args
}

// Push appends a positional argument.
func (a *Args) Push(span syntax.Span, value Object) {
	a.Items = append(a.Items, Arg{Span: span, Value: value})
}

// PushNamed appends a named argument.
func (a *Args) PushNamed(span syntax.Span, name string, value Object) {
	a.Items = append(a.Items, Arg{Span: span, Name: name, Value: value})
}

// Prepend inserts the given items before all current ones, preserving
// their order and names. Partial application relies on this.
func (a *Args) Prepend(items []Arg) {
	merged := make([]Arg, 0, len(items)+len(a.Items))
	merged = append(merged, items...)
	merged = append(merged, a.Items...)
	a.Items = merged
}

func (a *Args) Len() int { return len(a.Items) }

// Clone copies the argument list so one application of a curried function
// does not consume the pre-bound items of another.
func (a *Args) Clone() *Args {
	items := make([]Arg, len(a.Items))
	copy(items, a.Items)
	return &Args{Span: a.Span, Items: items}
}

// Expect consumes the argument for a required parameter: a named argument
// matching the name if present, else the first positional one.
func (a *Args) Expect(name string) (Object, error) {
	if val, ok := a.Named(name); ok {
		return val, nil
	}
	for i, item := range a.Items {
		if item.Name == "" {
			a.Items = append(a.Items[:i], a.Items[i+1:]...)
			return item.Value, nil
		}
	}
	return nil, diag.Errorf(a.Span, "missing argument: %s", name)
}

// Eat consumes the first positional argument, if any.
func (a *Args) Eat() (Object, bool) {
	for i, item := range a.Items {
		if item.Name == "" {
			a.Items = append(a.Items[:i], a.Items[i+1:]...)
			return item.Value, true
		}
	}
	return nil, false
}

// Named consumes the named argument with the given name, if present.
func (a *Args) Named(name string) (Object, bool) {
	for i, item := range a.Items {
		if item.Name == name {
			a.Items = append(a.Items[:i], a.Items[i+1:]...)
			return item.Value, true
		}
	}
	return nil, false
}

// Take drains all remaining arguments, in order, into a new array.
func (a *Args) Take() *Array {
	values := make([]Object, 0, len(a.Items))
	for _, item := range a.Items {
		values = append(values, item.Value)
	}
	a.Items = nil
	return NewArray(values...)
}

// Finish asserts that every argument was consumed.
func (a *Args) Finish() error {
	if len(a.Items) == 0 {
		return nil
	}
	unexpected := a.Items[0]
	if unexpected.Name != "" {
		return diag.Errorf(unexpected.Span, "unexpected argument: %s", unexpected.Name)
	}
	return diag.Errorf(unexpected.Span, "unexpected argument")
}

func (a *Args) Inspect() string {
	out := "("
	for i, item := range a.Items {
		if i > 0 {
			out += ", "
		}
		if item.Name != "" {
			out += fmt.Sprintf("%s: %s", item.Name, item.Value.Inspect())
		} else {
			out += item.Value.Inspect()
		}
	}
	return out + ")"
}
