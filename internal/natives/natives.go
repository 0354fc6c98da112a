// Package natives registers the built-in functions exposed to scripts,
// including stylable node constructors with set rules.
package natives

import (
	"fmt"

	"quill/internal/object"
	"quill/internal/style"
)

// BaseScope returns a fresh scope holding every native function. Each call
// creates new function allocations; handles from different base scopes are
// intentionally not equal.
func BaseScope() *object.Scope {
	scope := object.NewScope()
	for name, f := range All() {
		scope.Define(name, f)
	}
	return scope
}

func All() map[string]*object.Func {
	return map[string]*object.Func{
		"range": object.FromFn("range", fnRange),
		"min":   object.FromFn("min", fnMin),
		"max":   object.FromFn("max", fnMax),
		"type":  object.FromFn("type", fnType),
		"repr":  object.FromFn("repr", fnRepr),

		"heading": object.FromNode("heading", fnHeadingConstruct, fnHeadingSet),
		"text":    object.FromNode("text", fnTextConstruct, fnTextSet),
	}
}

func fnRange(vm object.Machine, args *object.Args) (object.Object, error) {
	first, err := args.Expect("end")
	if err != nil {
		return nil, err
	}
	start := int64(0)
	end, err := asInt(first)
	if err != nil {
		return nil, err
	}
	if second, ok := args.Eat(); ok {
		start = end
		end, err = asInt(second)
		if err != nil {
			return nil, err
		}
	}

	out := []object.Object{}
	for i := start; i < end; i++ {
		out = append(out, &object.Integer{Value: i})
	}
	return object.NewArray(out...), nil
}

func fnMin(vm object.Machine, args *object.Args) (object.Object, error) {
	return extremum(args, -1)
}

func fnMax(vm object.Machine, args *object.Args) (object.Object, error) {
	return extremum(args, 1)
}

// extremum keeps the first value each later one does not beat in the given
// direction.
func extremum(args *object.Args, direction int) (object.Object, error) {
	best, err := args.Expect("value")
	if err != nil {
		return nil, err
	}
	for {
		next, ok := args.Eat()
		if !ok {
			return best, nil
		}
		order, comparable := object.Compare(next, best)
		if !comparable {
			return nil, fmt.Errorf("cannot compare %s with %s",
				object.TypeName(next), object.TypeName(best))
		}
		if order*direction > 0 {
			best = next
		}
	}
}

func fnType(vm object.Machine, args *object.Args) (object.Object, error) {
	value, err := args.Expect("value")
	if err != nil {
		return nil, err
	}
	return &object.String{Value: object.TypeName(value)}, nil
}

func fnRepr(vm object.Machine, args *object.Args) (object.Object, error) {
	value, err := args.Expect("value")
	if err != nil {
		return nil, err
	}
	return &object.String{Value: value.Inspect()}, nil
}

func fnHeadingConstruct(vm object.Machine, args *object.Args) (object.Object, error) {
	body, err := args.Expect("body")
	if err != nil {
		return nil, err
	}
	return body, nil
}

func fnHeadingSet(args *object.Args) (style.Map, error) {
	styles := style.NewMap()
	if level, ok := args.Named("level"); ok {
		n, err := asInt(level)
		if err != nil {
			return style.Map{}, err
		}
		styles.Set("heading.level", n)
	}
	return styles, nil
}

func fnTextConstruct(vm object.Machine, args *object.Args) (object.Object, error) {
	body, err := args.Expect("body")
	if err != nil {
		return nil, err
	}
	return body, nil
}

func fnTextSet(args *object.Args) (style.Map, error) {
	styles := style.NewMap()
	if size, ok := args.Named("size"); ok {
		n, err := asInt(size)
		if err != nil {
			return style.Map{}, err
		}
		styles.Set("text.size", n)
	}
	if weight, ok := args.Named("weight"); ok {
		s, ok := weight.(*object.String)
		if !ok {
			return style.Map{}, typeError("string", weight)
		}
		styles.Set("text.weight", s.Value)
	}
	return styles, nil
}

func asInt(value object.Object) (int64, error) {
	integer, ok := value.(*object.Integer)
	if !ok {
		return 0, typeError("integer", value)
	}
	return integer.Value, nil
}

func typeError(want string, got object.Object) error {
	return fmt.Errorf("expected %s, found %s", want, object.TypeName(got))
}
