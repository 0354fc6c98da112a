package eval

import (
	"quill/internal/ast"
	"quill/internal/diag"
	"quill/internal/object"
	"quill/internal/syntax"
)

// evalMethodCall dispatches `recv.name(args)` against the receiver's type.
// Sequence methods cover the full array surface; `with` on functions is
// partial application.
func (vm *VM) evalMethodCall(node *ast.MethodCall) (object.Object, error) {
	recv, err := vm.Eval(node.Recv)
	if err != nil {
		return nil, err
	}
	args, err := vm.evalArgs(node.Pos, node.Args)
	if err != nil {
		return nil, err
	}

	var result object.Object
	switch recv := recv.(type) {
	case *object.Array:
		result, err = vm.arrayMethod(recv, node.Name, args, node.Pos)
	case *object.Func:
		result, err = vm.funcMethod(recv, node.Name, args, node.Pos)
	default:
		return nil, diag.Errorf(node.Pos, "type %s has no method %s",
			object.TypeName(recv), node.Name)
	}
	if err != nil {
		return nil, diag.At(err, node.Pos)
	}
	if err := args.Finish(); err != nil {
		return nil, err
	}
	return result, nil
}

func (vm *VM) arrayMethod(recv *object.Array, name string, args *object.Args, span syntax.Span) (object.Object, error) {
	switch name {
	case "len":
		return &object.Integer{Value: recv.Len()}, nil

	case "first":
		return recv.Get(0)

	case "last":
		return recv.Get(-1)

	case "at":
		index, err := expectInt(args, "index")
		if err != nil {
			return nil, err
		}
		return recv.Get(index)

	case "contains":
		value, err := args.Expect("value")
		if err != nil {
			return nil, err
		}
		return object.NativeBoolToBooleanObject(recv.Contains(value)), nil

	case "push":
		value, err := args.Expect("value")
		if err != nil {
			return nil, err
		}
		recv.Push(value)
		return object.NIL, nil

	case "pop":
		return recv.Pop()

	case "insert":
		index, err := expectInt(args, "index")
		if err != nil {
			return nil, err
		}
		value, err := args.Expect("value")
		if err != nil {
			return nil, err
		}
		return object.NIL, recv.Insert(index, value)

	case "remove":
		index, err := expectInt(args, "index")
		if err != nil {
			return nil, err
		}
		return object.NIL, recv.Remove(index)

	case "slice":
		start, err := expectInt(args, "start")
		if err != nil {
			return nil, err
		}
		var end *int64
		if raw, ok := args.Eat(); ok {
			value, ok := raw.(*object.Integer)
			if !ok {
				return nil, diag.Errorf(span, "expected integer, found %s", object.TypeName(raw))
			}
			end = &value.Value
		}
		return recv.Slice(start, end)

	case "map":
		f, err := expectFunc(args, "function")
		if err != nil {
			return nil, err
		}
		return recv.Map(vm, f, span)

	case "filter":
		f, err := expectFunc(args, "function")
		if err != nil {
			return nil, err
		}
		return recv.Filter(vm, f, span)

	case "flatten":
		return recv.Flatten(), nil

	case "find":
		value, err := args.Expect("target")
		if err != nil {
			return nil, err
		}
		index, found, err := recv.Find(vm, object.TargetOf(value, span))
		if err != nil {
			return nil, err
		}
		if !found {
			return object.NIL, nil
		}
		return &object.Integer{Value: index}, nil

	case "join":
		sep, _ := args.Eat()
		last, _ := args.Named("last")
		return recv.Join(sep, last)

	case "sorted":
		return recv.Sorted()

	case "repeat":
		n, err := expectInt(args, "count")
		if err != nil {
			return nil, err
		}
		return recv.Repeat(n)
	}
	return nil, diag.Errorf(span, "type array has no method %s", name)
}

func (vm *VM) funcMethod(recv *object.Func, name string, args *object.Args, span syntax.Span) (object.Object, error) {
	switch name {
	case "with":
		f := recv.With(args)
		// The arguments moved into the pre-bound list.
		args.Items = nil
		return f, nil
	}
	return nil, diag.Errorf(span, "type function has no method %s", name)
}

func expectInt(args *object.Args, what string) (int64, error) {
	value, err := args.Expect(what)
	if err != nil {
		return 0, err
	}
	integer, ok := value.(*object.Integer)
	if !ok {
		return 0, diag.Errorf(args.Span, "expected integer, found %s", object.TypeName(value))
	}
	return integer.Value, nil
}

func expectFunc(args *object.Args, what string) (*object.Func, error) {
	value, err := args.Expect(what)
	if err != nil {
		return nil, err
	}
	f, ok := value.(*object.Func)
	if !ok {
		return nil, diag.Errorf(args.Span, "expected function, found %s", object.TypeName(value))
	}
	return f, nil
}
