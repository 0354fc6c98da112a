package object

import "fmt"

// Join combines two values for sequence joining: none is the neutral
// element, strings concatenate, arrays concatenate.
func Join(a, b Object) (Object, error) {
	switch {
	case b.Type() == NIL_OBJ:
		return a, nil
	case a.Type() == NIL_OBJ:
		return b, nil
	}
	if left, ok := a.(*String); ok {
		if right, ok := b.(*String); ok {
			return &String{Value: left.Value + right.Value}, nil
		}
	}
	if left, ok := a.(*Array); ok {
		if right, ok := b.(*Array); ok {
			return left.Concat(right), nil
		}
	}
	return nil, fmt.Errorf("cannot join %s with %s", TypeName(a), TypeName(b))
}

// Add implements the binary + operator.
func Add(a, b Object) (Object, error) {
	if left, ok := a.(*Integer); ok {
		if right, ok := b.(*Integer); ok {
			return &Integer{Value: left.Value + right.Value}, nil
		}
	}
	if left, ok := a.(*String); ok {
		if right, ok := b.(*String); ok {
			return &String{Value: left.Value + right.Value}, nil
		}
	}
	if left, ok := a.(*Array); ok {
		if right, ok := b.(*Array); ok {
			return left.Concat(right), nil
		}
	}
	return nil, fmt.Errorf("cannot add %s and %s", TypeName(a), TypeName(b))
}

// Sub implements the binary - operator.
func Sub(a, b Object) (Object, error) {
	if left, ok := a.(*Integer); ok {
		if right, ok := b.(*Integer); ok {
			return &Integer{Value: left.Value - right.Value}, nil
		}
	}
	return nil, fmt.Errorf("cannot subtract %s from %s", TypeName(b), TypeName(a))
}

// Mul implements the binary * operator.
func Mul(a, b Object) (Object, error) {
	if left, ok := a.(*Integer); ok {
		if right, ok := b.(*Integer); ok {
			return &Integer{Value: left.Value * right.Value}, nil
		}
	}
	if left, ok := a.(*Array); ok {
		if right, ok := b.(*Integer); ok {
			return left.Repeat(right.Value)
		}
	}
	return nil, fmt.Errorf("cannot multiply %s with %s", TypeName(a), TypeName(b))
}

// Lt implements the binary < operator.
func Lt(a, b Object) (Object, error) {
	order, comparable := Compare(a, b)
	if !comparable {
		return nil, fmt.Errorf("cannot compare %s with %s", TypeName(a), TypeName(b))
	}
	return NativeBoolToBooleanObject(order < 0), nil
}

// Gt implements the binary > operator.
func Gt(a, b Object) (Object, error) {
	order, comparable := Compare(a, b)
	if !comparable {
		return nil, fmt.Errorf("cannot compare %s with %s", TypeName(a), TypeName(b))
	}
	return NativeBoolToBooleanObject(order > 0), nil
}
