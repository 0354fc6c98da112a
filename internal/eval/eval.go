// Package eval implements the expression evaluator behind the call core:
// the machine carrying scopes, recursion route, dependency set and pending
// control flow, and the walk over closure-body expressions.
package eval

import (
	"log/slog"

	"quill/internal/ast"
	"quill/internal/diag"
	"quill/internal/object"
	"quill/internal/syntax"
)

// Context is the evaluation context that outlives individual machines.
// Detached calls bootstrap new machines from it.
type Context struct{}

func NewContext() *Context {
	return &Context{}
}

// Machine creates a machine over the given route and scope chain.
func (c *Context) Machine(route object.Route, scopes *object.Scopes) object.Machine {
	return &VM{ctx: c, route: route, scopes: scopes, deps: object.NewDepSet()}
}

// VM is one machine in the call chain. Closure calls spawn a sub-machine
// per call; route and dependency state is threaded by value.
type VM struct {
	ctx    *Context
	route  object.Route
	scopes *object.Scopes
	deps   object.DepSet
	flow   *object.Flow
}

func (vm *VM) Scopes() *object.Scopes    { return vm.scopes }
func (vm *VM) Route() object.Route       { return vm.route }
func (vm *VM) Deps() object.DepSet       { return vm.deps }
func (vm *VM) Flow() *object.Flow        { return vm.flow }
func (vm *VM) SetFlow(flow *object.Flow) { vm.flow = flow }

// Source is the source currently being evaluated, the last route entry.
func (vm *VM) Source() syntax.SourceID {
	if len(vm.route) == 0 {
		return syntax.Detached
	}
	return vm.route[len(vm.route)-1]
}

func (vm *VM) Sub(route object.Route, scopes *object.Scopes) object.Machine {
	return &VM{ctx: vm.ctx, route: route, scopes: scopes, deps: object.NewDepSet()}
}

// Eval evaluates a single expression.
func (vm *VM) Eval(expr ast.Expr) (object.Object, error) {
	switch node := expr.(type) {

	case *ast.NilLit:
		return object.NIL, nil

	case *ast.BoolLit:
		return object.NativeBoolToBooleanObject(node.Value), nil

	case *ast.IntLit:
		return &object.Integer{Value: node.Value}, nil

	case *ast.StrLit:
		return &object.String{Value: node.Value}, nil

	case *ast.Ident:
		if val, ok := vm.scopes.Get(node.Name); ok {
			return val, nil
		}
		return nil, diag.Errorf(node.Pos, "unknown variable: %s", node.Name)

	case *ast.ArrayLit:
		elems := make([]object.Object, 0, len(node.Elems))
		for _, elem := range node.Elems {
			val, err := vm.Eval(elem)
			if err != nil {
				return nil, err
			}
			elems = append(elems, val)
		}
		return object.NewArray(elems...), nil

	case *ast.Binary:
		return vm.evalBinary(node)

	case *ast.Let:
		val, err := vm.Eval(node.Value)
		if err != nil {
			return nil, err
		}
		vm.scopes.Define(node.Name, val)
		return object.NIL, nil

	case *ast.Block:
		return vm.evalBlock(node)

	case *ast.If:
		cond, err := vm.Eval(node.Cond)
		if err != nil {
			return nil, err
		}
		truthy, err := object.AsBool(cond)
		if err != nil {
			return nil, diag.At(err, node.Cond.Span())
		}
		if truthy {
			return vm.Eval(node.Then)
		}
		if node.Else != nil {
			return vm.Eval(node.Else)
		}
		return object.NIL, nil

	case *ast.Call:
		return vm.evalCall(node)

	case *ast.MethodCall:
		return vm.evalMethodCall(node)

	case *ast.ClosureLit:
		return vm.evalClosureLit(node)

	case *ast.Return:
		flow := &object.Flow{Kind: object.FlowReturn, Span: node.Pos}
		if node.Value != nil {
			val, err := vm.Eval(node.Value)
			if err != nil {
				return nil, err
			}
			flow.Value = val
		}
		vm.flow = flow
		return object.NIL, nil

	case *ast.Break:
		vm.flow = &object.Flow{Kind: object.FlowBreak, Span: node.Pos}
		return object.NIL, nil

	case *ast.Continue:
		vm.flow = &object.Flow{Kind: object.FlowContinue, Span: node.Pos}
		return object.NIL, nil
	}

	return nil, diag.Errorf(expr.Span(), "cannot evaluate %s", expr.String())
}

func (vm *VM) evalBlock(block *ast.Block) (object.Object, error) {
	vm.scopes.Enter()
	defer vm.scopes.Exit()

	var result object.Object = object.NIL
	for _, expr := range block.Exprs {
		val, err := vm.Eval(expr)
		if err != nil {
			return nil, err
		}
		// A pending signal ends the block; its expression produced no
		// value of its own.
		if vm.flow != nil {
			break
		}
		result = val
	}
	return result, nil
}

func (vm *VM) evalBinary(node *ast.Binary) (object.Object, error) {
	left, err := vm.Eval(node.Left)
	if err != nil {
		return nil, err
	}
	right, err := vm.Eval(node.Right)
	if err != nil {
		return nil, err
	}

	var result object.Object
	switch node.Operator {
	case "+":
		result, err = object.Add(left, right)
	case "-":
		result, err = object.Sub(left, right)
	case "*":
		result, err = object.Mul(left, right)
	case "<":
		result, err = object.Lt(left, right)
	case ">":
		result, err = object.Gt(left, right)
	case "==":
		result = object.NativeBoolToBooleanObject(object.Equals(left, right))
	case "!=":
		result = object.NativeBoolToBooleanObject(!object.Equals(left, right))
	default:
		return nil, diag.Errorf(node.Pos, "unknown operator: %s", node.Operator)
	}
	if err != nil {
		return nil, diag.At(err, node.Pos)
	}
	return result, nil
}

// evalArgs evaluates call-site arguments into an argument list.
func (vm *VM) evalArgs(span syntax.Span, callArgs []ast.CallArg) (*object.Args, error) {
	args := object.NewArgs(span)
	for _, arg := range callArgs {
		val, err := vm.Eval(arg.Value)
		if err != nil {
			return nil, err
		}
		if arg.Name != "" {
			args.PushNamed(arg.Pos, arg.Name, val)
		} else {
			args.Push(arg.Pos, val)
		}
	}
	return args, nil
}

func (vm *VM) evalCall(node *ast.Call) (object.Object, error) {
	callee, err := vm.Eval(node.Callee)
	if err != nil {
		return nil, err
	}
	f, ok := callee.(*object.Func)
	if !ok {
		return nil, diag.Errorf(node.Callee.Span(),
			"expected function, found %s", object.TypeName(callee))
	}

	args, err := vm.evalArgs(node.Pos, node.Args)
	if err != nil {
		return nil, err
	}

	slog.Debug("calling function",
		slog.String("name", f.Inspect()),
		slog.Int("argc", args.Len()))

	result, err := f.Call(vm, args)
	if err != nil {
		return nil, diag.At(err, node.Pos)
	}
	return result, nil
}

// evalClosureLit evaluates a closure literal: parameter defaults are
// evaluated now, and the visible bindings are captured now. The call site
// later sees exactly this snapshot.
func (vm *VM) evalClosureLit(node *ast.ClosureLit) (object.Object, error) {
	params := make([]object.Param, 0, len(node.Params))
	for _, param := range node.Params {
		p := object.Param{Name: param.Name}
		if param.Default != nil {
			val, err := vm.Eval(param.Default)
			if err != nil {
				return nil, err
			}
			p.Default = val
		}
		params = append(params, p)
	}

	closure := &object.Closure{
		Location: vm.Source(),
		Name:     node.Name,
		Captured: vm.scopes.Capture(),
		Params:   params,
		Sink:     node.Sink,
		Body:     node.Body,
	}
	f := object.FromClosure(closure)
	if node.Name != "" {
		// The body must be able to call the closure recursively; the
		// snapshot is completed before anyone else can observe it.
		closure.Captured.Define(node.Name, f)
		vm.scopes.Define(node.Name, f)
	}
	return f, nil
}
