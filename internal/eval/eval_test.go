package eval

import (
	"strings"
	"testing"

	"quill/internal/ast"
	"quill/internal/object"
	"quill/internal/syntax"
)

func newVM() *VM {
	ctx := NewContext()
	return ctx.Machine(object.Route{}, object.NewScopes(nil)).(*VM)
}

func span() syntax.Span { return syntax.DetachedSpan }

func intLit(v int64) *ast.IntLit { return &ast.IntLit{Pos: span(), Value: v} }

func strLit(v string) *ast.StrLit { return &ast.StrLit{Pos: span(), Value: v} }

func ident(name string) *ast.Ident { return &ast.Ident{Pos: span(), Name: name} }

func let(name string, v ast.Expr) *ast.Let {
	return &ast.Let{Pos: span(), Name: name, Value: v}
}

func pos(v ast.Expr) ast.CallArg {
	return ast.CallArg{Pos: span(), Value: v}
}

func named(name string, v ast.Expr) ast.CallArg {
	return ast.CallArg{Pos: span(), Name: name, Value: v}
}

func eval(t *testing.T, vm *VM, expr ast.Expr) object.Object {
	t.Helper()
	result, err := vm.Eval(expr)
	if err != nil {
		t.Fatalf("eval %s: %v", expr.String(), err)
	}
	return result
}

func evalInt(t *testing.T, vm *VM, expr ast.Expr) int64 {
	t.Helper()
	result := eval(t, vm, expr)
	integer, ok := result.(*object.Integer)
	if !ok {
		t.Fatalf("eval %s: not an integer: %s", expr.String(), result.Inspect())
	}
	return integer.Value
}

func TestClosureCapturesAtDefinition(t *testing.T) {
	vm := newVM()

	// let x = 1; let f = () => x; let x = 2 (shadowing rebind); f() == 1.
	eval(t, vm, let("x", intLit(1)))
	eval(t, vm, let("f", &ast.ClosureLit{Pos: span(), Body: ident("x")}))
	eval(t, vm, let("x", intLit(2)))

	got := evalInt(t, vm, &ast.Call{Pos: span(), Callee: ident("f")})
	if got != 1 {
		t.Errorf("captured x = %d, want 1 (capture at definition)", got)
	}
}

func TestClosureDoesNotSeeCallSiteScope(t *testing.T) {
	vm := newVM()
	eval(t, vm, let("f", &ast.ClosureLit{Pos: span(), Body: ident("y")}))
	eval(t, vm, let("y", intLit(5)))

	_, err := vm.Eval(&ast.Call{Pos: span(), Callee: ident("f")})
	if err == nil {
		t.Fatal("free variable bound after definition should stay unknown")
	}
	if !strings.Contains(err.Error(), "unknown variable: y") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestClosureParameterBinding(t *testing.T) {
	vm := newVM()

	// let f = (a, b) => a - b
	eval(t, vm, let("f", &ast.ClosureLit{
		Pos:    span(),
		Params: []ast.ClosureParam{{Name: "a"}, {Name: "b"}},
		Body:   &ast.Binary{Pos: span(), Operator: "-", Left: ident("a"), Right: ident("b")},
	}))

	got := evalInt(t, vm, &ast.Call{Pos: span(), Callee: ident("f"),
		Args: []ast.CallArg{pos(intLit(10)), pos(intLit(3))}})
	if got != 7 {
		t.Errorf("f(10, 3) = %d, want 7", got)
	}

	// Named arguments bind by name regardless of position.
	got = evalInt(t, vm, &ast.Call{Pos: span(), Callee: ident("f"),
		Args: []ast.CallArg{named("b", intLit(3)), pos(intLit(10))}})
	if got != 7 {
		t.Errorf("f(b: 3, 10) = %d, want 7", got)
	}

	_, err := vm.Eval(&ast.Call{Pos: span(), Callee: ident("f"),
		Args: []ast.CallArg{pos(intLit(1))}})
	if err == nil {
		t.Fatal("missing required argument should fail")
	}
	if !strings.Contains(err.Error(), "missing argument: b") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestDefaultedParameterIgnoresPositional(t *testing.T) {
	vm := newVM()

	// let f = (p: 1) => p
	eval(t, vm, let("f", &ast.ClosureLit{
		Pos:    span(),
		Params: []ast.ClosureParam{{Name: "p", Default: intLit(1)}},
		Body:   ident("p"),
	}))

	// A positional argument does not satisfy a defaulted parameter; it is
	// simply left over and fails consumption.
	_, err := vm.Eval(&ast.Call{Pos: span(), Callee: ident("f"),
		Args: []ast.CallArg{pos(intLit(9))}})
	if err == nil {
		t.Fatal("stray positional argument should fail")
	}
	if !strings.Contains(err.Error(), "unexpected argument") {
		t.Errorf("unexpected message: %v", err)
	}

	// Without arguments the default applies.
	if got := evalInt(t, vm, &ast.Call{Pos: span(), Callee: ident("f")}); got != 1 {
		t.Errorf("f() = %d, want default 1", got)
	}

	// A named argument overrides it.
	got := evalInt(t, vm, &ast.Call{Pos: span(), Callee: ident("f"),
		Args: []ast.CallArg{named("p", intLit(9))}})
	if got != 9 {
		t.Errorf("f(p: 9) = %d, want 9", got)
	}
}

func TestSinkCollectsRemaining(t *testing.T) {
	vm := newVM()

	// let f = (first, ..rest) => rest
	eval(t, vm, let("f", &ast.ClosureLit{
		Pos:    span(),
		Params: []ast.ClosureParam{{Name: "first"}},
		Sink:   "rest",
		Body:   ident("rest"),
	}))

	result := eval(t, vm, &ast.Call{Pos: span(), Callee: ident("f"),
		Args: []ast.CallArg{pos(intLit(1)), pos(intLit(2)), named("extra", intLit(3)), pos(intLit(4))}})
	rest, ok := result.(*object.Array)
	if !ok {
		t.Fatalf("sink = %s, want array", result.Inspect())
	}
	want := object.NewArray(
		&object.Integer{Value: 2},
		&object.Integer{Value: 3},
		&object.Integer{Value: 4},
	)
	if !rest.Equals(want) {
		t.Errorf("sink = %s, want %s", rest.Inspect(), want.Inspect())
	}
}

func TestClosureRecursion(t *testing.T) {
	vm := newVM()

	// let fact = (n) => if n < 2 { 1 } else { n * fact(n - 1) }
	eval(t, vm, &ast.ClosureLit{
		Pos:    span(),
		Name:   "fact",
		Params: []ast.ClosureParam{{Name: "n"}},
		Body: &ast.If{Pos: span(),
			Cond: &ast.Binary{Pos: span(), Operator: "<", Left: ident("n"), Right: intLit(2)},
			Then: intLit(1),
			Else: &ast.Binary{Pos: span(), Operator: "*",
				Left: ident("n"),
				Right: &ast.Call{Pos: span(), Callee: ident("fact"),
					Args: []ast.CallArg{pos(&ast.Binary{Pos: span(), Operator: "-",
						Left: ident("n"), Right: intLit(1)})}}},
		},
	})

	got := evalInt(t, vm, &ast.Call{Pos: span(), Callee: ident("fact"),
		Args: []ast.CallArg{pos(intLit(5))}})
	if got != 120 {
		t.Errorf("fact(5) = %d, want 120", got)
	}
}

func TestExplicitAndBareReturn(t *testing.T) {
	vm := newVM()

	// Explicit return short-circuits the body.
	eval(t, vm, let("f", &ast.ClosureLit{Pos: span(), Body: &ast.Block{Pos: span(), Exprs: []ast.Expr{
		&ast.Return{Pos: span(), Value: intLit(42)},
		intLit(0),
	}}}))
	if got := evalInt(t, vm, &ast.Call{Pos: span(), Callee: ident("f")}); got != 42 {
		t.Errorf("explicit return = %d, want 42", got)
	}

	// A bare return yields the body's own value.
	eval(t, vm, let("g", &ast.ClosureLit{Pos: span(), Body: &ast.Block{Pos: span(), Exprs: []ast.Expr{
		intLit(7),
		&ast.Return{Pos: span()},
	}}}))
	if got := evalInt(t, vm, &ast.Call{Pos: span(), Callee: ident("g")}); got != 7 {
		t.Errorf("bare return = %d, want 7", got)
	}
}

func TestForbiddenControlFlow(t *testing.T) {
	vm := newVM()

	eval(t, vm, let("f", &ast.ClosureLit{Pos: span(), Body: &ast.Break{Pos: span()}}))
	_, err := vm.Eval(&ast.Call{Pos: span(), Callee: ident("f")})
	if err == nil {
		t.Fatal("break escaping a closure should fail")
	}
	if !strings.Contains(err.Error(), "cannot break outside of loop") {
		t.Errorf("unexpected message: %v", err)
	}

	eval(t, vm, let("g", &ast.ClosureLit{Pos: span(), Body: &ast.Continue{Pos: span()}}))
	if _, err := vm.Eval(&ast.Call{Pos: span(), Callee: ident("g")}); err == nil {
		t.Fatal("continue escaping a closure should fail")
	}
}

func TestRouteSelection(t *testing.T) {
	ctx := NewContext()

	// A detached caller starts a fresh route at the defining source. The
	// body records what it saw via a native probe.
	var seen object.Route
	probe := &object.Closure{
		Location: syntax.SourceID(3),
		Captured: object.NewScope(),
		Body:     &ast.Call{Pos: span(), Callee: ident("snoop")},
	}
	probe.Captured.Define("snoop", object.FromFn("snoop", func(vm object.Machine, args *object.Args) (object.Object, error) {
		seen = vm.Route().Clone()
		return object.NIL, nil
	}))

	detached := ctx.Machine(object.Route{}, object.NewScopes(nil))
	if _, err := object.FromClosure(probe).Call(detached, object.NewArgs(span())); err != nil {
		t.Fatalf("detached call: %v", err)
	}
	if len(seen) != 1 || seen[0] != syntax.SourceID(3) {
		t.Errorf("detached route = %v, want [3]", seen)
	}

	// An in-context caller passes its route through unchanged.
	routed := ctx.Machine(object.Route{syntax.SourceID(7), syntax.SourceID(9)}, object.NewScopes(nil))
	if _, err := object.FromClosure(probe).Call(routed, object.NewArgs(span())); err != nil {
		t.Fatalf("routed call: %v", err)
	}
	if len(seen) != 2 || seen[0] != syntax.SourceID(7) || seen[1] != syntax.SourceID(9) {
		t.Errorf("inherited route = %v, want [7 9]", seen)
	}
}

func TestDependencyMerging(t *testing.T) {
	ctx := NewContext()

	inner := &object.Closure{
		Captured: object.NewScope(),
		Body:     &ast.Call{Pos: span(), Callee: ident("track")},
	}
	inner.Captured.Define("track", object.FromFn("track", func(vm object.Machine, args *object.Args) (object.Object, error) {
		vm.Deps().Add(syntax.SourceID(11))
		return object.NIL, nil
	}))

	vm := ctx.Machine(object.Route{}, object.NewScopes(nil))
	if _, err := object.FromClosure(inner).Call(vm, object.NewArgs(span())); err != nil {
		t.Fatalf("call: %v", err)
	}
	if !vm.Deps().Contains(syntax.SourceID(11)) {
		t.Error("sub-machine dependencies were not merged into the caller")
	}
}

func TestCallDetached(t *testing.T) {
	ctx := NewContext()

	f := object.FromFn("answer", func(vm object.Machine, args *object.Args) (object.Object, error) {
		if len(vm.Route()) != 0 {
			t.Errorf("detached machine has route %v", vm.Route())
		}
		return &object.Integer{Value: 42}, nil
	})

	result, err := f.CallDetached(ctx, object.NewArgs(span()))
	if err != nil {
		t.Fatalf("call detached: %v", err)
	}
	if result.(*object.Integer).Value != 42 {
		t.Errorf("call detached = %s", result.Inspect())
	}
}
