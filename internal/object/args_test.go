package object

import (
	"strings"
	"testing"

	"quill/internal/syntax"
)

func TestArgsExpect(t *testing.T) {
	args := NewArgs(syntax.DetachedSpan)
	args.Push(syntax.DetachedSpan, &Integer{Value: 1})
	args.PushNamed(syntax.DetachedSpan, "b", &Integer{Value: 2})
	args.Push(syntax.DetachedSpan, &Integer{Value: 3})

	// A named match wins over position.
	val, err := args.Expect("b")
	if err != nil {
		t.Fatalf("expect(b): %v", err)
	}
	if val.(*Integer).Value != 2 {
		t.Errorf("expect(b) = %s, want 2", val.Inspect())
	}

	// Without a named match, positional order applies.
	val, err = args.Expect("a")
	if err != nil {
		t.Fatalf("expect(a): %v", err)
	}
	if val.(*Integer).Value != 1 {
		t.Errorf("expect(a) = %s, want 1", val.Inspect())
	}

	val, err = args.Expect("c")
	if err != nil {
		t.Fatalf("expect(c): %v", err)
	}
	if val.(*Integer).Value != 3 {
		t.Errorf("expect(c) = %s, want 3", val.Inspect())
	}

	if _, err := args.Expect("d"); err == nil {
		t.Fatal("expect on drained args should fail")
	} else if !strings.Contains(err.Error(), "missing argument: d") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestArgsNamed(t *testing.T) {
	args := NewArgs(syntax.DetachedSpan)
	args.Push(syntax.DetachedSpan, &Integer{Value: 1})
	args.PushNamed(syntax.DetachedSpan, "x", &Integer{Value: 2})

	if _, ok := args.Named("missing"); ok {
		t.Error("named(missing) should not match")
	}
	// Positional arguments never satisfy a name lookup.
	val, ok := args.Named("x")
	if !ok || val.(*Integer).Value != 2 {
		t.Errorf("named(x) = %v, %v", val, ok)
	}
	if _, ok := args.Named("x"); ok {
		t.Error("named(x) should be consumed")
	}
}

func TestArgsTakeAndFinish(t *testing.T) {
	args := NewArgs(syntax.DetachedSpan)
	args.Push(syntax.DetachedSpan, &Integer{Value: 1})
	args.PushNamed(syntax.DetachedSpan, "n", &Integer{Value: 2})
	args.Push(syntax.DetachedSpan, &Integer{Value: 3})

	rest := args.Take()
	if !rest.Equals(ints(1, 2, 3)) {
		t.Errorf("take = %s", rest.Inspect())
	}
	if err := args.Finish(); err != nil {
		t.Errorf("finish after take: %v", err)
	}

	leftover := NewArgs(syntax.DetachedSpan, &Integer{Value: 9})
	if err := leftover.Finish(); err == nil {
		t.Fatal("finish with leftovers should fail")
	} else if !strings.Contains(err.Error(), "unexpected argument") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestArgsPrepend(t *testing.T) {
	args := NewArgs(syntax.DetachedSpan, &Integer{Value: 3})
	args.Prepend([]Arg{
		{Name: "", Value: &Integer{Value: 1}},
		{Name: "k", Value: &Integer{Value: 2}},
	})

	rest := args.Take()
	if !rest.Equals(ints(1, 2, 3)) {
		t.Errorf("prepend order wrong: %s", rest.Inspect())
	}
}
