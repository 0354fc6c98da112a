package ast

import (
	"bytes"
	"fmt"
	"quill/internal/syntax"
	"strings"
)

// The base Node interface
type Node interface {
	Span() syntax.Span
	String() string
}

type Expr interface {
	Node
	exprNode()
}

type NilLit struct {
	Pos syntax.Span
}

func (n *NilLit) exprNode()         {}
func (n *NilLit) Span() syntax.Span { return n.Pos }
func (n *NilLit) String() string    { return "none" }

type BoolLit struct {
	Pos   syntax.Span
	Value bool
}

func (b *BoolLit) exprNode()         {}
func (b *BoolLit) Span() syntax.Span { return b.Pos }
func (b *BoolLit) String() string    { return fmt.Sprintf("%t", b.Value) }

type IntLit struct {
	Pos   syntax.Span
	Value int64
}

func (i *IntLit) exprNode()         {}
func (i *IntLit) Span() syntax.Span { return i.Pos }
func (i *IntLit) String() string    { return fmt.Sprintf("%d", i.Value) }

type StrLit struct {
	Pos   syntax.Span
	Value string
}

func (s *StrLit) exprNode()         {}
func (s *StrLit) Span() syntax.Span { return s.Pos }
func (s *StrLit) String() string    { return fmt.Sprintf("%q", s.Value) }

type Ident struct {
	Pos  syntax.Span
	Name string
}

func (i *Ident) exprNode()         {}
func (i *Ident) Span() syntax.Span { return i.Pos }
func (i *Ident) String() string    { return i.Name }

type ArrayLit struct {
	Pos   syntax.Span
	Elems []Expr
}

func (a *ArrayLit) exprNode()         {}
func (a *ArrayLit) Span() syntax.Span { return a.Pos }
func (a *ArrayLit) String() string {
	elems := []string{}
	for _, e := range a.Elems {
		elems = append(elems, e.String())
	}
	return "(" + strings.Join(elems, ", ") + ")"
}

type Binary struct {
	Pos      syntax.Span
	Operator string
	Left     Expr
	Right    Expr
}

func (b *Binary) exprNode()         {}
func (b *Binary) Span() syntax.Span { return b.Pos }
func (b *Binary) String() string {
	return "(" + b.Left.String() + " " + b.Operator + " " + b.Right.String() + ")"
}

// Let binds a name in the current scope.
type Let struct {
	Pos   syntax.Span
	Name  string
	Value Expr
}

func (l *Let) exprNode()         {}
func (l *Let) Span() syntax.Span { return l.Pos }
func (l *Let) String() string {
	return "let " + l.Name + " = " + l.Value.String()
}

// Block evaluates its expressions in order inside a fresh scope; its value
// is the value of the last expression.
type Block struct {
	Pos   syntax.Span
	Exprs []Expr
}

func (b *Block) exprNode()         {}
func (b *Block) Span() syntax.Span { return b.Pos }
func (b *Block) String() string {
	var out bytes.Buffer
	out.WriteString("{ ")
	for _, e := range b.Exprs {
		out.WriteString(e.String())
		out.WriteString("; ")
	}
	out.WriteString("}")
	return out.String()
}

type If struct {
	Pos  syntax.Span
	Cond Expr
	Then Expr
	Else Expr // optional
}

func (i *If) exprNode()         {}
func (i *If) Span() syntax.Span { return i.Pos }
func (i *If) String() string {
	var out bytes.Buffer
	out.WriteString("if " + i.Cond.String() + " " + i.Then.String())
	if i.Else != nil {
		out.WriteString(" else " + i.Else.String())
	}
	return out.String()
}

// CallArg is a single argument at a call site, optionally named.
type CallArg struct {
	Pos   syntax.Span
	Name  string // "" for positional
	Value Expr
}

func (a CallArg) String() string {
	if a.Name != "" {
		return a.Name + ": " + a.Value.String()
	}
	return a.Value.String()
}

type Call struct {
	Pos    syntax.Span
	Callee Expr
	Args   []CallArg
}

func (c *Call) exprNode()         {}
func (c *Call) Span() syntax.Span { return c.Pos }
func (c *Call) String() string {
	args := []string{}
	for _, a := range c.Args {
		args = append(args, a.String())
	}
	return c.Callee.String() + "(" + strings.Join(args, ", ") + ")"
}

// MethodCall is `recv.name(args)`; method names resolve against the
// receiver's type, not the scope chain.
type MethodCall struct {
	Pos  syntax.Span
	Recv Expr
	Name string
	Args []CallArg
}

func (m *MethodCall) exprNode()         {}
func (m *MethodCall) Span() syntax.Span { return m.Pos }
func (m *MethodCall) String() string {
	args := []string{}
	for _, a := range m.Args {
		args = append(args, a.String())
	}
	return m.Recv.String() + "." + m.Name + "(" + strings.Join(args, ", ") + ")"
}

// ClosureParam declares one closure parameter. A parameter with a default
// expression is satisfied only by a named argument; the default is
// evaluated when the closure literal is.
type ClosureParam struct {
	Name    string
	Default Expr
}

func (p ClosureParam) String() string {
	if p.Default != nil {
		return p.Name + ": " + p.Default.String()
	}
	return p.Name
}

type ClosureLit struct {
	Pos    syntax.Span
	Name   string // "" for anonymous closures
	Params []ClosureParam
	Sink   string // "" when no sink is declared
	Body   Expr
}

func (c *ClosureLit) exprNode()         {}
func (c *ClosureLit) Span() syntax.Span { return c.Pos }
func (c *ClosureLit) String() string {
	params := []string{}
	for _, p := range c.Params {
		params = append(params, p.String())
	}
	if c.Sink != "" {
		params = append(params, ".."+c.Sink)
	}
	return "(" + strings.Join(params, ", ") + ") => " + c.Body.String()
}

type Return struct {
	Pos   syntax.Span
	Value Expr // nil for a bare return
}

func (r *Return) exprNode()         {}
func (r *Return) Span() syntax.Span { return r.Pos }
func (r *Return) String() string {
	if r.Value == nil {
		return "return"
	}
	return "return " + r.Value.String()
}

type Break struct {
	Pos syntax.Span
}

func (b *Break) exprNode()         {}
func (b *Break) Span() syntax.Span { return b.Pos }
func (b *Break) String() string    { return "break" }

type Continue struct {
	Pos syntax.Span
}

func (c *Continue) exprNode()         {}
func (c *Continue) Span() syntax.Span { return c.Pos }
func (c *Continue) String() string    { return "continue" }
