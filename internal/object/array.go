package object

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"

	"quill/internal/diag"
	"quill/internal/syntax"
)

// Array is an ordered sequence of objects with clone-on-write value
// semantics. Handles share their backing storage by reference count;
// mutation through one handle first copies the storage if another handle
// is still attached, so earlier-shared handles never observe it.
type Array struct {
	buf *buffer
}

type buffer struct {
	elems []Object
	refs  int64
}

func NewArray(elems ...Object) *Array {
	return &Array{buf: &buffer{elems: elems, refs: 1}}
}

// Clone returns a new handle attached to the same storage.
func (a *Array) Clone() *Array {
	a.buf.refs++
	return &Array{buf: a.buf}
}

// mut acquires exclusive access to the backing storage, copying it first
// if another handle is attached.
func (a *Array) mut() *buffer {
	if a.buf.refs > 1 {
		elems := make([]Object, len(a.buf.elems))
		copy(elems, a.buf.elems)
		a.buf.refs--
		a.buf = &buffer{elems: elems, refs: 1}
	}
	return a.buf
}

func (a *Array) Len() int64    { return int64(len(a.buf.elems)) }
func (a *Array) IsEmpty() bool { return len(a.buf.elems) == 0 }

// Values exposes the backing slice for read-only iteration.
func (a *Array) Values() []Object { return a.buf.elems }

// locate resolves a signed logical index; negative indices address from
// the back (-1 is the last element).
func (a *Array) locate(index int64) (int, bool) {
	resolved := index
	if resolved < 0 {
		resolved += a.Len()
	}
	if resolved < 0 {
		return 0, false
	}
	return int(resolved), true
}

func outOfBounds(index, len int64) error {
	return fmt.Errorf("array index out of bounds (index: %d, len: %d)", index, len)
}

// Get returns the value at the given index.
func (a *Array) Get(index int64) (Object, error) {
	i, ok := a.locate(index)
	if !ok || i >= len(a.buf.elems) {
		return nil, outOfBounds(index, a.Len())
	}
	return a.buf.elems[i], nil
}

// Set replaces the value at the given index, copying shared storage first.
func (a *Array) Set(index int64, value Object) error {
	i, ok := a.locate(index)
	if !ok || i >= len(a.buf.elems) {
		return outOfBounds(index, a.Len())
	}
	a.mut().elems[i] = value
	return nil
}

// Push appends a value to the end of the array.
func (a *Array) Push(value Object) {
	buf := a.mut()
	buf.elems = append(buf.elems, value)
}

// Pop removes and returns the last value.
func (a *Array) Pop() (Object, error) {
	if a.IsEmpty() {
		return nil, fmt.Errorf("array is empty")
	}
	buf := a.mut()
	last := buf.elems[len(buf.elems)-1]
	buf.elems = buf.elems[:len(buf.elems)-1]
	return last, nil
}

// Insert inserts a value at the given index; index len appends.
func (a *Array) Insert(index int64, value Object) error {
	i, ok := a.locate(index)
	if !ok || i > len(a.buf.elems) {
		return outOfBounds(index, a.Len())
	}
	buf := a.mut()
	buf.elems = append(buf.elems, nil)
	copy(buf.elems[i+1:], buf.elems[i:])
	buf.elems[i] = value
	return nil
}

// Remove removes the value at the given index.
func (a *Array) Remove(index int64) error {
	i, ok := a.locate(index)
	if !ok || i >= len(a.buf.elems) {
		return outOfBounds(index, a.Len())
	}
	buf := a.mut()
	buf.elems = append(buf.elems[:i], buf.elems[i+1:]...)
	return nil
}

// Contains reports whether the array holds a structurally equal value.
func (a *Array) Contains(value Object) bool {
	for _, elem := range a.buf.elems {
		if Equals(elem, value) {
			return true
		}
	}
	return false
}

// Slice extracts the contiguous subregion [start, end). A nil end defaults
// to the length; an end before start yields an empty array.
func (a *Array) Slice(start int64, end *int64) (*Array, error) {
	length := a.Len()
	s, ok := a.locate(start)
	if !ok || s > len(a.buf.elems) {
		return nil, outOfBounds(start, length)
	}

	resolvedEnd := length
	if end != nil {
		resolvedEnd = *end
	}
	e, ok := a.locate(resolvedEnd)
	if !ok || e > len(a.buf.elems) {
		return nil, outOfBounds(resolvedEnd, length)
	}
	if e < s {
		e = s
	}

	elems := make([]Object, e-s)
	copy(elems, a.buf.elems[s:e])
	return NewArray(elems...), nil
}

// Map transforms each element with the function. A function with a
// declared positional arity of exactly two receives (index, element).
func (a *Array) Map(vm Machine, f *Func, span syntax.Span) (*Array, error) {
	argc, known := f.Argc()
	enumerate := known && argc == 2
	out := make([]Object, 0, len(a.buf.elems))
	for i, elem := range a.buf.elems {
		args := NewArgs(span)
		if enumerate {
			args.Push(span, &Integer{Value: int64(i)})
		}
		args.Push(span, elem)
		mapped, err := f.Call(vm, args)
		if err != nil {
			return nil, err
		}
		out = append(out, mapped)
	}
	return NewArray(out...), nil
}

// Filter keeps the elements for which the function returns true,
// preserving order.
func (a *Array) Filter(vm Machine, f *Func, span syntax.Span) (*Array, error) {
	kept := []Object{}
	for _, elem := range a.buf.elems {
		result, err := f.Call(vm, NewArgs(span, elem))
		if err != nil {
			return nil, err
		}
		keep, err := AsBool(result)
		if err != nil {
			return nil, diag.At(err, span)
		}
		if keep {
			kept = append(kept, elem)
		}
	}
	return NewArray(kept...), nil
}

// Flatten returns a new array with nested arrays recursively flattened in
// place, depth-first and left to right.
func (a *Array) Flatten() *Array {
	flat := make([]Object, 0, len(a.buf.elems))
	for _, elem := range a.buf.elems {
		if nested, ok := elem.(*Array); ok {
			flat = append(flat, nested.Flatten().Values()...)
		} else {
			flat = append(flat, elem)
		}
	}
	return NewArray(flat...)
}

// Find returns the index of the first element matching the target, or
// false if none does.
func (a *Array) Find(vm Machine, target Target) (int64, bool, error) {
	for i, elem := range a.buf.elems {
		matches, err := target.Matches(vm, elem)
		if err != nil {
			return 0, false, err
		}
		if matches {
			return int64(i), true, nil
		}
	}
	return 0, false, nil
}

// Join folds all values with the join combinator, inserting sep between
// adjacent pairs. A non-nil last replaces sep for the final gap only.
func (a *Array) Join(sep, last Object) (Object, error) {
	length := len(a.buf.elems)
	if sep == nil {
		sep = NIL
	}

	var result Object = NIL
	var err error
	for i, value := range a.buf.elems {
		if i > 0 {
			if i+1 == length && last != nil {
				result, err = Join(result, last)
			} else {
				result, err = Join(result, sep)
			}
			if err != nil {
				return nil, err
			}
		}
		result, err = Join(result, value)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Sorted returns a new array ordered by the elements' partial order. The
// sort always runs to completion; if any compared pair is incomparable the
// first such pair is reported instead of a result.
func (a *Array) Sorted() (*Array, error) {
	var firstErr error
	elems := make([]Object, len(a.buf.elems))
	copy(elems, a.buf.elems)
	sort.SliceStable(elems, func(i, j int) bool {
		order, comparable := Compare(elems[i], elems[j])
		if !comparable {
			if firstErr == nil {
				firstErr = fmt.Errorf("cannot order %s and %s",
					TypeName(elems[i]), TypeName(elems[j]))
			}
			return false
		}
		return order < 0
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return NewArray(elems...), nil
}

// Repeat returns the element cycle taken len*n times.
func (a *Array) Repeat(n int64) (*Array, error) {
	length := a.Len()
	if n < 0 || (length > 0 && n > (int64(maxInt)/length)) {
		return nil, fmt.Errorf("cannot repeat this array %d times", n)
	}
	count := length * n
	out := make([]Object, 0, count)
	for i := int64(0); i < n; i++ {
		out = append(out, a.buf.elems...)
	}
	return NewArray(out...), nil
}

const maxInt = int(^uint(0) >> 1)

// Extend appends the other array's elements. The right-hand side is never
// touched; scope bindings alias handles without going through Clone, so a
// refcount of one does not prove unique ownership here.
func (a *Array) Extend(rhs *Array) {
	buf := a.mut()
	buf.elems = append(buf.elems, rhs.buf.elems...)
}

// Concat returns a new array with the elements of both operands.
func (a *Array) Concat(rhs *Array) *Array {
	out := a.Clone()
	out.Extend(rhs)
	return out
}

// Equals compares two arrays element-wise.
func (a *Array) Equals(other *Array) bool {
	if a.buf == other.buf {
		return true
	}
	if len(a.buf.elems) != len(other.buf.elems) {
		return false
	}
	for i, elem := range a.buf.elems {
		if !Equals(elem, other.buf.elems[i]) {
			return false
		}
	}
	return true
}

func (a *Array) Type() ObjectType { return ARRAY_OBJ }

func (a *Array) Inspect() string {
	elems := []string{}
	for _, e := range a.buf.elems {
		elems = append(elems, e.Inspect())
	}
	out := "(" + strings.Join(elems, ", ")
	if len(elems) == 1 {
		out += ","
	}
	return out + ")"
}

// Hash combines the content hashes of all elements.
func (a *Array) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	for _, elem := range a.buf.elems {
		v := HashOf(elem)
		for i := 0; i < 8; i++ {
			buf[i] = byte(v >> (8 * i))
		}
		h.Write(buf[:])
	}
	return h.Sum64()
}

// Target is something a sequence search can look for: either a bare value
// matched by structural equality or a predicate function.
type Target struct {
	value Object
	fn    *Func
	span  syntax.Span
}

// TargetOf builds a search target from an argument value: functions become
// predicates, everything else matches by equality.
func TargetOf(value Object, span syntax.Span) Target {
	if f, ok := value.(*Func); ok {
		return FuncTarget(f, span)
	}
	return ValueTarget(value)
}

func ValueTarget(value Object) Target {
	return Target{value: value}
}

func FuncTarget(f *Func, span syntax.Span) Target {
	return Target{fn: f, span: span}
}

// Matches reports whether the candidate is the search target.
func (t Target) Matches(vm Machine, candidate Object) (bool, error) {
	if t.fn == nil {
		return Equals(t.value, candidate), nil
	}
	result, err := t.fn.Call(vm, NewArgs(t.span, candidate))
	if err != nil {
		return false, err
	}
	matches, err := AsBool(result)
	if err != nil {
		return false, diag.At(err, t.span)
	}
	return matches, nil
}
