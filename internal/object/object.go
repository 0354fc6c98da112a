package object

import (
	"fmt"
	"hash/fnv"
	"strings"
	"unicode/utf8"
)

const (
	NIL_OBJ     = "NIL"
	BOOLEAN_OBJ = "BOOLEAN"
	INTEGER_OBJ = "INTEGER"
	STRING_OBJ  = "STRING"
	ARRAY_OBJ   = "ARRAY"
	FUNC_OBJ    = "FUNC"
)

var (
	NIL   = &Nil{}
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
)

type ObjectType string

type Object interface {
	Type() ObjectType
	Inspect() string
}

// Hashable objects contribute a stable content hash, used for element-wise
// array hashing.
type Hashable interface {
	Object
	Hash() uint64
}

type Nil struct{}

func (n *Nil) Type() ObjectType { return NIL_OBJ }
func (n *Nil) Inspect() string  { return "none" }
func (n *Nil) Hash() uint64     { return 0 }

type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string  { return fmt.Sprintf("%t", b.Value) }
func (b *Boolean) Hash() uint64 {
	if b.Value {
		return 1
	}
	return 2
}

type Integer struct {
	Value int64
}

func (i *Integer) Type() ObjectType { return INTEGER_OBJ }
func (i *Integer) Inspect() string  { return fmt.Sprintf("%d", i.Value) }
func (i *Integer) Hash() uint64     { return uint64(i.Value) }

type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return fmt.Sprintf("%q", s.Value) }
func (s *String) Hash() uint64 {
	h := fnv.New64a()
	for _, r := range s.Value {
		var buf [4]byte
		n := utf8.EncodeRune(buf[:], r)
		h.Write(buf[:n])
	}
	return h.Sum64()
}

func NativeBoolToBooleanObject(input bool) *Boolean {
	if input {
		return TRUE
	}
	return FALSE
}

// TypeName is the lowercase type name used in diagnostics.
func TypeName(obj Object) string {
	return strings.ToLower(string(obj.Type()))
}

// Equals compares two objects structurally. Arrays compare element-wise;
// functions compare by allocation identity.
func Equals(a, b Object) bool {
	switch a := a.(type) {
	case *Nil:
		_, ok := b.(*Nil)
		return ok
	case *Boolean:
		other, ok := b.(*Boolean)
		return ok && a.Value == other.Value
	case *Integer:
		other, ok := b.(*Integer)
		return ok && a.Value == other.Value
	case *String:
		other, ok := b.(*String)
		return ok && a.Value == other.Value
	case *Array:
		other, ok := b.(*Array)
		return ok && a.Equals(other)
	case *Func:
		other, ok := b.(*Func)
		return ok && a.Is(other)
	}
	return false
}

// Compare orders two objects if their types admit an order. The second
// return value reports comparability.
func Compare(a, b Object) (int, bool) {
	switch a := a.(type) {
	case *Boolean:
		if other, ok := b.(*Boolean); ok {
			return boolCompare(a.Value, other.Value), true
		}
	case *Integer:
		if other, ok := b.(*Integer); ok {
			switch {
			case a.Value < other.Value:
				return -1, true
			case a.Value > other.Value:
				return 1, true
			}
			return 0, true
		}
	case *String:
		if other, ok := b.(*String); ok {
			return strings.Compare(a.Value, other.Value), true
		}
	}
	return 0, false
}

func boolCompare(a, b bool) int {
	switch {
	case a == b:
		return 0
	case b:
		return -1
	}
	return 1
}

// AsBool narrows an object to a boolean.
func AsBool(obj Object) (bool, error) {
	if b, ok := obj.(*Boolean); ok {
		return b.Value, nil
	}
	return false, fmt.Errorf("expected boolean, found %s", TypeName(obj))
}

// IsArray reports whether the object is a sequence.
func IsArray(obj Object) bool {
	_, ok := obj.(*Array)
	return ok
}

// IsFunc reports whether the object is callable.
func IsFunc(obj Object) bool {
	_, ok := obj.(*Func)
	return ok
}

// HashOf returns the content hash of an object, mixing in the type so that
// values of different types rarely collide.
func HashOf(obj Object) uint64 {
	h := fnv.New64a()
	h.Write([]byte(obj.Type()))
	if hashable, ok := obj.(Hashable); ok {
		var buf [8]byte
		v := hashable.Hash()
		for i := 0; i < 8; i++ {
			buf[i] = byte(v >> (8 * i))
		}
		h.Write(buf[:])
	}
	return h.Sum64()
}
