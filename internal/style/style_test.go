package style

import "testing"

func TestNodeIDsAreStable(t *testing.T) {
	a := NodeOf("stable-node")
	b := NodeOf("stable-node")
	c := NodeOf("other-node")

	if a != b {
		t.Errorf("NodeOf returned %v then %v for the same name", a, b)
	}
	if a == c {
		t.Error("distinct names share an id")
	}
	if a.Name() != "stable-node" {
		t.Errorf("name = %q", a.Name())
	}
}

func TestMapLaterEntriesWin(t *testing.T) {
	m := NewMap()
	m.Set("size", 10)
	m.Set("weight", "bold")
	m.Set("size", 12)

	if m.Len() != 3 {
		t.Errorf("len = %d", m.Len())
	}
	if got, ok := m.Get("size"); !ok || got.(int) != 12 {
		t.Errorf("size = %v, %t", got, ok)
	}
	if _, ok := m.Get("absent"); ok {
		t.Error("absent key found")
	}
}
