// Package style is the contract with the styling subsystem: a property map
// produced by native set-rules and a stable identity tag that lets
// customization rules target a native constructor.
package style

import "sync"

// Map is an ordered set of style properties. Later entries win.
type Map struct {
	props []Property
}

type Property struct {
	Key   string
	Value interface{}
}

func NewMap() Map {
	return Map{}
}

func (m *Map) Set(key string, value interface{}) {
	m.props = append(m.props, Property{Key: key, Value: value})
}

func (m Map) Len() int { return len(m.props) }

func (m Map) Get(key string) (interface{}, bool) {
	for i := len(m.props) - 1; i >= 0; i-- {
		if m.props[i].Key == key {
			return m.props[i].Value, true
		}
	}
	return nil, false
}

// NodeID is the stable identity tag of a customizable native. Ids are
// assigned once per name at registration and never reused.
type NodeID int

var nodeRegistry = struct {
	mu    sync.Mutex
	ids   map[string]NodeID
	names []string
}{ids: map[string]NodeID{}}

// NodeOf returns the identity tag for the named node, registering it on
// first use. Ids start at 1; the zero NodeID means "not customizable".
func NodeOf(name string) NodeID {
	nodeRegistry.mu.Lock()
	defer nodeRegistry.mu.Unlock()
	if id, ok := nodeRegistry.ids[name]; ok {
		return id
	}
	nodeRegistry.names = append(nodeRegistry.names, name)
	id := NodeID(len(nodeRegistry.names))
	nodeRegistry.ids[name] = id
	return id
}

// Name returns the registered name of the node id.
func (id NodeID) Name() string {
	nodeRegistry.mu.Lock()
	defer nodeRegistry.mu.Unlock()
	if id < 1 || int(id) > len(nodeRegistry.names) {
		return ""
	}
	return nodeRegistry.names[id-1]
}
