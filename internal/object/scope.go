package object

// Scope is a flat set of bindings. Closure captures are scopes that are
// written once at definition time and only read afterwards.
type Scope struct {
	bindings map[string]Object
}

func NewScope() *Scope {
	return &Scope{bindings: map[string]Object{}}
}

func (s *Scope) Define(name string, val Object) {
	if s.bindings == nil {
		s.bindings = map[string]Object{}
	}
	s.bindings[name] = val
}

func (s *Scope) Get(name string) (Object, bool) {
	val, ok := s.bindings[name]
	return val, ok
}

func (s *Scope) Len() int { return len(s.bindings) }

// Copy returns an independent scope with the same bindings.
func (s *Scope) Copy() *Scope {
	out := &Scope{bindings: make(map[string]Object, len(s.bindings))}
	for k, v := range s.bindings {
		out.bindings[k] = v
	}
	return out
}

// Each visits every binding. Iteration order is unspecified.
func (s *Scope) Each(f func(name string, val Object)) {
	for k, v := range s.bindings {
		f(k, v)
	}
}

// Scopes is a chain of scopes with an optional read-only base at the
// bottom. Lookups walk from the innermost scope outwards.
type Scopes struct {
	Top   *Scope
	stack []*Scope
	Base  *Scope // read-only; nil for detached evaluation
}

func NewScopes(base *Scope) *Scopes {
	return &Scopes{Top: NewScope(), Base: base}
}

// Enter pushes a fresh innermost scope.
func (s *Scopes) Enter() {
	s.stack = append(s.stack, s.Top)
	s.Top = NewScope()
}

// Exit discards the innermost scope.
func (s *Scopes) Exit() {
	if len(s.stack) == 0 {
		panic("no pushed scope to exit")
	}
	s.Top = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *Scopes) Get(name string) (Object, bool) {
	if val, ok := s.Top.Get(name); ok {
		return val, true
	}
	for i := len(s.stack) - 1; i >= 0; i-- {
		if val, ok := s.stack[i].Get(name); ok {
			return val, true
		}
	}
	if s.Base != nil {
		if val, ok := s.Base.Get(name); ok {
			return val, true
		}
	}
	return nil, false
}

func (s *Scopes) Define(name string, val Object) {
	s.Top.Define(name, val)
}

// Capture snapshots every binding visible right now into one flat scope,
// innermost bindings shadowing outer ones. The result never references the
// live chain.
func (s *Scopes) Capture() *Scope {
	captured := NewScope()
	if s.Base != nil {
		s.Base.Each(captured.Define)
	}
	for _, scope := range s.stack {
		scope.Each(captured.Define)
	}
	s.Top.Each(captured.Define)
	return captured
}
