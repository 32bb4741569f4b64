package tool

import "fmt"

// Set is an ordered collection of callables with unique names.
type Set struct {
	callables []*Callable
	index     map[string]*Callable
}

// Add appends callable, rejecting a duplicate name.
func (s *Set) Add(callable *Callable) error {
	if s.index == nil {
		s.index = map[string]*Callable{}
	}
	if _, ok := s.index[callable.Name]; ok {
		return fmt.Errorf("duplicate tool name: %v", callable.Name)
	}
	s.callables = append(s.callables, callable)
	s.index[callable.Name] = callable
	return nil
}

// Get returns the callable registered under name.
func (s *Set) Get(name string) (*Callable, bool) {
	if s == nil {
		return nil, false
	}
	ret, ok := s.index[name]
	return ret, ok
}

// Callables returns the callables in registration order.
func (s *Set) Callables() []*Callable {
	if s == nil {
		return nil
	}
	return s.callables
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.callables)
}

// Names returns tool names in registration order.
func (s *Set) Names() []string {
	var ret []string
	for _, callable := range s.Callables() {
		ret = append(ret, callable.Name)
	}
	return ret
}

// NewSet creates an empty set
func NewSet() *Set {
	return &Set{index: map[string]*Callable{}}
}

// AdaptAll adapts every descriptor, preserving order.
func AdaptAll(descriptors []Descriptor, invoker Invoker) (*Set, error) {
	ret := NewSet()
	for _, descriptor := range descriptors {
		if err := ret.Add(Adapt(descriptor, invoker)); err != nil {
			return nil, err
		}
	}
	return ret, nil
}
