package dss

import "sync"

// Variable is one named entry in a store: an identifier plus an ordered
// list of tagged values.
type Variable struct {
	mu   sync.RWMutex
	id   string
	data []Value
}

// ID returns the variable's identifier
func (v *Variable) ID() string {
	return v.id
}

// Len returns the number of stored values
func (v *Variable) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.data)
}

// Values returns a copy of the value list in storage order
func (v *Variable) Values() []Value {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]Value(nil), v.data...)
}

// Append adds a value to the end of the list. Appending a value equal to an
// existing element is a no-op; elements of a different kind never compare
// equal, so they read as "not present" rather than as an error.
func (v *Variable) Append(val Value) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, existing := range v.data {
		if valuesEqual(existing, val) {
			return
		}
	}
	v.data = append(v.data, val)
}

// Set replaces the value at index i, which must be in range.
func (v *Variable) Set(i int, val Value) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.data[i] = val
}

// VarStore is the ordered collection of Variables owned by one Executor.
// Both built-in features and grafted modules share it as mutable state.
type VarStore struct {
	mu     sync.RWMutex
	vars   []*Variable
	logger *Logger
}

// NewVarStore creates an empty store
func NewVarStore(logger *Logger) *VarStore {
	return &VarStore{logger: logger}
}

// GetOrCreate returns the variable with the given id, creating an empty one
// if it does not exist yet. It never fails.
func (s *VarStore) GetOrCreate(id string) *Variable {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.vars {
		if v.id == id {
			return v
		}
	}
	v := &Variable{id: id}
	s.vars = append(s.vars, v)
	s.logger.DebugCat(CatVar, "created variable: %s", id)
	return v
}

// Lookup returns the variable with the given id, if present.
func (s *VarStore) Lookup(id string) (*Variable, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range s.vars {
		if v.id == id {
			return v, true
		}
	}
	return nil, false
}

// Len returns the number of variables in the store
func (s *VarStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vars)
}

// IDs returns the variable identifiers in storage order
func (s *VarStore) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, len(s.vars))
	for i, v := range s.vars {
		ids[i] = v.id
	}
	return ids
}
