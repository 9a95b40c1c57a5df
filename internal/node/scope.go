package node

import (
	"github.com/inoxlang/scriptc/internal/diag"
	"github.com/inoxlang/scriptc/internal/position"
	"github.com/inoxlang/scriptc/internal/types"
)

// LocalVariable is a variable declared in a script, Slot is unique in the compilation unit.
type LocalVariable struct {
	Name     string
	Type     *types.Type
	Slot     int
	Location position.Location
}

// A Scope maps variable names to local variables. Block scopes share the slot counter of their function scope.
type Scope struct {
	parent    *Scope
	variables map[string]*LocalVariable
	slots     *int
}

func NewFunctionScope() *Scope {
	slots := 0
	return &Scope{
		variables: map[string]*LocalVariable{},
		slots:     &slots,
	}
}

func (s *Scope) NewBlockScope() *Scope {
	return &Scope{
		parent:    s,
		variables: map[string]*LocalVariable{},
		slots:     s.slots,
	}
}

// Define declares a variable in s, shadowing a variable of an enclosing scope is not allowed.
func (s *Scope) Define(name string, t *types.Type, loc position.Location) (*LocalVariable, error) {
	if _, ok := s.Lookup(name); ok {
		return nil, diag.Usage(loc, diag.FmtVariableAlreadyDefined(name))
	}

	variable := &LocalVariable{
		Name:     name,
		Type:     t,
		Slot:     *s.slots,
		Location: loc,
	}
	*s.slots++
	s.variables[name] = variable
	return variable, nil
}

func (s *Scope) Lookup(name string) (*LocalVariable, bool) {
	for current := s; current != nil; current = current.parent {
		if variable, ok := current.variables[name]; ok {
			return variable, true
		}
	}
	return nil, false
}

// SlotCount returns the number of slots allocated in the function scope.
func (s *Scope) SlotCount() int {
	return *s.slots
}
