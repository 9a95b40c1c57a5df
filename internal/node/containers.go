package node

import (
	"github.com/inoxlang/scriptc/internal/diag"
	"github.com/inoxlang/scriptc/internal/ir"
	"github.com/inoxlang/scriptc/internal/lookup"
	"github.com/inoxlang/scriptc/internal/position"
	"github.com/inoxlang/scriptc/internal/types"
)

// MapInit is a map literal: [k1: v1, k2: v2]. It creates a HashMap with its no-arg constructor and calls
// put for each entry, in source order. Keys and values are converted to def.
type MapInit struct {
	expressionBase
	Keys   []Expression
	Values []Expression

	constructor *lookup.Constructor
	method      *lookup.Method
}

func NewMapInit(loc position.Location, keys []Expression, values []Expression) *MapInit {
	return &MapInit{expressionBase: expressionBase{location: loc}, Keys: keys, Values: values}
}

func (m *MapInit) Analyze(root *ScriptRoot, scope *Scope, input Input) (Output, error) {
	if err := m.beginAnalysis(input); err != nil {
		return Output{}, err
	}

	if !input.Read {
		return Output{}, diag.Usage(m.location, diag.MUST_READ_FROM_MAP_INIT)
	}

	//the tree is checked before any lookup.
	if len(m.Keys) != len(m.Values) {
		return Output{}, diag.Structural(m.location, diag.ILLEGAL_TREE_STRUCTURE)
	}

	actual := types.HashMap

	ctor := root.resolver.LookupConstructor(actual, 0)
	if ctor == nil {
		return Output{}, diag.Resolution(m.location, diag.FmtConstructorNotFound(actual.Name(), 0))
	}

	method := root.resolver.LookupMethod(actual, false, "put", 2)
	if method == nil {
		return Output{}, diag.Resolution(m.location, diag.FmtMethodNotFound(actual.Name(), "put", 2))
	}

	for _, key := range m.Keys {
		if err := analyzeChild(root, scope, m.location, key, dynamicElementInput()); err != nil {
			return Output{}, err
		}
	}

	for _, value := range m.Values {
		if err := analyzeChild(root, scope, m.location, value, dynamicElementInput()); err != nil {
			return Output{}, err
		}
	}

	m.constructor = ctor
	m.method = method
	return m.finishAnalysis(root, actual), nil
}

func (m *MapInit) Write(b *ir.Builder) (ir.ExpressionNode, error) {
	if err := m.beginWrite(); err != nil {
		return nil, err
	}

	n := &ir.MapInitializationNode{
		ExpressionBase: m.irBase(),
		Constructor:    m.constructor,
		Method:         m.method,
	}

	for i, key := range m.Keys {
		keyNode, err := writeChild(b, key)
		if err != nil {
			return nil, err
		}
		valueNode, err := writeChild(b, m.Values[i])
		if err != nil {
			return nil, err
		}
		n.AddArgumentNode(keyNode, valueNode)
	}

	return n, nil
}

// Constructor returns the constructor bound during analysis, nil before analysis.
func (m *MapInit) Constructor() *lookup.Constructor {
	return m.constructor
}

// Method returns the put method bound during analysis, nil before analysis.
func (m *MapInit) Method() *lookup.Method {
	return m.method
}

func (m *MapInit) String() string {
	return singleLineToString("MapInit", pairwiseToString(m.Keys, m.Values))
}

// ListInit is a list literal: [v1, v2]. It creates an ArrayList with its no-arg constructor and calls add
// for each value, in source order. Values are converted to def.
type ListInit struct {
	expressionBase
	Values []Expression

	constructor *lookup.Constructor
	method      *lookup.Method
}

func NewListInit(loc position.Location, values ...Expression) *ListInit {
	return &ListInit{expressionBase: expressionBase{location: loc}, Values: values}
}

func (l *ListInit) Analyze(root *ScriptRoot, scope *Scope, input Input) (Output, error) {
	if err := l.beginAnalysis(input); err != nil {
		return Output{}, err
	}

	if !input.Read {
		return Output{}, diag.Usage(l.location, diag.MUST_READ_FROM_LIST_INIT)
	}

	actual := types.ArrayList

	ctor := root.resolver.LookupConstructor(actual, 0)
	if ctor == nil {
		return Output{}, diag.Resolution(l.location, diag.FmtConstructorNotFound(actual.Name(), 0))
	}

	method := root.resolver.LookupMethod(actual, false, "add", 1)
	if method == nil {
		return Output{}, diag.Resolution(l.location, diag.FmtMethodNotFound(actual.Name(), "add", 1))
	}

	for _, value := range l.Values {
		if err := analyzeChild(root, scope, l.location, value, dynamicElementInput()); err != nil {
			return Output{}, err
		}
	}

	l.constructor = ctor
	l.method = method
	return l.finishAnalysis(root, actual), nil
}

func (l *ListInit) Write(b *ir.Builder) (ir.ExpressionNode, error) {
	if err := l.beginWrite(); err != nil {
		return nil, err
	}

	values, err := writeChildren(b, l.Values)
	if err != nil {
		return nil, err
	}

	return &ir.ListInitializationNode{
		ExpressionBase: l.irBase(),
		Constructor:    l.constructor,
		Method:         l.method,
		Values:         values,
	}, nil
}

func (l *ListInit) String() string {
	return singleLineToString("ListInit", l.Values)
}
