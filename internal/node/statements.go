package node

import (
	"github.com/inoxlang/scriptc/internal/diag"
	"github.com/inoxlang/scriptc/internal/ir"
	"github.com/inoxlang/scriptc/internal/position"
)

// ExpressionStatement evaluates an expression and discards its value.
type ExpressionStatement struct {
	statementBase
	Expression Expression
}

func NewExpressionStatement(loc position.Location, expr Expression) *ExpressionStatement {
	return &ExpressionStatement{statementBase: statementBase{location: loc}, Expression: expr}
}

func (s *ExpressionStatement) Analyze(root *ScriptRoot, scope *Scope) error {
	if err := s.beginAnalysis(); err != nil {
		return err
	}

	if err := analyzeChild(root, scope, s.location, s.Expression, Input{Read: false}); err != nil {
		return err
	}

	s.finishAnalysis()
	return nil
}

func (s *ExpressionStatement) Write(b *ir.Builder) (ir.StatementNode, error) {
	if err := s.beginWrite(); err != nil {
		return nil, err
	}

	expr, err := writeChild(b, s.Expression)
	if err != nil {
		return nil, err
	}
	return &ir.StatementExpressionNode{StatementBase: s.irBase(), Expression: expr}, nil
}

func (s *ExpressionStatement) String() string {
	return singleLineToString("ExpressionStatement", nodeToString(s.Expression))
}

// Declaration declares a local variable, Value is nil if there is no initializer.
type Declaration struct {
	statementBase
	TypeName string
	Name     string
	Value    Expression

	variable *LocalVariable
}

func NewDeclaration(loc position.Location, typeName string, name string, value Expression) *Declaration {
	return &Declaration{statementBase: statementBase{location: loc}, TypeName: typeName, Name: name, Value: value}
}

func (d *Declaration) Analyze(root *ScriptRoot, scope *Scope) error {
	if err := d.beginAnalysis(); err != nil {
		return err
	}

	t, err := root.resolveType(d.location, d.TypeName)
	if err != nil {
		return err
	}

	if t.IsVoid() {
		return diag.Usage(d.location, diag.VOID_VARIABLE)
	}

	//the initializer is analyzed before the variable is defined: it cannot refer to the variable.
	if d.Value != nil {
		if err := analyzeChild(root, scope, d.location, d.Value, Input{Expected: t, Read: true}); err != nil {
			return err
		}
	}

	variable, err := scope.Define(d.Name, t, d.location)
	if err != nil {
		return err
	}

	d.variable = variable
	d.finishAnalysis()
	return nil
}

func (d *Declaration) Write(b *ir.Builder) (ir.StatementNode, error) {
	if err := d.beginWrite(); err != nil {
		return nil, err
	}

	n := &ir.DeclarationNode{
		StatementBase: d.irBase(),
		Variable:      d.Name,
		VarType:       d.variable.Type,
		Slot:          d.variable.Slot,
	}

	if d.Value != nil {
		value, err := writeChild(b, d.Value)
		if err != nil {
			return nil, err
		}
		n.Value = value
	}
	return n, nil
}

func (d *Declaration) String() string {
	if d.Value == nil {
		return singleLineToString("Declaration", d.TypeName, d.Name)
	}
	return singleLineToString("Declaration", d.TypeName, d.Name, d.Value.String())
}

// Return returns a value from the script, the value is converted to the return type of the script.
type Return struct {
	statementBase
	Value Expression
}

func NewReturn(loc position.Location, value Expression) *Return {
	return &Return{statementBase: statementBase{location: loc}, Value: value}
}

func (r *Return) Analyze(root *ScriptRoot, scope *Scope) error {
	if err := r.beginAnalysis(); err != nil {
		return err
	}

	if r.Value != nil {
		input := Input{Expected: root.ReturnType, Read: true, Internal: true}
		if err := analyzeChild(root, scope, r.location, r.Value, input); err != nil {
			return err
		}
	}

	r.finishAnalysis()
	return nil
}

func (r *Return) Write(b *ir.Builder) (ir.StatementNode, error) {
	if err := r.beginWrite(); err != nil {
		return nil, err
	}

	n := &ir.ReturnNode{StatementBase: r.irBase()}
	if r.Value != nil {
		value, err := writeChild(b, r.Value)
		if err != nil {
			return nil, err
		}
		n.Value = value
	}
	return n, nil
}

func (r *Return) String() string {
	if r.Value == nil {
		return "(Return)"
	}
	return singleLineToString("Return", r.Value.String())
}

// Block is a list of statements with its own scope.
type Block struct {
	statementBase
	Statements []Statement
}

func NewBlock(loc position.Location, statements ...Statement) *Block {
	return &Block{statementBase: statementBase{location: loc}, Statements: statements}
}

func (bl *Block) Analyze(root *ScriptRoot, scope *Scope) error {
	if err := bl.beginAnalysis(); err != nil {
		return err
	}

	if err := analyzeStatements(root, scope.NewBlockScope(), bl.location, bl.Statements); err != nil {
		return err
	}

	bl.finishAnalysis()
	return nil
}

func (bl *Block) Write(b *ir.Builder) (ir.StatementNode, error) {
	if err := bl.beginWrite(); err != nil {
		return nil, err
	}

	statements, err := writeStatements(b, bl.Statements)
	if err != nil {
		return nil, err
	}
	return &ir.BlockNode{StatementBase: bl.irBase(), Statements: statements}, nil
}

func (bl *Block) String() string {
	return singleLineToString("Block", bl.Statements)
}

// Source is the root of the tree of a compilation unit.
type Source struct {
	Loc        position.Location
	Statements []Statement

	scope *Scope
	stage stage
}

func NewSource(loc position.Location, statements ...Statement) *Source {
	return &Source{Loc: loc, Statements: statements}
}

// Analyze analyzes all statements in order with a new function scope, the first error aborts the analysis.
func (s *Source) Analyze(root *ScriptRoot) error {
	if s.stage != unanalyzed {
		return diag.Structural(s.Loc, diag.NODE_ANALYZED_TWICE)
	}

	scope := NewFunctionScope()
	if err := analyzeStatements(root, scope, s.Loc, s.Statements); err != nil {
		return err
	}

	s.scope = scope
	s.stage = analyzed
	return nil
}

// Write adds the IR of all statements to the class being built by b.
func (s *Source) Write(b *ir.Builder) error {
	switch s.stage {
	case unanalyzed:
		return diag.Structural(s.Loc, diag.NODE_WRITTEN_BEFORE_ANALYZE)
	case lowered:
		return diag.Structural(s.Loc, diag.NODE_WRITTEN_TWICE)
	}
	s.stage = lowered

	statements, err := writeStatements(b, s.Statements)
	if err != nil {
		return err
	}

	for _, stmt := range statements {
		if err := b.AddStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SlotCount returns the number of local variable slots used by the script, 0 before analysis.
func (s *Source) SlotCount() int {
	if s.scope == nil {
		return 0
	}
	return s.scope.SlotCount()
}

func (s *Source) String() string {
	return singleLineToString("Source", s.Statements)
}

func analyzeStatements(root *ScriptRoot, scope *Scope, loc position.Location, statements []Statement) error {
	for _, stmt := range statements {
		if stmt == nil {
			return diag.Structural(loc, diag.MISSING_CHILD_NODE)
		}
		if err := stmt.Analyze(root, scope); err != nil {
			return err
		}
	}
	return nil
}

func writeStatements(b *ir.Builder, statements []Statement) ([]ir.StatementNode, error) {
	list := make([]ir.StatementNode, 0, len(statements))
	for _, stmt := range statements {
		n, err := stmt.Write(b)
		if err != nil {
			return nil, err
		}
		list = append(list, n)
	}
	return list, nil
}
