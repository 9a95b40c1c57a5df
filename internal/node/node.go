// Package node contains the analyzable tree produced by the parser. Every node goes through two phases:
// Analyze resolves types and members against the whitelist and decides conversions, then Write emits the IR.
// A node is analyzed once and written once.
package node

import (
	"github.com/rs/zerolog"

	"github.com/inoxlang/scriptc/internal/caster"
	"github.com/inoxlang/scriptc/internal/diag"
	"github.com/inoxlang/scriptc/internal/ir"
	"github.com/inoxlang/scriptc/internal/lookup"
	"github.com/inoxlang/scriptc/internal/position"
	"github.com/inoxlang/scriptc/internal/types"
)

var (
	_ = []Expression{
		(*String)(nil), (*Numeric)(nil), (*Boolean)(nil), (*Null)(nil), (*Variable)(nil), (*NewObject)(nil),
		(*Call)(nil), (*StaticCall)(nil), (*MapInit)(nil), (*ListInit)(nil), (*Binary)(nil), (*Explicit)(nil),
	}
	_ = []Statement{(*ExpressionStatement)(nil), (*Declaration)(nil), (*Return)(nil), (*Block)(nil)}

	_ Resolver = (*lookup.Snapshot)(nil)
)

// Input describes the expectations of the caller of Analyze. A new Input is created for each call.
type Input struct {
	Expected *types.Type //nil if the caller has no expectation
	Read     bool        //the value produced by the node is consumed
	Internal bool        //Expected is synthesized by the compiler, not written by the author
	Explicit bool        //Expected comes from an explicit cast
}

// Output is the result of Analyze.
type Output struct {
	Actual *types.Type //type produced by the node before any conversion
}

type Expression interface {
	Analyze(root *ScriptRoot, scope *Scope, input Input) (Output, error)

	// Cast decides the conversion from the actual type to the expected type of the Input received by
	// Analyze, it is a no-op if there is no expected type or if the types are identical.
	Cast() error

	// ApplyCast wraps the IR of the node with the conversion decided by Cast.
	ApplyCast(n ir.ExpressionNode) ir.ExpressionNode

	Write(b *ir.Builder) (ir.ExpressionNode, error)
	Location() position.Location
	String() string

	expression()
}

type Statement interface {
	Analyze(root *ScriptRoot, scope *Scope) error
	Write(b *ir.Builder) (ir.StatementNode, error)
	Location() position.Location
	String() string

	statement()
}

// Resolver gives access to the whitelist, *lookup.Snapshot is the implementation used by the compiler.
type Resolver interface {
	caster.Hierarchy
	LookupType(name string) (*types.Type, bool)
	LookupConstructor(t *types.Type, arity int) *lookup.Constructor
	LookupMethod(t *types.Type, static bool, name string, arity int) *lookup.Method
	SuggestType(name string) string
	SuggestMethod(t *types.Type, static bool, name string, arity int) string
}

// ScriptRoot holds the state shared by all the nodes of a compilation unit.
type ScriptRoot struct {
	Unit       string
	CompileID  string
	ReturnType *types.Type

	resolver Resolver
	logger   zerolog.Logger
}

func NewScriptRoot(unit string, compileID string, resolver Resolver, logger zerolog.Logger) *ScriptRoot {
	return &ScriptRoot{
		Unit:       unit,
		CompileID:  compileID,
		ReturnType: types.Def,
		resolver:   resolver,
		logger:     logger,
	}
}

func (r *ScriptRoot) Resolver() Resolver {
	return r.resolver
}

func (r *ScriptRoot) Logger() zerolog.Logger {
	return r.logger
}

func (r *ScriptRoot) resolveType(loc position.Location, name string) (*types.Type, error) {
	t, ok := r.resolver.LookupType(name)
	if !ok {
		return nil, diag.Resolution(loc, diag.WithSuggestion(diag.FmtTypeNotFound(name), r.resolver.SuggestType(name)))
	}
	return t, nil
}

type stage uint8

const (
	unanalyzed stage = iota
	analyzed
	lowered
)

// expressionBase holds the state of an expression across the two phases, it is embedded by all expressions.
type expressionBase struct {
	location position.Location

	input     Input
	output    Output
	hierarchy caster.Hierarchy

	cast     *caster.Cast
	castDone bool
	castErr  error

	stage stage
}

func (*expressionBase) expression() {}

func (b *expressionBase) Location() position.Location {
	return b.location
}

// Actual returns the type produced by the node, nil before analysis.
func (b *expressionBase) Actual() *types.Type {
	return b.output.Actual
}

// Conversion returns the conversion decided by Cast, nil if there is none.
func (b *expressionBase) Conversion() *caster.Cast {
	return b.cast
}

func (b *expressionBase) beginAnalysis(input Input) error {
	if b.stage != unanalyzed {
		return diag.Structural(b.location, diag.NODE_ANALYZED_TWICE)
	}
	b.input = input
	return nil
}

func (b *expressionBase) finishAnalysis(root *ScriptRoot, actual *types.Type) Output {
	b.output = Output{Actual: actual}
	b.hierarchy = root.resolver
	b.stage = analyzed
	return b.output
}

func (b *expressionBase) Cast() error {
	if b.stage == unanalyzed {
		return diag.Structural(b.location, diag.CAST_BEFORE_ANALYZE)
	}

	if b.castDone {
		return b.castErr
	}
	b.castDone = true

	if b.input.Expected == nil {
		return nil
	}

	b.cast, b.castErr = caster.LegalCast(b.location, b.output.Actual, b.input.Expected, b.input.Explicit, b.input.Internal, b.hierarchy)
	return b.castErr
}

func (b *expressionBase) ApplyCast(n ir.ExpressionNode) ir.ExpressionNode {
	return ir.WrapCast(n, b.cast)
}

func (b *expressionBase) beginWrite() error {
	switch b.stage {
	case unanalyzed:
		return diag.Structural(b.location, diag.NODE_WRITTEN_BEFORE_ANALYZE)
	case lowered:
		return diag.Structural(b.location, diag.NODE_WRITTEN_TWICE)
	}
	b.stage = lowered
	return nil
}

func (b *expressionBase) irBase() ir.ExpressionBase {
	return ir.ExpressionBase{
		NodeBase: ir.NodeBase{Loc: b.location},
		Type:     b.output.Actual,
	}
}

// requireRead returns a UsageError if the value of the node is discarded.
func (b *expressionBase) requireRead(msg string) error {
	if !b.input.Read {
		return diag.Usage(b.location, msg)
	}
	return nil
}

// analyzeChild analyzes a child expression and decides its conversion.
func analyzeChild(root *ScriptRoot, scope *Scope, parentLoc position.Location, child Expression, input Input) error {
	if child == nil {
		return diag.Structural(parentLoc, diag.MISSING_CHILD_NODE)
	}

	if _, err := child.Analyze(root, scope, input); err != nil {
		return err
	}
	return child.Cast()
}

// writeChild writes a child expression and applies its conversion.
func writeChild(b *ir.Builder, child Expression) (ir.ExpressionNode, error) {
	n, err := child.Write(b)
	if err != nil {
		return nil, err
	}
	return child.ApplyCast(n), nil
}

func writeChildren(b *ir.Builder, children []Expression) ([]ir.ExpressionNode, error) {
	list := make([]ir.ExpressionNode, 0, len(children))
	for _, child := range children {
		n, err := writeChild(b, child)
		if err != nil {
			return nil, err
		}
		list = append(list, n)
	}
	return list, nil
}

// dynamicElementInput is the input of the elements of container literals: containers are generically typed
// so their elements are always converted to def.
func dynamicElementInput() Input {
	return Input{Expected: types.Def, Read: true, Internal: true}
}

type statementBase struct {
	location position.Location
	stage    stage
}

func (*statementBase) statement() {}

func (b *statementBase) Location() position.Location {
	return b.location
}

func (b *statementBase) beginAnalysis() error {
	if b.stage != unanalyzed {
		return diag.Structural(b.location, diag.NODE_ANALYZED_TWICE)
	}
	return nil
}

func (b *statementBase) finishAnalysis() {
	b.stage = analyzed
}

func (b *statementBase) beginWrite() error {
	switch b.stage {
	case unanalyzed:
		return diag.Structural(b.location, diag.NODE_WRITTEN_BEFORE_ANALYZE)
	case lowered:
		return diag.Structural(b.location, diag.NODE_WRITTEN_TWICE)
	}
	b.stage = lowered
	return nil
}

func (b *statementBase) irBase() ir.StatementBase {
	return ir.StatementBase{NodeBase: ir.NodeBase{Loc: b.location}}
}
