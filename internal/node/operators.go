package node

import (
	"github.com/inoxlang/scriptc/internal/caster"
	"github.com/inoxlang/scriptc/internal/diag"
	"github.com/inoxlang/scriptc/internal/ir"
	"github.com/inoxlang/scriptc/internal/position"
	"github.com/inoxlang/scriptc/internal/types"
)

// Binary is an arithmetic operation, + is also the string concatenation when an operand is a String.
type Binary struct {
	expressionBase
	Operator    string
	Left, Right Expression

	concatenation bool
	leftCast      *caster.Cast
	rightCast     *caster.Cast
}

func NewBinary(loc position.Location, operator string, left, right Expression) *Binary {
	return &Binary{expressionBase: expressionBase{location: loc}, Operator: operator, Left: left, Right: right}
}

func (n *Binary) Analyze(root *ScriptRoot, scope *Scope, input Input) (Output, error) {
	if err := n.beginAnalysis(input); err != nil {
		return Output{}, err
	}

	switch ir.Operation(n.Operator) {
	case ir.Add, ir.Sub, ir.Mul, ir.Div, ir.Rem:
	default:
		return Output{}, diag.Structural(n.location, diag.FmtUnknownOperator(n.Operator))
	}

	if n.Left == nil || n.Right == nil {
		return Output{}, diag.Structural(n.location, diag.MISSING_CHILD_NODE)
	}

	if err := n.requireRead(diag.FmtNotAStatement("binary expression")); err != nil {
		return Output{}, err
	}

	leftOutput, err := n.Left.Analyze(root, scope, Input{Read: true})
	if err != nil {
		return Output{}, err
	}

	rightOutput, err := n.Right.Analyze(root, scope, Input{Read: true})
	if err != nil {
		return Output{}, err
	}

	left, right := leftOutput.Actual, rightOutput.Actual
	if left.IsVoid() || right.IsVoid() {
		return Output{}, diag.Usage(n.location, diag.FmtVoidValueUsed("an operand of ["+n.Operator+"]"))
	}

	if ir.Operation(n.Operator) == ir.Add && (left == types.String || right == types.String) {
		n.concatenation = true
		return n.finishAnalysis(root, types.String), nil
	}

	promoted := caster.PromoteNumeric(left, right)
	if promoted == nil {
		return Output{}, diag.Conversion(n.location, diag.FmtCannotApplyOperator(n.Operator, left, right))
	}

	//the operands are converted to the promoted type, unboxing is allowed.
	n.leftCast, err = caster.LegalCast(n.Left.Location(), left, promoted, false, true, root.resolver)
	if err != nil {
		return Output{}, err
	}

	n.rightCast, err = caster.LegalCast(n.Right.Location(), right, promoted, false, true, root.resolver)
	if err != nil {
		return Output{}, err
	}

	return n.finishAnalysis(root, promoted), nil
}

func (n *Binary) Write(b *ir.Builder) (ir.ExpressionNode, error) {
	if err := n.beginWrite(); err != nil {
		return nil, err
	}

	left, err := writeChild(b, n.Left)
	if err != nil {
		return nil, err
	}

	right, err := writeChild(b, n.Right)
	if err != nil {
		return nil, err
	}

	return &ir.BinaryMathNode{
		ExpressionBase: n.irBase(),
		Operation:      ir.Operation(n.Operator),
		Left:           ir.WrapCast(left, n.leftCast),
		Right:          ir.WrapCast(right, n.rightCast),
		Concatenation:  n.concatenation,
	}, nil
}

func (n *Binary) String() string {
	return singleLineToString("Binary", nodeToString(n.Left), n.Operator, nodeToString(n.Right))
}

// Explicit is a cast written by the author: (T) expr. It allows narrowing conversions and downcasts.
type Explicit struct {
	expressionBase
	TypeName string
	Child    Expression
}

func NewExplicit(loc position.Location, typeName string, child Expression) *Explicit {
	return &Explicit{expressionBase: expressionBase{location: loc}, TypeName: typeName, Child: child}
}

func (n *Explicit) Analyze(root *ScriptRoot, scope *Scope, input Input) (Output, error) {
	if err := n.beginAnalysis(input); err != nil {
		return Output{}, err
	}

	if err := n.requireRead(diag.FmtNotAStatement("cast")); err != nil {
		return Output{}, err
	}

	t, err := root.resolveType(n.location, n.TypeName)
	if err != nil {
		return Output{}, err
	}

	if err := analyzeChild(root, scope, n.location, n.Child, Input{Expected: t, Read: true, Explicit: true}); err != nil {
		return Output{}, err
	}

	return n.finishAnalysis(root, t), nil
}

// Write returns the converted IR of the child, an explicit cast has no IR node of its own.
func (n *Explicit) Write(b *ir.Builder) (ir.ExpressionNode, error) {
	if err := n.beginWrite(); err != nil {
		return nil, err
	}
	return writeChild(b, n.Child)
}

func (n *Explicit) String() string {
	return singleLineToString("Explicit", n.TypeName, nodeToString(n.Child))
}
