// Package ir contains the intermediate representation handed to the back end. An IR tree mirrors the
// analyzed AST but every type is resolved and every member reference is bound to a whitelisted handle.
package ir

import (
	"github.com/inoxlang/scriptc/internal/caster"
	"github.com/inoxlang/scriptc/internal/lookup"
	"github.com/inoxlang/scriptc/internal/position"
	"github.com/inoxlang/scriptc/internal/types"
)

type Node interface {
	Location() position.Location
	Name() string
	Children() []Node
	attributes() []attribute
}

type ExpressionNode interface {
	Node
	ExpressionType() *types.Type
	expression()
}

type StatementNode interface {
	Node
	statement()
}

type attribute struct {
	key   string
	value any
}

type NodeBase struct {
	Loc position.Location
}

func (b *NodeBase) Location() position.Location {
	return b.Loc
}

type ExpressionBase struct {
	NodeBase
	Type *types.Type
}

func (b *ExpressionBase) ExpressionType() *types.Type {
	return b.Type
}

func (*ExpressionBase) expression() {}

type StatementBase struct {
	NodeBase
}

func (*StatementBase) statement() {}

func expressionChildren(list []ExpressionNode) []Node {
	children := make([]Node, 0, len(list))
	for _, e := range list {
		children = append(children, e)
	}
	return children
}

// ==== expressions ====

// ConstantNode is a literal value, Value is a string, bool, int8, int16, uint16 (char), int32, int64, float32
// or float64 depending on the type.
type ConstantNode struct {
	ExpressionBase
	Value any
}

func (*ConstantNode) Name() string { return "Constant" }

func (*ConstantNode) Children() []Node { return nil }

func (n *ConstantNode) attributes() []attribute {
	return []attribute{{"value", n.Value}}
}

type NullNode struct {
	ExpressionBase
}

func (*NullNode) Name() string { return "Null" }

func (*NullNode) Children() []Node { return nil }

func (*NullNode) attributes() []attribute { return nil }

type LoadVariableNode struct {
	ExpressionBase
	Variable string
	Slot     int
}

func (*LoadVariableNode) Name() string { return "LoadVariable" }

func (*LoadVariableNode) Children() []Node { return nil }

func (n *LoadVariableNode) attributes() []attribute {
	return []attribute{{"variable", n.Variable}, {"slot", n.Slot}}
}

// CastNode converts the value of its child, the expression type is the target of the cast.
type CastNode struct {
	ExpressionBase
	Child ExpressionNode
	Cast  *caster.Cast
}

func (*CastNode) Name() string { return "Cast" }

func (n *CastNode) Children() []Node { return []Node{n.Child} }

func (n *CastNode) attributes() []attribute {
	return []attribute{{"kind", n.Cast.Kind.String()}, {"from", n.Cast.Original.Name()}, {"explicit", n.Cast.Explicit}}
}

type NewObjectNode struct {
	ExpressionBase
	Constructor *lookup.Constructor
	Arguments   []ExpressionNode
	Read        bool //false if the created object is discarded
}

func (*NewObjectNode) Name() string { return "NewObject" }

func (n *NewObjectNode) Children() []Node { return expressionChildren(n.Arguments) }

func (n *NewObjectNode) attributes() []attribute {
	return []attribute{{"constructor", n.Constructor.String()}, {"read", n.Read}}
}

type InvokeMethodNode struct {
	ExpressionBase
	Receiver  ExpressionNode
	Method    *lookup.Method
	Arguments []ExpressionNode
}

func (*InvokeMethodNode) Name() string { return "InvokeMethod" }

func (n *InvokeMethodNode) Children() []Node {
	return append([]Node{n.Receiver}, expressionChildren(n.Arguments)...)
}

func (n *InvokeMethodNode) attributes() []attribute {
	return []attribute{{"method", n.Method.String()}}
}

type InvokeStaticNode struct {
	ExpressionBase
	Method    *lookup.Method
	Arguments []ExpressionNode
}

func (*InvokeStaticNode) Name() string { return "InvokeStatic" }

func (n *InvokeStaticNode) Children() []Node { return expressionChildren(n.Arguments) }

func (n *InvokeStaticNode) attributes() []attribute {
	return []attribute{{"method", n.Method.String()}}
}

// DynamicInvokeNode calls a method on a def receiver: the runtime resolves MethodName/Arity against the
// whitelist using the type tag of the receiver.
type DynamicInvokeNode struct {
	ExpressionBase
	Receiver   ExpressionNode
	MethodName string
	Arguments  []ExpressionNode
}

func (*DynamicInvokeNode) Name() string { return "DynamicInvoke" }

func (n *DynamicInvokeNode) Children() []Node {
	return append([]Node{n.Receiver}, expressionChildren(n.Arguments)...)
}

func (n *DynamicInvokeNode) attributes() []attribute {
	return []attribute{{"method", n.MethodName}, {"arity", len(n.Arguments)}}
}

type MapInitializationNode struct {
	ExpressionBase
	Constructor *lookup.Constructor
	Method      *lookup.Method
	Keys        []ExpressionNode
	Values      []ExpressionNode
}

func (n *MapInitializationNode) AddArgumentNode(key, value ExpressionNode) {
	n.Keys = append(n.Keys, key)
	n.Values = append(n.Values, value)
}

func (n *MapInitializationNode) PairCount() int {
	return len(n.Keys)
}

func (*MapInitializationNode) Name() string { return "MapInitialization" }

// Children returns the keys and values interleaved, in pair order.
func (n *MapInitializationNode) Children() []Node {
	children := make([]Node, 0, 2*len(n.Keys))
	for i := range n.Keys {
		children = append(children, n.Keys[i], n.Values[i])
	}
	return children
}

func (n *MapInitializationNode) attributes() []attribute {
	return []attribute{{"constructor", n.Constructor.String()}, {"method", n.Method.String()}, {"pairs", len(n.Keys)}}
}

type ListInitializationNode struct {
	ExpressionBase
	Constructor *lookup.Constructor
	Method      *lookup.Method
	Values      []ExpressionNode
}

func (*ListInitializationNode) Name() string { return "ListInitialization" }

func (n *ListInitializationNode) Children() []Node { return expressionChildren(n.Values) }

func (n *ListInitializationNode) attributes() []attribute {
	return []attribute{{"constructor", n.Constructor.String()}, {"method", n.Method.String()}}
}

type Operation string

const (
	Add Operation = "+"
	Sub Operation = "-"
	Mul Operation = "*"
	Div Operation = "/"
	Rem Operation = "%"
)

type BinaryMathNode struct {
	ExpressionBase
	Operation     Operation
	Left, Right   ExpressionNode
	Concatenation bool //string concatenation, the operands are not converted
}

func (*BinaryMathNode) Name() string { return "BinaryMath" }

func (n *BinaryMathNode) Children() []Node { return []Node{n.Left, n.Right} }

func (n *BinaryMathNode) attributes() []attribute {
	return []attribute{{"operation", string(n.Operation)}, {"concatenation", n.Concatenation}}
}

// ==== statements ====

type StatementExpressionNode struct {
	StatementBase
	Expression ExpressionNode
}

func (*StatementExpressionNode) Name() string { return "StatementExpression" }

func (n *StatementExpressionNode) Children() []Node { return []Node{n.Expression} }

func (*StatementExpressionNode) attributes() []attribute { return nil }

type DeclarationNode struct {
	StatementBase
	Variable string
	VarType  *types.Type
	Slot     int
	Value    ExpressionNode //nil if there is no initializer
}

func (*DeclarationNode) Name() string { return "Declaration" }

func (n *DeclarationNode) Children() []Node {
	if n.Value == nil {
		return nil
	}
	return []Node{n.Value}
}

func (n *DeclarationNode) attributes() []attribute {
	return []attribute{{"variable", n.Variable}, {"type", n.VarType.Name()}, {"slot", n.Slot}}
}

type ReturnNode struct {
	StatementBase
	Value ExpressionNode //nil for a bare return
}

func (*ReturnNode) Name() string { return "Return" }

func (n *ReturnNode) Children() []Node {
	if n.Value == nil {
		return nil
	}
	return []Node{n.Value}
}

func (*ReturnNode) attributes() []attribute { return nil }

type BlockNode struct {
	StatementBase
	Statements []StatementNode
}

func (*BlockNode) Name() string { return "Block" }

func (n *BlockNode) Children() []Node {
	children := make([]Node, 0, len(n.Statements))
	for _, stmt := range n.Statements {
		children = append(children, stmt)
	}
	return children
}

func (*BlockNode) attributes() []attribute { return nil }

// ClassNode is the root of the IR tree of a compilation unit.
type ClassNode struct {
	NodeBase
	Unit       string
	CompileID  string
	Statements []StatementNode
	NodeCount  int
}

func (*ClassNode) Name() string { return "Class" }

func (n *ClassNode) Children() []Node {
	children := make([]Node, 0, len(n.Statements))
	for _, stmt := range n.Statements {
		children = append(children, stmt)
	}
	return children
}

func (n *ClassNode) attributes() []attribute {
	return []attribute{{"unit", n.Unit}, {"compile", n.CompileID}}
}
