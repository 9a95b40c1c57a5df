package ir

import (
	"errors"

	"github.com/inoxlang/scriptc/internal/caster"
	"github.com/inoxlang/scriptc/internal/position"
)

var (
	ErrBuilderFinished = errors.New("IR builder already finished")
)

// A Builder accumulates the IR of a compilation unit. It performs no resolution and no validation: the
// nodes it receives come from successfully analyzed trees.
type Builder struct {
	class    *ClassNode
	finished bool
}

func NewBuilder(unit string, compileID string, loc position.Location) *Builder {
	return &Builder{
		class: &ClassNode{
			NodeBase:  NodeBase{Loc: loc},
			Unit:      unit,
			CompileID: compileID,
		},
	}
}

func (b *Builder) AddStatement(stmt StatementNode) error {
	if b.finished {
		return ErrBuilderFinished
	}
	b.class.Statements = append(b.class.Statements, stmt)
	return nil
}

// Finish returns the root of the IR tree, the builder cannot be used afterwards.
func (b *Builder) Finish() *ClassNode {
	if !b.finished {
		b.finished = true
		count := 0
		Walk(b.class, func(Node, int) bool {
			count++
			return true
		})
		b.class.NodeCount = count
	}
	return b.class
}

// WrapCast wraps child in a CastNode, it returns child if cast is nil or if child is already the result of
// the same conversion.
func WrapCast(child ExpressionNode, cast *caster.Cast) ExpressionNode {
	if cast == nil {
		return child
	}
	if castNode, ok := child.(*CastNode); ok && castNode.Cast == cast {
		return child
	}
	return &CastNode{
		ExpressionBase: ExpressionBase{
			NodeBase: NodeBase{Loc: child.Location()},
			Type:     cast.Target,
		},
		Child: child,
		Cast:  cast,
	}
}

// Walk calls fn for n and its descendants in depth-first order, children are skipped if fn returns false.
func Walk(n Node, fn func(n Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n Node, depth int, fn func(n Node, depth int) bool) {
	if !fn(n, depth) {
		return
	}
	for _, child := range n.Children() {
		walk(child, depth+1, fn)
	}
}
