package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inoxlang/scriptc/internal/caster"
	"github.com/inoxlang/scriptc/internal/diag"
	"github.com/inoxlang/scriptc/internal/ir"
	"github.com/inoxlang/scriptc/internal/types"
)

func TestVariablesAndDeclarations(t *testing.T) {
	snapshot := buildSnapshot(t, testWhitelist)

	t.Run("declared variable", func(t *testing.T) {
		class, err := compile(t, snapshot,
			NewDeclaration(loc(1, 1), "int", "x", NewNumeric(loc(1, 9), "1")),
			NewReturn(loc(2, 1), NewVariable(loc(2, 8), "x")),
		)
		require.NoError(t, err)
		require.Len(t, class.Statements, 2)

		declaration := class.Statements[0].(*ir.DeclarationNode)
		assert.Equal(t, "x", declaration.Variable)
		assert.Same(t, types.Int, declaration.VarType)
		assert.Equal(t, 0, declaration.Slot)

		ret := class.Statements[1].(*ir.ReturnNode)
		castNode := ret.Value.(*ir.CastNode)
		assert.Equal(t, caster.ToDynamic, castNode.Cast.Kind)

		load := castNode.Child.(*ir.LoadVariableNode)
		assert.Equal(t, "x", load.Variable)
		assert.Equal(t, 0, load.Slot)
		assert.Same(t, types.Int, load.ExpressionType())
	})

	t.Run("declaration without initializer", func(t *testing.T) {
		class, err := compile(t, snapshot, NewDeclaration(loc(1, 1), "def", "x", nil))
		require.NoError(t, err)
		assert.Nil(t, class.Statements[0].(*ir.DeclarationNode).Value)
	})

	t.Run("undefined variable", func(t *testing.T) {
		_, err := compile(t, snapshot, NewReturn(loc(1, 1), NewVariable(loc(1, 8), "x")))
		assertDiagnostic(t, err, diag.ResolutionError, "variable [x] is not defined")
	})

	t.Run("variable in statement position", func(t *testing.T) {
		_, err := compile(t, snapshot,
			NewDeclaration(loc(1, 1), "int", "x", nil),
			NewExpressionStatement(loc(2, 1), NewVariable(loc(2, 1), "x")),
		)
		assertDiagnostic(t, err, diag.UsageError, "not a statement: variable [x] not used")
	})

	t.Run("duplicate variable", func(t *testing.T) {
		_, err := compile(t, snapshot,
			NewDeclaration(loc(1, 1), "int", "x", nil),
			NewBlock(loc(2, 1), NewDeclaration(loc(2, 3), "long", "x", nil)),
		)
		assertDiagnostic(t, err, diag.UsageError, "variable [x] is already defined")
	})

	t.Run("initializer cannot refer to the declared variable", func(t *testing.T) {
		_, err := compile(t, snapshot, NewDeclaration(loc(1, 1), "def", "x", NewVariable(loc(1, 9), "x")))
		assertDiagnostic(t, err, diag.ResolutionError, "variable [x] is not defined")
	})

	t.Run("block scope", func(t *testing.T) {
		_, err := compile(t, snapshot,
			NewBlock(loc(1, 1), NewDeclaration(loc(1, 3), "int", "x", nil)),
			NewReturn(loc(2, 1), NewVariable(loc(2, 8), "x")),
		)
		assertDiagnostic(t, err, diag.ResolutionError, "variable [x] is not defined")
	})

	t.Run("slots are unique in the script", func(t *testing.T) {
		source := NewSource(loc(1, 1),
			NewBlock(loc(1, 1), NewDeclaration(loc(1, 3), "int", "a", nil)),
			NewBlock(loc(2, 1), NewDeclaration(loc(2, 3), "int", "a", nil)),
			NewDeclaration(loc(3, 1), "int", "b", nil),
		)
		require.NoError(t, source.Analyze(newTestRoot(snapshot)))
		assert.Equal(t, 3, source.SlotCount())

		builder := ir.NewBuilder("test", "id", source.Loc)
		require.NoError(t, source.Write(builder))
		class := builder.Finish()

		second := class.Statements[1].(*ir.BlockNode).Statements[0].(*ir.DeclarationNode)
		assert.Equal(t, 1, second.Slot)
		assert.Equal(t, 2, class.Statements[2].(*ir.DeclarationNode).Slot)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := compile(t, snapshot, NewDeclaration(loc(1, 1), "Circl", "c", nil))
		assertDiagnostic(t, err, diag.ResolutionError, "type [Circl] not found, did you mean [Circle] ?")
	})

	t.Run("void variable", func(t *testing.T) {
		_, err := compile(t, snapshot, NewDeclaration(loc(1, 1), "void", "v", nil))
		assertDiagnostic(t, err, diag.UsageError, diag.VOID_VARIABLE)
	})

	t.Run("narrowing requires an explicit cast", func(t *testing.T) {
		_, err := compile(t, snapshot, NewDeclaration(loc(1, 1), "int", "x", NewNumeric(loc(1, 9), "1.5")))
		assertDiagnostic(t, err, diag.ConversionError, "cannot implicitly cast [double] to [int]; an explicit cast is required")
	})

	t.Run("missing statement", func(t *testing.T) {
		_, err := compile(t, snapshot, nil)
		assertDiagnostic(t, err, diag.StructuralInvariantError, diag.MISSING_CHILD_NODE)
	})
}

func TestNewObject(t *testing.T) {
	snapshot := buildSnapshot(t, testWhitelist)

	t.Run("constructor with a widened argument", func(t *testing.T) {
		class, err := compile(t, snapshot,
			NewDeclaration(loc(1, 1), "Shape", "s", NewNewObject(loc(1, 11), "Circle", NewNumeric(loc(1, 22), "1"))),
		)
		require.NoError(t, err)

		declaration := class.Statements[0].(*ir.DeclarationNode)
		upcast := declaration.Value.(*ir.CastNode)
		assert.Equal(t, caster.Upcast, upcast.Cast.Kind)

		newObject := upcast.Child.(*ir.NewObjectNode)
		assert.Equal(t, "[Circle, <init>/1]", newObject.Constructor.String())
		assert.True(t, newObject.Read)
		require.Len(t, newObject.Arguments, 1)

		widen := newObject.Arguments[0].(*ir.CastNode)
		assert.Equal(t, caster.Widen, widen.Cast.Kind)
		assert.Same(t, types.Double, widen.ExpressionType())
	})

	t.Run("statement position", func(t *testing.T) {
		class, err := compile(t, snapshot,
			NewExpressionStatement(loc(1, 1), NewNewObject(loc(1, 1), "Circle", NewNumeric(loc(1, 12), "1"))),
		)
		require.NoError(t, err)

		stmt := class.Statements[0].(*ir.StatementExpressionNode)
		assert.False(t, stmt.Expression.(*ir.NewObjectNode).Read)
	})

	t.Run("no constructor with this arity", func(t *testing.T) {
		_, err := compile(t, snapshot, NewExpressionStatement(loc(1, 1), NewNewObject(loc(1, 1), "Circle")))
		assertDiagnostic(t, err, diag.ResolutionError, "constructor [Circle, <init>/0] not found")
	})

	t.Run("primitive type", func(t *testing.T) {
		_, err := compile(t, snapshot, NewExpressionStatement(loc(1, 1), NewNewObject(loc(1, 1), "int")))
		assertDiagnostic(t, err, diag.ResolutionError, "constructor [int, <init>/0] not found")
	})
}

func TestCall(t *testing.T) {
	snapshot := buildSnapshot(t, testWhitelist)

	t.Run("inherited method", func(t *testing.T) {
		class, err := compile(t, snapshot,
			NewDeclaration(loc(1, 1), "Circle", "c", NewNewObject(loc(1, 12), "Circle", NewNumeric(loc(1, 23), "2"))),
			NewReturn(loc(2, 1), NewCall(loc(2, 8), NewVariable(loc(2, 8), "c"), "area")),
		)
		require.NoError(t, err)

		ret := class.Statements[1].(*ir.ReturnNode)
		toDef := ret.Value.(*ir.CastNode)
		assert.Same(t, types.Double, toDef.Cast.Original)

		invoke := toDef.Child.(*ir.InvokeMethodNode)
		assert.Equal(t, "Shape", invoke.Method.Owner.Name())
		assert.Equal(t, "area/0", invoke.Method.Key())
		assert.IsType(t, (*ir.LoadVariableNode)(nil), invoke.Receiver)
	})

	t.Run("method of Object called on a string", func(t *testing.T) {
		class, err := compile(t, snapshot,
			NewReturn(loc(1, 1), NewCall(loc(1, 8), NewString(loc(1, 8), "a"), "toString")),
		)
		require.NoError(t, err)

		invoke := class.Statements[0].(*ir.ReturnNode).Value.(*ir.CastNode).Child.(*ir.InvokeMethodNode)
		assert.Equal(t, "[Object, toString/0]", invoke.Method.String())
		assert.Same(t, types.String, invoke.ExpressionType())
	})

	t.Run("dynamic receiver", func(t *testing.T) {
		resolver := newRecordingResolver(t, testWhitelist)

		class, err := compile(t, resolver,
			NewDeclaration(loc(1, 1), "def", "d", NewNewObject(loc(1, 9), "Circle", NewNumeric(loc(1, 20), "2"))),
			NewReturn(loc(2, 1), NewCall(loc(2, 8), NewVariable(loc(2, 8), "d"), "whatever", NewString(loc(2, 19), "x"))),
		)
		require.NoError(t, err)

		ret := class.Statements[1].(*ir.ReturnNode)
		invoke, ok := ret.Value.(*ir.DynamicInvokeNode)
		require.True(t, ok)
		assert.Equal(t, "whatever", invoke.MethodName)
		assert.Same(t, types.Def, invoke.ExpressionType())

		require.Len(t, invoke.Arguments, 1)
		assert.Equal(t, caster.ToDynamic, invoke.Arguments[0].(*ir.CastNode).Cast.Kind)

		assert.NotContains(t, resolver.lookups, "method def.whatever")
	})

	t.Run("primitive receiver", func(t *testing.T) {
		class, err := compile(t, snapshot,
			NewReturn(loc(1, 1), NewCall(loc(1, 8), NewNumeric(loc(1, 8), "1"), "toString")),
		)
		require.NoError(t, err)

		ret := class.Statements[0].(*ir.ReturnNode)
		invoke := ret.Value.(*ir.CastNode).Child.(*ir.InvokeMethodNode)
		assert.Equal(t, "[Object, toString/0]", invoke.Method.String())

		box := invoke.Receiver.(*ir.CastNode)
		assert.Equal(t, caster.Box, box.Cast.Kind)
		assert.Same(t, types.IntBox, box.ExpressionType())
	})

	t.Run("unknown method", func(t *testing.T) {
		_, err := compile(t, snapshot,
			NewDeclaration(loc(1, 1), "Circle", "c", nil),
			NewReturn(loc(2, 1), NewCall(loc(2, 8), NewVariable(loc(2, 8), "c"), "toStrin")),
		)
		assertDiagnostic(t, err, diag.ResolutionError, "method [Circle, toStrin/0] not found, did you mean [toString/0] ?")
	})

	t.Run("void method in a reading position", func(t *testing.T) {
		_, err := compile(t, snapshot,
			NewDeclaration(loc(1, 1), "def", "x", NewCall(loc(1, 9), NewListInit(loc(1, 9)), "clear")),
		)
		assertDiagnostic(t, err, diag.UsageError, "cannot use the result of method [ArrayList, clear/0]: it returns void")
	})

	t.Run("void method as a statement", func(t *testing.T) {
		class, err := compile(t, snapshot,
			NewExpressionStatement(loc(1, 1), NewCall(loc(1, 1), NewListInit(loc(1, 1)), "clear")),
		)
		require.NoError(t, err)

		stmt := class.Statements[0].(*ir.StatementExpressionNode)
		invoke := stmt.Expression.(*ir.InvokeMethodNode)
		assert.Same(t, types.Void, invoke.ExpressionType())
	})

	t.Run("argument converted to the parameter type", func(t *testing.T) {
		class, err := compile(t, snapshot,
			NewDeclaration(loc(1, 1), "def", "m", NewMapInit(loc(1, 9), nil, nil)),
			NewReturn(loc(2, 1), NewCall(loc(2, 8), NewListInit(loc(2, 8)), "add", NewNumeric(loc(2, 18), "1"))),
		)
		require.NoError(t, err)

		ret := class.Statements[1].(*ir.ReturnNode)
		invoke := ret.Value.(*ir.CastNode).Child.(*ir.InvokeMethodNode)
		assert.Same(t, types.Boolean, invoke.ExpressionType())
		assert.Equal(t, caster.ToDynamic, invoke.Arguments[0].(*ir.CastNode).Cast.Kind)
	})

	t.Run("resolution is deterministic", func(t *testing.T) {
		class, err := compile(t, snapshot,
			NewExpressionStatement(loc(1, 1), NewCall(loc(1, 1), NewListInit(loc(1, 1)), "clear")),
			NewExpressionStatement(loc(2, 1), NewCall(loc(2, 1), NewListInit(loc(2, 1)), "clear")),
		)
		require.NoError(t, err)

		first := class.Statements[0].(*ir.StatementExpressionNode).Expression.(*ir.InvokeMethodNode)
		second := class.Statements[1].(*ir.StatementExpressionNode).Expression.(*ir.InvokeMethodNode)
		assert.Same(t, first.Method, second.Method)
	})
}

func TestStaticCall(t *testing.T) {
	snapshot := buildSnapshot(t, testWhitelist)

	t.Run("static method", func(t *testing.T) {
		class, err := compile(t, snapshot,
			NewDeclaration(loc(1, 1), "Circle", "c", NewStaticCall(loc(1, 12), "Circle", "unit")),
		)
		require.NoError(t, err)

		invoke := class.Statements[0].(*ir.DeclarationNode).Value.(*ir.InvokeStaticNode)
		assert.True(t, invoke.Method.Static)
		assert.Equal(t, "unit/0", invoke.Method.Key())
	})

	t.Run("unknown static method", func(t *testing.T) {
		_, err := compile(t, snapshot,
			NewDeclaration(loc(1, 1), "Circle", "c", NewStaticCall(loc(1, 12), "Circle", "units")),
		)
		assertDiagnostic(t, err, diag.ResolutionError, "static method [Circle, units/0] not found, did you mean [unit/0] ?")
	})

	t.Run("instance method called statically", func(t *testing.T) {
		_, err := compile(t, snapshot,
			NewDeclaration(loc(1, 1), "def", "a", NewStaticCall(loc(1, 9), "Circle", "area")),
		)
		assertDiagnostic(t, err, diag.ResolutionError, "static method [Circle, area/0] not found")
	})
}
