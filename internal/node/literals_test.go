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

func TestNumeric(t *testing.T) {
	snapshot := buildSnapshot(t, testWhitelist)

	testCases := []struct {
		text     string
		value    any
		expected *types.Type
	}{
		{"1", int32(1), types.Int},
		{"-7", int32(-7), types.Int},
		{"0x1F", int32(31), types.Int},
		{"2L", int64(2), types.Long},
		{"0xffl", int64(255), types.Long},
		{"1.5", 1.5, types.Double},
		{"1e3", 1000.0, types.Double},
		{"1.5f", float32(1.5), types.Float},
		{"3d", 3.0, types.Double},
	}

	for _, testCase := range testCases {
		t.Run(testCase.text, func(t *testing.T) {
			n := NewNumeric(loc(1, 1), testCase.text)
			output, err := n.Analyze(newTestRoot(snapshot), NewFunctionScope(), Input{Read: true})
			require.NoError(t, err)

			assert.Same(t, testCase.expected, output.Actual)
			assert.Equal(t, testCase.value, n.Value())
		})
	}

	t.Run("int overflow", func(t *testing.T) {
		_, err := NewNumeric(loc(1, 1), "2147483648").Analyze(newTestRoot(snapshot), NewFunctionScope(), Input{Read: true})
		assertDiagnostic(t, err, diag.UsageError, "invalid int constant [2147483648]")
	})

	t.Run("invalid float", func(t *testing.T) {
		_, err := NewNumeric(loc(1, 1), "1.2.3f").Analyze(newTestRoot(snapshot), NewFunctionScope(), Input{Read: true})
		assertDiagnostic(t, err, diag.UsageError, "invalid float constant [1.2.3f]")
	})

	t.Run("invalid syntax", func(t *testing.T) {
		invalidTexts := []struct {
			text    string
			message string
		}{
			{"infd", "invalid double constant [infd]"},
			{"infinityd", "invalid double constant [infinityd]"},
			{"nanf", "invalid float constant [nanf]"},
			{"1e400d", "invalid double constant [1e400d]"},
			{"1e", "invalid double constant [1e]"},
			{"0x-1", "invalid int constant [0x-1]"},
			{"0x+1", "invalid int constant [0x+1]"},
			{"0x", "invalid int constant [0x]"},
			{"+1", "invalid int constant [+1]"},
			{"1_000", "invalid int constant [1_000]"},
			{"0x-1l", "invalid long constant [0x-1l]"},
			{"1.5l", "invalid long constant [1.5l]"},
		}

		for _, testCase := range invalidTexts {
			_, err := NewNumeric(loc(1, 1), testCase.text).Analyze(newTestRoot(snapshot), NewFunctionScope(), Input{Read: true})
			assertDiagnostic(t, err, diag.UsageError, testCase.message)
		}
	})

	t.Run("signed exponent", func(t *testing.T) {
		n := NewNumeric(loc(1, 1), "2.5e-1")
		require.NoError(t, analyzeExpr(newTestRoot(snapshot), n, Input{Read: true}))
		assert.Equal(t, 0.25, n.Value())
	})

	t.Run("constant folded to the expected byte type", func(t *testing.T) {
		n := NewNumeric(loc(1, 1), "100")
		require.NoError(t, analyzeExpr(newTestRoot(snapshot), n, Input{Expected: types.Byte, Read: true}))

		assert.Same(t, types.Byte, n.Actual())
		assert.Equal(t, int8(100), n.Value())
		assert.Nil(t, n.Conversion())
	})

	t.Run("constant too large for the expected byte type", func(t *testing.T) {
		n := NewNumeric(loc(1, 1), "300")
		err := analyzeExpr(newTestRoot(snapshot), n, Input{Expected: types.Byte, Read: true})
		assertDiagnostic(t, err, diag.ConversionError, "cannot implicitly cast [int] to [byte]; an explicit cast is required")
	})

	t.Run("constant folded to the expected char type", func(t *testing.T) {
		n := NewNumeric(loc(1, 1), "65")
		require.NoError(t, analyzeExpr(newTestRoot(snapshot), n, Input{Expected: types.Char, Read: true}))
		assert.Equal(t, uint16(65), n.Value())
	})

	t.Run("widened to the expected type", func(t *testing.T) {
		n := NewNumeric(loc(1, 1), "1")
		require.NoError(t, analyzeExpr(newTestRoot(snapshot), n, Input{Expected: types.Double, Read: true}))

		castNode, ok := writeExpr(t, n).(*ir.CastNode)
		require.True(t, ok)
		assert.Equal(t, caster.Widen, castNode.Cast.Kind)
		assert.Same(t, types.Double, castNode.ExpressionType())
	})

	t.Run("statement position", func(t *testing.T) {
		_, err := NewNumeric(loc(1, 1), "1").Analyze(newTestRoot(snapshot), NewFunctionScope(), Input{Read: false})
		assertDiagnostic(t, err, diag.UsageError, "not a statement: numeric constant not used")
	})
}

func TestNull(t *testing.T) {
	snapshot := buildSnapshot(t, testWhitelist)

	t.Run("reference expected type", func(t *testing.T) {
		n := NewNull(loc(1, 1))
		require.NoError(t, analyzeExpr(newTestRoot(snapshot), n, Input{Expected: types.String, Read: true}))
		assert.Same(t, types.String, n.Actual())
		assert.Nil(t, n.Conversion())
	})

	t.Run("primitive expected type", func(t *testing.T) {
		err := analyzeExpr(newTestRoot(snapshot), NewNull(loc(1, 1)), Input{Expected: types.Int, Read: true})
		assertDiagnostic(t, err, diag.ConversionError, "cannot cast null to a primitive type")
	})

	t.Run("no expected type", func(t *testing.T) {
		n := NewNull(loc(1, 1))
		require.NoError(t, analyzeExpr(newTestRoot(snapshot), n, Input{Read: true}))
		assert.Same(t, types.Object, n.Actual())
	})
}

func TestBooleanAndString(t *testing.T) {
	snapshot := buildSnapshot(t, testWhitelist)

	t.Run("boolean to int", func(t *testing.T) {
		err := analyzeExpr(newTestRoot(snapshot), NewBoolean(loc(1, 1), true), Input{Expected: types.Int, Read: true, Explicit: true})
		assertDiagnostic(t, err, diag.ConversionError, "cannot cast [boolean] to [int]")
	})

	t.Run("boolean boxed for an internal conversion", func(t *testing.T) {
		b := NewBoolean(loc(1, 1), true)
		require.NoError(t, analyzeExpr(newTestRoot(snapshot), b, Input{Expected: types.BooleanBox, Read: true, Internal: true}))
		assert.Equal(t, caster.Box, b.Conversion().Kind)
	})

	t.Run("boolean not boxed implicitly", func(t *testing.T) {
		err := analyzeExpr(newTestRoot(snapshot), NewBoolean(loc(1, 1), true), Input{Expected: types.BooleanBox, Read: true})
		assertDiagnostic(t, err, diag.ConversionError, "cannot implicitly cast [boolean] to [Boolean]; an explicit cast is required")
	})

	t.Run("string constant", func(t *testing.T) {
		s := NewString(loc(1, 1), "hello")
		require.NoError(t, analyzeExpr(newTestRoot(snapshot), s, Input{Read: true}))

		constant, ok := writeExpr(t, s).(*ir.ConstantNode)
		require.True(t, ok)
		assert.Equal(t, "hello", constant.Value)
		assert.Same(t, types.String, constant.ExpressionType())
	})
}
