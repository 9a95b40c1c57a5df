package node

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inoxlang/scriptc/internal/diag"
	"github.com/inoxlang/scriptc/internal/ir"
	"github.com/inoxlang/scriptc/internal/position"
)

const mapTreeJSON = `{
	"type": "Source",
	"source": "map.script",
	"line": 1, "column": 1,
	"statements": [
		{
			"type": "Return", "line": 1, "column": 1,
			"value": {
				"type": "MapInit", "line": 1, "column": 8, "offset": 7,
				"keys": [
					{"type": "String", "line": 1, "column": 9, "offset": 8, "value": "a"},
					{"type": "String", "line": 1, "column": 17, "offset": 16, "value": "b"}
				],
				"values": [
					{"type": "Numeric", "line": 1, "column": 14, "offset": 13, "text": "1"},
					{"type": "Numeric", "line": 1, "column": 22, "offset": 21, "text": "2"}
				]
			}
		}
	]
}`

const callTreeYAML = `
type: Source
line: 1
column: 1
statements:
  - type: Declaration
    line: 1
    column: 1
    class: Circle
    name: c
    value:
      type: NewObject
      line: 1
      column: 12
      class: Circle
      args:
        - {type: Numeric, line: 1, column: 23, text: "2"}
  - type: Block
    line: 2
    column: 1
    statements:
      - type: ExpressionStatement
        line: 2
        column: 3
        expression:
          type: Call
          line: 2
          column: 3
          method: toString
          prefix: {type: Variable, line: 2, column: 3, name: c}
  - type: Return
    line: 3
    column: 1
    value:
      type: Binary
      line: 3
      column: 8
      operator: "+"
      left: {type: Explicit, line: 3, column: 8, class: long, child: {type: Numeric, line: 3, column: 15, text: "1"}}
      right:
        type: ListInit
        line: 3
        column: 19
        values:
          - {type: Boolean, line: 3, column: 20, value: true}
          - {type: "Null", line: 3, column: 26}
`

func TestDecode(t *testing.T) {

	t.Run("JSON map tree", func(t *testing.T) {
		source, err := Decode([]byte(mapTreeJSON))
		require.NoError(t, err)
		assert.Equal(t, "(Source (Return (MapInit (Args (Pair (String 'a') (Numeric 1)) (Pair (String 'b') (Numeric 2))))))", source.String())

		ret := source.Statements[0].(*Return)
		m := ret.Value.(*MapInit)
		assert.Equal(t, position.Location{SourceName: "map.script", Line: 1, Column: 8, Offset: 7}, m.Location())

		root := newTestRoot(buildSnapshot(t, testWhitelist))
		require.NoError(t, source.Analyze(root))

		builder := ir.NewBuilder(root.Unit, root.CompileID, source.Loc)
		require.NoError(t, source.Write(builder))

		mapNode := builder.Finish().Statements[0].(*ir.ReturnNode).Value.(*ir.CastNode).Child.(*ir.MapInitializationNode)
		assert.Equal(t, 2, mapNode.PairCount())
	})

	t.Run("YAML tree", func(t *testing.T) {
		source, err := Decode([]byte(callTreeYAML))
		require.NoError(t, err)

		expected := "(Source " +
			"(Declaration Circle c (NewObject Circle (Args (Numeric 2)))) " +
			"(Block (ExpressionStatement (Call (Variable c) toString))) " +
			"(Return (Binary (Explicit long (Numeric 1)) + (ListInit (Args (Boolean true) (Null))))))"
		assert.Equal(t, expected, source.String())
	})

	t.Run("decoded tree with mismatched keys and values", func(t *testing.T) {
		tree := strings.Replace(mapTreeJSON, `{"type": "Numeric", "line": 1, "column": 22, "offset": 21, "text": "2"}`, "", 1)
		tree = strings.Replace(tree, `"text": "1"},`, `"text": "1"}`, 1)

		source, err := Decode([]byte(tree))
		require.NoError(t, err)

		err = source.Analyze(newTestRoot(buildSnapshot(t, emptyWhitelist)))
		assertDiagnostic(t, err, diag.StructuralInvariantError, "illegal tree structure")
	})

	t.Run("unknown expression type", func(t *testing.T) {
		_, err := Decode([]byte(`{"type": "Source", "statements": [{"type": "Return", "value": {"type": "Lambda", "line": 4, "column": 2}}]}`))
		if assert.Error(t, err) {
			assert.Contains(t, err.Error(), `unknown expression type "Lambda"`)
		}
	})

	t.Run("unknown statement type", func(t *testing.T) {
		_, err := Decode([]byte(`{"type": "Source", "statements": [{"type": "While"}]}`))
		if assert.Error(t, err) {
			assert.Contains(t, err.Error(), `unknown statement type "While"`)
		}
	})

	t.Run("root should be a source node", func(t *testing.T) {
		_, err := Decode([]byte(`{"type": "Return"}`))
		assert.Error(t, err)
	})

	t.Run("empty data", func(t *testing.T) {
		_, err := Decode([]byte("  \n"))
		assert.Error(t, err)
	})

	t.Run("missing child", func(t *testing.T) {
		source, err := Decode([]byte(`{"type": "Source", "statements": [{"type": "ExpressionStatement"}]}`))
		require.NoError(t, err)

		err = source.Analyze(newTestRoot(buildSnapshot(t, testWhitelist)))
		assertDiagnostic(t, err, diag.StructuralInvariantError, diag.MISSING_CHILD_NODE)
	})

	t.Run("too deep", func(t *testing.T) {
		expr := `{"type": "Numeric", "text": "1"}`
		for i := 0; i < MAX_TREE_DEPTH+1; i++ {
			expr = `{"type": "Explicit", "class": "int", "child": ` + expr + `}`
		}

		_, err := Decode([]byte(`{"type": "Source", "statements": [{"type": "ExpressionStatement", "expression": ` + expr + `}]}`))
		assert.ErrorIs(t, err, ErrTreeTooDeep)
	})
}
