package node

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"

	"github.com/inoxlang/scriptc/internal/position"
)

const (
	MAX_TREE_DEPTH = 500
)

var (
	ErrTreeTooDeep = errors.New("tree is too deep")
)

// serializedNode is the format of the trees produced by the parser: every node is an object with a type, a
// location and the fields of its kind. The same format is accepted in YAML.
type serializedNode struct {
	Type   string `json:"type"`
	Source string `json:"source,omitempty"`
	Line   int32  `json:"line"`
	Column int32  `json:"column"`
	Offset int32  `json:"offset"`

	Value    json.RawMessage `json:"value,omitempty"`
	Text     string          `json:"text,omitempty"`
	Name     string          `json:"name,omitempty"`
	Class    string          `json:"class,omitempty"`
	Method   string          `json:"method,omitempty"`
	Operator string          `json:"operator,omitempty"`

	Prefix     *serializedNode   `json:"prefix,omitempty"`
	Child      *serializedNode   `json:"child,omitempty"`
	Left       *serializedNode   `json:"left,omitempty"`
	Right      *serializedNode   `json:"right,omitempty"`
	Expression *serializedNode   `json:"expression,omitempty"`
	Args       []*serializedNode `json:"args,omitempty"`
	Keys       []*serializedNode `json:"keys,omitempty"`
	Values     []*serializedNode `json:"values,omitempty"`
	Statements []*serializedNode `json:"statements,omitempty"`
}

// Decode builds a tree from a serialized Source node, data is JSON or YAML. Decode only checks that the
// tree can be built, the structure of the nodes is checked during analysis.
func Decode(data []byte) (*Source, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("empty tree")
	}

	jsonData := trimmed
	if trimmed[0] != '{' {
		converted, err := yaml.YAMLToJSON(trimmed)
		if err != nil {
			return nil, fmt.Errorf("failed to convert YAML tree: %w", err)
		}
		jsonData = converted
	}

	var root serializedNode
	if err := json.Unmarshal(jsonData, &root); err != nil {
		return nil, fmt.Errorf("failed to decode tree: %w", err)
	}

	if root.Type != "Source" {
		return nil, fmt.Errorf("root of the tree should be a Source node, not %q", root.Type)
	}

	d := decoder{sourceName: root.Source}
	statements, err := d.statements(root.Statements, 1)
	if err != nil {
		return nil, err
	}
	return NewSource(d.location(&root), statements...), nil
}

type decoder struct {
	sourceName string
}

func (d decoder) location(n *serializedNode) position.Location {
	return position.Location{
		SourceName: d.sourceName,
		Line:       n.Line,
		Column:     n.Column,
		Offset:     n.Offset,
	}
}

func (d decoder) statements(list []*serializedNode, depth int) ([]Statement, error) {
	statements := make([]Statement, 0, len(list))
	for _, n := range list {
		stmt, err := d.statement(n, depth)
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	return statements, nil
}

func (d decoder) statement(n *serializedNode, depth int) (Statement, error) {
	if n == nil {
		//missing statements are reported during analysis.
		return nil, nil
	}
	if depth > MAX_TREE_DEPTH {
		return nil, ErrTreeTooDeep
	}
	loc := d.location(n)

	switch n.Type {
	case "ExpressionStatement":
		expr, err := d.expression(n.Expression, depth+1)
		if err != nil {
			return nil, err
		}
		return NewExpressionStatement(loc, expr), nil
	case "Declaration":
		value, err := d.expressionValue(n, depth+1)
		if err != nil {
			return nil, err
		}
		return NewDeclaration(loc, n.Class, n.Name, value), nil
	case "Return":
		value, err := d.expressionValue(n, depth+1)
		if err != nil {
			return nil, err
		}
		return NewReturn(loc, value), nil
	case "Block":
		statements, err := d.statements(n.Statements, depth+1)
		if err != nil {
			return nil, err
		}
		return NewBlock(loc, statements...), nil
	default:
		return nil, fmt.Errorf("%s unknown statement type %q", loc, n.Type)
	}
}

// expressionValue decodes the value field of a node when it contains an expression.
func (d decoder) expressionValue(n *serializedNode, depth int) (Expression, error) {
	if len(n.Value) == 0 || string(n.Value) == "null" {
		return nil, nil
	}

	var value serializedNode
	if err := json.Unmarshal(n.Value, &value); err != nil {
		return nil, fmt.Errorf("%s invalid value of %s node: %w", d.location(n), n.Type, err)
	}
	return d.expression(&value, depth)
}

func (d decoder) expressions(list []*serializedNode, depth int) ([]Expression, error) {
	if list == nil {
		return nil, nil
	}

	expressions := make([]Expression, 0, len(list))
	for _, n := range list {
		expr, err := d.expression(n, depth)
		if err != nil {
			return nil, err
		}
		expressions = append(expressions, expr)
	}
	return expressions, nil
}

func (d decoder) expression(n *serializedNode, depth int) (Expression, error) {
	if n == nil {
		//missing children are reported during analysis.
		return nil, nil
	}
	if depth > MAX_TREE_DEPTH {
		return nil, ErrTreeTooDeep
	}
	loc := d.location(n)

	switch n.Type {
	case "String":
		var value string
		if err := json.Unmarshal(n.Value, &value); err != nil {
			return nil, fmt.Errorf("%s invalid value of String node: %w", loc, err)
		}
		return NewString(loc, value), nil
	case "Numeric":
		return NewNumeric(loc, n.Text), nil
	case "Boolean":
		var value bool
		if err := json.Unmarshal(n.Value, &value); err != nil {
			return nil, fmt.Errorf("%s invalid value of Boolean node: %w", loc, err)
		}
		return NewBoolean(loc, value), nil
	case "Null":
		return NewNull(loc), nil
	case "Variable":
		return NewVariable(loc, n.Name), nil
	case "NewObject":
		args, err := d.expressions(n.Args, depth+1)
		if err != nil {
			return nil, err
		}
		return NewNewObject(loc, n.Class, args...), nil
	case "Call":
		prefix, err := d.expression(n.Prefix, depth+1)
		if err != nil {
			return nil, err
		}
		args, err := d.expressions(n.Args, depth+1)
		if err != nil {
			return nil, err
		}
		return NewCall(loc, prefix, n.Method, args...), nil
	case "StaticCall":
		args, err := d.expressions(n.Args, depth+1)
		if err != nil {
			return nil, err
		}
		return NewStaticCall(loc, n.Class, n.Method, args...), nil
	case "MapInit":
		keys, err := d.expressions(n.Keys, depth+1)
		if err != nil {
			return nil, err
		}
		values, err := d.expressions(n.Values, depth+1)
		if err != nil {
			return nil, err
		}
		return NewMapInit(loc, keys, values), nil
	case "ListInit":
		values, err := d.expressions(n.Values, depth+1)
		if err != nil {
			return nil, err
		}
		return NewListInit(loc, values...), nil
	case "Binary":
		left, err := d.expression(n.Left, depth+1)
		if err != nil {
			return nil, err
		}
		right, err := d.expression(n.Right, depth+1)
		if err != nil {
			return nil, err
		}
		return NewBinary(loc, n.Operator, left, right), nil
	case "Explicit":
		child, err := d.expression(n.Child, depth+1)
		if err != nil {
			return nil, err
		}
		return NewExplicit(loc, n.Class, child), nil
	default:
		return nil, fmt.Errorf("%s unknown expression type %q", loc, n.Type)
	}
}
