package ir

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
)

// Dump serializes an IR tree to indented JSON.
func Dump(n Node) ([]byte, error) {
	return json.MarshalIndent(toMap(n), "", "  ")
}

func toMap(n Node) map[string]any {
	m := map[string]any{
		"node":     n.Name(),
		"location": n.Location(),
	}

	if expr, ok := n.(ExpressionNode); ok {
		m["type"] = expr.ExpressionType().Name()
	}

	for _, attr := range n.attributes() {
		m[attr.key] = attr.value
	}

	if children := n.Children(); len(children) > 0 {
		list := make([]map[string]any, 0, len(children))
		for _, child := range children {
			list = append(list, toMap(child))
		}
		m["children"] = list
	}
	return m
}

// Print writes an indented, human readable rendering of an IR tree.
func Print(w io.Writer, n Node) error {
	_, err := w.Write(render(n))
	return err
}

// Sprint returns the result of Print as a string.
func Sprint(n Node) string {
	return string(render(n))
}

func render(n Node) []byte {
	buf := bytes.NewBuffer(nil)

	Walk(n, func(n Node, depth int) bool {
		buf.WriteString(strings.Repeat("  ", depth))
		buf.WriteString(n.Name())

		if expr, ok := n.(ExpressionNode); ok {
			buf.WriteByte(' ')
			buf.WriteString(expr.ExpressionType().Name())
		}

		for _, attr := range n.attributes() {
			switch v := attr.value.(type) {
			case string:
				fmt.Fprintf(buf, " %s=%q", attr.key, v)
			default:
				fmt.Fprintf(buf, " %s=%v", attr.key, v)
			}
		}
		buf.WriteByte('\n')
		return true
	})

	return buf.Bytes()
}
