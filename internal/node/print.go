package node

import (
	"strings"
)

// singleLineToString renders a node as an s-expression: (Name sub1 sub2 ...).
func singleLineToString(name string, subs ...any) string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(name)

	for _, sub := range subs {
		var s string
		switch v := sub.(type) {
		case string:
			s = v
		case interface{ String() string }:
			s = v.String()
		case []Expression:
			if len(v) == 0 {
				continue
			}
			s = argsToString(v)
		case []Statement:
			parts := make([]string, 0, len(v))
			for _, stmt := range v {
				if stmt == nil {
					parts = append(parts, "<missing>")
					continue
				}
				parts = append(parts, stmt.String())
			}
			s = strings.Join(parts, " ")
		}
		if s == "" {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(s)
	}

	b.WriteByte(')')
	return b.String()
}

func argsToString(args []Expression) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, nodeToString(arg))
	}
	return "(Args " + strings.Join(parts, " ") + ")"
}

// pairwiseToString renders the entries of a map literal, extra keys or values are rendered alone.
func pairwiseToString(keys, values []Expression) string {
	if len(keys) == 0 && len(values) == 0 {
		return ""
	}

	var parts []string
	for i := 0; i < max(len(keys), len(values)); i++ {
		switch {
		case i < len(keys) && i < len(values):
			parts = append(parts, "(Pair "+nodeToString(keys[i])+" "+nodeToString(values[i])+")")
		case i < len(keys):
			parts = append(parts, nodeToString(keys[i]))
		default:
			parts = append(parts, nodeToString(values[i]))
		}
	}
	return "(Args " + strings.Join(parts, " ") + ")"
}

func nodeToString(e Expression) string {
	if e == nil {
		return "<missing>"
	}
	return e.String()
}
