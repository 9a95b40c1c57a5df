package diag

import (
	"fmt"
	"strings"
)

const (
	ILLEGAL_TREE_STRUCTURE      = "illegal tree structure"
	MUST_READ_FROM_MAP_INIT     = "must read from map initializer"
	MUST_READ_FROM_LIST_INIT    = "must read from list initializer"
	NODE_ANALYZED_TWICE         = "node analyzed twice"
	NODE_WRITTEN_BEFORE_ANALYZE = "node written before being analyzed"
	NODE_WRITTEN_TWICE          = "node written twice"
	CAST_BEFORE_ANALYZE         = "conversion computed before the node is analyzed"
	MISSING_CHILD_NODE          = "missing child node"
	CANNOT_CAST_NULL_TO_PRIM    = "cannot cast null to a primitive type"
	VOID_VARIABLE               = "cannot declare a variable of type [void]"
)

func FmtConstructorNotFound(typeName string, arity int) string {
	return fmt.Sprintf("constructor [%s, <init>/%d] not found", typeName, arity)
}

func FmtMethodNotFound(typeName string, name string, arity int) string {
	return fmt.Sprintf("method [%s, %s/%d] not found", typeName, name, arity)
}

func FmtStaticMethodNotFound(typeName string, name string, arity int) string {
	return fmt.Sprintf("static method [%s, %s/%d] not found", typeName, name, arity)
}

func FmtTypeNotFound(typeName string) string {
	return fmt.Sprintf("type [%s] not found", typeName)
}

func FmtVariableNotDefined(name string) string {
	return fmt.Sprintf("variable [%s] is not defined", name)
}

func FmtVariableAlreadyDefined(name string) string {
	return fmt.Sprintf("variable [%s] is already defined", name)
}

func FmtNotAStatement(what string) string {
	return fmt.Sprintf("not a statement: %s not used", what)
}

func FmtInvalidConstant(kind string, text string) string {
	return fmt.Sprintf("invalid %s constant [%s]", kind, text)
}

func FmtCannotCast(from, to fmt.Stringer) string {
	return fmt.Sprintf("cannot cast [%s] to [%s]", from, to)
}

func FmtExplicitCastRequired(from, to fmt.Stringer) string {
	return fmt.Sprintf("cannot implicitly cast [%s] to [%s]; an explicit cast is required", from, to)
}

func FmtVoidValueUsed(what string) string {
	return fmt.Sprintf("cannot use the result of %s: it returns void", what)
}

func FmtCannotApplyOperator(op string, left, right fmt.Stringer) string {
	return fmt.Sprintf("cannot apply [%s] to types [%s] and [%s]", op, left, right)
}

func FmtUnknownOperator(op string) string {
	return fmt.Sprintf("unknown operator [%s]", op)
}

// WithSuggestion appends a "did you mean" hint to msg, suggestion can be empty.
func WithSuggestion(msg string, suggestion string) string {
	if suggestion == "" {
		return msg
	}
	return msg + ", did you mean [" + strings.TrimSpace(suggestion) + "] ?"
}
