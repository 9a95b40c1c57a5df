// Package types contains the type universe visible to scripts: the dynamic type def, the primitive types,
// their boxes and the reference types. Reference types other than the builtin ones are created from the
// whitelist description.
package types

import "fmt"

type Kind uint8

const (
	VoidKind Kind = iota
	BooleanKind
	ByteKind
	ShortKind
	CharKind
	IntKind
	LongKind
	FloatKind
	DoubleKind
	ReferenceKind
	DynamicKind
)

func (k Kind) String() string {
	switch k {
	case VoidKind:
		return "void"
	case BooleanKind:
		return "boolean"
	case ByteKind:
		return "byte"
	case ShortKind:
		return "short"
	case CharKind:
		return "char"
	case IntKind:
		return "int"
	case LongKind:
		return "long"
	case FloatKind:
		return "float"
	case DoubleKind:
		return "double"
	case ReferenceKind:
		return "reference"
	case DynamicKind:
		return "def"
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// A Type is compared by identity: two *Type values denote the same type only if they are the same pointer.
type Type struct {
	name string
	kind Kind

	//set for primitives (their box) and for boxes (the primitive)
	box     *Type
	unboxed *Type
}

// NewReference creates a reference type, it should only be called when building a whitelist snapshot.
func NewReference(name string) *Type {
	return &Type{name: name, kind: ReferenceKind}
}

func (t *Type) Name() string {
	return t.name
}

func (t *Type) Kind() Kind {
	return t.kind
}

func (t *Type) String() string {
	if t == nil {
		return "<none>"
	}
	return t.name
}

func (t *Type) IsDynamic() bool {
	return t.kind == DynamicKind
}

func (t *Type) IsVoid() bool {
	return t.kind == VoidKind
}

func (t *Type) IsPrimitive() bool {
	return t.kind >= BooleanKind && t.kind <= DoubleKind
}

func (t *Type) IsNumeric() bool {
	return t.kind >= ByteKind && t.kind <= DoubleKind
}

func (t *Type) IsIntegral() bool {
	return t.kind >= ByteKind && t.kind <= LongKind
}

func (t *Type) IsReference() bool {
	return t.kind == ReferenceKind
}

// Box returns the box of a primitive type, or nil.
func (t *Type) Box() *Type {
	return t.box
}

// Unboxed returns the primitive type of a box type, or nil.
func (t *Type) Unboxed() *Type {
	return t.unboxed
}
