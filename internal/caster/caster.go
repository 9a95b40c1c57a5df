// Package caster decides whether a value of a type can be used where another type is expected, and records
// the conversion to apply.
package caster

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/inoxlang/scriptc/internal/diag"
	"github.com/inoxlang/scriptc/internal/position"
	"github.com/inoxlang/scriptc/internal/types"
)

type Kind uint8

const (
	ToDynamic   Kind = iota + 1 //any value to def, the value keeps its type tag
	FromDynamic                 //def to any type, checked at run time
	Widen
	Narrow
	Box
	Unbox
	Upcast
	Downcast
)

func (k Kind) String() string {
	switch k {
	case ToDynamic:
		return "to-def"
	case FromDynamic:
		return "from-def"
	case Widen:
		return "widen"
	case Narrow:
		return "narrow"
	case Box:
		return "box"
	case Unbox:
		return "unbox"
	case Upcast:
		return "upcast"
	case Downcast:
		return "downcast"
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// A Cast is an immutable description of a conversion, a nil *Cast means identity.
type Cast struct {
	Original *types.Type
	Target   *types.Type
	Kind     Kind
	Explicit bool
}

func (c *Cast) String() string {
	return "(" + c.Kind.String() + " " + c.Original.Name() + " " + c.Target.Name() + ")"
}

// Hierarchy answers subtyping questions about reference types, *lookup.Snapshot implements it.
type Hierarchy interface {
	IsAssignable(from, to *types.Type) bool
}

var widenings = map[types.Kind]*bitset.BitSet{}

func init() {
	targets := func(kinds ...types.Kind) *bitset.BitSet {
		set := bitset.New(uint(types.DynamicKind) + 1)
		for _, k := range kinds {
			set.Set(uint(k))
		}
		return set
	}

	widenings[types.ByteKind] = targets(types.ShortKind, types.IntKind, types.LongKind, types.FloatKind, types.DoubleKind)
	widenings[types.ShortKind] = targets(types.IntKind, types.LongKind, types.FloatKind, types.DoubleKind)
	widenings[types.CharKind] = targets(types.IntKind, types.LongKind, types.FloatKind, types.DoubleKind)
	widenings[types.IntKind] = targets(types.LongKind, types.FloatKind, types.DoubleKind)
	widenings[types.LongKind] = targets(types.FloatKind, types.DoubleKind)
	widenings[types.FloatKind] = targets(types.DoubleKind)
}

// Widens reports whether the primitive type from implicitly widens to the primitive type to.
func Widens(from, to *types.Type) bool {
	set, ok := widenings[from.Kind()]
	return ok && set.Test(uint(to.Kind()))
}

// LegalCast returns the conversion from actual to expected, or nil if no conversion is needed.
// Internal conversions are synthesized by the compiler: they may box and unbox. Narrowing conversions and
// downcasts always require an explicit cast.
func LegalCast(loc position.Location, actual, expected *types.Type, explicit, internal bool, hierarchy Hierarchy) (*Cast, error) {
	if actual == expected {
		return nil, nil
	}

	if actual.IsVoid() || expected.IsVoid() {
		return nil, diag.Conversion(loc, diag.FmtCannotCast(actual, expected))
	}

	newCast := func(kind Kind) *Cast {
		return &Cast{Original: actual, Target: expected, Kind: kind, Explicit: explicit}
	}

	explicitRequired := func() error {
		return diag.Conversion(loc, diag.FmtExplicitCastRequired(actual, expected))
	}

	switch {
	case expected.IsDynamic():
		return newCast(ToDynamic), nil
	case actual.IsDynamic():
		return newCast(FromDynamic), nil
	case actual.IsPrimitive() && expected.IsPrimitive():
		if actual.Kind() == types.BooleanKind || expected.Kind() == types.BooleanKind {
			break
		}
		if Widens(actual, expected) {
			return newCast(Widen), nil
		}
		if explicit {
			return newCast(Narrow), nil
		}
		return nil, explicitRequired()
	case actual.IsPrimitive() && expected.IsReference():
		box := actual.Box()
		if box != expected && !hierarchy.IsAssignable(box, expected) {
			break
		}
		if internal || explicit {
			return newCast(Box), nil
		}
		return nil, explicitRequired()
	case actual.IsReference() && expected.IsPrimitive():
		unboxed := actual.Unboxed()
		if unboxed == nil || (unboxed != expected && !Widens(unboxed, expected)) {
			break
		}
		if internal || explicit {
			return newCast(Unbox), nil
		}
		return nil, explicitRequired()
	case actual.IsReference() && expected.IsReference():
		if hierarchy.IsAssignable(actual, expected) {
			return newCast(Upcast), nil
		}
		if hierarchy.IsAssignable(expected, actual) {
			if explicit {
				return newCast(Downcast), nil
			}
			return nil, explicitRequired()
		}
	}

	return nil, diag.Conversion(loc, diag.FmtCannotCast(actual, expected))
}

// PromoteNumeric returns the type both operands of an arithmetic operation are converted to, or nil if
// an operand is not numeric. Boxes are promoted like their primitive type.
func PromoteNumeric(left, right *types.Type) *types.Type {
	if left.IsDynamic() || right.IsDynamic() {
		return types.Def
	}

	unbox := func(t *types.Type) *types.Type {
		if unboxed := t.Unboxed(); unboxed != nil {
			return unboxed
		}
		return t
	}

	left, right = unbox(left), unbox(right)
	if !left.IsNumeric() || !right.IsNumeric() {
		return nil
	}

	switch {
	case left == types.Double || right == types.Double:
		return types.Double
	case left == types.Float || right == types.Float:
		return types.Float
	case left == types.Long || right == types.Long:
		return types.Long
	default:
		return types.Int
	}
}
