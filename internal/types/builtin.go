package types

const (
	DEF_TYPE_NAME       = "def"
	OBJECT_TYPE_NAME    = "Object"
	STRING_TYPE_NAME    = "String"
	HASHMAP_TYPE_NAME   = "HashMap"
	ARRAYLIST_TYPE_NAME = "ArrayList"
)

var (
	Def  = &Type{name: DEF_TYPE_NAME, kind: DynamicKind}
	Void = &Type{name: "void", kind: VoidKind}

	Boolean = &Type{name: "boolean", kind: BooleanKind}
	Byte    = &Type{name: "byte", kind: ByteKind}
	Short   = &Type{name: "short", kind: ShortKind}
	Char    = &Type{name: "char", kind: CharKind}
	Int     = &Type{name: "int", kind: IntKind}
	Long    = &Type{name: "long", kind: LongKind}
	Float   = &Type{name: "float", kind: FloatKind}
	Double  = &Type{name: "double", kind: DoubleKind}

	BooleanBox = &Type{name: "Boolean", kind: ReferenceKind}
	ByteBox    = &Type{name: "Byte", kind: ReferenceKind}
	ShortBox   = &Type{name: "Short", kind: ReferenceKind}
	CharBox    = &Type{name: "Character", kind: ReferenceKind}
	IntBox     = &Type{name: "Integer", kind: ReferenceKind}
	LongBox    = &Type{name: "Long", kind: ReferenceKind}
	FloatBox   = &Type{name: "Float", kind: ReferenceKind}
	DoubleBox  = &Type{name: "Double", kind: ReferenceKind}

	Object = &Type{name: OBJECT_TYPE_NAME, kind: ReferenceKind}
	String = &Type{name: STRING_TYPE_NAME, kind: ReferenceKind}

	// HashMap is the container type of map literals, it preserves insertion order.
	HashMap = &Type{name: HASHMAP_TYPE_NAME, kind: ReferenceKind}

	// ArrayList is the container type of list literals.
	ArrayList = &Type{name: ARRAYLIST_TYPE_NAME, kind: ReferenceKind}

	builtins = map[string]*Type{}
)

func init() {
	for _, pair := range [][2]*Type{
		{Boolean, BooleanBox}, {Byte, ByteBox}, {Short, ShortBox}, {Char, CharBox},
		{Int, IntBox}, {Long, LongBox}, {Float, FloatBox}, {Double, DoubleBox},
	} {
		pair[0].box = pair[1]
		pair[1].unboxed = pair[0]
	}

	for _, t := range Builtins() {
		builtins[t.name] = t
	}
}

// Builtins returns the types that exist whatever the whitelist, the whitelist only decides which of their
// members are reachable.
func Builtins() []*Type {
	return []*Type{
		Def, Void,
		Boolean, Byte, Short, Char, Int, Long, Float, Double,
		BooleanBox, ByteBox, ShortBox, CharBox, IntBox, LongBox, FloatBox, DoubleBox,
		Object, String, HashMap, ArrayList,
	}
}

func Builtin(name string) (*Type, bool) {
	t, ok := builtins[name]
	return t, ok
}

// BuiltinSuper returns the supertype of a builtin reference type, Object has no supertype.
func BuiltinSuper(t *Type) *Type {
	if t.kind != ReferenceKind || t == Object {
		return nil
	}
	if _, ok := builtins[t.name]; !ok || builtins[t.name] != t {
		return nil
	}
	return Object
}
