package lookup

import (
	"testing"

	"github.com/inoxlang/scriptc/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWhitelist = `
version: 1.2.0
requires: ">= 1.0, < 2.0"
classes:
  - name: Object
    methods:
      - name: toString
        params: []
        returns: String
      - name: hashCode
        params: []
        returns: int
  - name: HashMap
    constructors:
      - params: []
    methods:
      - name: put
        params: [def, def]
        returns: def
      - name: get
        params: [def]
        returns: def
  - name: Shape
    methods:
      - name: area
        params: []
        returns: double
  - name: Circle
    extends: Shape
    constructors:
      - params: [double]
    methods:
      - name: toString
        params: []
        returns: String
    static_methods:
      - name: unit
        params: []
        returns: Circle
`

func buildTestSnapshot(t *testing.T, yamlDesc string) *Snapshot {
	desc, err := ParseDescription([]byte(yamlDesc), YAML)
	require.NoError(t, err)

	snapshot, err := Build(desc)
	require.NoError(t, err)
	return snapshot
}

func TestBuild(t *testing.T) {

	t.Run("version", func(t *testing.T) {
		snapshot := buildTestSnapshot(t, testWhitelist)
		assert.Equal(t, "1.2.0", snapshot.Version().String())
	})

	t.Run("missing version", func(t *testing.T) {
		_, err := Build(&Description{})
		assert.ErrorIs(t, err, ErrMissingVersion)
	})

	t.Run("unsatisfied language version constraint", func(t *testing.T) {
		_, err := Build(&Description{Version: "1.0.0", Requires: ">= 2.0"})
		if assert.Error(t, err) {
			assert.Contains(t, err.Error(), "requires language version >= 2.0")
		}
	})

	t.Run("unknown parameter type", func(t *testing.T) {
		_, err := Build(&Description{
			Version: "1.0.0",
			Classes: []ClassDescription{
				{Name: "HashMap", Methods: []MethodDescription{{Name: "put", Params: []string{"Foo", "def"}, Returns: "def"}}},
			},
		})
		if assert.Error(t, err) {
			assert.Contains(t, err.Error(), "HashMap.put: unknown type Foo")
		}
	})

	t.Run("all errors are reported", func(t *testing.T) {
		_, err := Build(&Description{
			Version: "1.0.0",
			Classes: []ClassDescription{
				{Name: "A", Methods: []MethodDescription{{Name: "f", Returns: "X"}}},
				{Name: "B", Constructors: []ConstructorDescription{{}, {}}},
			},
		})
		if assert.Error(t, err) {
			assert.Contains(t, err.Error(), "A.f: unknown type X")
			assert.Contains(t, err.Error(), "B: duplicate constructor <init>/0")
		}
	})

	t.Run("class declared twice", func(t *testing.T) {
		_, err := Build(&Description{
			Version: "1.0.0",
			Classes: []ClassDescription{{Name: "A"}, {Name: "A"}},
		})
		if assert.Error(t, err) {
			assert.Contains(t, err.Error(), "class A is declared twice")
		}
	})

	t.Run("members on primitive type", func(t *testing.T) {
		_, err := Build(&Description{
			Version: "1.0.0",
			Classes: []ClassDescription{{Name: "int"}},
		})
		assert.Error(t, err)
	})

	t.Run("cyclic inheritance", func(t *testing.T) {
		_, err := Build(&Description{
			Version: "1.0.0",
			Classes: []ClassDescription{{Name: "A", Extends: "B"}, {Name: "B", Extends: "A"}},
		})
		if assert.Error(t, err) {
			assert.Contains(t, err.Error(), "cyclic inheritance")
		}
	})
}

func TestLookup(t *testing.T) {
	snapshot := buildTestSnapshot(t, testWhitelist)

	t.Run("constructor", func(t *testing.T) {
		ctor := snapshot.LookupConstructor(types.HashMap, 0)
		if assert.NotNil(t, ctor) {
			assert.Same(t, types.HashMap, ctor.Owner)
			assert.Equal(t, 0, ctor.Arity())
			assert.Equal(t, "[HashMap, <init>/0]", ctor.String())
		}

		assert.Nil(t, snapshot.LookupConstructor(types.HashMap, 1))
		assert.Nil(t, snapshot.LookupConstructor(types.ArrayList, 0))
		assert.Nil(t, snapshot.LookupConstructor(nil, 0))
	})

	t.Run("method", func(t *testing.T) {
		put := snapshot.LookupMethod(types.HashMap, false, "put", 2)
		if assert.NotNil(t, put) {
			assert.Equal(t, "put/2", put.Key())
			assert.Equal(t, []*types.Type{types.Def, types.Def}, put.Params)
			assert.Same(t, types.Def, put.Return)
		}

		assert.Nil(t, snapshot.LookupMethod(types.HashMap, false, "put", 3))
		assert.Nil(t, snapshot.LookupMethod(types.HashMap, true, "put", 2))
	})

	t.Run("deterministic", func(t *testing.T) {
		first := snapshot.LookupMethod(types.HashMap, false, "put", 2)
		second := snapshot.LookupMethod(types.HashMap, false, "put", 2)
		assert.Same(t, first, second)

		assert.Same(t, snapshot.LookupConstructor(types.HashMap, 0), snapshot.LookupConstructor(types.HashMap, 0))
	})

	t.Run("inherited methods", func(t *testing.T) {
		circle, ok := snapshot.LookupType("Circle")
		require.True(t, ok)
		shape, _ := snapshot.LookupType("Shape")

		area := snapshot.LookupMethod(circle, false, "area", 0)
		if assert.NotNil(t, area) {
			assert.Same(t, shape, area.Owner)
			assert.Same(t, snapshot.LookupMethod(shape, false, "area", 0), area)
		}

		//Shape inherits Object.hashCode, Circle inherits it through Shape
		hashCode := snapshot.LookupMethod(circle, false, "hashCode", 0)
		if assert.NotNil(t, hashCode) {
			assert.Same(t, types.Object, hashCode.Owner)
		}

		//overriding method
		toString := snapshot.LookupMethod(circle, false, "toString", 0)
		if assert.NotNil(t, toString) {
			assert.Same(t, circle, toString.Owner)
		}

		//static methods are not inherited
		assert.Nil(t, snapshot.LookupMethod(shape, true, "unit", 0))
		assert.NotNil(t, snapshot.LookupMethod(circle, true, "unit", 0))
	})

	t.Run("builtin subtypes inherit the methods of Object", func(t *testing.T) {
		assert.True(t, snapshot.IsAssignable(types.String, types.Object))

		toString := snapshot.LookupMethod(types.String, false, "toString", 0)
		if assert.NotNil(t, toString) {
			assert.Same(t, types.Object, toString.Owner)
		}

		assert.NotNil(t, snapshot.LookupMethod(types.ArrayList, false, "hashCode", 0))
		assert.NotNil(t, snapshot.LookupMethod(types.IntBox, false, "hashCode", 0))

		//HashMap is declared without toString
		assert.NotNil(t, snapshot.LookupMethod(types.HashMap, false, "toString", 0))
		assert.NotNil(t, snapshot.LookupMethod(types.HashMap, false, "put", 2))

		assert.Nil(t, snapshot.LookupMethod(types.String, true, "toString", 0))
	})

	t.Run("assignability", func(t *testing.T) {
		circle, _ := snapshot.LookupType("Circle")
		shape, _ := snapshot.LookupType("Shape")

		assert.True(t, snapshot.IsAssignable(circle, shape))
		assert.True(t, snapshot.IsAssignable(circle, types.Object))
		assert.True(t, snapshot.IsAssignable(types.String, types.Object))
		assert.False(t, snapshot.IsAssignable(shape, circle))
		assert.False(t, snapshot.IsAssignable(types.Int, types.Object))
	})

	t.Run("builtin types are always visible", func(t *testing.T) {
		list, ok := snapshot.LookupType("ArrayList")
		if assert.True(t, ok) {
			assert.Same(t, types.ArrayList, list)
		}
		_, ok = snapshot.LookupType("Square")
		assert.False(t, ok)
	})
}

func TestDescribe(t *testing.T) {
	snapshot := buildTestSnapshot(t, testWhitelist)

	t.Run("members", func(t *testing.T) {
		circle, _ := snapshot.LookupType("Circle")

		assert.Equal(t, []string{
			"Circle(double)",
			"String toString()",
			"double area()",
			"int hashCode()",
			"static Circle unit()",
		}, snapshot.Members(circle))
	})

	t.Run("type suggestion", func(t *testing.T) {
		assert.Equal(t, "HashMap", snapshot.SuggestType("Hashmap"))
		assert.Equal(t, "", snapshot.SuggestType("Quaternion"))
	})

	t.Run("method suggestion", func(t *testing.T) {
		assert.Equal(t, "put/2", snapshot.SuggestMethod(types.HashMap, false, "puts", 2))
		assert.Equal(t, "", snapshot.SuggestMethod(types.HashMap, true, "put", 2))
	})
}
