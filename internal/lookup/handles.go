package lookup

import (
	"strconv"
	"strings"

	"github.com/inoxlang/scriptc/internal/types"
)

const CONSTRUCTOR_NAME = "<init>"

// A Constructor is a whitelisted constructor, handles are created once per snapshot and never mutated.
type Constructor struct {
	Owner  *types.Type   `json:"-"`
	Params []*types.Type `json:"-"`
}

func (c *Constructor) Arity() int {
	return len(c.Params)
}

// Key returns the name/arity pair of the constructor: <init>/N.
func (c *Constructor) Key() string {
	return memberKey(CONSTRUCTOR_NAME, len(c.Params))
}

func (c *Constructor) String() string {
	return "[" + c.Owner.Name() + ", " + c.Key() + "]"
}

// A Method is a whitelisted instance or static method, handles are created once per snapshot and never mutated.
type Method struct {
	Owner  *types.Type
	Name   string
	Static bool
	Params []*types.Type
	Return *types.Type
}

func (m *Method) Arity() int {
	return len(m.Params)
}

// Key returns the name/arity pair of the method, e.g. put/2.
func (m *Method) Key() string {
	return memberKey(m.Name, len(m.Params))
}

func (m *Method) String() string {
	return "[" + m.Owner.Name() + ", " + m.Key() + "]"
}

// Signature returns a human readable signature such as def put(def, def).
func (m *Method) Signature() string {
	buf := strings.Builder{}
	if m.Static {
		buf.WriteString("static ")
	}
	buf.WriteString(m.Return.Name())
	buf.WriteByte(' ')
	buf.WriteString(m.Name)
	buf.WriteByte('(')
	for i, param := range m.Params {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(param.Name())
	}
	buf.WriteByte(')')
	return buf.String()
}

func memberKey(name string, arity int) string {
	return name + "/" + strconv.Itoa(arity)
}

// index keys: constructors and methods of a type are contiguous in the index because the type name is the prefix.

func constructorIndexKey(owner *types.Type, arity int) string {
	return owner.Name() + "#" + memberKey(CONSTRUCTOR_NAME, arity)
}

func methodIndexKey(owner *types.Type, static bool, name string, arity int) string {
	if static {
		return owner.Name() + "::" + memberKey(name, arity)
	}
	return owner.Name() + "." + memberKey(name, arity)
}
