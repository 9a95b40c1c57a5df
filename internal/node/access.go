package node

import (
	"fmt"

	"github.com/inoxlang/scriptc/internal/caster"
	"github.com/inoxlang/scriptc/internal/diag"
	"github.com/inoxlang/scriptc/internal/ir"
	"github.com/inoxlang/scriptc/internal/lookup"
	"github.com/inoxlang/scriptc/internal/position"
	"github.com/inoxlang/scriptc/internal/types"
)

// Variable reads a local variable.
type Variable struct {
	expressionBase
	Name string

	variable *LocalVariable
}

func NewVariable(loc position.Location, name string) *Variable {
	return &Variable{expressionBase: expressionBase{location: loc}, Name: name}
}

func (v *Variable) Analyze(root *ScriptRoot, scope *Scope, input Input) (Output, error) {
	if err := v.beginAnalysis(input); err != nil {
		return Output{}, err
	}
	if err := v.requireRead(diag.FmtNotAStatement("variable [" + v.Name + "]")); err != nil {
		return Output{}, err
	}

	variable, ok := scope.Lookup(v.Name)
	if !ok {
		return Output{}, diag.Resolution(v.location, diag.FmtVariableNotDefined(v.Name))
	}
	v.variable = variable
	return v.finishAnalysis(root, variable.Type), nil
}

func (v *Variable) Write(b *ir.Builder) (ir.ExpressionNode, error) {
	if err := v.beginWrite(); err != nil {
		return nil, err
	}
	return &ir.LoadVariableNode{ExpressionBase: v.irBase(), Variable: v.Name, Slot: v.variable.Slot}, nil
}

func (v *Variable) String() string {
	return singleLineToString("Variable", v.Name)
}

// NewObject calls a whitelisted constructor.
type NewObject struct {
	expressionBase
	TypeName  string
	Arguments []Expression

	constructor *lookup.Constructor
}

func NewNewObject(loc position.Location, typeName string, args ...Expression) *NewObject {
	return &NewObject{expressionBase: expressionBase{location: loc}, TypeName: typeName, Arguments: args}
}

func (n *NewObject) Analyze(root *ScriptRoot, scope *Scope, input Input) (Output, error) {
	if err := n.beginAnalysis(input); err != nil {
		return Output{}, err
	}

	t, err := root.resolveType(n.location, n.TypeName)
	if err != nil {
		return Output{}, err
	}

	if !t.IsReference() {
		return Output{}, diag.Resolution(n.location, diag.FmtConstructorNotFound(t.Name(), len(n.Arguments)))
	}

	ctor := root.resolver.LookupConstructor(t, len(n.Arguments))
	if ctor == nil {
		return Output{}, diag.Resolution(n.location, diag.FmtConstructorNotFound(t.Name(), len(n.Arguments)))
	}

	if err := analyzeArguments(root, scope, n.location, n.Arguments, ctor.Params); err != nil {
		return Output{}, err
	}

	n.constructor = ctor
	return n.finishAnalysis(root, t), nil
}

func (n *NewObject) Write(b *ir.Builder) (ir.ExpressionNode, error) {
	if err := n.beginWrite(); err != nil {
		return nil, err
	}

	args, err := writeChildren(b, n.Arguments)
	if err != nil {
		return nil, err
	}

	return &ir.NewObjectNode{
		ExpressionBase: n.irBase(),
		Constructor:    n.constructor,
		Arguments:      args,
		Read:           n.input.Read,
	}, nil
}

func (n *NewObject) String() string {
	return singleLineToString("NewObject", n.TypeName, n.Arguments)
}

// Call invokes a method on the value of Prefix. When the prefix is def the method is resolved at runtime.
type Call struct {
	expressionBase
	Prefix     Expression
	MethodName string
	Arguments  []Expression

	method       *lookup.Method
	receiverCast *caster.Cast
}

func NewCall(loc position.Location, prefix Expression, methodName string, args ...Expression) *Call {
	return &Call{expressionBase: expressionBase{location: loc}, Prefix: prefix, MethodName: methodName, Arguments: args}
}

func (c *Call) Analyze(root *ScriptRoot, scope *Scope, input Input) (Output, error) {
	if err := c.beginAnalysis(input); err != nil {
		return Output{}, err
	}

	if c.Prefix == nil {
		return Output{}, diag.Structural(c.location, diag.MISSING_CHILD_NODE)
	}

	prefixOutput, err := c.Prefix.Analyze(root, scope, Input{Read: true})
	if err != nil {
		return Output{}, err
	}

	receiver := prefixOutput.Actual
	switch {
	case receiver.IsVoid():
		return Output{}, diag.Usage(c.Prefix.Location(), diag.FmtVoidValueUsed("an expression"))
	case receiver.IsDynamic():
		params := make([]*types.Type, len(c.Arguments))
		for i := range params {
			params[i] = types.Def
		}
		if err := analyzeArguments(root, scope, c.location, c.Arguments, params); err != nil {
			return Output{}, err
		}
		return c.finishAnalysis(root, types.Def), nil
	case receiver.IsPrimitive():
		//methods of primitive values are the methods of their box.
		box := receiver.Box()
		c.receiverCast, err = caster.LegalCast(c.Prefix.Location(), receiver, box, false, true, root.resolver)
		if err != nil {
			return Output{}, err
		}
		receiver = box
	}

	method := root.resolver.LookupMethod(receiver, false, c.MethodName, len(c.Arguments))
	if method == nil {
		msg := diag.FmtMethodNotFound(receiver.Name(), c.MethodName, len(c.Arguments))
		suggestion := root.resolver.SuggestMethod(receiver, false, c.MethodName, len(c.Arguments))
		return Output{}, diag.Resolution(c.location, diag.WithSuggestion(msg, suggestion))
	}

	if input.Read && method.Return.IsVoid() {
		return Output{}, diag.Usage(c.location, diag.FmtVoidValueUsed("method "+method.String()))
	}

	if err := analyzeArguments(root, scope, c.location, c.Arguments, method.Params); err != nil {
		return Output{}, err
	}

	c.method = method
	return c.finishAnalysis(root, method.Return), nil
}

func (c *Call) Write(b *ir.Builder) (ir.ExpressionNode, error) {
	if err := c.beginWrite(); err != nil {
		return nil, err
	}

	receiver, err := writeChild(b, c.Prefix)
	if err != nil {
		return nil, err
	}
	receiver = ir.WrapCast(receiver, c.receiverCast)

	args, err := writeChildren(b, c.Arguments)
	if err != nil {
		return nil, err
	}

	if c.method == nil {
		return &ir.DynamicInvokeNode{
			ExpressionBase: c.irBase(),
			Receiver:       receiver,
			MethodName:     c.MethodName,
			Arguments:      args,
		}, nil
	}

	return &ir.InvokeMethodNode{
		ExpressionBase: c.irBase(),
		Receiver:       receiver,
		Method:         c.method,
		Arguments:      args,
	}, nil
}

func (c *Call) String() string {
	return singleLineToString("Call", nodeToString(c.Prefix), c.MethodName, c.Arguments)
}

// StaticCall invokes a static method of a whitelisted type.
type StaticCall struct {
	expressionBase
	TypeName   string
	MethodName string
	Arguments  []Expression

	method *lookup.Method
}

func NewStaticCall(loc position.Location, typeName string, methodName string, args ...Expression) *StaticCall {
	return &StaticCall{expressionBase: expressionBase{location: loc}, TypeName: typeName, MethodName: methodName, Arguments: args}
}

func (c *StaticCall) Analyze(root *ScriptRoot, scope *Scope, input Input) (Output, error) {
	if err := c.beginAnalysis(input); err != nil {
		return Output{}, err
	}

	t, err := root.resolveType(c.location, c.TypeName)
	if err != nil {
		return Output{}, err
	}

	method := root.resolver.LookupMethod(t, true, c.MethodName, len(c.Arguments))
	if method == nil {
		msg := diag.FmtStaticMethodNotFound(t.Name(), c.MethodName, len(c.Arguments))
		suggestion := root.resolver.SuggestMethod(t, true, c.MethodName, len(c.Arguments))
		return Output{}, diag.Resolution(c.location, diag.WithSuggestion(msg, suggestion))
	}

	if input.Read && method.Return.IsVoid() {
		return Output{}, diag.Usage(c.location, diag.FmtVoidValueUsed("method "+method.String()))
	}

	if err := analyzeArguments(root, scope, c.location, c.Arguments, method.Params); err != nil {
		return Output{}, err
	}

	c.method = method
	return c.finishAnalysis(root, method.Return), nil
}

func (c *StaticCall) Write(b *ir.Builder) (ir.ExpressionNode, error) {
	if err := c.beginWrite(); err != nil {
		return nil, err
	}

	args, err := writeChildren(b, c.Arguments)
	if err != nil {
		return nil, err
	}

	return &ir.InvokeStaticNode{
		ExpressionBase: c.irBase(),
		Method:         c.method,
		Arguments:      args,
	}, nil
}

func (c *StaticCall) String() string {
	return singleLineToString("StaticCall", c.TypeName, c.MethodName, c.Arguments)
}

// analyzeArguments analyzes the arguments of a call, each argument is converted to the type of its parameter.
func analyzeArguments(root *ScriptRoot, scope *Scope, loc position.Location, args []Expression, params []*types.Type) error {
	if len(args) != len(params) {
		return diag.Structural(loc, fmt.Sprintf("%s: %d arguments for %d parameters", diag.ILLEGAL_TREE_STRUCTURE, len(args), len(params)))
	}

	for i, arg := range args {
		input := Input{Expected: params[i], Read: true, Internal: true}
		if err := analyzeChild(root, scope, loc, arg, input); err != nil {
			return err
		}
	}
	return nil
}
