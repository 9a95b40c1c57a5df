package node

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/inoxlang/scriptc/internal/diag"
	"github.com/inoxlang/scriptc/internal/ir"
	"github.com/inoxlang/scriptc/internal/position"
	"github.com/inoxlang/scriptc/internal/types"
)

// String is a string literal.
type String struct {
	expressionBase
	Value string
}

func NewString(loc position.Location, value string) *String {
	return &String{expressionBase: expressionBase{location: loc}, Value: value}
}

func (s *String) Analyze(root *ScriptRoot, scope *Scope, input Input) (Output, error) {
	if err := s.beginAnalysis(input); err != nil {
		return Output{}, err
	}
	if err := s.requireRead(diag.FmtNotAStatement("string constant")); err != nil {
		return Output{}, err
	}
	return s.finishAnalysis(root, types.String), nil
}

func (s *String) Write(b *ir.Builder) (ir.ExpressionNode, error) {
	if err := s.beginWrite(); err != nil {
		return nil, err
	}
	return &ir.ConstantNode{ExpressionBase: s.irBase(), Value: s.Value}, nil
}

func (s *String) String() string {
	return singleLineToString("String", "'"+s.Value+"'")
}

// Numeric is a numeric literal, Text is the source text: 1, 0x1F, 2L, 1.5, 1.5f, 3d.
type Numeric struct {
	expressionBase
	Text string

	value any
}

func NewNumeric(loc position.Location, text string) *Numeric {
	return &Numeric{expressionBase: expressionBase{location: loc}, Text: text}
}

// Value returns the parsed value, nil before analysis.
func (n *Numeric) Value() any {
	return n.value
}

func (n *Numeric) Analyze(root *ScriptRoot, scope *Scope, input Input) (Output, error) {
	if err := n.beginAnalysis(input); err != nil {
		return Output{}, err
	}
	if err := n.requireRead(diag.FmtNotAStatement("numeric constant")); err != nil {
		return Output{}, err
	}

	value, actual, err := parseNumeric(n.Text)
	if err != nil {
		return Output{}, diag.Usage(n.location, err.Error())
	}

	//an int constant that fits in the expected integral type directly gets that type.
	if i, ok := value.(int32); ok && input.Expected != nil {
		switch input.Expected {
		case types.Byte:
			if i >= math.MinInt8 && i <= math.MaxInt8 {
				value, actual = int8(i), types.Byte
			}
		case types.Short:
			if i >= math.MinInt16 && i <= math.MaxInt16 {
				value, actual = int16(i), types.Short
			}
		case types.Char:
			if i >= 0 && i <= math.MaxUint16 {
				value, actual = uint16(i), types.Char
			}
		}
	}

	n.value = value
	return n.finishAnalysis(root, actual), nil
}

func parseNumeric(text string) (value any, t *types.Type, err error) {
	invalid := func(kind string) error {
		return errors.New(diag.FmtInvalidConstant(kind, text))
	}

	if text == "" {
		return nil, nil, invalid("numeric")
	}

	lower := strings.ToLower(text)
	isHex := strings.HasPrefix(lower, "0x")
	last := lower[len(lower)-1]

	switch {
	case last == 'l':
		body := lower[:len(lower)-1]
		if !isValidNumericSyntax(body, isHex, false) {
			return nil, nil, invalid("long")
		}
		i, err := strconv.ParseInt(trimNumericPrefix(body), radix(isHex), 64)
		if err != nil {
			return nil, nil, invalid("long")
		}
		return i, types.Long, nil
	case !isHex && last == 'f':
		body := lower[:len(lower)-1]
		if !isValidNumericSyntax(body, false, true) {
			return nil, nil, invalid("float")
		}
		f, err := strconv.ParseFloat(body, 32)
		if err != nil {
			return nil, nil, invalid("float")
		}
		return float32(f), types.Float, nil
	case !isHex && last == 'd':
		body := lower[:len(lower)-1]
		if !isValidNumericSyntax(body, false, true) {
			return nil, nil, invalid("double")
		}
		f, err := strconv.ParseFloat(body, 64)
		if err != nil {
			return nil, nil, invalid("double")
		}
		return f, types.Double, nil
	case !isHex && strings.ContainsAny(lower, ".e"):
		if !isValidNumericSyntax(lower, false, true) {
			return nil, nil, invalid("double")
		}
		f, err := strconv.ParseFloat(lower, 64)
		if err != nil {
			return nil, nil, invalid("double")
		}
		return f, types.Double, nil
	default:
		if !isValidNumericSyntax(lower, isHex, false) {
			return nil, nil, invalid("int")
		}
		i, err := strconv.ParseInt(trimNumericPrefix(lower), radix(isHex), 32)
		if err != nil {
			return nil, nil, invalid("int")
		}
		return int32(i), types.Int, nil
	}
}

// isValidNumericSyntax reports whether text (lowercased, without type suffix) is an optionally negated
// sequence of decimal digits, a 0x prefix followed by hex digits, or, if decimal is true, a decimal
// number with an optional fraction and exponent.
func isValidNumericSyntax(text string, isHex, decimal bool) bool {
	text = strings.TrimPrefix(text, "-")

	if isHex {
		digits := strings.TrimPrefix(text, "0x")
		return digits != "" && strings.Trim(digits, "0123456789abcdef") == ""
	}

	mantissa, exponent, hasExponent := strings.Cut(text, "e")
	if hasExponent {
		if !decimal {
			return false
		}
		if len(exponent) > 0 && (exponent[0] == '+' || exponent[0] == '-') {
			exponent = exponent[1:]
		}
		if exponent == "" || !isDecimalDigits(exponent) {
			return false
		}
	}

	integral, fraction, hasPoint := strings.Cut(mantissa, ".")
	if hasPoint && !decimal {
		return false
	}
	return integral+fraction != "" && isDecimalDigits(integral) && isDecimalDigits(fraction)
}

func isDecimalDigits(s string) bool {
	return strings.Trim(s, "0123456789") == ""
}

func radix(isHex bool) int {
	if isHex {
		return 16
	}
	return 10
}

func trimNumericPrefix(s string) string {
	return strings.TrimPrefix(s, "0x")
}

func (n *Numeric) Write(b *ir.Builder) (ir.ExpressionNode, error) {
	if err := n.beginWrite(); err != nil {
		return nil, err
	}
	return &ir.ConstantNode{ExpressionBase: n.irBase(), Value: n.value}, nil
}

func (n *Numeric) String() string {
	return singleLineToString("Numeric", n.Text)
}

// Boolean is a true or false literal.
type Boolean struct {
	expressionBase
	Value bool
}

func NewBoolean(loc position.Location, value bool) *Boolean {
	return &Boolean{expressionBase: expressionBase{location: loc}, Value: value}
}

func (n *Boolean) Analyze(root *ScriptRoot, scope *Scope, input Input) (Output, error) {
	if err := n.beginAnalysis(input); err != nil {
		return Output{}, err
	}
	if err := n.requireRead(diag.FmtNotAStatement("boolean constant")); err != nil {
		return Output{}, err
	}
	return n.finishAnalysis(root, types.Boolean), nil
}

func (n *Boolean) Write(b *ir.Builder) (ir.ExpressionNode, error) {
	if err := n.beginWrite(); err != nil {
		return nil, err
	}
	return &ir.ConstantNode{ExpressionBase: n.irBase(), Value: n.Value}, nil
}

func (n *Boolean) String() string {
	return singleLineToString("Boolean", strconv.FormatBool(n.Value))
}

// Null is the null literal, it takes the expected type when there is one.
type Null struct {
	expressionBase
}

func NewNull(loc position.Location) *Null {
	return &Null{expressionBase: expressionBase{location: loc}}
}

func (n *Null) Analyze(root *ScriptRoot, scope *Scope, input Input) (Output, error) {
	if err := n.beginAnalysis(input); err != nil {
		return Output{}, err
	}
	if err := n.requireRead(diag.FmtNotAStatement("null constant")); err != nil {
		return Output{}, err
	}

	actual := types.Object
	if input.Expected != nil {
		if input.Expected.IsPrimitive() || input.Expected.IsVoid() {
			return Output{}, diag.Conversion(n.location, diag.CANNOT_CAST_NULL_TO_PRIM)
		}
		actual = input.Expected
	}
	return n.finishAnalysis(root, actual), nil
}

func (n *Null) Write(b *ir.Builder) (ir.ExpressionNode, error) {
	if err := n.beginWrite(); err != nil {
		return nil, err
	}
	return &ir.NullNode{ExpressionBase: n.irBase()}, nil
}

func (n *Null) String() string {
	return "(Null)"
}
