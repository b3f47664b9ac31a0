package runtime

import (
	"math"
	"strconv"
	"strings"
)

// Truthy implements the truthiness table: Null, false and 0 are falsy,
// everything else (including "") is truthy.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case NullValue:
		return false
	case BoolValue:
		return val.Val
	case NumValue:
		return val.Val != 0
	default:
		return true
	}
}

// Equals implements `==`: false across kinds, value equality for
// primitives and strings, identity for heap kinds. NaN is unequal to
// itself per IEEE.
func Equals(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case NullValue:
		return true
	case BoolValue:
		return av.Val == b.(BoolValue).Val
	case NumValue:
		return av.Val == b.(NumValue).Val
	case *StrValue:
		return av.Val == b.(*StrValue).Val
	case *ListValue:
		bv, ok := b.(*ListValue)
		return ok && av == bv
	case *DictValue:
		bv, ok := b.(*DictValue)
		return ok && av == bv
	case *InstanceValue:
		bv, ok := b.(*InstanceValue)
		return ok && av == bv
	case *ObjectValue:
		bv, ok := b.(*ObjectValue)
		return ok && av == bv
	case *FunctionValue:
		bv, ok := b.(*FunctionValue)
		return ok && av == bv
	case NativeFunctionValue:
		bv, ok := b.(NativeFunctionValue)
		return ok && av.FnName == bv.FnName
	default:
		return false
	}
}

// TypeName reports the name returned by type(): the kind name, or the
// declaring object's name for instances.
func TypeName(v Value) string {
	if inst, ok := v.(*InstanceValue); ok {
		return inst.Object.Name
	}
	return v.Kind().String()
}

// FormatNum renders a Num, eliding the fractional part when the value is
// integral.
func FormatNum(n float64) string {
	if math.IsNaN(n) {
		return "NaN"
	}
	if math.IsInf(n, 1) {
		return "inf"
	}
	if math.IsInf(n, -1) {
		return "-inf"
	}
	if n == math.Trunc(n) && math.Abs(n) < 1e15 {
		return strconv.FormatFloat(n, 'f', 0, 64)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

// Format renders a value the way print and println display it.
func Format(v Value) string {
	switch val := v.(type) {
	case NullValue:
		return "null"
	case BoolValue:
		if val.Val {
			return "true"
		}
		return "false"
	case NumValue:
		return FormatNum(val.Val)
	case *StrValue:
		return val.Val
	case *ListValue:
		var b strings.Builder
		b.WriteByte('[')
		for i, el := range val.Elements {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(formatNested(el))
		}
		b.WriteByte(']')
		return b.String()
	case *DictValue:
		var b strings.Builder
		b.WriteByte('{')
		keys := val.Keys()
		values := val.Values()
		for i := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(formatNested(keys[i]))
			b.WriteString(": ")
			b.WriteString(formatNested(values[i]))
		}
		b.WriteByte('}')
		return b.String()
	case *FunctionValue:
		return "<fn " + val.Decl.Name + ">"
	case NativeFunctionValue:
		return "<native fn " + val.FnName + ">"
	case BoundMethodValue:
		return "<fn " + val.Method.Decl.Name + ">"
	case NativeBoundMethodValue:
		return "<native fn " + val.Method.FnName + ">"
	case *ObjectValue:
		return "<obj " + val.Name + ">"
	case *InstanceValue:
		return "<" + val.Object.Name + " instance>"
	default:
		return "<unknown>"
	}
}

// formatNested quotes strings inside containers so [1, "a"] reads back.
func formatNested(v Value) string {
	if s, ok := v.(*StrValue); ok {
		return strconv.Quote(s.Val)
	}
	return Format(v)
}
