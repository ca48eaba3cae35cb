// Package vm implements the typed-value stack interpreter (§4.7).
package vm

import "strconv"

// Kind tags a Value's case.
type Kind int

const (
	KindInt Kind = iota
	KindFloat32
	KindFloat64
	KindBool
	KindStr
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "Int"
	case KindFloat32:
		return "Float32"
	case KindFloat64:
		return "Float64"
	case KindBool:
		return "Bool"
	case KindStr:
		return "Str"
	default:
		return "Unknown"
	}
}

// Value is the VM's tagged value type. Ordering is defined only within
// like-kinded pairs, and arithmetic only on Int pairs; see vm.go.
type Value struct {
	Kind Kind
	I    int32
	F32  float32
	F64  float64
	B    bool
	S    string
}

func Int(v int32) Value     { return Value{Kind: KindInt, I: v} }
func Float32(v float32) Value { return Value{Kind: KindFloat32, F32: v} }
func Float64(v float64) Value { return Value{Kind: KindFloat64, F64: v} }
func Bool(v bool) Value     { return Value{Kind: KindBool, B: v} }
func Str(v string) Value    { return Value{Kind: KindStr, S: v} }

// String renders the canonical textual form Dump prints.
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(int64(v.I), 10)
	case KindFloat32:
		return strconv.FormatFloat(float64(v.F32), 'g', -1, 32)
	case KindFloat64:
		return strconv.FormatFloat(v.F64, 'g', -1, 64)
	case KindBool:
		if v.B {
			return "true"
		}
		return "false"
	case KindStr:
		return v.S
	default:
		return "?"
	}
}
