package vm

import (
	"fmt"
	"io"

	"github.com/pile-lang/rusted-pile/internal/pile/bytecode"
	"github.com/pile-lang/rusted-pile/internal/pile/pilerr"
)

// VM is a single-threaded, typed-value stack interpreter. Its stack is
// owned exclusively by this instance; no sharing, per §5.
type VM struct {
	stack []Value
	out   io.Writer
}

// New creates a VM whose Dump output goes to w.
func New(w io.Writer) *VM {
	return &VM{out: w}
}

// Stack exposes the current value stack, bottom first, mostly for tests.
func (m *VM) Stack() []Value {
	return m.stack
}

func (m *VM) push(v Value) {
	m.stack = append(m.stack, v)
}

func (m *VM) pop(pc int) (Value, error) {
	if len(m.stack) == 0 {
		return Value{}, pilerr.NewVMRuntimeError(pc, "", pilerr.ErrEmptyStack)
	}
	n := len(m.stack) - 1
	v := m.stack[n]
	m.stack = m.stack[:n]
	return v, nil
}

// Execute runs instrs to completion: while pc < len(instrs), dispatch on
// instrs[pc], then unconditionally pc++ (§4.7). Jump targets use the
// `target - 1` convention so that increment lands exactly on target; a
// target at or past len(instrs) lets the loop condition fail next
// iteration, i.e. it halts, matching §4.7's "MAY treat such targets as a
// halt" allowance.
func (m *VM) Execute(instrs []bytecode.Instr) error {
	for pc := 0; pc < len(instrs); pc++ {
		instr := instrs[pc]

		switch instr.Op {
		case bytecode.OpPushInt:
			m.push(Int(instr.Int))
		case bytecode.OpPushFloat:
			m.push(Float32(instr.Float))
		case bytecode.OpPushStr:
			m.push(Str(instr.Str))
		case bytecode.OpPushBool:
			m.push(Bool(instr.Bool))

		case bytecode.OpPop:
			if _, err := m.pop(pc); err != nil {
				return err
			}

		case bytecode.OpDump:
			v, err := m.pop(pc)
			if err != nil {
				return err
			}
			fmt.Fprintln(m.out, v.String())

		case bytecode.OpDup:
			if len(m.stack) == 0 {
				return pilerr.NewVMRuntimeError(pc, "", pilerr.ErrEmptyStack)
			}
			m.push(m.stack[len(m.stack)-1])

		case bytecode.OpAdd, bytecode.OpSub, bytecode.OpMul, bytecode.OpDiv, bytecode.OpMod:
			if err := m.arithmetic(pc, instr.Op); err != nil {
				return err
			}

		case bytecode.OpEq, bytecode.OpNeq, bytecode.OpLt, bytecode.OpGt, bytecode.OpLeq, bytecode.OpGeq:
			if err := m.comparison(pc, instr.Op); err != nil {
				return err
			}

		case bytecode.OpJumpIfNotTrue:
			v, err := m.pop(pc)
			if err != nil {
				return err
			}
			if v.Kind != KindBool {
				return pilerr.NewVMRuntimeError(pc, "JumpIfNotTrue requires Bool", pilerr.ErrTypeMismatch)
			}
			if !v.B {
				pc = instr.Target - 1
			}

		case bytecode.OpJump:
			pc = instr.Target - 1

		case bytecode.OpIgnore:
			// no-op

		default:
			return pilerr.NewVMRuntimeError(pc, "unknown opcode", pilerr.ErrTypeMismatch)
		}
	}
	return nil
}

// arithmetic implements Add/Sub/Mul/Div/Mod: both operands must be Int.
func (m *VM) arithmetic(pc int, op bytecode.Op) error {
	rhs, err := m.pop(pc)
	if err != nil {
		return err
	}
	lhs, err := m.pop(pc)
	if err != nil {
		return err
	}
	if lhs.Kind != KindInt || rhs.Kind != KindInt {
		return pilerr.NewVMRuntimeError(pc, "arithmetic requires Int operands", pilerr.ErrTypeMismatch)
	}

	switch op {
	case bytecode.OpAdd:
		m.push(Int(lhs.I + rhs.I))
	case bytecode.OpSub:
		m.push(Int(lhs.I - rhs.I))
	case bytecode.OpMul:
		m.push(Int(lhs.I * rhs.I))
	case bytecode.OpDiv:
		if rhs.I == 0 {
			return pilerr.NewVMRuntimeError(pc, "", pilerr.ErrDivideByZero)
		}
		m.push(Int(lhs.I / rhs.I))
	case bytecode.OpMod:
		if rhs.I == 0 {
			return pilerr.NewVMRuntimeError(pc, "", pilerr.ErrModuloByZero)
		}
		m.push(Int(lhs.I % rhs.I))
	}
	return nil
}

// comparison implements Eq/Neq/Lt/Gt/Leq/Geq: both operands must share a
// Kind; ordering is defined within that kind.
func (m *VM) comparison(pc int, op bytecode.Op) error {
	rhs, err := m.pop(pc)
	if err != nil {
		return err
	}
	lhs, err := m.pop(pc)
	if err != nil {
		return err
	}
	if lhs.Kind != rhs.Kind {
		return pilerr.NewVMRuntimeError(pc, "comparison requires like-kinded operands", pilerr.ErrTypeMismatch)
	}

	cmp, err := compare(lhs, rhs)
	if err != nil {
		return pilerr.NewVMRuntimeError(pc, err.Error(), pilerr.ErrTypeMismatch)
	}

	var result bool
	switch op {
	case bytecode.OpEq:
		result = cmp == 0
	case bytecode.OpNeq:
		result = cmp != 0
	case bytecode.OpLt:
		result = cmp < 0
	case bytecode.OpGt:
		result = cmp > 0
	case bytecode.OpLeq:
		result = cmp <= 0
	case bytecode.OpGeq:
		result = cmp >= 0
	}
	m.push(Bool(result))
	return nil
}

// compare returns -1/0/1 for lhs compared to rhs. Both must share a Kind.
func compare(lhs, rhs Value) (int, error) {
	switch lhs.Kind {
	case KindInt:
		return cmpOrdered(lhs.I, rhs.I), nil
	case KindFloat32:
		return cmpOrdered(lhs.F32, rhs.F32), nil
	case KindFloat64:
		return cmpOrdered(lhs.F64, rhs.F64), nil
	case KindStr:
		return cmpOrdered(lhs.S, rhs.S), nil
	case KindBool:
		return cmpOrdered(boolRank(lhs.B), boolRank(rhs.B)), nil
	default:
		return 0, fmt.Errorf("unorderable value kind %s", lhs.Kind)
	}
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

type ordered interface {
	~int | ~int32 | ~float32 | ~float64 | ~string
}

func cmpOrdered[T ordered](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
