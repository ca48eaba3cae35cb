package bytecode

import (
	"fmt"

	"github.com/dekarrin/rosed"
)

// Disassemble renders instrs as an index/opcode/operand table, the
// emitter's forward-patch bookkeeping made inspectable without running
// the VM.
func Disassemble(instrs []Instr) string {
	data := [][]string{{"idx", "op", "operand"}}
	for i, ins := range instrs {
		data = append(data, []string{fmt.Sprintf("%d", i), ins.Op.String(), operandString(ins)})
	}
	return rosed.Edit("").InsertTableOpts(0, data, 20, rosed.Options{
		TableHeaders:             true,
		NoTrailingLineSeparators: true,
	}).String()
}

func operandString(ins Instr) string {
	switch ins.Op {
	case OpPushInt:
		return fmt.Sprintf("%d", ins.Int)
	case OpPushFloat:
		return fmt.Sprintf("%g", ins.Float)
	case OpPushStr:
		return fmt.Sprintf("%q", ins.Str)
	case OpPushBool:
		return fmt.Sprintf("%t", ins.Bool)
	case OpJump, OpJumpIfNotTrue:
		return fmt.Sprintf("-> %d", ins.Target)
	default:
		return ""
	}
}
