package bytecode

import (
	"github.com/pile-lang/rusted-pile/internal/pile/ast"
	"github.com/pile-lang/rusted-pile/internal/pile/lex"
	"github.com/pile-lang/rusted-pile/internal/pile/pilerr"
	"github.com/pile-lang/rusted-pile/internal/pile/util"
)

// emitter owns the growing instruction sequence and the stack of
// pending branch-patch sites, per §4.6.
type emitter struct {
	instrs  []Instr
	patches util.Stack[int]
}

// Emit lowers an AST Program node into a flat instruction sequence with
// every Jump/JumpIfNotTrue target resolved to a valid instruction index.
func Emit(program *ast.Node) ([]Instr, error) {
	e := &emitter{}
	if err := e.walk(program); err != nil {
		return nil, err
	}
	if !e.patches.Empty() {
		return nil, pilerr.NewEmitError("if with no matching end", pilerr.ErrUnmatchedEnd)
	}
	return e.instrs, nil
}

const unsetTarget = -1

func (e *emitter) emit(i Instr) {
	e.instrs = append(e.instrs, i)
}

func (e *emitter) here() int {
	return len(e.instrs)
}

func (e *emitter) walk(n *ast.Node) error {
	switch n.Kind {
	case ast.KindProgram:
		for _, c := range n.Children {
			if err := e.walk(c); err != nil {
				return err
			}
		}

	case ast.KindLiteral:
		return e.emitLiteral(n)

	case ast.KindStackOp:
		switch n.Token.Operator {
		case "dump":
			e.emit(Instr{Op: OpDump})
		case "dup":
			e.emit(Instr{Op: OpDup})
		case "drop":
			e.emit(Instr{Op: OpPop})
		default:
			return pilerr.NewEmitError("unknown stack op "+n.Token.Operator, pilerr.ErrUnsupportedAstNode)
		}

	case ast.KindArithmetic:
		if err := e.walk(n.Children[0]); err != nil {
			return err
		}
		if err := e.walk(n.Children[1]); err != nil {
			return err
		}
		op, err := arithmeticOp(n.Token.Operator)
		if err != nil {
			return err
		}
		e.emit(Instr{Op: op})

	case ast.KindComparison:
		if err := e.walk(n.Children[0]); err != nil {
			return err
		}
		if err := e.walk(n.Children[1]); err != nil {
			return err
		}
		op, err := comparisonOp(n.Token.Operator)
		if err != nil {
			return err
		}
		e.emit(Instr{Op: op})

	case ast.KindIf:
		if err := e.walk(n.Children[0]); err != nil {
			return err
		}
		e.patches.Push(e.here())
		e.emit(Instr{Op: OpJumpIfNotTrue, Target: unsetTarget})

	case ast.KindElse:
		p, ok := e.patches.Pop()
		if !ok {
			return pilerr.NewEmitError("else with no matching if", pilerr.ErrUnmatchedElse)
		}
		jumpSite := e.here()
		e.emit(Instr{Op: OpJump, Target: unsetTarget})
		e.instrs[p].Target = e.here()
		e.patches.Push(jumpSite)

	case ast.KindEnd:
		p, ok := e.patches.Pop()
		if !ok {
			return pilerr.NewEmitError("end with no matching if", pilerr.ErrUnmatchedEnd)
		}
		e.instrs[p].Target = e.here()
		e.emit(Instr{Op: OpIgnore})

	default:
		return pilerr.NewEmitError("unrecognized AST node", pilerr.ErrUnsupportedAstNode)
	}
	return nil
}

func (e *emitter) emitLiteral(n *ast.Node) error {
	switch n.Token.Kind {
	case lex.KindInteger:
		e.emit(Instr{Op: OpPushInt, Int: n.Token.IntVal})
	case lex.KindFloat:
		e.emit(Instr{Op: OpPushFloat, Float: n.Token.FloatVal})
	case lex.KindString:
		e.emit(Instr{Op: OpPushStr, Str: n.Token.StrVal})
	case lex.KindBoolean:
		e.emit(Instr{Op: OpPushBool, Bool: n.Token.BoolVal})
	default:
		return pilerr.NewEmitError("unsupported literal kind "+string(n.Token.Kind), pilerr.ErrUnsupportedAstNode)
	}
	return nil
}

func arithmeticOp(operator string) (Op, error) {
	switch operator {
	case "+":
		return OpAdd, nil
	case "-":
		return OpSub, nil
	case "*":
		return OpMul, nil
	case "/":
		return OpDiv, nil
	case "%":
		return OpMod, nil
	}
	return 0, pilerr.NewEmitError("unknown arithmetic operator "+operator, pilerr.ErrUnsupportedAstNode)
}

func comparisonOp(operator string) (Op, error) {
	switch operator {
	case "=":
		return OpEq, nil
	case "<>":
		return OpNeq, nil
	case "<":
		return OpLt, nil
	case ">":
		return OpGt, nil
	case "<=":
		return OpLeq, nil
	case ">=":
		return OpGeq, nil
	}
	return 0, pilerr.NewEmitError("unknown comparison operator "+operator, pilerr.ErrUnsupportedAstNode)
}
