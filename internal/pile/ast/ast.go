// Package ast lowers a parse tree into the stack-language AST (§4.5): a
// post-order walk over the parse tree drives an auxiliary node stack,
// mirroring the source language's own operational stack semantics,
// rather than simply mirroring the parse tree's nesting.
package ast

import (
	"github.com/pile-lang/rusted-pile/internal/pile/lex"
	"github.com/pile-lang/rusted-pile/internal/pile/parser"
	"github.com/pile-lang/rusted-pile/internal/pile/pilerr"
)

// NodeKind tags an AST node's role.
type NodeKind int

const (
	KindProgram NodeKind = iota
	KindLiteral
	KindStackOp
	KindArithmetic
	KindComparison
	KindIf
	KindElse
	KindEnd
)

// Node is one AST node. Children is ordered; for Arithmetic/Comparison
// it holds exactly [left, right]; for If it holds exactly [condition].
type Node struct {
	Kind     NodeKind
	Token    lex.Token
	Children []*Node
}

// Lower walks tree in post-order and returns the synthetic Program root.
func Lower(tree *parser.Tree) (*Node, error) {
	var stack []*Node

	var walk func(t *parser.Tree) error
	walk = func(t *parser.Tree) error {
		if !t.Terminal {
			for _, c := range t.Children {
				if err := walk(c); err != nil {
					return err
				}
			}
			return nil
		}

		tok := t.Token
		switch tok.Kind {
		case lex.KindInteger, lex.KindFloat, lex.KindBoolean, lex.KindString:
			stack = append(stack, &Node{Kind: KindLiteral, Token: tok})

		case lex.KindStackOps:
			stack = append(stack, &Node{Kind: KindStackOp, Token: tok})

		case lex.KindArithmeticOp:
			right, left, err := popTwo(&stack, tok)
			if err != nil {
				return err
			}
			stack = append(stack, &Node{Kind: KindArithmetic, Token: tok, Children: []*Node{left, right}})

		case lex.KindComparisonOp:
			right, left, err := popTwo(&stack, tok)
			if err != nil {
				return err
			}
			stack = append(stack, &Node{Kind: KindComparison, Token: tok, Children: []*Node{left, right}})

		case lex.KindKeywordIf:
			if len(stack) < 1 {
				return pilerr.NewEmitError("if with no condition on the stack", pilerr.ErrUnsupportedAstNode)
			}
			cond := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			stack = append(stack, &Node{Kind: KindIf, Token: tok, Children: []*Node{cond}})

		case lex.KindKeywordElse:
			stack = append(stack, &Node{Kind: KindElse, Token: tok})

		case lex.KindKeywordEnd:
			stack = append(stack, &Node{Kind: KindEnd, Token: tok})

		default:
			return pilerr.NewEmitError("unsupported token "+string(tok.Kind), pilerr.ErrUnsupportedAstNode)
		}
		return nil
	}

	if err := walk(tree); err != nil {
		return nil, err
	}

	return &Node{Kind: KindProgram, Children: stack}, nil
}

// popTwo pops the top two nodes off *stack, returning (right, left) in
// source order: right was pushed last (the operand nearest the
// operator), left before it — e.g. for "7 2 %", right is the node for 2
// and left the node for 7, so the emitted bytecode computes 7 % 2.
func popTwo(stack *[]*Node, tok lex.Token) (right, left *Node, err error) {
	s := *stack
	if len(s) < 2 {
		return nil, nil, pilerr.NewEmitError("operator with fewer than two operands on the stack", pilerr.ErrUnsupportedAstNode)
	}
	right = s[len(s)-1]
	left = s[len(s)-2]
	*stack = s[:len(s)-2]
	return right, left, nil
}
