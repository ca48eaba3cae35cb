// Package parser implements the shift/reduce driver (§4.4): given a
// token stream and a parsetab.Table, produce a parse tree.
package parser

import (
	"strings"

	"github.com/pile-lang/rusted-pile/internal/pile/lex"
)

// Tree is a parse-tree node: either a terminal leaf wrapping the
// matched token, or a non-terminal node with an ordered child list.
type Tree struct {
	Terminal bool
	Symbol   string
	Token    lex.Token // meaningful only when Terminal
	Children []*Tree
}

// Span returns the left-most token's span beneath this node, used for
// diagnostics anchored to a tree position.
func (t *Tree) Span() lex.Span {
	if t.Terminal {
		return t.Token.Span
	}
	for _, c := range t.Children {
		return c.Span()
	}
	return lex.Span{}
}

// leveledStr renders the tree ascii-art style, one indent level per
// depth, matching internal/ictiobus/types.ParseTree's pretty-printer.
func (t *Tree) leveledStr(depth int) string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat("  ", depth))
	if t.Terminal {
		sb.WriteString(t.Token.String())
	} else {
		sb.WriteString("<" + t.Symbol + ">")
	}
	sb.WriteString("\n")
	for _, c := range t.Children {
		sb.WriteString(c.leveledStr(depth + 1))
	}
	return sb.String()
}

func (t *Tree) String() string {
	return t.leveledStr(0)
}
