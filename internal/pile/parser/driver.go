package parser

import (
	"github.com/pile-lang/rusted-pile/internal/pile/grammar"
	"github.com/pile-lang/rusted-pile/internal/pile/lex"
	"github.com/pile-lang/rusted-pile/internal/pile/parsetab"
	"github.com/pile-lang/rusted-pile/internal/pile/pilerr"
)

// Parse runs the shift/reduce driver (Algorithm 4.44 / §4.4) over
// tokens, ending in an EndOfInput-sentinel token, against table. On
// success it returns the single root of the parse tree.
func Parse(table *parsetab.Table, tokens []lex.Token) (*Tree, error) {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != lex.KindEndOfInput {
		tokens = append(tokens, lex.Token{Kind: lex.KindEndOfInput, Lexeme: "$"})
	}

	states := []int{0}
	var nodes []*Tree
	pos := 0
	cur := tokens[pos]

	advance := func() {
		pos++
		if pos < len(tokens) {
			cur = tokens[pos]
		}
	}

	for {
		s := states[len(states)-1]
		x := cur.GrammarTerminal()
		action := table.Action(s, x)

		switch action.Type {
		case parsetab.ActionShift:
			nodes = append(nodes, &Tree{Terminal: true, Symbol: x, Token: cur})
			states = append(states, action.ShiftState)
			advance()

		case parsetab.ActionReduce:
			prod := table.Grammar.Productions[action.ProdIndex]
			n := len(prod.RHS)

			var children []*Tree
			if n > 0 {
				children = append(children, nodes[len(nodes)-n:]...)
				nodes = nodes[:len(nodes)-n]
				states = states[:len(states)-n]
			}

			node := &Tree{Terminal: false, Symbol: prod.LHS.Name, Children: children}
			nodes = append(nodes, node)

			top := states[len(states)-1]
			target, ok := table.Goto(top, prod.LHS.Name)
			if !ok {
				return nil, pilerr.NewParseError(toPilerrSpan(cur.Span), x, expectedTerminals(table, top))
			}
			states = append(states, target)

		case parsetab.ActionAccept:
			if len(nodes) != 1 {
				return nil, pilerr.NewParseError(toPilerrSpan(cur.Span), x, nil)
			}
			return nodes[0], nil

		default:
			return nil, pilerr.NewParseError(toPilerrSpan(cur.Span), x, expectedTerminals(table, s))
		}
	}
}

// expectedTerminals lists every terminal whose ACTION entry in state s is
// Shift or Reduce, for the "expected one of ..." diagnostic §4.4/§7
// calls for, grounded on internal/ictiobus/parse/lr.go's
// getExpectedString/findExpectedTokens.
func expectedTerminals(table *parsetab.Table, s int) []string {
	var out []string
	terms := append(table.Grammar.Terminals().Sorted(), grammar.End.Name)
	for _, term := range terms {
		a := table.Action(s, term)
		if a.Type == parsetab.ActionShift || a.Type == parsetab.ActionReduce {
			out = append(out, term)
		}
	}
	return out
}

func toPilerrSpan(s lex.Span) pilerr.Span {
	return pilerr.Span(s)
}
