package grammar

import (
	_ "embed"
	"strings"
	"unicode"

	"github.com/pile-lang/rusted-pile/internal/pile/pilerr"
)

// DefaultGrammarText is the grammar that drives pilec's own SLR(1)
// frontend for the stack language, in the §4.1 BNF-like syntax.
//
//go:embed default.bnf
var DefaultGrammarText string

type gtokKind int

const (
	gtokNonTerminal gtokKind = iota
	gtokTerminal
	gtokArrow
	gtokPipe
	gtokEpsilon
	gtokSemicolon
)

type gtok struct {
	kind gtokKind
	text string
	line int
}

// lexGrammarText tokenizes the grammar-text syntax: <Name> for
// non-terminals, bare identifiers for terminals, -> | ; ε as punctuation.
// Whitespace is ignored; # to end of line is a comment.
func lexGrammarText(src string) ([]gtok, error) {
	var toks []gtok
	line := 1
	runes := []rune(src)
	i := 0
	for i < len(runes) {
		ch := runes[i]
		switch {
		case ch == '\n':
			line++
			i++
		case unicode.IsSpace(ch):
			i++
		case ch == '#':
			for i < len(runes) && runes[i] != '\n' {
				i++
			}
		case ch == '<':
			j := i + 1
			for j < len(runes) && runes[j] != '>' {
				j++
			}
			if j >= len(runes) {
				return nil, pilerr.NewGrammarParseError(line, "<", pilerr.ErrUnexpectedLexeme)
			}
			toks = append(toks, gtok{kind: gtokNonTerminal, text: string(runes[i+1 : j]), line: line})
			i = j + 1
		case ch == '-' && i+1 < len(runes) && runes[i+1] == '>':
			toks = append(toks, gtok{kind: gtokArrow, text: "->", line: line})
			i += 2
		case ch == '|':
			toks = append(toks, gtok{kind: gtokPipe, text: "|", line: line})
			i++
		case ch == ';':
			toks = append(toks, gtok{kind: gtokSemicolon, text: ";", line: line})
			i++
		case ch == 'ε':
			toks = append(toks, gtok{kind: gtokEpsilon, text: "ε", line: line})
			i++
		default:
			j := i
			for j < len(runes) && !unicode.IsSpace(runes[j]) && runes[j] != '<' && runes[j] != '>' &&
				runes[j] != '|' && runes[j] != ';' {
				j++
			}
			if j == i {
				return nil, pilerr.NewGrammarParseError(line, string(ch), pilerr.ErrUnexpectedLexeme)
			}
			word := string(runes[i:j])
			if word == "epsilon" {
				toks = append(toks, gtok{kind: gtokEpsilon, text: word, line: line})
			} else {
				toks = append(toks, gtok{kind: gtokTerminal, text: word, line: line})
			}
			i = j
		}
	}
	return toks, nil
}

// ParseText parses grammar text into a Grammar with empty FIRST/FOLLOW,
// per §4.1's parser contract. It fails if a terminal, ε, |, ->, or ;
// appears before any non-terminal rule has started, or on an
// unrecognized lexeme.
func ParseText(src string) (*Grammar, error) {
	toks, err := lexGrammarText(src)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, pilerr.NewGrammarParseError(1, "", pilerr.ErrUnexpectedLexeme)
	}

	var g *Grammar
	pos := 0

	for pos < len(toks) {
		t := toks[pos]
		if t.kind != gtokNonTerminal {
			switch t.kind {
			case gtokArrow:
				return nil, pilerr.NewGrammarParseError(t.line, t.text, pilerr.ErrOrphanArrow)
			case gtokPipe:
				return nil, pilerr.NewGrammarParseError(t.line, t.text, pilerr.ErrOrphanPipe)
			case gtokEpsilon:
				return nil, pilerr.NewGrammarParseError(t.line, t.text, pilerr.ErrOrphanEpsilon)
			case gtokSemicolon:
				return nil, pilerr.NewGrammarParseError(t.line, t.text, pilerr.ErrOrphanSemicolon)
			default:
				return nil, pilerr.NewGrammarParseError(t.line, t.text, pilerr.ErrTerminalBeforeNonTerminal)
			}
		}

		lhsName := t.text
		pos++
		if g == nil {
			g = New(lhsName)
		} else {
			g.nonTerminals.Add(lhsName)
		}

		if pos >= len(toks) || toks[pos].kind != gtokArrow {
			line := t.line
			text := ""
			if pos < len(toks) {
				line, text = toks[pos].line, toks[pos].text
			}
			return nil, pilerr.NewGrammarParseError(line, text, pilerr.ErrUnexpectedLexeme)
		}
		pos++

		for {
			rhs, next, err := parseAlternative(toks, pos)
			if err != nil {
				return nil, err
			}
			g.AddProduction(NonTerminal(lhsName), rhs)
			pos = next

			if pos >= len(toks) {
				return nil, pilerr.NewGrammarParseError(t.line, "", pilerr.ErrOrphanSemicolon)
			}
			if toks[pos].kind == gtokPipe {
				pos++
				continue
			}
			if toks[pos].kind == gtokSemicolon {
				pos++
				break
			}
			return nil, pilerr.NewGrammarParseError(toks[pos].line, toks[pos].text, pilerr.ErrUnexpectedLexeme)
		}
	}

	return g, nil
}

// parseAlternative parses one production's rhs, stopping at | or ;.
func parseAlternative(toks []gtok, pos int) ([]Symbol, int, error) {
	var rhs []Symbol
	for pos < len(toks) {
		t := toks[pos]
		switch t.kind {
		case gtokNonTerminal:
			rhs = append(rhs, NonTerminal(t.text))
			pos++
		case gtokTerminal:
			rhs = append(rhs, Terminal(t.text))
			pos++
		case gtokEpsilon:
			if len(rhs) != 0 {
				return nil, 0, pilerr.NewGrammarParseError(t.line, t.text, pilerr.ErrUnexpectedLexeme)
			}
			pos++
			return rhs, pos, nil
		case gtokPipe, gtokSemicolon:
			return rhs, pos, nil
		default:
			return nil, 0, pilerr.NewGrammarParseError(t.line, t.text, pilerr.ErrUnexpectedLexeme)
		}
	}
	return rhs, pos, nil
}

// String renders the grammar back out in its own external syntax,
// grouping alternatives of the same non-terminal onto one rule.
func (g *Grammar) String() string {
	var sb strings.Builder
	seen := map[string]bool{}
	for _, p := range g.Productions {
		if seen[p.LHS.Name] {
			continue
		}
		seen[p.LHS.Name] = true
		rules := g.RulesFor(p.LHS.Name)
		sb.WriteString(p.LHS.String())
		sb.WriteString(" ->")
		for i, r := range rules {
			if i > 0 {
				sb.WriteString(" |")
			}
			if len(r.RHS) == 0 {
				sb.WriteString(" ε")
				continue
			}
			for _, s := range r.RHS {
				sb.WriteString(" ")
				sb.WriteString(s.String())
			}
		}
		sb.WriteString(" ;\n")
	}
	return sb.String()
}
