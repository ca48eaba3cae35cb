package grammar

import "strings"

// Production is an ordered rule lhs -> rhs. lhs is always a NonTerminal.
// An ε production is represented by an empty rhs, never by a literal
// Empty symbol in the sequence.
type Production struct {
	LHS Symbol
	RHS []Symbol
}

func (p Production) String() string {
	if len(p.RHS) == 0 {
		return p.LHS.String() + " -> ε"
	}
	parts := make([]string, len(p.RHS))
	for i, s := range p.RHS {
		parts[i] = s.String()
	}
	return p.LHS.String() + " -> " + strings.Join(parts, " ")
}

// Equal reports whether two productions have the same lhs and rhs.
func (p Production) Equal(other Production) bool {
	if !p.LHS.Equal(other.LHS) || len(p.RHS) != len(other.RHS) {
		return false
	}
	for i := range p.RHS {
		if !p.RHS[i].Equal(other.RHS[i]) {
			return false
		}
	}
	return true
}

// DottedProduction pairs a Production with a dot position: the number of
// rhs symbols already matched, 0 <= Dot <= len(RHS).
type DottedProduction struct {
	Production Production
	Dot        int
}

// AtStart returns the dotted form of p with the dot at position 0.
func AtStart(p Production) DottedProduction {
	return DottedProduction{Production: p, Dot: 0}
}

// AtEnd reports whether the dot has consumed the whole rhs.
func (d DottedProduction) AtEnd() bool {
	return d.Dot >= len(d.Production.RHS)
}

// SymbolAfterDot returns the symbol immediately following the dot, if any.
func (d DottedProduction) SymbolAfterDot() (Symbol, bool) {
	if d.AtEnd() {
		return Symbol{}, false
	}
	return d.Production.RHS[d.Dot], true
}

// Advance returns a copy of d with the dot moved one position to the
// right. Calling Advance when AtEnd is true is a programmer error.
func (d DottedProduction) Advance() DottedProduction {
	return DottedProduction{Production: d.Production, Dot: d.Dot + 1}
}

func (d DottedProduction) String() string {
	var sb strings.Builder
	sb.WriteString(d.Production.LHS.String())
	sb.WriteString(" ->")
	for i, s := range d.Production.RHS {
		if i == d.Dot {
			sb.WriteString(" .")
		}
		sb.WriteString(" ")
		sb.WriteString(s.String())
	}
	if d.Dot == len(d.Production.RHS) {
		sb.WriteString(" .")
	}
	return sb.String()
}

// Equal compares dotted productions by production equality plus dot
// position; this, not pointer identity, is the notion of item equality
// the closure/GOTO and automaton dedup logic relies on.
func (d DottedProduction) Equal(other DottedProduction) bool {
	return d.Dot == other.Dot && d.Production.Equal(other.Production)
}
