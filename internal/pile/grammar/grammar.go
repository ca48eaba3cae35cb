package grammar

import (
	"fmt"

	"github.com/pile-lang/rusted-pile/internal/pile/util"
)

// Grammar is an ordered list of productions plus the non-terminal
// universe they're built from. FIRST and FOLLOW are computed lazily by
// ComputeFirst/ComputeFollow and cached here; before that they're empty,
// matching the grammar-text parser's contract of producing a Grammar
// with empty FIRST/FOLLOW.
type Grammar struct {
	Start       Symbol
	Productions []Production

	nonTerminals util.StringSet
	terminals    util.StringSet

	first  map[string]util.StringSet
	follow map[string]util.StringSet
}

// New creates an empty grammar with the given start symbol name.
func New(start string) *Grammar {
	return &Grammar{
		Start:        NonTerminal(start),
		nonTerminals: util.NewStringSet(start),
		terminals:    util.NewStringSet(),
		first:        map[string]util.StringSet{},
		follow:       map[string]util.StringSet{},
	}
}

// AddProduction appends a production to the grammar and registers the
// non-terminal/terminal symbols it introduces.
func (g *Grammar) AddProduction(lhs Symbol, rhs []Symbol) {
	g.nonTerminals.Add(lhs.Name)
	for _, s := range rhs {
		if s.IsNonTerminal() {
			g.nonTerminals.Add(s.Name)
		} else if s.IsTerminal() {
			g.terminals.Add(s.Name)
		}
	}
	g.Productions = append(g.Productions, Production{LHS: lhs, RHS: rhs})
}

// NonTerminals returns the set of declared non-terminal names.
func (g *Grammar) NonTerminals() util.StringSet { return g.nonTerminals }

// Terminals returns the set of declared terminal names.
func (g *Grammar) Terminals() util.StringSet { return g.terminals }

// RulesFor returns every production whose lhs is the named non-terminal,
// in declaration order.
func (g *Grammar) RulesFor(name string) []Production {
	var out []Production
	for _, p := range g.Productions {
		if p.LHS.Name == name {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks the invariants §3 requires of a (possibly
// not-yet-augmented) grammar: at least one production, and the first
// production's lhs is the declared start symbol.
func (g *Grammar) Validate() error {
	if len(g.Productions) == 0 {
		return fmt.Errorf("grammar has no productions")
	}
	if !g.Productions[0].LHS.Equal(g.Start) {
		return fmt.Errorf("first production's lhs %s does not match start symbol %s", g.Productions[0].LHS, g.Start)
	}
	return nil
}

// First returns the FIRST set of a single symbol: a terminal or ε is
// FIRST of itself; a non-terminal's FIRST must already have been
// computed by ComputeFirst.
func (g *Grammar) First(s Symbol) util.StringSet {
	if s.IsTerminal() {
		return util.NewStringSet(s.Name)
	}
	if s.IsEmpty() {
		return util.NewStringSet(Empty.Name)
	}
	if set, ok := g.first[s.Name]; ok {
		return set
	}
	return util.NewStringSet()
}

// FirstOfSequence computes FIRST of a symbol sequence (e.g. the β in a
// FOLLOW rule): concatenate FIRST sets symbol by symbol, stopping the
// moment a symbol's FIRST doesn't contain ε, and keep ε in the result
// only if every symbol in the sequence is nullable.
func (g *Grammar) FirstOfSequence(seq []Symbol) util.StringSet {
	out := util.NewStringSet()
	if len(seq) == 0 {
		out.Add(Empty.Name)
		return out
	}
	allNullable := true
	for _, sym := range seq {
		fi := g.First(sym)
		for _, t := range fi.Elements() {
			if t != Empty.Name {
				out.Add(t)
			}
		}
		if !fi.Has(Empty.Name) {
			allNullable = false
			break
		}
	}
	if allNullable {
		out.Add(Empty.Name)
	}
	return out
}

// ComputeFirst runs the §4.1 FIRST fixed-point iteration over every
// non-terminal in the grammar.
func (g *Grammar) ComputeFirst() {
	for nt := range g.nonTerminals {
		if _, ok := g.first[nt]; !ok {
			g.first[nt] = util.NewStringSet()
		}
	}

	changed := true
	for changed {
		changed = false
		for _, p := range g.Productions {
			a := p.LHS.Name
			if len(p.RHS) == 0 {
				if g.first[a].Add(Empty.Name) {
					changed = true
				}
				continue
			}
			allNullable := true
			for _, sym := range p.RHS {
				fi := g.First(sym)
				for _, t := range fi.Elements() {
					if t != Empty.Name {
						if g.first[a].Add(t) {
							changed = true
						}
					}
				}
				if !fi.Has(Empty.Name) {
					allNullable = false
					break
				}
			}
			if allNullable {
				if g.first[a].Add(Empty.Name) {
					changed = true
				}
			}
		}
	}
}

// ComputeFollow runs the §4.1 FOLLOW fixed-point iteration. ComputeFirst
// must have been called first.
func (g *Grammar) ComputeFollow() {
	for nt := range g.nonTerminals {
		if _, ok := g.follow[nt]; !ok {
			g.follow[nt] = util.NewStringSet()
		}
	}
	g.follow[g.Start.Name].Add(End.Name)

	changed := true
	for changed {
		changed = false
		for _, p := range g.Productions {
			for i, sym := range p.RHS {
				if !sym.IsNonTerminal() {
					continue
				}
				beta := p.RHS[i+1:]
				firstBeta := g.FirstOfSequence(beta)
				for _, t := range firstBeta.Elements() {
					if t != Empty.Name {
						if g.follow[sym.Name].Add(t) {
							changed = true
						}
					}
				}
				if len(beta) == 0 || firstBeta.Has(Empty.Name) {
					if g.follow[sym.Name].AddAll(g.follow[p.LHS.Name]) {
						changed = true
					}
				}
			}
		}
	}
}

// Follow returns the FOLLOW set of a non-terminal by name.
func (g *Grammar) Follow(name string) util.StringSet {
	if set, ok := g.follow[name]; ok {
		return set
	}
	return util.NewStringSet()
}

// Augmented returns a new grammar with a synthetic S' -> S production
// prepended. Production index k in the returned grammar's Productions
// corresponds to original production k-1 for k >= 1 — the table builder
// relies on this shift to recover "the production's index in the
// original (unaugmented) list" required by §4.3's R2 rule.
func (g *Grammar) Augmented() *Grammar {
	primed := g.Start.Name + "'"
	ag := New(primed)
	ag.nonTerminals = g.nonTerminals.Copy()
	ag.nonTerminals.Add(primed)
	ag.terminals = g.terminals.Copy()
	ag.first = g.first
	ag.follow = g.follow

	ag.Productions = append(ag.Productions, Production{
		LHS: NonTerminal(primed),
		RHS: []Symbol{g.Start},
	})
	ag.Productions = append(ag.Productions, g.Productions...)
	return ag
}

// OriginalIndex maps a production index in an augmented grammar back to
// its index in the pre-augmentation list (index 0, the synthetic start
// rule, has no original counterpart).
func OriginalIndex(augmentedIndex int) int {
	return augmentedIndex - 1
}
