// Package automaton builds the canonical LR(0) viable-prefix automaton:
// item-set closure, GOTO, and the worklist-driven state numbering, the
// way internal/ictiobus/automaton builds its NFA-then-subset-construction
// DFA — except here items are closed directly into DFA states, since the
// closure operation is itself deterministic (no epsilon-choice to
// resolve) once written over dotted productions instead of raw symbols.
package automaton

import (
	"sort"
	"strings"

	"github.com/pile-lang/rusted-pile/internal/pile/grammar"
)

// State is one item set in the automaton: its kernel (the seed items that
// define its identity), the full closure, and its outgoing transitions.
type State struct {
	ID          int
	Kernel      []grammar.DottedProduction
	Closure     []grammar.DottedProduction
	Transitions map[string]int // symbol name -> target state id
}

// Automaton is the indexable collection of states built from an
// augmented grammar; states reference each other by id through
// Transitions, never by pointer, per §9's guidance on cyclic structures.
type Automaton struct {
	States []*State
	Start  int
}

// kernelKey canonicalizes a kernel for the dedup lookup: two item sets
// with identical kernels must share an id.
func kernelKey(items []grammar.DottedProduction) string {
	strs := make([]string, len(items))
	for i, it := range items {
		strs[i] = it.String()
	}
	sort.Strings(strs)
	return strings.Join(strs, "\x00")
}

func sortItems(items []grammar.DottedProduction) []grammar.DottedProduction {
	sorted := make([]grammar.DottedProduction, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].String() < sorted[j].String() })
	return sorted
}

// Closure computes the closure of a kernel item set per §4.2: for every
// item with the dot before a non-terminal B, add B -> ·γ for every
// production of B, to a fixed point.
func Closure(g *grammar.Grammar, kernel []grammar.DottedProduction) []grammar.DottedProduction {
	have := map[string]bool{}
	var out []grammar.DottedProduction

	add := func(it grammar.DottedProduction) bool {
		key := it.String()
		if have[key] {
			return false
		}
		have[key] = true
		out = append(out, it)
		return true
	}

	for _, it := range kernel {
		add(it)
	}

	changed := true
	for changed {
		changed = false
		for _, it := range out {
			sym, ok := it.SymbolAfterDot()
			if !ok || !sym.IsNonTerminal() {
				continue
			}
			for _, p := range g.RulesFor(sym.Name) {
				if add(grammar.AtStart(p)) {
					changed = true
				}
			}
		}
	}
	return sortItems(out)
}

// Goto computes the (unclosed) kernel of GOTO(I, X): every item in I's
// closure with the dot immediately before X, advanced by one.
func Goto(closure []grammar.DottedProduction, symbolName string) []grammar.DottedProduction {
	var kernel []grammar.DottedProduction
	for _, it := range closure {
		sym, ok := it.SymbolAfterDot()
		if !ok || sym.Name != symbolName {
			continue
		}
		kernel = append(kernel, it.Advance())
	}
	return sortItems(kernel)
}

// Build constructs the canonical LR(0) automaton for an augmented
// grammar, per §4.2: kernel of state 0 is {S' -> ·S}; states are
// discovered by a worklist, numbered on first sight, and deduplicated by
// kernel equality.
func Build(augmented *grammar.Grammar) *Automaton {
	start := grammar.AtStart(augmented.Productions[0])
	startKernel := sortItems([]grammar.DottedProduction{start})

	a := &Automaton{Start: 0}
	idOf := map[string]int{}

	newState := func(kernel []grammar.DottedProduction) *State {
		closure := Closure(augmented, kernel)
		s := &State{
			ID:          len(a.States),
			Kernel:      kernel,
			Closure:     closure,
			Transitions: map[string]int{},
		}
		a.States = append(a.States, s)
		idOf[kernelKey(kernel)] = s.ID
		return s
	}

	s0 := newState(startKernel)
	worklist := []*State{s0}

	for len(worklist) > 0 {
		cur := worklist[0]
		worklist = worklist[1:]

		symbols := map[string]bool{}
		var symOrder []string
		for _, it := range cur.Closure {
			sym, ok := it.SymbolAfterDot()
			if !ok {
				continue
			}
			if !symbols[sym.Name] {
				symbols[sym.Name] = true
				symOrder = append(symOrder, sym.Name)
			}
		}
		sort.Strings(symOrder)

		for _, symName := range symOrder {
			kernel := Goto(cur.Closure, symName)
			if len(kernel) == 0 {
				continue
			}
			key := kernelKey(kernel)
			id, exists := idOf[key]
			if !exists {
				target := newState(kernel)
				id = target.ID
				worklist = append(worklist, target)
			}
			cur.Transitions[symName] = id
		}
	}

	return a
}
