// Package parsetab builds the ACTION/GOTO tables from an LR(0) automaton
// by SLR(1) reduction rules, per §4.3, and fails the build on a
// shift/reduce or reduce/reduce conflict rather than letting a later
// entry silently overwrite an earlier one — the correctness-preserving
// choice §4.3 and §9 Open Question #1 call for over the reference
// behavior of overwriting cells.
package parsetab

import (
	"fmt"

	"github.com/dekarrin/rosed"

	"github.com/pile-lang/rusted-pile/internal/pile/automaton"
	"github.com/pile-lang/rusted-pile/internal/pile/grammar"
	"github.com/pile-lang/rusted-pile/internal/pile/pilerr"
)

// ActionType distinguishes the four kinds of ACTION table entry.
type ActionType int

const (
	ActionError ActionType = iota
	ActionShift
	ActionReduce
	ActionAccept
)

// Action is one ACTION table cell.
type Action struct {
	Type       ActionType
	ShiftState int
	ProdIndex  int // index into the original (unaugmented) production list
}

func (a Action) String() string {
	switch a.Type {
	case ActionShift:
		return fmt.Sprintf("shift %d", a.ShiftState)
	case ActionReduce:
		return fmt.Sprintf("reduce %d", a.ProdIndex)
	case ActionAccept:
		return "accept"
	default:
		return "error"
	}
}

// Table is the full ACTION/GOTO table for a grammar, plus a reference to
// the original production list reduce actions index into.
type Table struct {
	Grammar     *grammar.Grammar // unaugmented
	Automaton   *automaton.Automaton
	action      map[int]map[string]Action
	goTo        map[int]map[string]int
}

// Action returns the ACTION table entry for (state, terminal). A missing
// entry is ActionError, per the §4.3 error-fill rule.
func (t *Table) Action(state int, terminal string) Action {
	if row, ok := t.action[state]; ok {
		if a, ok := row[terminal]; ok {
			return a
		}
	}
	return Action{Type: ActionError}
}

// Goto returns the GOTO table entry for (state, nonTerminal). ok is false
// if no transition is recorded.
func (t *Table) Goto(state int, nonTerminal string) (int, bool) {
	if row, ok := t.goTo[state]; ok {
		if s, ok := row[nonTerminal]; ok {
			return s, true
		}
	}
	return 0, false
}

func (t *Table) setAction(state int, symbol string, a Action) error {
	if t.action[state] == nil {
		t.action[state] = map[string]Action{}
	}
	if existing, ok := t.action[state][symbol]; ok {
		if existing.Type == a.Type && existing.ShiftState == a.ShiftState && existing.ProdIndex == a.ProdIndex {
			return nil
		}
		sentinel := pilerr.ErrReduceReduceConflict
		if existing.Type == ActionShift || a.Type == ActionShift {
			sentinel = pilerr.ErrShiftReduceConflict
		}
		detail := fmt.Sprintf("%s vs %s", existing, a)
		return pilerr.NewTableBuildError(state, symbol, detail, sentinel)
	}
	t.action[state][symbol] = a
	return nil
}

func (t *Table) setGoto(state int, symbol string, target int) {
	if t.goTo[state] == nil {
		t.goTo[state] = map[string]int{}
	}
	t.goTo[state][symbol] = target
}

// Build constructs the SLR(1) ACTION/GOTO tables for g. g must already
// have FIRST/FOLLOW computed (ComputeFirst/ComputeFollow). Returns a
// TableBuildError on any shift/reduce or reduce/reduce conflict.
func Build(g *grammar.Grammar) (*Table, error) {
	augmented := g.Augmented()
	auto := automaton.Build(augmented)

	t := &Table{
		Grammar:   g,
		Automaton: auto,
		action:    map[int]map[string]Action{},
		goTo:      map[int]map[string]int{},
	}

	for _, state := range auto.States {
		// R1 shift, R4 goto: walk this state's transitions.
		for symName, target := range state.Transitions {
			sym := symbolIn(augmented, symName)
			if sym.IsTerminal() {
				if err := t.setAction(state.ID, symName, Action{Type: ActionShift, ShiftState: target}); err != nil {
					return nil, err
				}
			} else if sym.IsNonTerminal() {
				t.setGoto(state.ID, symName, target)
			}
		}

		// R2 reduce, R3 accept: walk dot-at-end items in this state's closure.
		for _, item := range state.Closure {
			if !item.AtEnd() {
				continue
			}
			augIndex := indexOfProduction(augmented, item.Production)
			if augIndex == 0 {
				// S' -> S . : accept on End.
				if err := t.setAction(state.ID, grammar.End.Name, Action{Type: ActionAccept}); err != nil {
					return nil, err
				}
				continue
			}
			origIndex := grammar.OriginalIndex(augIndex)
			for _, f := range g.Follow(item.Production.LHS.Name).Elements() {
				if err := t.setAction(state.ID, f, Action{Type: ActionReduce, ProdIndex: origIndex}); err != nil {
					return nil, err
				}
			}
		}
	}

	return t, nil
}

func symbolIn(g *grammar.Grammar, name string) grammar.Symbol {
	if g.NonTerminals().Has(name) {
		return grammar.NonTerminal(name)
	}
	return grammar.Terminal(name)
}

func indexOfProduction(g *grammar.Grammar, p grammar.Production) int {
	for i, candidate := range g.Productions {
		if candidate.Equal(p) {
			return i
		}
	}
	return -1
}

// String renders the ACTION/GOTO table as a word-wrapped grid, the way
// internal/ictiobus/parse's slrTable.String() does with rosed.
func (t *Table) String() string {
	terms := append(t.Grammar.Terminals().Sorted(), grammar.End.Name)
	nts := t.Grammar.NonTerminals().Sorted()

	header := []string{"state"}
	header = append(header, terms...)
	header = append(header, nts...)

	data := [][]string{header}
	for _, state := range t.Automaton.States {
		row := []string{fmt.Sprintf("%d", state.ID)}
		for _, term := range terms {
			row = append(row, t.Action(state.ID, term).String())
		}
		for _, nt := range nts {
			if target, ok := t.Goto(state.ID, nt); ok {
				row = append(row, fmt.Sprintf("%d", target))
			} else {
				row = append(row, "")
			}
		}
		data = append(data, row)
	}

	return rosed.Edit("").InsertTableOpts(0, data, 10, rosed.Options{
		TableHeaders:             true,
		NoTrailingLineSeparators: true,
	}).String()
}
