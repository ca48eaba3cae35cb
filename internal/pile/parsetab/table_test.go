package parsetab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pile-lang/rusted-pile/internal/pile/grammar"
)

func mustGrammar(t *testing.T, text string) *grammar.Grammar {
	t.Helper()
	g, err := grammar.ParseText(text)
	require.NoError(t, err)
	require.NoError(t, g.Validate())
	g.ComputeFirst()
	g.ComputeFollow()
	return g
}

func TestBuild_SimpleListGrammarHasNoConflicts(t *testing.T) {
	g := mustGrammar(t, `
		<Program> -> <ItemList> ;
		<ItemList> -> <ItemList> Item | ε ;
	`)

	table, err := Build(g)
	require.NoError(t, err)
	require.NotNil(t, table)
}

func TestBuild_DefaultGrammarHasNoConflicts(t *testing.T) {
	g := mustGrammar(t, grammar.DefaultGrammarText)

	table, err := Build(g)
	require.NoError(t, err)
	require.NotNil(t, table)

	// state 0 must have a valid action for every core item-kind terminal
	for _, term := range []string{"Integer", "Float", "Boolean", "String", "ArithmeticOp", "ComparisonOp", "StackOps", "If", "Else", "End"} {
		assert.NotEqual(t, ActionError, table.Action(0, term).Type, "state 0 has no action on %s", term)
	}
}

func TestBuild_ClassicNonSLR1GrammarFailsWithConflict(t *testing.T) {
	// Dragon-book's canonical example of a grammar that is LALR(1) but
	// not SLR(1): the '=' lookahead after reducing R -> L is ambiguous
	// between shift (continuing L = R) and reduce.
	g := mustGrammar(t, `
		<S> -> <L> assign <R> | <R> ;
		<L> -> star <R> | id ;
		<R> -> <L> ;
	`)

	_, err := Build(g)
	require.Error(t, err)
}

func TestAction_ErrorFillForUnpopulatedCell(t *testing.T) {
	g := mustGrammar(t, `<S> -> a ;`)
	table, err := Build(g)
	require.NoError(t, err)

	assert.Equal(t, ActionError, table.Action(0, "nonexistent-terminal").Type)
}
