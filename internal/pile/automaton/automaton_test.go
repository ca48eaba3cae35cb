package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pile-lang/rusted-pile/internal/pile/grammar"
)

func buildExprGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	g, err := grammar.ParseText(`
		<E> -> <T> plus <E> | <T> ;
		<T> -> num ;
	`)
	require.NoError(t, err)
	g.ComputeFirst()
	g.ComputeFollow()
	return g
}

func TestBuild_StartStateKernelIsAugmentedStartItem(t *testing.T) {
	assert := assert.New(t)

	g := buildExprGrammar(t)
	ag := g.Augmented()
	auto := Build(ag)

	require.NotEmpty(t, auto.States)
	start := auto.States[auto.Start]
	require.Len(t, start.Kernel, 1)
	assert.Equal(0, start.Kernel[0].Dot)
	assert.Equal("E'", start.Kernel[0].Production.LHS.Name)
}

func TestBuild_IdenticalKernelsShareOneState(t *testing.T) {
	assert := assert.New(t)

	g := buildExprGrammar(t)
	auto := Build(g.Augmented())

	seen := map[string]int{}
	for _, s := range auto.States {
		key := kernelKey(s.Kernel)
		seen[key]++
	}
	for key, count := range seen {
		assert.Equal(1, count, "kernel %q appeared in more than one state", key)
	}
}

func TestBuild_TransitionsReferenceValidStateIDs(t *testing.T) {
	assert := assert.New(t)

	g := buildExprGrammar(t)
	auto := Build(g.Augmented())

	for _, s := range auto.States {
		for sym, target := range s.Transitions {
			assert.True(target >= 0 && target < len(auto.States), "transition on %s from state %d targets invalid id %d", sym, s.ID, target)
		}
	}
}

func TestClosure_AddsProductionsOfNonTerminalAfterDot(t *testing.T) {
	assert := assert.New(t)

	g := buildExprGrammar(t)
	ag := g.Augmented()

	kernel := []grammar.DottedProduction{grammar.AtStart(ag.Productions[0])}
	closure := Closure(ag, kernel)

	foundE := false
	foundT := false
	for _, it := range closure {
		if it.Production.LHS.Name == "E" && it.Dot == 0 {
			foundE = true
		}
		if it.Production.LHS.Name == "T" && it.Dot == 0 {
			foundT = true
		}
	}
	assert.True(foundE, "closure should add E's productions")
	assert.True(foundT, "closure should transitively add T's productions")
}
