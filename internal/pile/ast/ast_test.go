package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pile-lang/rusted-pile/internal/pile/grammar"
	"github.com/pile-lang/rusted-pile/internal/pile/lex"
	"github.com/pile-lang/rusted-pile/internal/pile/parser"
	"github.com/pile-lang/rusted-pile/internal/pile/parsetab"
)

func lower(t *testing.T, src string) *Node {
	t.Helper()

	g, err := grammar.ParseText(grammar.DefaultGrammarText)
	require.NoError(t, err)
	g.ComputeFirst()
	g.ComputeFollow()

	table, err := parsetab.Build(g)
	require.NoError(t, err)

	toks, err := lex.Lex(src)
	require.NoError(t, err)

	tree, err := parser.Parse(table, toks)
	require.NoError(t, err)

	n, err := Lower(tree)
	require.NoError(t, err)
	return n
}

func TestLower_LiteralsAndStackOpsBecomeLeaves(t *testing.T) {
	assert := assert.New(t)

	root := lower(t, "2 3 dup")
	require.Len(t, root.Children, 3)
	assert.Equal(KindLiteral, root.Children[0].Kind)
	assert.Equal(KindLiteral, root.Children[1].Kind)
	assert.Equal(KindStackOp, root.Children[2].Kind)
	assert.Equal("dup", root.Children[2].Token.Operator)
}

// TestLower_ArithmeticPopOrderMatches verifies popTwo's left/right
// convention against the worked example "7 2 %": right is whichever
// operand was pushed last (2), left the one before it (7).
func TestLower_ArithmeticPopOrderMatches(t *testing.T) {
	assert := assert.New(t)

	root := lower(t, "7 2 %")
	require.Len(t, root.Children, 1)
	node := root.Children[0]
	assert.Equal(KindArithmetic, node.Kind)
	require.Len(t, node.Children, 2)
	assert.EqualValues(7, node.Children[0].Token.IntVal)
	assert.EqualValues(2, node.Children[1].Token.IntVal)
}

func TestLower_ComparisonProducesLeftRightChildren(t *testing.T) {
	assert := assert.New(t)

	root := lower(t, "1 2 <")
	require.Len(t, root.Children, 1)
	node := root.Children[0]
	assert.Equal(KindComparison, node.Kind)
	require.Len(t, node.Children, 2)
	assert.EqualValues(1, node.Children[0].Token.IntVal)
	assert.EqualValues(2, node.Children[1].Token.IntVal)
}

func TestLower_IfPopsConditionFromStack(t *testing.T) {
	assert := assert.New(t)

	root := lower(t, "1 2 < if 42 dump else 99 dump end")
	require.Len(t, root.Children, 7)

	ifNode := root.Children[0]
	assert.Equal(KindIf, ifNode.Kind)
	require.Len(t, ifNode.Children, 1)
	assert.Equal(KindComparison, ifNode.Children[0].Kind)

	assert.Equal(KindLiteral, root.Children[1].Kind)
	assert.Equal(KindStackOp, root.Children[2].Kind)
	assert.Equal(KindElse, root.Children[3].Kind)
	assert.Equal(KindLiteral, root.Children[4].Kind)
	assert.Equal(KindStackOp, root.Children[5].Kind)
	assert.Equal(KindEnd, root.Children[6].Kind)
}

func TestLower_UnsupportedTokenFails(t *testing.T) {
	_, err := Lower(&parser.Tree{
		Terminal: true,
		Symbol:   "Identifier",
		Token:    lex.Token{Kind: lex.KindIdentifier},
	})
	require.Error(t, err)
}

func TestLower_ArithmeticWithTooFewOperandsFails(t *testing.T) {
	tree := &parser.Tree{
		Terminal: false,
		Symbol:   "ItemList",
		Children: []*parser.Tree{
			{Terminal: true, Symbol: "ArithmeticOp", Token: lex.Token{Kind: lex.KindArithmeticOp, Operator: "+"}},
		},
	}
	_, err := Lower(tree)
	require.Error(t, err)
}
