package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestLex_SimpleArithmeticProgram(t *testing.T) {
	assert := assert.New(t)

	toks, err := Lex("2 3 + dump")
	require.NoError(t, err)

	assert.Equal([]Kind{
		KindInteger, KindInteger, KindArithmeticOp, KindStackOps, KindEndOfInput,
	}, kinds(toks))

	assert.EqualValues(2, toks[0].IntVal)
	assert.EqualValues(3, toks[1].IntVal)
	assert.Equal("+", toks[2].Operator)
	assert.Equal("dump", toks[3].Operator)
}

func TestLex_IfElseEnd(t *testing.T) {
	assert := assert.New(t)

	toks, err := Lex("1 2 < if 42 dump else 99 dump end")
	require.NoError(t, err)

	assert.Equal([]Kind{
		KindInteger, KindInteger, KindComparisonOp, KindKeywordIf,
		KindInteger, KindStackOps, KindKeywordElse,
		KindInteger, KindStackOps, KindKeywordEnd, KindEndOfInput,
	}, kinds(toks))
}

func TestLex_FloatAndStringAndBool(t *testing.T) {
	assert := assert.New(t)

	toks, err := Lex(`3.14 "hi\n" true`)
	require.NoError(t, err)

	require.Len(t, toks, 4) // + EndOfInput
	assert.Equal(KindFloat, toks[0].Kind)
	assert.InDelta(3.14, toks[0].FloatVal, 0.001)
	assert.Equal(KindString, toks[1].Kind)
	assert.Equal("hi\n", toks[1].StrVal)
	assert.Equal(KindBoolean, toks[2].Kind)
	assert.True(toks[2].BoolVal)
}

func TestLex_CommentsAreSkipped(t *testing.T) {
	assert := assert.New(t)

	toks, err := Lex("1 \\ this is a comment\n2 +")
	require.NoError(t, err)

	assert.Equal([]Kind{KindInteger, KindInteger, KindArithmeticOp, KindEndOfInput}, kinds(toks))
}

func TestLex_UnsupportedCharacterFails(t *testing.T) {
	_, err := Lex("1 ~ 2")
	require.Error(t, err)
}

func TestLex_ComparisonOperatorVariants(t *testing.T) {
	assert := assert.New(t)

	toks, err := Lex("= <> < <= > >=")
	require.NoError(t, err)

	require.Len(t, toks, 7)
	for i, want := range []string{"=", "<>", "<", "<=", ">", ">="} {
		assert.Equal(want, toks[i].Operator)
	}
}
