package bytecode

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoad_RoundTripsInstructions(t *testing.T) {
	assert := assert.New(t)

	instrs := []Instr{
		{Op: OpPushInt, Int: 2},
		{Op: OpPushInt, Int: 3},
		{Op: OpAdd},
		{Op: OpDump},
	}

	path := filepath.Join(t.TempDir(), "program.pbc")
	require.NoError(t, Save(path, instrs))

	got, buildID, err := Load(path)
	require.NoError(t, err)
	assert.NotEqual([16]byte{}, [16]byte(buildID))
	assert.Equal(instrs, got)
}

func TestSaveLoad_RoundTripsBranchTargets(t *testing.T) {
	assert := assert.New(t)

	instrs := []Instr{
		{Op: OpPushBool, Bool: true},
		{Op: OpJumpIfNotTrue, Target: 4},
		{Op: OpPushInt, Int: 1},
		{Op: OpJump, Target: 5},
		{Op: OpPushInt, Int: 0},
		{Op: OpIgnore},
	}

	path := filepath.Join(t.TempDir(), "branch.pbc")
	require.NoError(t, Save(path, instrs))

	got, _, err := Load(path)
	require.NoError(t, err)
	assert.Equal(instrs, got)
}

func TestNewProgram_StampsDistinctBuildIDs(t *testing.T) {
	a := NewProgram(nil)
	b := NewProgram(nil)
	assert.NotEqual(t, a.BuildID, b.BuildID)
}
