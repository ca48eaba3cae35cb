package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pile-lang/rusted-pile/internal/pile/bytecode"
	"github.com/pile-lang/rusted-pile/internal/pile/config"
	"github.com/pile-lang/rusted-pile/internal/pile/vm"
)

// TestCompileRunDisasm_FullPipeline exercises compile -> run -> disasm end
// to end through a temp source file and temp bytecode artifact, the way a
// user invoking the three subcommands in sequence would.
func TestCompileRunDisasm_FullPipeline(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	srcPath := filepath.Join(dir, "prog.pile")
	outPath := filepath.Join(dir, "prog.pbc")

	require.NoError(t, os.WriteFile(srcPath, []byte("1 2 < if 42 dump else 99 dump end"), 0o644))

	require.NoError(t, runCompile(srcPath, "vm", outPath, "", config.Default()))

	instrs, buildID, err := bytecode.Load(outPath)
	require.NoError(t, err)
	assert.NotEmpty(instrs)
	assert.NotEmpty(buildID.String())

	var out bytes.Buffer
	m := vm.New(&out)
	require.NoError(t, m.Execute(instrs))
	assert.Equal("42\n", out.String())

	disasm := bytecode.Disassemble(instrs)
	assert.Contains(disasm, "JumpIfNotTrue")
}

func TestRunCompile_UnknownBackendFails(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "prog.pile")
	require.NoError(t, os.WriteFile(srcPath, []byte("1"), 0o644))

	err := runCompile(srcPath, "nonexistent", filepath.Join(dir, "out.pbc"), "", config.Default())
	require.Error(t, err)
}

func TestRunRun_MissingFileFails(t *testing.T) {
	err := runRun("/nonexistent/path/does/not/exist.pbc")
	require.Error(t, err)
}
