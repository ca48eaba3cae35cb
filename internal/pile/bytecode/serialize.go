package bytecode

import (
	"fmt"
	"os"

	"github.com/dekarrin/rezi"
	"github.com/google/uuid"
)

// Program is the on-disk bytecode artifact: the instruction sequence
// plus a random build ID stamped in for provenance (purely diagnostic;
// the VM never inspects it).
type Program struct {
	BuildID uuid.UUID
	Instrs  []Instr
}

// NewProgram wraps instrs with a freshly generated build ID.
func NewProgram(instrs []Instr) Program {
	return Program{BuildID: uuid.New(), Instrs: instrs}
}

// MarshalBinary implements encoding.BinaryMarshaler by delegating to
// REZI's reflective struct encoder.
func (p Program) MarshalBinary() ([]byte, error) {
	return rezi.Enc(p)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (p *Program) UnmarshalBinary(data []byte) error {
	_, err := rezi.Dec(data, p)
	return err
}

// Save writes instrs to path as a single length-prefixed, self-describing
// REZI stream (§4.6's serialization contract: load(save(x)) = x).
func Save(path string, instrs []Instr) error {
	prog := NewProgram(instrs)
	data := rezi.EncBinary(prog)
	return os.WriteFile(path, data, 0o644)
}

// Load reads a bytecode file written by Save and returns its instruction
// sequence and build ID.
func Load(path string) ([]Instr, uuid.UUID, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("reading bytecode file: %w", err)
	}

	var prog Program
	n, err := rezi.DecBinary(raw, &prog)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("decoding bytecode file: %w", err)
	}
	if n != len(raw) {
		return nil, uuid.Nil, fmt.Errorf("bytecode file has %d trailing bytes", len(raw)-n)
	}

	return prog.Instrs, prog.BuildID, nil
}
