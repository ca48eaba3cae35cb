// Package codegen models backend selection as a small tagged dispatch
// over named backends (§9's "dynamic dispatch over code generators" —
// modeled as a switch at the emit site, not an open-ended plugin
// interface).
package codegen

import (
	"errors"

	"github.com/pile-lang/rusted-pile/internal/pile/ast"
	"github.com/pile-lang/rusted-pile/internal/pile/bytecode"
)

// ErrUnsupportedBackend is returned by backends that are registered by
// name but not actually implemented in this core.
var ErrUnsupportedBackend = errors.New("codegen: backend not implemented")

// Backend turns a lowered AST into a bytecode instruction sequence.
type Backend interface {
	Name() string
	Generate(program *ast.Node) ([]bytecode.Instr, error)
}

type vmBackend struct{}

func (vmBackend) Name() string { return "vm" }

func (vmBackend) Generate(program *ast.Node) ([]bytecode.Instr, error) {
	return bytecode.Emit(program)
}

// nativeBackend is the native-IR backend stub: out of scope per §1; it
// generates nothing and returns ErrUnsupportedBackend for every program.
type nativeBackend struct{ name string }

func (b nativeBackend) Name() string { return b.name }

func (b nativeBackend) Generate(*ast.Node) ([]bytecode.Instr, error) {
	return nil, ErrUnsupportedBackend
}

// Select resolves a backend by name, as named in the `compile --codegen`
// flag.
func Select(name string) (Backend, error) {
	switch name {
	case "", "vm":
		return vmBackend{}, nil
	case "llvm", "native":
		return nativeBackend{name: name}, nil
	default:
		return nil, errors.New("codegen: unknown backend " + name)
	}
}
