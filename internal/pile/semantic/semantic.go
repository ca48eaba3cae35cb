// Package semantic is the symbol-table analyzer: present in the system
// this was distilled from, but not wired into the compile path there
// either, and out of scope here per §1. Carried as an unwired stub so
// the module layout matches the full pipeline's shape.
package semantic

import (
	"errors"

	"github.com/pile-lang/rusted-pile/internal/pile/ast"
)

// ErrNotImplemented is returned unconditionally; no caller in cmd/pilec
// invokes Analyze.
var ErrNotImplemented = errors.New("semantic: analysis not implemented")

// Table would hold resolved symbol bindings; it is never populated.
type Table struct{}

// Analyze is a stub matching the shape a symbol-table pass would have.
func Analyze(*ast.Node) (*Table, error) {
	return nil, ErrNotImplemented
}
