// Package controller renders audit results for the terminal.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "depver.dev/pkg/depver/internal/model"
)

// UI defines how check results and workspace listings are shown.
type UI interface {
	// DisplayMismatches prints every mismatching dependency with its versions.
	DisplayMismatches(ctx context.Context, dependencies []m.Dependency) error
	// DisplayFixed prints the dependencies that were converged and their target.
	DisplayFixed(ctx context.Context, dependencies []m.Dependency) error
	// DisplayPackages prints the discovered workspace packages.
	DisplayPackages(ctx context.Context, packages []*m.Package) error
}

// NewUI returns the UI for cmd's output. Emphasis is only rendered on a
// terminal so piped output stays plain.
func NewUI(cmd *cobra.Command, isTTY bool) UI {
	return NewSimpleUI(cmd, WithEmphasis(isTTY))
}

// IsTTY reports whether f is an interactive terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
