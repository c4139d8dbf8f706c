package adapter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	m "depver.dev/pkg/depver/internal/model"
)

// PnpmWorkspaceFileName is the pnpm workspace declaration file.
const PnpmWorkspaceFileName = "pnpm-workspace.yaml"

// WorkspaceFileAdapter reads workspace declarations that live outside package.json.
type WorkspaceFileAdapter interface {
	// ReadPnpmWorkspace returns the `packages` list of dir's pnpm-workspace.yaml.
	// found is false when the file does not exist.
	ReadPnpmWorkspace(ctx context.Context, dir m.Path) (patterns []string, found bool, err error)
}

// LocalWorkspaceFileAdapter implements WorkspaceFileAdapter with yaml.v3.
type LocalWorkspaceFileAdapter struct{}

// NewLocalWorkspaceFileAdapter constructs a LocalWorkspaceFileAdapter.
func NewLocalWorkspaceFileAdapter() *LocalWorkspaceFileAdapter {
	return &LocalWorkspaceFileAdapter{}
}

type pnpmWorkspace struct {
	Packages yaml.Node `yaml:"packages"`
}

// ReadPnpmWorkspace parses pnpm-workspace.yaml in dir.
func (a *LocalWorkspaceFileAdapter) ReadPnpmWorkspace(ctx context.Context, dir m.Path) ([]string, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	path := filepath.Join(string(dir), PnpmWorkspaceFileName)

	// #nosec G304 - fixed file name inside a discovered workspace directory
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("read %s: %w", path, err)
	}

	patterns, err := ParsePnpmWorkspace(content)
	if err != nil {
		return nil, true, fmt.Errorf("%s: %w", path, err)
	}

	return patterns, true, nil
}

// ParsePnpmWorkspace extracts the `packages` list. A document without that
// key yields an empty list.
func ParsePnpmWorkspace(content []byte) ([]string, error) {
	var doc pnpmWorkspace
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	patterns := []string{}

	switch {
	case doc.Packages.Kind == 0:
		return patterns, nil
	case doc.Packages.Kind == yaml.ScalarNode && doc.Packages.ShortTag() == "!!null":
		return patterns, nil
	case doc.Packages.Kind == yaml.SequenceNode:
	default:
		return nil, fmt.Errorf("pnpm-workspace.yaml `packages`: %w", m.ErrInvalidWorkspaces)
	}

	for _, item := range doc.Packages.Content {
		if item.Kind != yaml.ScalarNode || item.ShortTag() != "!!str" {
			return nil, fmt.Errorf("pnpm-workspace.yaml `packages`: %w", m.ErrInvalidWorkspaces)
		}

		patterns = append(patterns, item.Value)
	}

	return patterns, nil
}
