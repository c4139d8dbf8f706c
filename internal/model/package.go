// Package model defines the data structures shared by the workspace audit.
package model

import (
	"errors"
	"fmt"
	"path/filepath"
)

// RootPackageName labels a workspace root whose manifest has no name.
const RootPackageName = "(Root)"

// ManifestFileName is the file every workspace package carries.
const ManifestFileName = "package.json"

var (
	// ErrMissingName is returned for a non-root manifest without a name.
	ErrMissingName = errors.New("missing `name`")
	// ErrInvalidWorkspaces is returned when workspace declarations are malformed.
	ErrInvalidWorkspaces = errors.New("workspaces is not a string array")
)

// Path represents a file system path.
type Path string

// DependencyEntry is one name/version pair declared in a manifest bucket.
type DependencyEntry struct {
	Name    string
	Version string
}

// Manifest is the parsed content of a package.json that the audit cares about.
type Manifest struct {
	Name    string
	Version string

	// HasWorkspaces is true when the manifest declares a workspaces field,
	// even an empty one.
	HasWorkspaces bool
	Workspaces    []string

	// Buckets keeps entries in manifest order for each dependency type.
	Buckets map[DependencyType][]DependencyEntry

	EndsWithNewline bool
}

// Dependency returns the literal declared for name in the given bucket.
func (mf Manifest) Dependency(depType DependencyType, name string) (string, bool) {
	for _, entry := range mf.Buckets[depType] {
		if entry.Name == name {
			return entry.Version, true
		}
	}

	return "", false
}

// Package is one manifest location inside a workspace.
type Package struct {
	// Name is the manifest name, or RootPackageName for a nameless workspace root.
	Name string
	// Path is the absolute directory holding the manifest.
	Path Path
	// WorkspaceRoot is the absolute directory of the top-level workspace.
	WorkspaceRoot Path
	Manifest      Manifest
	// WorkspacePatterns lists the globs this package declares (workspaces or pnpm-workspace.yaml).
	WorkspacePatterns []string
}

// NewPackage builds a package record and resolves its display name.
func NewPackage(dir, workspaceRoot Path, manifest Manifest, patterns []string, isWorkspaceRoot bool) (*Package, error) {
	pkg := &Package{
		Path:              dir,
		WorkspaceRoot:     workspaceRoot,
		Manifest:          manifest,
		WorkspacePatterns: patterns,
	}

	switch {
	case manifest.Name != "":
		pkg.Name = manifest.Name
	case isWorkspaceRoot:
		pkg.Name = RootPackageName
	default:
		return nil, fmt.Errorf("%s %w", pkg.ManifestPath(), ErrMissingName)
	}

	return pkg, nil
}

// ManifestPath returns the absolute path of the package.json file.
func (p *Package) ManifestPath() Path {
	return Path(filepath.Join(string(p.Path), ManifestFileName))
}

// RelativePath returns the package directory relative to the workspace root,
// using forward slashes. The root itself is ".".
func (p *Package) RelativePath() Path {
	rel, err := filepath.Rel(string(p.WorkspaceRoot), string(p.Path))
	if err != nil {
		return p.Path
	}

	return Path(filepath.ToSlash(rel))
}

// IsWorkspaceRoot reports whether the package declares workspace members.
func (p *Package) IsWorkspaceRoot() bool {
	return len(p.WorkspacePatterns) > 0
}
