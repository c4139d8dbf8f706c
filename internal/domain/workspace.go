package domain

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"

	"depver.dev/pkg/depver/internal/adapter"
	m "depver.dev/pkg/depver/internal/model"
)

// DiscoverArgs holds the package ignore filters applied after discovery.
type DiscoverArgs struct {
	IgnorePackages        []string
	IgnorePackagePatterns []*regexp.Regexp
	IgnorePaths           []string
	IgnorePathPatterns    []*regexp.Regexp
}

// Discoverer expands a workspace root into its package records.
type Discoverer interface {
	Discover(ctx context.Context, root m.Path, args DiscoverArgs) ([]*m.Package, error)
}

type discoverer struct {
	adapter.ManifestAdapter
	adapter.GlobAdapter
	adapter.WorkspaceFileAdapter
}

// NewDiscoverer constructs a Discoverer backed by the provided adapters.
func NewDiscoverer(
	manifestAdapter adapter.ManifestAdapter,
	globAdapter adapter.GlobAdapter,
	workspaceFileAdapter adapter.WorkspaceFileAdapter,
) Discoverer {
	return &discoverer{
		ManifestAdapter:      manifestAdapter,
		GlobAdapter:          globAdapter,
		WorkspaceFileAdapter: workspaceFileAdapter,
	}
}

// Discover returns the root package followed by every workspace member,
// depth-first through nested workspaces in pattern order.
func (d *discoverer) Discover(ctx context.Context, root m.Path, args DiscoverArgs) ([]*m.Package, error) {
	absRoot, err := filepath.Abs(string(root))
	if err != nil {
		return nil, fmt.Errorf("resolve workspace root %s: %w", root, err)
	}

	workspaceRoot := m.Path(absRoot)

	if !d.Exists(ctx, workspaceRoot) {
		return nil, ErrNoManifest
	}

	manifest, patterns, isWorkspaceRoot, err := d.readManifest(ctx, workspaceRoot)
	if err != nil {
		return nil, err
	}

	if len(patterns) == 0 {
		return nil, ErrNotAWorkspace
	}

	rootPackage, err := m.NewPackage(workspaceRoot, workspaceRoot, manifest, patterns, isWorkspaceRoot)
	if err != nil {
		return nil, err
	}

	packages := []*m.Package{rootPackage}
	seen := map[m.Path]struct{}{workspaceRoot: {}}

	packages, err = d.collect(ctx, rootPackage, workspaceRoot, packages, seen)
	if err != nil {
		return nil, err
	}

	slog.Debug("discovered workspace packages", "root", workspaceRoot, "count", len(packages))

	return filterIgnoredPackages(packages, args)
}

// maxConcurrentManifestReads bounds the manifests read at once per level.
const maxConcurrentManifestReads = 8

// collect appends the members declared by parent, recursing into nested
// workspace roots with their own directory as base. Manifests of one level
// are read concurrently; the result and errors keep pattern order.
func (d *discoverer) collect(ctx context.Context, parent *m.Package, workspaceRoot m.Path, packages []*m.Package, seen map[m.Path]struct{}) ([]*m.Package, error) {
	dirs, err := d.resolvePatterns(ctx, parent.Path, parent.WorkspacePatterns)
	if err != nil {
		return nil, err
	}

	members := make([]m.Path, 0, len(dirs))

	for _, dir := range dirs {
		if _, ok := seen[dir]; ok {
			continue
		}

		if !d.Exists(ctx, dir) {
			continue
		}

		seen[dir] = struct{}{}
		members = append(members, dir)
	}

	loaded := make([]*m.Package, len(members))
	errs := make([]error, len(members))

	var group errgroup.Group
	group.SetLimit(maxConcurrentManifestReads)

	for i, dir := range members {
		i, dir := i, dir
		group.Go(func() error {
			loaded[i], errs[i] = d.loadPackage(ctx, dir, workspaceRoot)
			return nil
		})
	}

	_ = group.Wait()

	// Report the first failure in pattern order, not the first to finish.
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	for _, pkg := range loaded {
		packages = append(packages, pkg)

		if pkg.IsWorkspaceRoot() {
			slog.Debug("found nested workspace", "path", pkg.Path, "patterns", pkg.WorkspacePatterns)

			packages, err = d.collect(ctx, pkg, workspaceRoot, packages, seen)
			if err != nil {
				return nil, err
			}
		}
	}

	return packages, nil
}

// resolvePatterns turns workspace patterns into directories. Literal
// patterns map to one directory; "!" patterns exclude matches.
func (d *discoverer) resolvePatterns(ctx context.Context, base m.Path, patterns []string) ([]m.Path, error) {
	var includes, excludes []string

	for _, pattern := range patterns {
		if negated, ok := strings.CutPrefix(pattern, "!"); ok {
			excludes = append(excludes, negated)
			continue
		}

		includes = append(includes, pattern)
	}

	var dirs []m.Path

	for _, pattern := range includes {
		if !hasGlobMeta(pattern) {
			dirs = append(dirs, m.Path(filepath.Join(string(base), filepath.FromSlash(pattern))))
			continue
		}

		matches, err := d.Glob(ctx, base, pattern)
		if err != nil {
			return nil, err
		}

		dirs = append(dirs, matches...)
	}

	if len(excludes) == 0 {
		return dirs, nil
	}

	kept := dirs[:0]

	for _, dir := range dirs {
		excluded, err := d.isExcluded(base, dir, excludes)
		if err != nil {
			return nil, err
		}

		if !excluded {
			kept = append(kept, dir)
		}
	}

	return kept, nil
}

func (d *discoverer) isExcluded(base, dir m.Path, excludes []string) (bool, error) {
	rel, err := filepath.Rel(string(base), string(dir))
	if err != nil {
		return false, err
	}

	rel = filepath.ToSlash(rel)

	for _, pattern := range excludes {
		matched, err := d.Match(pattern, rel)
		if err != nil {
			return false, fmt.Errorf("invalid workspace pattern %q: %w", "!"+pattern, err)
		}

		if matched {
			return true, nil
		}
	}

	return false, nil
}

func (d *discoverer) loadPackage(ctx context.Context, dir, workspaceRoot m.Path) (*m.Package, error) {
	manifest, patterns, isWorkspaceRoot, err := d.readManifest(ctx, dir)
	if err != nil {
		return nil, err
	}

	return m.NewPackage(dir, workspaceRoot, manifest, patterns, isWorkspaceRoot)
}

// readManifest reads dir's manifest and its workspace patterns, taken from
// package.json or, failing that, pnpm-workspace.yaml.
func (d *discoverer) readManifest(ctx context.Context, dir m.Path) (m.Manifest, []string, bool, error) {
	manifest, err := d.Read(ctx, dir)
	if err != nil {
		return m.Manifest{}, nil, false, err
	}

	if manifest.HasWorkspaces {
		return manifest, manifest.Workspaces, true, nil
	}

	patterns, found, err := d.ReadPnpmWorkspace(ctx, dir)
	if err != nil {
		return m.Manifest{}, nil, false, err
	}

	return manifest, patterns, found, nil
}

func hasGlobMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// filterIgnoredPackages drops ignored packages. Every filter must match at
// least one package, otherwise the option is reported as ineffective.
func filterIgnoredPackages(packages []*m.Package, args DiscoverArgs) ([]*m.Package, error) {
	for _, name := range args.IgnorePackages {
		if !anyPackage(packages, func(p *m.Package) bool { return p.Name == name }) {
			return nil, &IneffectiveIgnoreFilterError{
				Option: "ignore-package",
				Value:  name,
				Reason: "this package was not found in the workspace",
			}
		}
	}

	for _, pattern := range args.IgnorePackagePatterns {
		if !anyPackage(packages, func(p *m.Package) bool { return pattern.MatchString(p.Name) }) {
			return nil, &IneffectiveIgnoreFilterError{
				Option: "ignore-package-pattern",
				Value:  pattern.String(),
				Reason: "no matching packages were found in the workspace",
			}
		}
	}

	for _, path := range args.IgnorePaths {
		if !anyPackage(packages, func(p *m.Package) bool { return strings.Contains(string(p.RelativePath()), path) }) {
			return nil, &IneffectiveIgnoreFilterError{
				Option: "ignore-path",
				Value:  path,
				Reason: "no matching paths were found in the workspace",
			}
		}
	}

	for _, pattern := range args.IgnorePathPatterns {
		if !anyPackage(packages, func(p *m.Package) bool { return pattern.MatchString(string(p.RelativePath())) }) {
			return nil, &IneffectiveIgnoreFilterError{
				Option: "ignore-path-pattern",
				Value:  pattern.String(),
				Reason: "no matching paths were found in the workspace",
			}
		}
	}

	kept := make([]*m.Package, 0, len(packages))

	for _, pkg := range packages {
		if isIgnoredPackage(pkg, args) {
			slog.Debug("ignoring package", "name", pkg.Name, "path", pkg.RelativePath())
			continue
		}

		kept = append(kept, pkg)
	}

	return kept, nil
}

func isIgnoredPackage(pkg *m.Package, args DiscoverArgs) bool {
	rel := string(pkg.RelativePath())

	for _, name := range args.IgnorePackages {
		if pkg.Name == name {
			return true
		}
	}

	for _, pattern := range args.IgnorePackagePatterns {
		if pattern.MatchString(pkg.Name) {
			return true
		}
	}

	for _, path := range args.IgnorePaths {
		if strings.Contains(rel, path) {
			return true
		}
	}

	for _, pattern := range args.IgnorePathPatterns {
		if pattern.MatchString(rel) {
			return true
		}
	}

	return false
}

func anyPackage(packages []*m.Package, match func(*m.Package) bool) bool {
	for _, pkg := range packages {
		if match(pkg) {
			return true
		}
	}

	return false
}
