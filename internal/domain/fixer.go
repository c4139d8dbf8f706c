package domain

import (
	"context"
	"log/slog"

	"depver.dev/pkg/depver/internal/adapter"
	m "depver.dev/pkg/depver/internal/model"
	"depver.dev/pkg/depver/pkg/jsonedit"
)

// FixArgs configures a fix run.
type FixArgs struct {
	// DepTypes selects the buckets written to. Empty selects the defaults.
	DepTypes []m.DependencyType
	// DryRun computes the outcome without touching any manifest.
	DryRun bool
}

// Fixer converges mismatching dependencies onto a single version.
type Fixer interface {
	FixVersionsMismatching(ctx context.Context, packages []*m.Package, mismatching []m.DependencyAndVersions, args FixArgs) (m.FixResult, error)
}

type fixer struct {
	adapter.ManifestAdapter
}

// NewFixer constructs a Fixer writing through the given manifest adapter.
func NewFixer(manifestAdapter adapter.ManifestAdapter) Fixer {
	return &fixer{ManifestAdapter: manifestAdapter}
}

// FixVersionsMismatching picks a target for each dependency and writes it to
// every selected bucket declaring a different literal. Dependencies whose
// target cannot be computed, or would exceed the local package version, are
// returned as not fixed. A dependency needing no write is in neither list.
func (f *fixer) FixVersionsMismatching(ctx context.Context, packages []*m.Package, mismatching []m.DependencyAndVersions, args FixArgs) (m.FixResult, error) {
	depTypes := args.DepTypes
	if len(depTypes) == 0 {
		depTypes = m.DefaultDependencyTypes
	}

	var result m.FixResult

	for _, dep := range mismatching {
		if err := ctx.Err(); err != nil {
			return m.FixResult{}, err
		}

		target, ok := fixTarget(packages, dep)
		if !ok {
			result.NotFixed = append(result.NotFixed, dep)
			continue
		}

		fixed, err := f.apply(ctx, packages, dep.Dependency, target, depTypes, args.DryRun)
		if err != nil {
			return m.FixResult{}, err
		}

		if fixed {
			result.Fixed = append(result.Fixed, m.FixedDependency{
				DependencyAndVersions: dep,
				FixedVersion:          target,
			})
		}
	}

	slog.Info("fixed mismatching dependencies",
		"fixed", len(result.Fixed),
		"not_fixed", len(result.NotFixed),
		"dry_run", args.DryRun)

	return result, nil
}

// fixTarget computes the version a dependency converges on.
func fixTarget(packages []*m.Package, dep m.DependencyAndVersions) (string, bool) {
	versions := dep.VersionLiterals()

	target, err := IncreasedLatestVersion(versions)
	if err != nil {
		slog.Debug("cannot compute fix target", "dependency", dep.Dependency, "error", err)
		return "", false
	}

	local := findPackage(packages, dep.Dependency)
	if local == nil || local.Manifest.Version == "" {
		return target, true
	}

	localVersion := local.Manifest.Version

	if exceedsLocalVersion(target, localVersion) {
		slog.Debug("fix target exceeds local package version",
			"dependency", dep.Dependency, "target", target, "local", localVersion)

		return "", false
	}

	if localVersion == target {
		prefixes := make([]string, 0, len(versions))
		for _, version := range versions {
			prefixes = append(prefixes, VersionRangeToRange(version))
		}

		core, err := BareVersion(target)
		if err != nil {
			return "", false
		}

		target = HighestRangeType(prefixes) + core
	}

	return target, true
}

// exceedsLocalVersion reports whether the semver core of target is above the
// local package version. Range prefixes are ignored: ^1.5.0 does not exceed 1.5.0.
// Unparseable versions count as exceeding.
func exceedsLocalVersion(target, localVersion string) bool {
	targetCore, err := coerce(target)
	if err != nil {
		return true
	}

	localCore, err := coerce(localVersion)
	if err != nil {
		return true
	}

	return targetCore.GreaterThan(localCore)
}

func (f *fixer) apply(ctx context.Context, packages []*m.Package, dependency, target string, depTypes []m.DependencyType, dryRun bool) (bool, error) {
	fixed := false

	for _, pkg := range packages {
		for _, depType := range depTypes {
			current, ok := pkg.Manifest.Dependency(depType, dependency)
			if !ok || current == "" || current == target {
				continue
			}

			fixed = true

			if dryRun {
				continue
			}

			keyPath := jsonedit.JoinPath(string(depType), jsonedit.EscapeKey(dependency))
			if err := f.SetValue(ctx, pkg.ManifestPath(), keyPath, target, pkg.Manifest.EndsWithNewline); err != nil {
				return false, err
			}

			slog.Debug("wrote dependency version",
				"package", pkg.Name, "bucket", depType, "dependency", dependency, "from", current, "to", target)
		}
	}

	return fixed, nil
}

func findPackage(packages []*m.Package, name string) *m.Package {
	for _, pkg := range packages {
		if pkg.Name == name {
			return pkg
		}
	}

	return nil
}
