package domain

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	m "depver.dev/pkg/depver/internal/model"
)

// CheckArgs are the options of a workspace check.
type CheckArgs struct {
	Path string
	Fix  bool
	// DepTypes names the buckets to check. Empty selects the defaults.
	DepTypes []string

	IgnoreDeps            []string
	IgnoreDepPatterns     []string
	IgnorePackages        []string
	IgnorePackagePatterns []string
	IgnorePaths           []string
	IgnorePathPatterns    []string
}

// ListArgs are the options of a package listing.
type ListArgs struct {
	Path                  string
	IgnorePackages        []string
	IgnorePackagePatterns []string
	IgnorePaths           []string
	IgnorePathPatterns    []string
}

// Checker runs the whole audit: discover, aggregate, resolve and fix.
type Checker interface {
	Check(ctx context.Context, args CheckArgs) (*m.CheckResult, error)
	ListPackages(ctx context.Context, args ListArgs) ([]*m.Package, error)
}

type checker struct {
	discoverer Discoverer
	fixer      Fixer
}

// NewChecker constructs a Checker from its discovery and fix stages.
func NewChecker(discoverer Discoverer, fixer Fixer) Checker {
	return &checker{
		discoverer: discoverer,
		fixer:      fixer,
	}
}

// Check audits the workspace at args.Path. Mismatches are written to the
// manifests only when args.Fix is set; otherwise the fix is simulated so
// the result still tells which mismatches are fixable.
func (c *checker) Check(ctx context.Context, args CheckArgs) (*m.CheckResult, error) {
	depTypes, err := parseDepTypes(args.DepTypes)
	if err != nil {
		return nil, err
	}

	discoverArgs, err := newDiscoverArgs(args.IgnorePackages, args.IgnorePackagePatterns, args.IgnorePaths, args.IgnorePathPatterns)
	if err != nil {
		return nil, err
	}

	ignoreDepPatterns, err := compilePatterns("ignore-dep-pattern", args.IgnoreDepPatterns)
	if err != nil {
		return nil, err
	}

	packages, err := c.discoverer.Discover(ctx, m.Path(args.Path), discoverArgs)
	if err != nil {
		return nil, err
	}

	seen := CalculateVersionsForEachDependency(packages, depTypes)
	all := CalculateDependenciesAndVersions(seen)
	mismatching := MismatchingOnly(all)

	all, err = FilterOutIgnoredDependencies(all, args.IgnoreDeps, ignoreDepPatterns)
	if err != nil {
		return nil, err
	}

	mismatching, err = FilterOutIgnoredDependencies(mismatching, args.IgnoreDeps, ignoreDepPatterns)
	if err != nil {
		return nil, err
	}

	fixResult, err := c.fixer.FixVersionsMismatching(ctx, packages, mismatching, FixArgs{
		DepTypes: depTypes,
		DryRun:   !args.Fix,
	})
	if err != nil {
		return nil, fmt.Errorf("fix mismatching versions: %w", err)
	}

	slog.Info("checked workspace",
		"path", args.Path,
		"dependencies", len(all),
		"mismatching", len(mismatching),
		"fixable", len(fixResult.Fixed))

	return buildCheckResult(all, mismatching, fixResult), nil
}

// ListPackages returns the packages of the workspace after ignore filters.
func (c *checker) ListPackages(ctx context.Context, args ListArgs) ([]*m.Package, error) {
	discoverArgs, err := newDiscoverArgs(args.IgnorePackages, args.IgnorePackagePatterns, args.IgnorePaths, args.IgnorePathPatterns)
	if err != nil {
		return nil, err
	}

	return c.discoverer.Discover(ctx, m.Path(args.Path), discoverArgs)
}

func parseDepTypes(names []string) ([]m.DependencyType, error) {
	if len(names) == 0 {
		return m.DefaultDependencyTypes, nil
	}

	depTypes := make([]m.DependencyType, 0, len(names))

	for _, name := range names {
		depType, err := m.ParseDependencyType(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %q. Choices are: %s", ErrInvalidDepType, name, strings.Join(m.DependencyTypeNames(), ", "))
		}

		depTypes = append(depTypes, depType)
	}

	return depTypes, nil
}

func newDiscoverArgs(packages, packagePatterns, paths, pathPatterns []string) (DiscoverArgs, error) {
	compiledPackagePatterns, err := compilePatterns("ignore-package-pattern", packagePatterns)
	if err != nil {
		return DiscoverArgs{}, err
	}

	compiledPathPatterns, err := compilePatterns("ignore-path-pattern", pathPatterns)
	if err != nil {
		return DiscoverArgs{}, err
	}

	return DiscoverArgs{
		IgnorePackages:        packages,
		IgnorePackagePatterns: compiledPackagePatterns,
		IgnorePaths:           paths,
		IgnorePathPatterns:    compiledPathPatterns,
	}, nil
}

func compilePatterns(option string, patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))

	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: --%s %q: %w", ErrInvalidOption, option, pattern, err)
		}

		compiled = append(compiled, re)
	}

	return compiled, nil
}

func buildCheckResult(all, mismatching []m.DependencyAndVersions, fixResult m.FixResult) *m.CheckResult {
	fixedVersions := make(map[string]string, len(fixResult.Fixed))
	for _, fixed := range fixResult.Fixed {
		fixedVersions[fixed.Dependency] = fixed.FixedVersion
	}

	mismatchingNames := make(map[string]struct{}, len(mismatching))
	for _, dep := range mismatching {
		mismatchingNames[dep.Dependency] = struct{}{}
	}

	dependencies := make([]m.Dependency, 0, len(all))

	for _, dep := range all {
		fixedVersion, isFixable := fixedVersions[dep.Dependency]
		_, isMismatching := mismatchingNames[dep.Dependency]

		dependencies = append(dependencies, m.Dependency{
			Name:          dep.Dependency,
			IsFixable:     isFixable,
			IsMismatching: isMismatching,
			FixedVersion:  fixedVersion,
			Versions:      dependencyVersions(dep.Versions),
		})
	}

	return m.NewCheckResult(dependencies)
}

func dependencyVersions(versions []m.VersionPackages) []m.DependencyVersion {
	out := make([]m.DependencyVersion, 0, len(versions))

	for _, version := range versions {
		paths := make([]m.Path, 0, len(version.Packages))
		names := make([]string, 0, len(version.Packages))

		for _, pkg := range version.Packages {
			paths = append(paths, pkg.RelativePath())
			names = append(names, pkg.Name)
		}

		out = append(out, m.DependencyVersion{
			Version:      version.Version,
			Packages:     paths,
			PackageNames: names,
		})
	}

	return out
}
