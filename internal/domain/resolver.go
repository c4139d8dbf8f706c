package domain

import (
	"log/slog"
	"regexp"
	"slices"
	"sort"
	"strings"

	m "depver.dev/pkg/depver/internal/model"
)

// commentKey may be used to add comments to package.json files and is never
// reported as a dependency.
const commentKey = "//"

// CalculateDependenciesAndVersions turns the raw inventory into one record per
// dependency, sorted by name, with its distinct versions in ascending order.
//
// A local package's own version only joins the candidates when some consumer
// declares a range it does not satisfy and not every consumer uses the
// workspace: protocol.
func CalculateDependenciesAndVersions(seen *m.DependencyVersionsSeen) []m.DependencyAndVersions {
	names := seen.Names()
	sort.Strings(names)

	result := make([]m.DependencyAndVersions, 0, len(names))

	for _, name := range names {
		observations := seen.Observations(name)

		var versions, localVersions []string

		for _, observation := range observations {
			if observation.IsLocalPackageVersion {
				localVersions = append(localVersions, observation.Version)
				continue
			}

			versions = append(versions, observation.Version)
		}

		if len(localVersions) == 1 && !allWorkspaceProtocol(versions) && incompatibleWithLocal(localVersions[0], versions) {
			slog.Debug("local package version disagrees with consumers", "dependency", name, "version", localVersions[0])

			versions = append(versions, localVersions...)
		}

		versions = uniqueVersions(versions)
		sort.SliceStable(versions, func(i, j int) bool {
			return CompareVersionRangesSafe(versions[i], versions[j]) < 0
		})

		result = append(result, m.DependencyAndVersions{
			Dependency: name,
			Versions:   packagesPerVersion(versions, observations),
		})
	}

	return result
}

func allWorkspaceProtocol(versions []string) bool {
	for _, version := range versions {
		if !strings.HasPrefix(version, WorkspaceProtocolPrefix) {
			return false
		}
	}

	return true
}

func incompatibleWithLocal(localVersion string, versions []string) bool {
	for _, version := range versions {
		if !Satisfies(localVersion, version) {
			return true
		}
	}

	return false
}

func uniqueVersions(versions []string) []string {
	seen := make(map[string]struct{}, len(versions))
	unique := make([]string, 0, len(versions))

	for _, version := range versions {
		if _, ok := seen[version]; ok {
			continue
		}

		seen[version] = struct{}{}
		unique = append(unique, version)
	}

	return unique
}

// packagesPerVersion pairs each version with the packages declaring it,
// sorted by package name. A package declaring the same literal in several
// buckets is listed once.
func packagesPerVersion(versions []string, observations []m.VersionObservation) []m.VersionPackages {
	out := make([]m.VersionPackages, 0, len(versions))

	for _, version := range versions {
		var packages []*m.Package

		for _, observation := range observations {
			if observation.Version != version || slices.Contains(packages, observation.Package) {
				continue
			}

			packages = append(packages, observation.Package)
		}

		sort.SliceStable(packages, func(i, j int) bool {
			return packages[i].Name < packages[j].Name
		})

		out = append(out, m.VersionPackages{Version: version, Packages: packages})
	}

	return out
}

// FilterOutIgnoredDependencies removes ignored dependencies. Every ignore
// entry must match at least one dependency in deps, otherwise the option is
// reported as ineffective. The "//" comment key is always removed.
func FilterOutIgnoredDependencies(deps []m.DependencyAndVersions, ignoreDeps []string, ignoreDepPatterns []*regexp.Regexp) ([]m.DependencyAndVersions, error) {
	for _, ignoreDep := range ignoreDeps {
		if ignoreDep == commentKey {
			continue
		}

		if !slices.ContainsFunc(deps, func(d m.DependencyAndVersions) bool { return d.Dependency == ignoreDep }) {
			return nil, &IneffectiveIgnoreFilterError{
				Option: "ignore-dep",
				Value:  ignoreDep,
				Reason: "no version mismatches detected for this dependency",
			}
		}
	}

	for _, pattern := range ignoreDepPatterns {
		if !slices.ContainsFunc(deps, func(d m.DependencyAndVersions) bool { return pattern.MatchString(d.Dependency) }) {
			return nil, &IneffectiveIgnoreFilterError{
				Option: "ignore-dep-pattern",
				Value:  pattern.String(),
				Reason: "no matching dependencies with version mismatches detected",
			}
		}
	}

	kept := make([]m.DependencyAndVersions, 0, len(deps))

	for _, dep := range deps {
		if isIgnoredDependency(dep.Dependency, ignoreDeps, ignoreDepPatterns) {
			continue
		}

		kept = append(kept, dep)
	}

	return kept, nil
}

func isIgnoredDependency(name string, ignoreDeps []string, ignoreDepPatterns []*regexp.Regexp) bool {
	if name == commentKey || slices.Contains(ignoreDeps, name) {
		return true
	}

	for _, pattern := range ignoreDepPatterns {
		if pattern.MatchString(name) {
			return true
		}
	}

	return false
}

// MismatchingOnly keeps the dependencies with more than one version.
func MismatchingOnly(deps []m.DependencyAndVersions) []m.DependencyAndVersions {
	var out []m.DependencyAndVersions

	for _, dep := range deps {
		if dep.IsMismatching() {
			out = append(out, dep)
		}
	}

	return out
}
