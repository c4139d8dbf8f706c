package domain

import (
	"log/slog"

	m "depver.dev/pkg/depver/internal/model"
)

// CalculateVersionsForEachDependency records every version literal declared
// across packages in the selected buckets. A package's own name and version
// are recorded first as a local observation. Empty depTypes selects
// model.DefaultDependencyTypes.
func CalculateVersionsForEachDependency(packages []*m.Package, depTypes []m.DependencyType) *m.DependencyVersionsSeen {
	if len(depTypes) == 0 {
		depTypes = m.DefaultDependencyTypes
	}

	seen := m.NewDependencyVersionsSeen()

	for _, pkg := range packages {
		recordPackageVersions(seen, pkg, depTypes)
	}

	slog.Debug("aggregated dependency versions", "packages", len(packages), "dependencies", seen.Len())

	return seen
}

func recordPackageVersions(seen *m.DependencyVersionsSeen, pkg *m.Package, depTypes []m.DependencyType) {
	manifest := pkg.Manifest

	if manifest.Name != "" && manifest.Version != "" {
		seen.Record(manifest.Name, m.VersionObservation{
			Package:               pkg,
			Version:               manifest.Version,
			IsLocalPackageVersion: true,
		})
	}

	for _, depType := range depTypes {
		for _, entry := range manifest.Buckets[depType] {
			if entry.Version == "" {
				continue
			}

			seen.Record(entry.Name, m.VersionObservation{
				Package:        pkg,
				Version:        entry.Version,
				DependencyType: depType,
			})
		}
	}
}
