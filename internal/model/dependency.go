package model

import (
	"fmt"
	"slices"
	"strings"
)

// DependencyType identifies the manifest section a version declaration came from.
type DependencyType string

const (
	// DependencyTypeDependencies is the "dependencies" bucket.
	DependencyTypeDependencies DependencyType = "dependencies"
	// DependencyTypeDevDependencies is the "devDependencies" bucket.
	DependencyTypeDevDependencies DependencyType = "devDependencies"
	// DependencyTypeOptionalDependencies is the "optionalDependencies" bucket.
	DependencyTypeOptionalDependencies DependencyType = "optionalDependencies"
	// DependencyTypePeerDependencies is the "peerDependencies" bucket.
	DependencyTypePeerDependencies DependencyType = "peerDependencies"
	// DependencyTypeResolutions is the "resolutions" bucket.
	DependencyTypeResolutions DependencyType = "resolutions"
)

// AllDependencyTypes lists every recognised bucket.
var AllDependencyTypes = []DependencyType{
	DependencyTypeDependencies,
	DependencyTypeDevDependencies,
	DependencyTypeOptionalDependencies,
	DependencyTypePeerDependencies,
	DependencyTypeResolutions,
}

// DefaultDependencyTypes is used when no bucket is selected. Peer dependencies
// are left out unless explicitly requested.
var DefaultDependencyTypes = []DependencyType{
	DependencyTypeDependencies,
	DependencyTypeDevDependencies,
	DependencyTypeOptionalDependencies,
	DependencyTypeResolutions,
}

// ParseDependencyType converts a user supplied name into a DependencyType.
func ParseDependencyType(value string) (DependencyType, error) {
	depType := DependencyType(strings.TrimSpace(value))
	if !slices.Contains(AllDependencyTypes, depType) {
		return "", fmt.Errorf("unknown dependency type %q", value)
	}

	return depType, nil
}

// DependencyTypeNames returns the names of all buckets, for help and error text.
func DependencyTypeNames() []string {
	names := make([]string, 0, len(AllDependencyTypes))
	for _, depType := range AllDependencyTypes {
		names = append(names, string(depType))
	}

	return names
}

// VersionObservation is one version literal seen for a dependency.
type VersionObservation struct {
	Package *Package
	Version string
	// DependencyType is empty for local identity observations.
	DependencyType DependencyType
	// IsLocalPackageVersion marks the package's own name+version declaration.
	IsLocalPackageVersion bool
}

// DependencyVersionsSeen groups observations by dependency name, keeping the
// order in which names were first recorded.
type DependencyVersionsSeen struct {
	names []string
	seen  map[string][]VersionObservation
}

// NewDependencyVersionsSeen creates an empty inventory.
func NewDependencyVersionsSeen() *DependencyVersionsSeen {
	return &DependencyVersionsSeen{seen: make(map[string][]VersionObservation)}
}

// Record appends an observation for the dependency.
func (d *DependencyVersionsSeen) Record(dependency string, observation VersionObservation) {
	if _, ok := d.seen[dependency]; !ok {
		d.names = append(d.names, dependency)
	}

	d.seen[dependency] = append(d.seen[dependency], observation)
}

// Names returns dependency names in first-seen order.
func (d *DependencyVersionsSeen) Names() []string {
	return slices.Clone(d.names)
}

// Observations returns every observation recorded for the dependency.
func (d *DependencyVersionsSeen) Observations(dependency string) []VersionObservation {
	return d.seen[dependency]
}

// Len returns the number of distinct dependencies.
func (d *DependencyVersionsSeen) Len() int {
	return len(d.names)
}

// VersionPackages pairs a version literal with the packages declaring it.
type VersionPackages struct {
	Version  string
	Packages []*Package
}

// DependencyAndVersions is the resolved view of one dependency: its distinct
// versions in ascending order and who uses each.
type DependencyAndVersions struct {
	Dependency string
	Versions   []VersionPackages
}

// IsMismatching reports whether more than one distinct version is in use.
func (d DependencyAndVersions) IsMismatching() bool {
	return len(d.Versions) > 1
}

// VersionLiterals returns the version literals in order.
func (d DependencyAndVersions) VersionLiterals() []string {
	versions := make([]string, 0, len(d.Versions))
	for _, v := range d.Versions {
		versions = append(versions, v.Version)
	}

	return versions
}

// FixedDependency records a converged dependency and the version it was fixed to.
type FixedDependency struct {
	DependencyAndVersions
	FixedVersion string
}

// FixResult partitions mismatching dependencies after a fix attempt. Both
// partitions carry the pre-fix versions.
type FixResult struct {
	Fixed    []FixedDependency
	NotFixed []DependencyAndVersions
}
