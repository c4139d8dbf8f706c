package model

import "sort"

// DependencyVersion is one version of a dependency and where it is used.
type DependencyVersion struct {
	Version string
	// Packages holds workspace-relative package paths.
	Packages     []Path
	PackageNames []string
}

// Dependency is the public view of a dependency after a check.
type Dependency struct {
	Name          string
	IsFixable     bool
	IsMismatching bool
	// FixedVersion is the convergence target when IsFixable is set.
	FixedVersion string
	Versions     []DependencyVersion
}

// CheckResult holds every dependency found in the workspace.
type CheckResult struct {
	dependencies []Dependency
	index        map[string]int
}

// NewCheckResult builds a result sorted by dependency name.
func NewCheckResult(dependencies []Dependency) *CheckResult {
	sorted := make([]Dependency, len(dependencies))
	copy(sorted, dependencies)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	index := make(map[string]int, len(sorted))
	for i, dep := range sorted {
		index[dep.Name] = i
	}

	return &CheckResult{dependencies: sorted, index: index}
}

// Dependencies returns all dependencies in name order.
func (r *CheckResult) Dependencies() []Dependency {
	out := make([]Dependency, len(r.dependencies))
	copy(out, r.dependencies)

	return out
}

// Dependency looks a dependency up by name.
func (r *CheckResult) Dependency(name string) (Dependency, bool) {
	i, ok := r.index[name]
	if !ok {
		return Dependency{}, false
	}

	return r.dependencies[i], true
}

// MismatchingDependencies returns dependencies with more than one version.
func (r *CheckResult) MismatchingDependencies() []Dependency {
	return r.filter(func(d Dependency) bool { return d.IsMismatching })
}

// FixableDependencies returns mismatching dependencies that were or can be fixed.
func (r *CheckResult) FixableDependencies() []Dependency {
	return r.filter(func(d Dependency) bool { return d.IsMismatching && d.IsFixable })
}

// NotFixableDependencies returns mismatching dependencies that cannot be fixed.
func (r *CheckResult) NotFixableDependencies() []Dependency {
	return r.filter(func(d Dependency) bool { return d.IsMismatching && !d.IsFixable })
}

// HasMismatchingDependencies reports whether any dependency is mismatching.
func (r *CheckResult) HasMismatchingDependencies() bool {
	return len(r.MismatchingDependencies()) > 0
}

// HasMismatchingDependenciesFixable reports whether any mismatch is fixable.
func (r *CheckResult) HasMismatchingDependenciesFixable() bool {
	return len(r.FixableDependencies()) > 0
}

// HasMismatchingDependenciesNotFixable reports whether any mismatch is not fixable.
func (r *CheckResult) HasMismatchingDependenciesNotFixable() bool {
	return len(r.NotFixableDependencies()) > 0
}

func (r *CheckResult) filter(keep func(Dependency) bool) []Dependency {
	var out []Dependency

	for _, dep := range r.dependencies {
		if keep(dep) {
			out = append(out, dep)
		}
	}

	return out
}
