package domain

import (
	"errors"
	"fmt"

	m "depver.dev/pkg/depver/internal/model"
)

var (
	// ErrNoManifest is returned when the workspace root has no package.json.
	ErrNoManifest = errors.New("no package.json found at provided path")
	// ErrNotAWorkspace is returned when the root manifest declares no workspaces.
	ErrNotAWorkspace = errors.New("package.json at provided path does not specify `workspaces`")
	// ErrInvalidWorkspaces is returned when workspace declarations are malformed.
	ErrInvalidWorkspaces = m.ErrInvalidWorkspaces
	// ErrMissingName is returned when a workspace member has no name.
	ErrMissingName = m.ErrMissingName
	// ErrInvalidVersion is returned when a range literal has no semver core.
	ErrInvalidVersion = errors.New("invalid version")
	// ErrInvalidDepType is returned for an unknown dependency type option.
	ErrInvalidDepType = errors.New("invalid depType provided")
	// ErrInvalidOption is returned for a malformed option value such as a bad regexp.
	ErrInvalidOption = errors.New("invalid option")
	// ErrIneffectiveIgnoreFilter is matched by every IneffectiveIgnoreFilterError.
	ErrIneffectiveIgnoreFilter = errors.New("ignore filter matched nothing")
)

// IneffectiveIgnoreFilterError reports an ignore option that matched nothing.
type IneffectiveIgnoreFilterError struct {
	Option string
	Value  string
	Reason string
}

func (e *IneffectiveIgnoreFilterError) Error() string {
	return fmt.Sprintf("specified option '--%s %s', but %s", e.Option, e.Value, e.Reason)
}

// Is lets errors.Is match ErrIneffectiveIgnoreFilter.
func (e *IneffectiveIgnoreFilterError) Is(target error) bool {
	return target == ErrIneffectiveIgnoreFilter
}
