package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDependencyType(t *testing.T) {
	depType, err := ParseDependencyType(" peerDependencies ")
	require.NoError(t, err)
	assert.Equal(t, DependencyTypePeerDependencies, depType)

	_, err = ParseDependencyType("fooDependencies")
	assert.Error(t, err)
}

func TestDefaultDependencyTypesSkipPeers(t *testing.T) {
	assert.NotContains(t, DefaultDependencyTypes, DependencyTypePeerDependencies)
	assert.Len(t, AllDependencyTypes, 5)
	assert.Equal(t, "dependencies", DependencyTypeNames()[0])
}

func TestDependencyVersionsSeen(t *testing.T) {
	seen := NewDependencyVersionsSeen()
	a := &Package{Name: "a"}

	seen.Record("zod", VersionObservation{Package: a, Version: "3.0.0"})
	seen.Record("axios", VersionObservation{Package: a, Version: "1.0.0"})
	seen.Record("zod", VersionObservation{Package: a, Version: "3.1.0", DependencyType: DependencyTypeDevDependencies})

	assert.Equal(t, 2, seen.Len())
	assert.Equal(t, []string{"zod", "axios"}, seen.Names())
	assert.Len(t, seen.Observations("zod"), 2)
	assert.Empty(t, seen.Observations("missing"))

	names := seen.Names()
	names[0] = "changed"
	assert.Equal(t, "zod", seen.Names()[0])
}

func TestDependencyAndVersions(t *testing.T) {
	single := DependencyAndVersions{Dependency: "foo", Versions: []VersionPackages{{Version: "1.0.0"}}}
	assert.False(t, single.IsMismatching())

	multiple := DependencyAndVersions{
		Dependency: "foo",
		Versions:   []VersionPackages{{Version: "1.0.0"}, {Version: "^2.0.0"}},
	}
	assert.True(t, multiple.IsMismatching())
	assert.Equal(t, []string{"1.0.0", "^2.0.0"}, multiple.VersionLiterals())
}
