package domain_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"depver.dev/pkg/depver/internal/adapter"
	"depver.dev/pkg/depver/internal/domain"
	domainmocks "depver.dev/pkg/depver/internal/domain/mocks"
	m "depver.dev/pkg/depver/internal/model"
)

func newLocalChecker() domain.Checker {
	manifests := adapter.NewLocalManifestAdapter()

	return domain.NewChecker(
		domain.NewDiscoverer(manifests, adapter.NewLocalGlobAdapter(), adapter.NewLocalWorkspaceFileAdapter()),
		domain.NewFixer(manifests),
	)
}

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func inconsistentWorkspace(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"package.json": `{"workspaces":["packages/*"],"dependencies":{"foo":"^1.0.0","//":"root comment"}}`,
		"packages/a/package.json": `{"name":"a","version":"1.0.0","dependencies":{"foo":"^2.0.0","b":"^2.0.0","//":"a comment"}}`,
		"packages/b/package.json": `{"name":"b","version":"1.0.0","devDependencies":{"react":"^18.0.0"}}`,
		"packages/c/package.json": `{"name":"c","peerDependencies":{"react":"^17.0.0"},"dependencies":{"react":"^18.0.0"}}`,
	})

	return root
}

func TestCheck(t *testing.T) {
	ctx := context.Background()

	t.Run("reports mismatches without writing", func(t *testing.T) {
		root := inconsistentWorkspace(t)
		before, err := os.ReadFile(filepath.Join(root, "package.json"))
		require.NoError(t, err)

		result, err := newLocalChecker().Check(ctx, domain.CheckArgs{Path: root})
		require.NoError(t, err)

		assert.True(t, result.HasMismatchingDependencies())
		assert.True(t, result.HasMismatchingDependenciesFixable())
		assert.True(t, result.HasMismatchingDependenciesNotFixable())

		foo, ok := result.Dependency("foo")
		require.True(t, ok)
		assert.True(t, foo.IsMismatching)
		assert.True(t, foo.IsFixable)
		assert.Equal(t, "^2.0.0", foo.FixedVersion)
		assert.Equal(t, []m.DependencyVersion{
			{Version: "^1.0.0", Packages: []m.Path{"."}, PackageNames: []string{m.RootPackageName}},
			{Version: "^2.0.0", Packages: []m.Path{"packages/a"}, PackageNames: []string{"a"}},
		}, foo.Versions)

		b, ok := result.Dependency("b")
		require.True(t, ok)
		assert.True(t, b.IsMismatching)
		assert.False(t, b.IsFixable)

		react, ok := result.Dependency("react")
		require.True(t, ok)
		assert.False(t, react.IsMismatching)

		_, ok = result.Dependency("//")
		assert.False(t, ok)

		after, err := os.ReadFile(filepath.Join(root, "package.json"))
		require.NoError(t, err)
		assert.Equal(t, string(before), string(after))
	})

	t.Run("fix converges fixable dependencies", func(t *testing.T) {
		root := inconsistentWorkspace(t)

		result, err := newLocalChecker().Check(ctx, domain.CheckArgs{Path: root, Fix: true})
		require.NoError(t, err)
		assert.Len(t, result.FixableDependencies(), 1)

		rerun, err := newLocalChecker().Check(ctx, domain.CheckArgs{Path: root})
		require.NoError(t, err)

		foo, ok := rerun.Dependency("foo")
		require.True(t, ok)
		assert.False(t, foo.IsMismatching)

		assert.Equal(t, []string{"b"}, dependencyNames(rerun.MismatchingDependencies()))
	})

	t.Run("peer dependencies when requested", func(t *testing.T) {
		root := inconsistentWorkspace(t)

		result, err := newLocalChecker().Check(ctx, domain.CheckArgs{
			Path:     root,
			DepTypes: []string{"dependencies", "peerDependencies"},
		})
		require.NoError(t, err)

		react, ok := result.Dependency("react")
		require.True(t, ok)
		assert.True(t, react.IsMismatching)
	})

	t.Run("ignored dependencies are dropped", func(t *testing.T) {
		root := inconsistentWorkspace(t)

		result, err := newLocalChecker().Check(ctx, domain.CheckArgs{
			Path:              root,
			IgnoreDeps:        []string{"foo"},
			IgnoreDepPatterns: []string{"^b$"},
		})
		require.NoError(t, err)

		assert.False(t, result.HasMismatchingDependencies())
		_, ok := result.Dependency("foo")
		assert.False(t, ok)
	})

	t.Run("ignoring a consistent dependency is an error", func(t *testing.T) {
		root := inconsistentWorkspace(t)

		_, err := newLocalChecker().Check(ctx, domain.CheckArgs{Path: root, IgnoreDeps: []string{"react"}})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrIneffectiveIgnoreFilter)
		assert.Contains(t, err.Error(), "--ignore-dep react")
	})

	t.Run("ignored packages do not contribute versions", func(t *testing.T) {
		root := inconsistentWorkspace(t)

		result, err := newLocalChecker().Check(ctx, domain.CheckArgs{Path: root, IgnorePaths: []string{"packages/a"}})
		require.NoError(t, err)

		assert.False(t, result.HasMismatchingDependencies())
	})
}

func TestCheck_ValidatesBeforeIO(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		args    domain.CheckArgs
		wantErr error
	}{
		{
			name:    "unknown dependency type",
			args:    domain.CheckArgs{Path: ".", DepTypes: []string{"dependencies", "fooDependencies"}},
			wantErr: domain.ErrInvalidDepType,
		},
		{
			name:    "bad dependency pattern",
			args:    domain.CheckArgs{Path: ".", IgnoreDepPatterns: []string{"("}},
			wantErr: domain.ErrInvalidOption,
		},
		{
			name:    "bad package pattern",
			args:    domain.CheckArgs{Path: ".", IgnorePackagePatterns: []string{"[a-"}},
			wantErr: domain.ErrInvalidOption,
		},
		{
			name:    "bad path pattern",
			args:    domain.CheckArgs{Path: ".", IgnorePathPatterns: []string{"*"}},
			wantErr: domain.ErrInvalidOption,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			discoverer := domainmocks.NewMockDiscoverer(t)
			fixer := domainmocks.NewMockFixer(t)

			_, err := domain.NewChecker(discoverer, fixer).Check(ctx, tt.args)

			assert.ErrorIs(t, err, tt.wantErr)
			discoverer.AssertNotCalled(t, "Discover", mock.Anything, mock.Anything, mock.Anything)
		})
	}

	t.Run("dependency type error lists the choices", func(t *testing.T) {
		_, err := domain.NewChecker(domainmocks.NewMockDiscoverer(t), domainmocks.NewMockFixer(t)).
			Check(ctx, domain.CheckArgs{DepTypes: []string{"nope"}})

		assert.EqualError(t, err, `invalid depType provided: "nope". Choices are: dependencies, devDependencies, optionalDependencies, peerDependencies, resolutions`)
	})
}

func TestCheck_WithMocks(t *testing.T) {
	ctx := context.Background()

	pkg := &m.Package{
		Name:          m.RootPackageName,
		Path:          "/workspace",
		WorkspaceRoot: "/workspace",
		Manifest: m.Manifest{
			Buckets: map[m.DependencyType][]m.DependencyEntry{
				m.DependencyTypeDependencies: {{Name: "foo", Version: "1.0.0"}},
			},
		},
	}

	t.Run("fix runs dry unless requested", func(t *testing.T) {
		discoverer := domainmocks.NewMockDiscoverer(t)
		fixer := domainmocks.NewMockFixer(t)

		discoverer.On("Discover", ctx, m.Path("/workspace"), mock.Anything).Return([]*m.Package{pkg}, nil).Twice()
		fixer.On("FixVersionsMismatching", ctx, mock.Anything, mock.Anything, mock.MatchedBy(func(args domain.FixArgs) bool {
			return args.DryRun
		})).Return(m.FixResult{}, nil).Once()
		fixer.On("FixVersionsMismatching", ctx, mock.Anything, mock.Anything, mock.MatchedBy(func(args domain.FixArgs) bool {
			return !args.DryRun
		})).Return(m.FixResult{}, nil).Once()

		checker := domain.NewChecker(discoverer, fixer)

		_, err := checker.Check(ctx, domain.CheckArgs{Path: "/workspace"})
		require.NoError(t, err)

		_, err = checker.Check(ctx, domain.CheckArgs{Path: "/workspace", Fix: true})
		require.NoError(t, err)
	})

	t.Run("discovery errors propagate", func(t *testing.T) {
		discoverer := domainmocks.NewMockDiscoverer(t)
		discoverer.On("Discover", ctx, m.Path("/workspace"), mock.Anything).Return(nil, domain.ErrNotAWorkspace)

		_, err := domain.NewChecker(discoverer, domainmocks.NewMockFixer(t)).Check(ctx, domain.CheckArgs{Path: "/workspace"})
		assert.ErrorIs(t, err, domain.ErrNotAWorkspace)
	})

	t.Run("fix errors are wrapped", func(t *testing.T) {
		writeErr := errors.New("permission denied")
		discoverer := domainmocks.NewMockDiscoverer(t)
		fixer := domainmocks.NewMockFixer(t)

		discoverer.On("Discover", ctx, mock.Anything, mock.Anything).Return([]*m.Package{pkg}, nil)
		fixer.On("FixVersionsMismatching", ctx, mock.Anything, mock.Anything, mock.Anything).Return(m.FixResult{}, writeErr)

		_, err := domain.NewChecker(discoverer, fixer).Check(ctx, domain.CheckArgs{Path: "/workspace", Fix: true})
		assert.ErrorIs(t, err, writeErr)
	})
}

func TestListPackages(t *testing.T) {
	ctx := context.Background()

	discoverer := domainmocks.NewMockDiscoverer(t)
	discoverer.On("Discover", ctx, m.Path("repo"), mock.MatchedBy(func(args domain.DiscoverArgs) bool {
		return len(args.IgnorePackages) == 1 && len(args.IgnorePathPatterns) == 1 && args.IgnorePathPatterns[0].String() == "^apps/"
	})).Return([]*m.Package{{Name: "a"}}, nil)

	packages, err := domain.NewChecker(discoverer, domainmocks.NewMockFixer(t)).ListPackages(ctx, domain.ListArgs{
		Path:               "repo",
		IgnorePackages:     []string{"b"},
		IgnorePathPatterns: []string{"^apps/"},
	})
	require.NoError(t, err)
	require.Len(t, packages, 1)
	assert.Equal(t, "a", packages[0].Name)
}

func dependencyNames(dependencies []m.Dependency) []string {
	names := make([]string, 0, len(dependencies))
	for _, dep := range dependencies {
		names = append(names, dep.Name)
	}

	return names
}
