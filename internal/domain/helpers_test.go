package domain

import (
	"os"
	"path/filepath"
	"testing"

	"depver.dev/pkg/depver/internal/adapter"
	m "depver.dev/pkg/depver/internal/model"
)

// writeWorkspace writes files (relative path -> content) under root.
func writeWorkspace(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create dir for %s: %v", rel, err)
		}

		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", rel, err)
		}
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}

	return string(content)
}

func newLocalDiscoverer() Discoverer {
	return NewDiscoverer(
		adapter.NewLocalManifestAdapter(),
		adapter.NewLocalGlobAdapter(),
		adapter.NewLocalWorkspaceFileAdapter(),
	)
}

// testPackage builds an in-memory package rooted at /workspace.
func testPackage(name, version, rel string, buckets map[m.DependencyType][]m.DependencyEntry) *m.Package {
	root := filepath.FromSlash("/workspace")

	return &m.Package{
		Name:          name,
		Path:          m.Path(filepath.Join(root, filepath.FromSlash(rel))),
		WorkspaceRoot: m.Path(root),
		Manifest: m.Manifest{
			Name:            name,
			Version:         version,
			Buckets:         buckets,
			EndsWithNewline: true,
		},
	}
}

func deps(pairs ...string) []m.DependencyEntry {
	entries := make([]m.DependencyEntry, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		entries = append(entries, m.DependencyEntry{Name: pairs[i], Version: pairs[i+1]})
	}

	return entries
}

func relativePaths(packages []*m.Package) []string {
	paths := make([]string, 0, len(packages))
	for _, pkg := range packages {
		paths = append(paths, string(pkg.RelativePath()))
	}

	return paths
}
