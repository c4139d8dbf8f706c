// Package adapter contains the filesystem adapters the depver domain relies on.
package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"

	m "depver.dev/pkg/depver/internal/model"
	"depver.dev/pkg/depver/pkg/jsonedit"
)

// ManifestAdapter reads and edits package.json manifests. It hides direct
// `os` access so the domain can be tested against fakes.
type ManifestAdapter interface {
	// Exists reports whether dir holds a package.json.
	Exists(ctx context.Context, dir m.Path) bool

	// Read parses the package.json in dir, keeping declaration order.
	Read(ctx context.Context, dir m.Path) (m.Manifest, error)

	// SetValue replaces the value at keyPath (dots inside keys already
	// escaped) and leaves the rest of the file as it was.
	SetValue(ctx context.Context, file m.Path, keyPath string, value string, endsWithNewline bool) error
}

// LocalManifestAdapter implements ManifestAdapter on the local filesystem.
type LocalManifestAdapter struct{}

// NewLocalManifestAdapter constructs a LocalManifestAdapter.
func NewLocalManifestAdapter() *LocalManifestAdapter {
	return &LocalManifestAdapter{}
}

// Exists reports whether a regular package.json file is present in dir.
func (a *LocalManifestAdapter) Exists(ctx context.Context, dir m.Path) bool {
	if ctx.Err() != nil {
		return false
	}

	info, err := os.Stat(filepath.Join(string(dir), m.ManifestFileName))

	return err == nil && !info.IsDir()
}

// Read loads and parses the package.json in dir.
func (a *LocalManifestAdapter) Read(ctx context.Context, dir m.Path) (m.Manifest, error) {
	if err := ctx.Err(); err != nil {
		return m.Manifest{}, err
	}

	path := filepath.Join(string(dir), m.ManifestFileName)

	// #nosec G304 - path is a workspace manifest discovered from user globs
	content, err := os.ReadFile(path)
	if err != nil {
		return m.Manifest{}, fmt.Errorf("read %s: %w", path, err)
	}

	manifest, err := ParseManifest(content)
	if err != nil {
		return m.Manifest{}, fmt.Errorf("%s: %w", path, err)
	}

	return manifest, nil
}

// SetValue writes value at keyPath of file.
func (a *LocalManifestAdapter) SetValue(ctx context.Context, file m.Path, keyPath string, value string, endsWithNewline bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return jsonedit.SetFile(string(file), keyPath, value, endsWithNewline)
}

// ParseManifest extracts name, version, workspaces and dependency buckets
// from raw package.json content.
func ParseManifest(content []byte) (m.Manifest, error) {
	if !gjson.ValidBytes(content) {
		return m.Manifest{}, errors.New("invalid JSON")
	}

	doc := gjson.ParseBytes(content)
	if !doc.IsObject() {
		return m.Manifest{}, errors.New("manifest is not a JSON object")
	}

	manifest := m.Manifest{
		Buckets:         make(map[m.DependencyType][]m.DependencyEntry),
		EndsWithNewline: bytes.HasSuffix(content, []byte("\n")),
	}

	if name := doc.Get("name"); name.Type == gjson.String {
		manifest.Name = name.String()
	}

	if version := doc.Get("version"); version.Type == gjson.String {
		manifest.Version = version.String()
	}

	workspaces := doc.Get("workspaces")
	if workspaces.Exists() {
		patterns, err := parseWorkspaces(workspaces)
		if err != nil {
			return m.Manifest{}, err
		}

		manifest.HasWorkspaces = true
		manifest.Workspaces = patterns
	}

	for _, depType := range m.AllDependencyTypes {
		bucket := doc.Get(string(depType))
		if !bucket.IsObject() {
			continue
		}

		bucket.ForEach(func(key, value gjson.Result) bool {
			manifest.Buckets[depType] = append(manifest.Buckets[depType], m.DependencyEntry{
				Name:    key.String(),
				Version: versionLiteral(value),
			})

			return true
		})
	}

	return manifest, nil
}

// parseWorkspaces accepts the array form and the object form whose
// `packages` key holds the array.
func parseWorkspaces(workspaces gjson.Result) ([]string, error) {
	if workspaces.IsObject() {
		packages := workspaces.Get("packages")
		if !packages.Exists() {
			return []string{}, nil
		}

		workspaces = packages
	}

	if !workspaces.IsArray() {
		return nil, fmt.Errorf("package.json `workspaces`: %w", m.ErrInvalidWorkspaces)
	}

	patterns := []string{}

	for _, item := range workspaces.Array() {
		if item.Type != gjson.String {
			return nil, fmt.Errorf("package.json `workspaces`: %w", m.ErrInvalidWorkspaces)
		}

		patterns = append(patterns, item.String())
	}

	return patterns, nil
}

// versionLiteral returns string values as-is. Falsy values become empty so
// they are skipped like placeholders; other values keep their raw JSON.
func versionLiteral(value gjson.Result) string {
	switch value.Type {
	case gjson.String:
		return value.String()
	case gjson.Null, gjson.False:
		return ""
	default:
		return value.Raw
	}
}
