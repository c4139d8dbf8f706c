package adapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	m "depver.dev/pkg/depver/internal/model"
)

const nodeModulesDir = "node_modules"

// GlobAdapter expands workspace globs into directories.
type GlobAdapter interface {
	// Glob returns existing directories under root matching pattern,
	// excluding anything inside a node_modules tree. Hidden directories are
	// only matched by pattern segments that start with a dot.
	Glob(ctx context.Context, root m.Path, pattern string) ([]m.Path, error)

	// Match reports whether a slash-separated relative path matches pattern.
	Match(pattern, relPath string) (bool, error)
}

// LocalGlobAdapter implements GlobAdapter with doublestar over os.DirFS.
type LocalGlobAdapter struct{}

// NewLocalGlobAdapter constructs a LocalGlobAdapter.
func NewLocalGlobAdapter() *LocalGlobAdapter {
	return &LocalGlobAdapter{}
}

// Glob expands pattern relative to root.
func (a *LocalGlobAdapter) Glob(ctx context.Context, root m.Path, pattern string) ([]m.Path, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	normalized := NormalizePattern(pattern)
	if !doublestar.ValidatePattern(normalized) {
		return nil, fmt.Errorf("invalid workspace pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	matches, err := doublestar.Glob(os.DirFS(string(root)), normalized)
	if err != nil {
		return nil, fmt.Errorf("expand workspace pattern %q: %w", pattern, err)
	}

	dirs := make([]m.Path, 0, len(matches))

	for _, match := range matches {
		if excludedMatch(normalized, match) {
			continue
		}

		full := filepath.Join(string(root), filepath.FromSlash(match))

		info, err := os.Stat(full)
		if err != nil || !info.IsDir() {
			continue
		}

		dirs = append(dirs, m.Path(full))
	}

	slices.Sort(dirs)

	return dirs, nil
}

// Match reports whether relPath matches pattern.
func (a *LocalGlobAdapter) Match(pattern, relPath string) (bool, error) {
	return doublestar.Match(NormalizePattern(pattern), NormalizePattern(relPath))
}

// NormalizePattern strips "./" prefixes and trailing slashes so patterns
// written like "./packages/*/" are understood by fs.FS based globbing.
func NormalizePattern(pattern string) string {
	pattern = filepath.ToSlash(strings.TrimSpace(pattern))
	for strings.HasPrefix(pattern, "./") {
		pattern = strings.TrimPrefix(pattern, "./")
	}

	pattern = strings.TrimRight(pattern, "/")
	if pattern == "" {
		return "."
	}

	return pattern
}

// excludedMatch drops node_modules trees and hidden directories that only a
// wildcard matched. A hidden directory spelled out in the pattern, such as
// ".tools/*", is kept.
func excludedMatch(pattern, relPath string) bool {
	patternSegments := strings.Split(pattern, "/")

	for _, segment := range strings.Split(relPath, "/") {
		if segment == nodeModulesDir {
			return true
		}

		if len(segment) > 1 && strings.HasPrefix(segment, ".") && !namesHiddenSegment(patternSegments, segment) {
			return true
		}
	}

	return false
}

func namesHiddenSegment(patternSegments []string, segment string) bool {
	for _, patternSegment := range patternSegments {
		if !strings.HasPrefix(patternSegment, ".") {
			continue
		}

		if ok, err := doublestar.Match(patternSegment, segment); err == nil && ok {
			return true
		}
	}

	return false
}
