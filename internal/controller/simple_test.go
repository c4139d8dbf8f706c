package controller

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "depver.dev/pkg/depver/internal/model"
)

func newTestUI(options ...SimpleUIOption) (*SimpleUI, *bytes.Buffer) {
	var buf bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	return NewSimpleUI(cmd, options...), &buf
}

func TestSimpleUI_DisplayMismatches(t *testing.T) {
	dependencies := []m.Dependency{
		{
			Name:          "foo",
			IsMismatching: true,
			Versions: []m.DependencyVersion{
				{Version: "^1.0.0", Packages: []m.Path{"."}, PackageNames: []string{"(Root)"}},
				{Version: "^2.0.0", Packages: []m.Path{"packages/a", "packages/b", "packages/c", "packages/d", "packages/e"}, PackageNames: []string{"a", "b", "c", "d", "e"}},
			},
		},
		{
			Name:          "bar",
			IsMismatching: true,
			Versions: []m.DependencyVersion{
				{Version: "1.0.0", Packages: []m.Path{"packages/a"}},
				{Version: "2.0.0", Packages: []m.Path{"packages/b"}},
			},
		},
	}

	ui, buf := newTestUI()
	require.NoError(t, ui.DisplayMismatches(context.Background(), dependencies))

	output := buf.String()
	assert.Contains(t, output, "Found 2 dependencies with mismatching versions across the workspace. Fix with `--fix`.")
	assert.Contains(t, output, "VERSION")
	assert.Contains(t, output, "a, b, c, and 2 others")
	assert.Contains(t, output, "(Root)")
	assert.Contains(t, output, "packages/b")
	assert.NotContains(t, output, "\x1b[")

	assert.Less(t, strings.Index(output, "^2.0.0"), strings.Index(output, "^1.0.0"), "highest version first")
}

func TestSimpleUI_DisplayMismatches_Singular(t *testing.T) {
	ui, buf := newTestUI()
	require.NoError(t, ui.DisplayMismatches(context.Background(), []m.Dependency{{Name: "foo"}}))

	assert.Contains(t, buf.String(), "Found 1 dependency with mismatching versions")
}

func TestSimpleUI_DisplayFixed(t *testing.T) {
	ui, buf := newTestUI()

	err := ui.DisplayFixed(context.Background(), []m.Dependency{
		{Name: "foo", FixedVersion: "^2.0.0"},
		{Name: "bar", FixedVersion: "1.5.0"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Fixed versions for 2 dependencies: foo@^2.0.0, bar@1.5.0\n", buf.String())
}

func TestSimpleUI_DisplayPackages(t *testing.T) {
	ui, buf := newTestUI()

	packages := []*m.Package{
		{Name: "(Root)", Path: "/ws", WorkspaceRoot: "/ws"},
		{Name: "a", Path: "/ws/packages/a", WorkspaceRoot: "/ws", Manifest: m.Manifest{Version: "1.2.3"}},
	}

	require.NoError(t, ui.DisplayPackages(context.Background(), packages))

	output := buf.String()
	assert.Contains(t, output, "packages/a")
	assert.Contains(t, output, "1.2.3")
	assert.Contains(t, output, "TOTAL PACKAGES 2")
}

func TestSimpleUI_CanceledContext(t *testing.T) {
	ui, buf := newTestUI()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, ui.DisplayMismatches(ctx, nil), context.Canceled)
	assert.ErrorIs(t, ui.DisplayFixed(ctx, nil), context.Canceled)
	assert.ErrorIs(t, ui.DisplayPackages(ctx, nil), context.Canceled)
	assert.Empty(t, buf.String())
}

func TestListPackages(t *testing.T) {
	assert.Equal(t, "a, b", listPackages(m.DependencyVersion{PackageNames: []string{"a", "b"}}))
	assert.Equal(t, "a, b, c, and 1 other", listPackages(m.DependencyVersion{PackageNames: []string{"a", "b", "c", "d"}}))
	assert.Equal(t, "packages/x", listPackages(m.DependencyVersion{Packages: []m.Path{"packages/x"}}))
}

func TestIsTTY(t *testing.T) {
	assert.False(t, IsTTY(nil))
}
