package controller

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "depver.dev/pkg/depver/internal/model"
)

// maxListedPackages caps how many package names a version row shows.
const maxListedPackages = 3

// SimpleUI implements UI by writing tables to the command's output.
type SimpleUI struct {
	cmd      *cobra.Command
	emphasis bool
	bold     lipgloss.Style
}

// SimpleUIOption configures a SimpleUI.
type SimpleUIOption func(*SimpleUI)

// WithEmphasis enables bold dependency names.
func WithEmphasis(enabled bool) SimpleUIOption {
	return func(s *SimpleUI) {
		s.emphasis = enabled
	}
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command, options ...SimpleUIOption) *SimpleUI {
	s := &SimpleUI{
		cmd:  cmd,
		bold: lipgloss.NewStyle().Bold(true),
	}

	for _, option := range options {
		option(s)
	}

	return s
}

// DisplayMismatches prints a summary line followed by one table per
// mismatching dependency, highest version first.
func (s *SimpleUI) DisplayMismatches(ctx context.Context, dependencies []m.Dependency) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("Found %d %s with mismatching versions across the workspace. Fix with `--fix`.\n",
		len(dependencies), pluralize(len(dependencies), "dependency", "dependencies"))

	for _, dep := range dependencies {
		s.printf("\n%s\n%s", s.emphasize(dep.Name), renderVersionsTable(dep.Versions))
	}

	return nil
}

// DisplayFixed prints the dependencies that were converged.
func (s *SimpleUI) DisplayFixed(ctx context.Context, dependencies []m.Dependency) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fixed := make([]string, 0, len(dependencies))
	for _, dep := range dependencies {
		fixed = append(fixed, s.emphasize(dep.Name)+"@"+dep.FixedVersion)
	}

	s.printf("Fixed versions for %d %s: %s\n",
		len(dependencies), pluralize(len(dependencies), "dependency", "dependencies"), strings.Join(fixed, ", "))

	return nil
}

// DisplayPackages prints the workspace packages as a table.
func (s *SimpleUI) DisplayPackages(ctx context.Context, packages []*m.Package) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Name", "Version", "Path"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	for _, pkg := range packages {
		table.Append([]string{pkg.Name, pkg.Manifest.Version, string(pkg.RelativePath())})
	}

	table.SetFooter([]string{fmt.Sprintf("Total Packages %d", len(packages)), "", ""})
	table.Render()

	s.printf("%s", tableBuffer.String())

	return nil
}

func renderVersionsTable(versions []m.DependencyVersion) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Version", "Usages", "Packages"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT})

	for i := len(versions) - 1; i >= 0; i-- {
		version := versions[i]
		table.Append([]string{
			version.Version,
			strconv.Itoa(len(version.Packages)),
			listPackages(version),
		})
	}

	table.Render()

	return tableBuffer.String()
}

// listPackages names up to maxListedPackages packages and counts the rest.
func listPackages(version m.DependencyVersion) string {
	names := version.PackageNames
	if len(names) == 0 {
		for _, path := range version.Packages {
			names = append(names, string(path))
		}
	}

	if len(names) <= maxListedPackages {
		return strings.Join(names, ", ")
	}

	others := len(names) - maxListedPackages

	return fmt.Sprintf("%s, and %d %s", strings.Join(names[:maxListedPackages], ", "), others, pluralize(others, "other", "others"))
}

func (s *SimpleUI) emphasize(text string) string {
	if !s.emphasis {
		return text
	}

	return s.bold.Render(text)
}

func (s *SimpleUI) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func pluralize(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}

	return plural
}
