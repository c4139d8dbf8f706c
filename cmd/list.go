package cmd

import (
	"github.com/spf13/cobra"

	"depver.dev/pkg/depver/internal/domain"
)

const listLongDescription = `List the packages of the workspace that depver checks: the root package
and every package matched by the workspace patterns, after applying the
--ignore-package, --ignore-package-pattern, --ignore-path and
--ignore-path-pattern filters.`

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [path]",
		Short: "List the workspace packages",
		Long:  listLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			packages, err := checker.ListPackages(ctx, domain.ListArgs{
				Path:                  workspacePath(args),
				IgnorePackages:        stringArraySetting(cmd, ignorePackageFlagName, ignorePackagesConfigKey),
				IgnorePackagePatterns: stringArraySetting(cmd, ignorePackagePatternFlagName, ignorePackagePatternsConfigKey),
				IgnorePaths:           stringArraySetting(cmd, ignorePathFlagName, ignorePathsConfigKey),
				IgnorePathPatterns:    stringArraySetting(cmd, ignorePathPatternFlagName, ignorePathPatternsConfigKey),
			})
			if err != nil {
				return err
			}

			return newUI(cmd).DisplayPackages(ctx, packages)
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
