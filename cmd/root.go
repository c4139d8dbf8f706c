// Package cmd provides the root command and CLI setup for depver.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"depver.dev/pkg/depver/internal/adapter"
	"depver.dev/pkg/depver/internal/controller"
	"depver.dev/pkg/depver/internal/domain"
	m "depver.dev/pkg/depver/internal/model"
)

// ErrMismatchesFound is returned when inconsistent versions remain after the
// command ran. It only sets the exit status; the details are already printed.
var ErrMismatchesFound = errors.New("dependency versions are inconsistent across the workspace")

var manifestAdapter adapter.ManifestAdapter
var checker domain.Checker

// newUI builds the UI for a command run.
var newUI = func(cmd *cobra.Command) controller.UI {
	return controller.NewUI(cmd, controller.IsTTY(os.Stdout))
}

var (
	fixFlag                   bool
	depTypeFlags              []string
	ignoreDepFlags            []string
	ignoreDepPatternFlags     []string
	ignorePackageFlags        []string
	ignorePackagePatternFlags []string
	ignorePathFlags           []string
	ignorePathPatternFlags    []string
	logFileFlag               string
	verboseFlag               bool
)

func init() {
	manifestAdapter = adapter.NewLocalManifestAdapter()
	checker = domain.NewChecker(
		domain.NewDiscoverer(manifestAdapter, adapter.NewLocalGlobAdapter(), adapter.NewLocalWorkspaceFileAdapter()),
		domain.NewFixer(manifestAdapter),
	)
}

const rootLongDescription = `depver checks that dependencies are on consistent versions across a
monorepo / npm, pnpm or Yarn workspace, and can fix them by converging every
manifest on the highest version in use.

Workspace packages are read from the root package.json "workspaces" field or
from pnpm-workspace.yaml. The exit status is 1 while mismatches remain.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "depver [path]",
		Short:         "Check dependency version consistency across a JavaScript workspace",
		Long:          rootLongDescription,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: runCheck,
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "file to write logs to")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.Flags().BoolVar(&fixFlag, fixFlagName, viper.GetBool(fixConfigKey), "whether to autofix inconsistencies (using highest version present)")
	bindFlagToConfig(cmd.Flags().Lookup(fixFlagName), fixConfigKey)

	cmd.Flags().StringArrayVar(&depTypeFlags, depTypeFlagName, viper.GetStringSlice(depTypesConfigKey),
		fmt.Sprintf("type of dependency to check (choices: %s) (default: %s) (can be repeated)",
			strings.Join(m.DependencyTypeNames(), ", "), joinDependencyTypes(m.DefaultDependencyTypes)))
	bindFlagToConfig(cmd.Flags().Lookup(depTypeFlagName), depTypesConfigKey)

	stringArrayFlags := []struct {
		target *[]string
		name   string
		key    string
		usage  string
	}{
		{&ignoreDepFlags, ignoreDepFlagName, ignoreDepsConfigKey, "dependency to ignore (can be repeated)"},
		{&ignoreDepPatternFlags, ignoreDepPatternFlagName, ignoreDepPatternsConfigKey, "regexp of dependency names to ignore (can be repeated)"},
		{&ignorePackageFlags, ignorePackageFlagName, ignorePackagesConfigKey, "workspace package to ignore (can be repeated)"},
		{&ignorePackagePatternFlags, ignorePackagePatternFlagName, ignorePackagePatternsConfigKey, "regexp of package names to ignore (can be repeated)"},
		{&ignorePathFlags, ignorePathFlagName, ignorePathsConfigKey, "workspace-relative path of packages to ignore (can be repeated)"},
		{&ignorePathPatternFlags, ignorePathPatternFlagName, ignorePathPatternsConfigKey, "regexp of workspace-relative path of packages to ignore (can be repeated)"},
	}

	for _, f := range stringArrayFlags {
		cmd.PersistentFlags().StringArrayVar(f.target, f.name, viper.GetStringSlice(f.key), f.usage)
		bindFlagToConfig(cmd.PersistentFlags().Lookup(f.name), f.key)
	}
}

func joinDependencyTypes(depTypes []m.DependencyType) string {
	names := make([]string, 0, len(depTypes))
	for _, depType := range depTypes {
		names = append(names, string(depType))
	}

	return strings.Join(names, ", ")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// stringArraySetting returns the values of a repeatable flag when it was set
// and the config/env value otherwise. Flag values are taken as given; going
// through viper would re-split them as CSV and break patterns like "a{1,2}".
func stringArraySetting(cmd *cobra.Command, flagName, key string) []string {
	flag := cmd.Flags().Lookup(flagName)
	if flag != nil && flag.Changed {
		if values, err := cmd.Flags().GetStringArray(flagName); err == nil {
			return values
		}
	}

	return viper.GetStringSlice(key)
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	fix := viper.GetBool(fixConfigKey)

	result, err := checker.Check(ctx, domain.CheckArgs{
		Path:                  workspacePath(args),
		Fix:                   fix,
		DepTypes:              stringArraySetting(cmd, depTypeFlagName, depTypesConfigKey),
		IgnoreDeps:            stringArraySetting(cmd, ignoreDepFlagName, ignoreDepsConfigKey),
		IgnoreDepPatterns:     stringArraySetting(cmd, ignoreDepPatternFlagName, ignoreDepPatternsConfigKey),
		IgnorePackages:        stringArraySetting(cmd, ignorePackageFlagName, ignorePackagesConfigKey),
		IgnorePackagePatterns: stringArraySetting(cmd, ignorePackagePatternFlagName, ignorePackagePatternsConfigKey),
		IgnorePaths:           stringArraySetting(cmd, ignorePathFlagName, ignorePathsConfigKey),
		IgnorePathPatterns:    stringArraySetting(cmd, ignorePathPatternFlagName, ignorePathPatternsConfigKey),
	})
	if err != nil {
		return err
	}

	ui := newUI(cmd)

	if !fix {
		if !result.HasMismatchingDependencies() {
			return nil
		}

		if err := ui.DisplayMismatches(ctx, result.MismatchingDependencies()); err != nil {
			return err
		}

		return ErrMismatchesFound
	}

	if result.HasMismatchingDependenciesFixable() {
		if err := ui.DisplayFixed(ctx, result.FixableDependencies()); err != nil {
			return err
		}
	}

	if result.HasMismatchingDependenciesNotFixable() {
		if err := ui.DisplayMismatches(ctx, result.NotFixableDependencies()); err != nil {
			return err
		}

		return ErrMismatchesFound
	}

	return nil
}

func workspacePath(args []string) string {
	if len(args) == 0 {
		return "."
	}

	return args[0]
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		if !errors.Is(err, ErrMismatchesFound) {
			rootCmd.PrintErrln("Error:", err)
		}

		os.Exit(1)
	}
}
