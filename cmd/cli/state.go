// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"encoding/json"
	"fmt"

	"rgui/internal/config"
	"rgui/internal/logger"
	"rgui/internal/version"

	"github.com/spf13/cobra"
)

// stateCmd is the parent command for the saved UI state
var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Inspect or reset the saved state",
}

var statePathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the location of the state file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd, nil)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ws.StatePath())
		return nil
	},
}

var stateShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved state as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd, nil)
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(ws.Snapshot(), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode state: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var stateResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default options and forget all patterns and exclusions",
	Long: `Restores the default run options and clears ignore patterns, exact exclusions
and removed defaults. The project directory is kept; default patterns are
added again for entries that exist in it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd, nil)
		if err != nil {
			return err
		}
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Reset all options and exclusions? [y/N]: ")
			if err != nil {
				return err
			}
			if !ok {
				dimColor.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
		}
		if err := ws.ResetState(); err != nil {
			return err
		}
		printNotices(cmd, ws)
		logger.Info("State reset", "path", ws.StatePath())
		successColor.Fprintln(cmd.OutOrStdout(), "State reset to defaults.")
		return nil
	},
}

// configCmd is the parent command for all configuration-related subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage rgui configuration",
	Long: `Provides subcommands to manage the rgui configuration file
(executable path, default patterns, skipped extensions and the state file location).`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the location of the configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := config.DefaultConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), p)
		return nil
	},
}

var configLogPathCmd = &cobra.Command{
	Use:   "log-path",
	Short: "Print the location of the log file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := logger.LogFilePath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), p)
		return nil
	},
}

var configGetExecutableCmd = &cobra.Command{
	Use:   "get-executable",
	Short: "Show the repomix executable that will be run",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("error loading configuration: %w", err)
		}
		if cfg.Executable == "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", cfg.ExecutableOrDefault(), dimColor.Sprint("(default, looked up in PATH)"))
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), cfg.ExecutableOrDefault())
		return nil
	},
}

var configSetExecutableCmd = &cobra.Command{
	Use:   "set-executable <path>",
	Short: "Set the repomix executable",
	Long: `Sets the repomix binary to run. Use a name looked up in PATH, an absolute path
or a path starting with '~/'. To revert to the default, set it to an empty string:
rgui config set-executable ""`,
	Args: cobra.ExactArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveDefault
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("error loading configuration: %w", err)
		}
		cfg.Executable = args[0]
		if err := config.SaveConfig(cfg); err != nil {
			return fmt.Errorf("error saving configuration: %w", err)
		}
		if cfg.Executable == "" {
			successColor.Fprintln(cmd.OutOrStdout(), "Executable reset to default (repomix in PATH).")
		} else {
			successColor.Fprintf(cmd.OutOrStdout(), "Executable set to: %s\n", identifierColor.Sprint(cfg.Executable))
		}
		return nil
	},
}

// versionCmd prints the build metadata; --short prints only the version number.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the version of rgui",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		short, err := cmd.Flags().GetBool("short")
		if err != nil {
			return fmt.Errorf("error reading flags: %w", err)
		}

		v := version.Get()
		if short {
			fmt.Fprintln(cmd.OutOrStdout(), v.Version)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), v.String())
		}
		return nil
	},
}

func init() {
	stateResetCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
	stateCmd.AddCommand(statePathCmd)
	stateCmd.AddCommand(stateShowCmd)
	stateCmd.AddCommand(stateResetCmd)

	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configLogPathCmd)
	configCmd.AddCommand(configGetExecutableCmd)
	configCmd.AddCommand(configSetExecutableCmd)

	versionCmd.Flags().BoolP("short", "s", false, "Print the version number only")
}
