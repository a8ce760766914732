// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"errors"
	"fmt"
	"os"

	"rgui/internal/config"
	"rgui/internal/discovery"
	"rgui/internal/logger"
	"rgui/internal/workspace"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	statusColor     = color.New(color.FgCyan)
	errorColor      = color.New(color.FgRed)
	stepColor       = color.New(color.FgYellow)
	successColor    = color.New(color.FgGreen)
	identifierColor = color.New(color.FgBlue)
	// dimColor is used for less important/secondary text in the CLI output
	dimColor = color.New(color.Faint)
)

// dirFlag is the project directory shared by every subcommand (--dir/-C).
var dirFlag string

var rootCmd = &cobra.Command{
	Use:   "rgui",
	Short: "Interactive front-end for repomix",
	Long: `Select which files of a repository repomix should pack, preview the exact
command line and run it.

Run without arguments (or with a single directory) in a terminal to start the
interactive interface. Subcommands edit the same saved state from scripts.
Exclusions and options are stored in ~/.cache/RepomixGUI/state.json; the
application config lives in ~/.config/rgui/config.yaml.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	Args:          cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		if s := cmd.SuggestionsFor(args[0]); len(s) > 0 {
			return fmt.Errorf("unknown command %q, did you mean %q?", args[0], s[0])
		}
		dir, err := config.ResolvePath(args[0])
		if err != nil {
			return err
		}
		if err := discovery.CheckRoot(dir); err != nil {
			return err
		}
		return fmt.Errorf("the interactive interface needs a terminal; try 'rgui preview %s' or 'rgui run %s'", args[0], args[0])
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.EnsureConfigDir(); err != nil {
			return fmt.Errorf("failed to ensure config directory: %w", err)
		}
		logger.InitLogger(false)
		return nil
	},
}

// RunCLI executes the command tree and exits non-zero on failure.
func RunCLI() {
	err := rootCmd.Execute()
	logger.Close()
	if err != nil {
		errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// HasCommand reports whether name is a subcommand (or alias) of the CLI.
func HasCommand(name string) bool {
	for _, c := range rootCmd.Commands() {
		if c.Name() == name || c.HasAlias(name) {
			return true
		}
	}
	return name == "help" || name == "completion"
}

// HasSuggestion reports whether name looks like a mistyped subcommand.
func HasSuggestion(name string) bool {
	return len(rootCmd.SuggestionsFor(name)) > 0
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dirFlag, "dir", "C", "", "project directory (defaults to the last one used)")
	_ = rootCmd.RegisterFlagCompletionFunc("dir", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveFilterDirs
	})

	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(filesCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(ignoreCmd)
	rootCmd.AddCommand(excludeCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// openWorkspace loads the config and state and selects the project directory:
// a positional argument wins over --dir, which wins over the cached one.
func openWorkspace(cmd *cobra.Command, args []string) (*workspace.Workspace, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Warn("Using default configuration", "error", err)
		dimColor.Fprintf(cmd.ErrOrStderr(), "Ignoring configuration: %v\n", err)
		cfg = config.Config{}
	}

	ws, err := workspace.Open(cfg, "", "")
	if err != nil {
		return nil, err
	}

	dir := dirFlag
	if len(args) > 0 {
		dir = args[0]
	}
	if dir != "" {
		if err := ws.SetRoot(dir); err != nil {
			return nil, err
		}
	}
	printNotices(cmd, ws)
	return ws, nil
}

// openRootedWorkspace is openWorkspace for commands that need a project directory.
func openRootedWorkspace(cmd *cobra.Command, args []string) (*workspace.Workspace, error) {
	ws, err := openWorkspace(cmd, args)
	if err != nil {
		return nil, err
	}
	if ws.Root() == "" {
		return nil, fmt.Errorf("%w (pass a directory or --dir)", workspace.ErrNoRoot)
	}
	return ws, nil
}

func printNotices(cmd *cobra.Command, ws *workspace.Workspace) {
	for _, n := range ws.Notices() {
		dimColor.Fprintln(cmd.ErrOrStderr(), n)
	}
}

// errUsage marks errors caused by bad arguments.
var errUsage = errors.New("invalid argument")
