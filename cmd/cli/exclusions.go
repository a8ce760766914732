// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"fmt"
	"slices"
	"strings"

	"rgui/internal/config"
	"rgui/internal/exclusion"

	"github.com/spf13/cobra"
)

// ignoreCmd is the parent command for glob pattern management
var ignoreCmd = &cobra.Command{
	Use:   "ignore",
	Short: "Manage ignore patterns",
	Long: `Ignore patterns are shell-style globs passed to repomix via --ignore. A pattern
without a slash also hides everything under a directory of that name.
Default patterns are added automatically when a matching entry exists in the
project root; removing one keeps it removed.`,
}

var ignoreListCmd = &cobra.Command{
	Use:   "list",
	Short: "List ignore patterns",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd, nil)
		if err != nil {
			return err
		}
		cfg, _ := config.LoadConfig()
		defaults := cfg.PatternsOr(exclusion.DefaultPatterns)

		out := cmd.OutOrStdout()
		patterns := ws.Patterns()
		if len(patterns) == 0 {
			dimColor.Fprintln(cmd.ErrOrStderr(), "No ignore patterns.")
		}
		for _, p := range patterns {
			if slices.Contains(defaults, p) {
				fmt.Fprintf(out, "%s %s\n", p, dimColor.Sprint("(default)"))
			} else {
				fmt.Fprintln(out, p)
			}
		}
		if optOut := ws.OptOut(); len(optOut) > 0 {
			dimColor.Fprintf(cmd.ErrOrStderr(), "Removed defaults: %s\n", strings.Join(optOut, ", "))
		}
		return nil
	},
}

var ignoreAddCmd = &cobra.Command{
	Use:     "add <pattern>...",
	Short:   "Add one or more ignore patterns",
	Example: "  rgui ignore add '*.log' 'docs/**'",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd, nil)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, p := range args {
			if strings.ContainsRune(p, ',') {
				return fmt.Errorf("%w: pattern '%s' contains a comma", errUsage, p)
			}
			added, err := ws.AddPattern(p)
			if err != nil {
				return err
			}
			if added {
				successColor.Fprintf(out, "Added pattern: %s\n", identifierColor.Sprint(exclusion.Normalize(p)))
			} else {
				dimColor.Fprintf(out, "Skipped '%s' (empty or already present)\n", p)
			}
		}
		return nil
	},
}

var ignoreRemoveCmd = &cobra.Command{
	Use:               "remove <pattern>...",
	Aliases:           []string{"rm"},
	Short:             "Remove ignore patterns",
	Long:              `Removes patterns. Exact exclusions that were only hidden by a removed pattern are released too.`,
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: patternCompletionFunc,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd, nil)
		if err != nil {
			return err
		}
		removed, err := ws.RemovePatterns(args...)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, p := range removed {
			successColor.Fprintf(out, "Removed pattern: %s\n", identifierColor.Sprint(p))
		}
		for _, p := range args {
			if !slices.Contains(removed, exclusion.Normalize(p)) {
				errorColor.Fprintf(cmd.ErrOrStderr(), "Pattern not found: %s\n", p)
			}
		}
		if len(removed) == 0 {
			return fmt.Errorf("no matching patterns")
		}
		return nil
	},
}

// excludeCmd is the parent command for exact path exclusions
var excludeCmd = &cobra.Command{
	Use:   "exclude",
	Short: "Manage exact file exclusions",
	Long:  `Exact exclusions are project-relative file paths left out of the packed output.`,
}

var excludeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List exact exclusions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd, nil)
		if err != nil {
			return err
		}
		excluded := ws.Excluded()
		if len(excluded) == 0 {
			dimColor.Fprintln(cmd.ErrOrStderr(), "No files excluded.")
		}
		for _, p := range excluded {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return nil
	},
}

var excludeAddCmd = &cobra.Command{
	Use:               "add <path>...",
	Short:             "Exclude files by project-relative path",
	Example:           "  rgui exclude add README.md internal/generated.go",
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: includedCompletionFunc,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openRootedWorkspace(cmd, nil)
		if err != nil {
			return err
		}
		paths := make([]string, 0, len(args))
		for _, a := range args {
			p := exclusion.NormalizePath(a)
			if strings.TrimSpace(p) == "" {
				continue
			}
			if strings.ContainsRune(p, ',') {
				return fmt.Errorf("%w: path '%s' %v", errUsage, p, exclusion.ErrComma)
			}
			if !slices.Contains(ws.Files(), p) {
				dimColor.Fprintf(cmd.ErrOrStderr(), "Note: %s is not a listed file\n", p)
			}
			paths = append(paths, p)
		}
		if len(paths) == 0 {
			return fmt.Errorf("%w: no paths given", errUsage)
		}
		if err := ws.Exclude(paths...); err != nil {
			return err
		}
		successColor.Fprintf(cmd.OutOrStdout(), "Excluded %d file(s)\n", len(paths))
		return nil
	},
}

var excludeRemoveCmd = &cobra.Command{
	Use:               "remove <path>...",
	Aliases:           []string{"rm"},
	Short:             "Include previously excluded files again",
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: excludedCompletionFunc,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd, nil)
		if err != nil {
			return err
		}
		paths := make([]string, 0, len(args))
		for _, a := range args {
			paths = append(paths, exclusion.NormalizePath(a))
		}
		n, err := ws.Include(paths...)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("none of the given paths were excluded")
		}
		successColor.Fprintf(cmd.OutOrStdout(), "Included %d file(s)\n", n)
		return nil
	},
}

func init() {
	ignoreCmd.AddCommand(ignoreListCmd)
	ignoreCmd.AddCommand(ignoreAddCmd)
	ignoreCmd.AddCommand(ignoreRemoveCmd)

	excludeCmd.AddCommand(excludeListCmd)
	excludeCmd.AddCommand(excludeAddCmd)
	excludeCmd.AddCommand(excludeRemoveCmd)
}
