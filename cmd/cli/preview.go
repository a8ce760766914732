// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"fmt"
	"strings"

	"rgui/internal/discovery"
	"rgui/internal/runner"

	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview [dir]",
	Short: "Print the repomix command for the current selection",
	Long: `Prints the repomix command line built from the saved options and exclusions.
With --shell the line is quoted for POSIX shells and prefixed with a cd into the
project directory, ready to paste into a terminal.`,
	Example:           "  rgui preview\n  rgui preview ~/src/project --shell",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: dirCompletionFunc,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openRootedWorkspace(cmd, args)
		if err != nil {
			return err
		}
		step, err := ws.Step()
		if err != nil {
			return err
		}
		shell, _ := cmd.Flags().GetBool("shell")
		if shell {
			fmt.Fprintln(cmd.OutOrStdout(), runner.ShellCommand(step))
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), runner.Preview(step))
		}
		return nil
	},
}

var filesCmd = &cobra.Command{
	Use:   "files [dir]",
	Short: "List the files repomix would pack",
	Long: `Lists the files left after default patterns, ignore patterns and exact
exclusions have been applied. Binary files are never listed. Files that the root
.gitignore matches stay listed; repomix skips them itself unless respect_gitignore
is off, and the summary counts them.`,
	Example:           "  rgui files\n  rgui files --filter internal/\n  rgui files --excluded",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: dirCompletionFunc,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openRootedWorkspace(cmd, args)
		if err != nil {
			return err
		}
		filter, _ := cmd.Flags().GetString("filter")
		excluded, _ := cmd.Flags().GetBool("excluded")

		out := cmd.OutOrStdout()
		if excluded {
			paths := discovery.Filter(ws.Excluded(), filter)
			for _, p := range paths {
				fmt.Fprintln(out, p)
			}
			statusColor.Fprintf(cmd.ErrOrStderr(), "%d excluded file(s)\n", len(paths))
			return nil
		}

		files := ws.Filtered(filter)
		for _, f := range files {
			fmt.Fprintln(out, f)
		}
		summary := fmt.Sprintf("%d of %d file(s) included", len(ws.Included()), len(ws.Files()))
		if hits := ws.GitignoreHits(); len(hits) > 0 {
			summary += fmt.Sprintf(", %d matched by .gitignore", len(hits))
		}
		if strings.TrimSpace(filter) != "" {
			summary = fmt.Sprintf("%d match '%s'; %s", len(files), filter, summary)
		}
		statusColor.Fprintln(cmd.ErrOrStderr(), summary)
		return nil
	},
}

func init() {
	previewCmd.Flags().Bool("shell", false, "print a shell-ready line with a cd into the project")
	filesCmd.Flags().StringP("filter", "f", "", "case-insensitive substring filter")
	filesCmd.Flags().BoolP("excluded", "x", false, "list exact exclusions instead")
}
