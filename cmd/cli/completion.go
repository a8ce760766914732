// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"strings"

	"rgui/internal/config"
	"rgui/internal/options"
	"rgui/internal/workspace"

	"github.com/spf13/cobra"
)

// openWorkspaceForCompletion opens the saved workspace without printing or
// failing; completion must stay silent.
func openWorkspaceForCompletion() *workspace.Workspace {
	cfg, _ := config.LoadConfig()
	ws, err := workspace.Open(cfg, "", "")
	if err != nil {
		return nil
	}
	if dirFlag != "" {
		_ = ws.SetRoot(dirFlag)
	}
	return ws
}

// withPrefix keeps the candidates starting with toComplete and not already in args.
func withPrefix(candidates, args []string, toComplete string) []string {
	used := make(map[string]struct{}, len(args))
	for _, a := range args {
		used[a] = struct{}{}
	}
	var out []string
	for _, c := range candidates {
		if _, ok := used[c]; ok {
			continue
		}
		if strings.HasPrefix(c, toComplete) {
			out = append(out, c)
		}
	}
	return out
}

func dirCompletionFunc(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveFilterDirs
}

func styleCompletionFunc(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	styles := make([]string, 0, len(options.Styles))
	for _, s := range options.Styles {
		styles = append(styles, string(s))
	}
	return withPrefix(styles, nil, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// flagCompletionFunc completes the flag key first, then on/off.
func flagCompletionFunc(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		return withPrefix(options.FlagKeys(), nil, toComplete), cobra.ShellCompDirectiveNoFileComp
	case 1:
		return withPrefix([]string{"on", "off"}, nil, toComplete), cobra.ShellCompDirectiveNoFileComp
	default:
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
}

func patternCompletionFunc(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	ws := openWorkspaceForCompletion()
	if ws == nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return withPrefix(ws.Patterns(), args, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func excludedCompletionFunc(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	ws := openWorkspaceForCompletion()
	if ws == nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return withPrefix(ws.Excluded(), args, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func includedCompletionFunc(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	ws := openWorkspaceForCompletion()
	if ws == nil || ws.Root() == "" {
		return nil, cobra.ShellCompDirectiveDefault
	}
	return withPrefix(ws.Included(), args, toComplete), cobra.ShellCompDirectiveNoFileComp
}
