// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"fmt"
	"strings"

	"rgui/internal/options"

	"github.com/spf13/cobra"
)

// setCmd is the parent command for run option changes
var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Change repomix run options",
	Long: `Changes one of the saved run options. The new value is used by the
interactive interface, 'rgui preview' and 'rgui run'.`,
}

var setStyleCmd = &cobra.Command{
	Use:               "style <markdown|plain|xml>",
	Short:             "Set the output style (the output extension follows)",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: styleCompletionFunc,
	RunE: func(cmd *cobra.Command, args []string) error {
		style, err := options.ParseStyle(args[0])
		if err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		ws, err := openWorkspace(cmd, nil)
		if err != nil {
			return err
		}
		renamed, err := ws.SetStyle(style)
		if err != nil {
			return err
		}
		successColor.Fprintf(cmd.OutOrStdout(), "Style set to %s\n", identifierColor.Sprint(style))
		if renamed != "" {
			statusColor.Fprintf(cmd.OutOrStdout(), "Output file renamed to %s\n", identifierColor.Sprint(renamed))
		}
		return nil
	},
}

var setOutputCmd = &cobra.Command{
	Use:   "output <name>",
	Short: "Set the output file name (an empty name restores the default)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd, nil)
		if err != nil {
			return err
		}
		if err := ws.SetOutputName(args[0]); err != nil {
			return err
		}
		cfg := ws.RunConfig()
		successColor.Fprintf(cmd.OutOrStdout(), "Output file set to %s\n", identifierColor.Sprint(cfg.OutputName))
		if cfg.OutputFile() != cfg.OutputName {
			dimColor.Fprintf(cmd.OutOrStdout(), "repomix will write %s to match the %s style\n", cfg.OutputFile(), cfg.Style)
		}
		return nil
	},
}

var setHeaderCmd = &cobra.Command{
	Use:     "header [text...]",
	Short:   "Set the header text (no arguments clears it)",
	Example: "  rgui set header Review the error handling\n  rgui set header",
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd, nil)
		if err != nil {
			return err
		}
		text := strings.Join(args, " ")
		if err := ws.SetHeaderText(text); err != nil {
			return err
		}
		if strings.TrimSpace(text) == "" {
			successColor.Fprintln(cmd.OutOrStdout(), "Header text cleared")
		} else {
			successColor.Fprintf(cmd.OutOrStdout(), "Header text set to %q\n", text)
		}
		return nil
	},
}

var setInstructionsCmd = &cobra.Command{
	Use:   "instructions [path]",
	Short: "Set the instruction file (no argument clears it)",
	Long: `Sets the file passed to repomix with --instruction-file-path. Relative paths
are resolved against the project directory; the file must exist.`,
	Args: cobra.MaximumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return nil, cobra.ShellCompDirectiveDefault
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd, nil)
		if err != nil {
			return err
		}
		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		if err := ws.SetInstructionFile(path); err != nil {
			return err
		}
		if p := ws.RunConfig().InstructionFilePath; p != "" {
			successColor.Fprintf(cmd.OutOrStdout(), "Instruction file set to %s\n", identifierColor.Sprint(p))
		} else {
			successColor.Fprintln(cmd.OutOrStdout(), "Instruction file cleared")
		}
		return nil
	},
}

var setFlagCmd = &cobra.Command{
	Use:   "flag <key> <on|off>",
	Short: "Turn a repomix flag on or off",
	Long: `Turns one of the boolean repomix options on or off. Keys match the saved
state (e.g. compress, remove_comments); the repomix flag name is accepted too.

Available keys:
` + flagKeysHelp(),
	Example:           "  rgui set flag compress on\n  rgui set flag no-file-summary off",
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: flagCompletionFunc,
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, ok := options.LookupFlag(args[0])
		if !ok {
			return fmt.Errorf("%w: unknown flag '%s'", errUsage, args[0])
		}
		value, err := parseOnOff(args[1])
		if err != nil {
			return err
		}
		ws, err := openWorkspace(cmd, nil)
		if err != nil {
			return err
		}
		if err := ws.SetFlag(spec.Key, value); err != nil {
			return err
		}
		successColor.Fprintf(cmd.OutOrStdout(), "%s: %s\n", spec.Label, onOff(value))
		return nil
	},
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("%w: want on or off, got '%s'", errUsage, s)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func flagKeysHelp() string {
	var b strings.Builder
	for _, spec := range options.FlagSpecs() {
		fmt.Fprintf(&b, "  %-24s %s (%s)\n", spec.Key, spec.Label, spec.Flag)
	}
	return b.String()
}

func init() {
	setCmd.AddCommand(setStyleCmd)
	setCmd.AddCommand(setOutputCmd)
	setCmd.AddCommand(setHeaderCmd)
	setCmd.AddCommand(setInstructionsCmd)
	setCmd.AddCommand(setFlagCmd)
}
