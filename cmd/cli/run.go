// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"rgui/internal/logger"
	"rgui/internal/runner"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

func newSpinner(w io.Writer) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Color("cyan")
	return s
}

var runCmd = &cobra.Command{
	Use:   "run [dir]",
	Short: "Run repomix with the saved options and exclusions",
	Long: `Builds the repomix command, shows it and asks for confirmation (unless --yes),
then runs it in the project directory. The combined output is printed once the
process exits; a failure exits with status 1.`,
	Example:           "  rgui run\n  rgui run ~/src/project --yes",
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
		yes, _ := cmd.Flags().GetBool("yes")

		out := cmd.OutOrStdout()
		statusColor.Fprintf(out, "Project: %s\n", identifierColor.Sprint(step.Dir))
		statusColor.Fprintf(out, "Files:   %d\n", len(ws.Included()))
		stepColor.Fprintf(out, "$ %s\n", runner.Preview(step))

		if !yes {
			ok, err := confirm(cmd.InOrStdin(), out, "Run repomix now? [y/N]: ")
			if err != nil {
				return err
			}
			if !ok {
				dimColor.Fprintln(out, "Aborted.")
				return nil
			}
		}

		return runStep(cmd, step, ws.RunConfig().OutputFile())
	},
}

// runStep executes repomix behind a spinner and prints the captured output.
func runStep(cmd *cobra.Command, step runner.CommandStep, outputFile string) error {
	out := cmd.OutOrStdout()

	s := newSpinner(cmd.ErrOrStderr())
	s.Suffix = fmt.Sprintf(" Running %s in %s...", step.Name, step.Dir)
	s.Start()
	res := runner.Run(step, nil)
	s.Stop()

	if res.Output != "" {
		fmt.Fprint(out, res.Output)
		if !strings.HasSuffix(res.Output, "\n") {
			fmt.Fprintln(out)
		}
	}

	if !res.Success() {
		logger.Errorf("repomix failed in %s: %v", step.Dir, res.Err)
		if errors.Is(res.Err, runner.ErrExecutableNotFound) {
			errorColor.Fprintln(cmd.ErrOrStderr(), "Install repomix with: npm install -g repomix")
		}
		return fmt.Errorf("repomix %s", res.Summary())
	}
	successColor.Fprintf(out, "repomix %s. Output: %s\n", res.Summary(), identifierColor.Sprint(outputFile))
	return nil
}

// confirm asks a yes/no question; anything but y/yes is a no.
func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func init() {
	runCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
}
