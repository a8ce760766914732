// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package runner

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"rgui/internal/logger"
)

// Run executes step synchronously. Stdout and stderr are merged into
// Result.Output and, when tee is non-nil, copied to it as they arrive.
func Run(step CommandStep, tee io.Writer) Result {
	var buf bytes.Buffer
	var w io.Writer = &buf
	if tee != nil {
		w = io.MultiWriter(&buf, tee)
	}
	out := &syncWriter{w: w}

	start := time.Now()
	exitCode, err := runLocalCommand(step, out)
	res := Result{
		ExitCode: exitCode,
		Output:   buf.String(),
		Duration: time.Since(start),
		Err:      err,
	}
	logResult(step, res)
	return res
}

// Stream starts step in the background. Output chunks are sent over the first
// channel, which is closed before the single Result is delivered on the second.
func Stream(step CommandStep) (<-chan OutputLine, <-chan Result) {
	// Buffer channel slightly to prevent blocking on rapid output
	outChan := make(chan OutputLine, 10)
	resChan := make(chan Result, 1)

	go func() {
		defer close(resChan)

		pr, pw := io.Pipe()
		var buf bytes.Buffer
		out := &syncWriter{w: io.MultiWriter(&buf, pw)}

		outputDone := make(chan struct{}, 1)
		go streamPipe(pr, outChan, outputDone, false)

		start := time.Now()
		exitCode, err := runLocalCommand(step, out)
		_ = pw.Close()
		<-outputDone
		close(outChan)

		res := Result{
			ExitCode: exitCode,
			Output:   buf.String(),
			Duration: time.Since(start),
			Err:      err,
		}
		logResult(step, res)
		resChan <- res
	}()

	return outChan, resChan
}

// runLocalCommand runs the step with both output streams wired to out and
// returns the exit code (-1 when the process never ran).
func runLocalCommand(step CommandStep, out io.Writer) (int, error) {
	cmdDesc := fmt.Sprintf("step '%s'", step.Name)

	path, err := exec.LookPath(step.Command)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return -1, fmt.Errorf("%w: %s", ErrExecutableNotFound, step.Command)
		}
		return -1, fmt.Errorf("failed to resolve %s for %s: %w", step.Command, cmdDesc, err)
	}

	cmd := exec.Command(path, step.Args...)
	cmd.Dir = step.Dir
	// Same writer on both streams: exec shares a single pipe, preserving order.
	cmd.Stdout = out
	cmd.Stderr = out

	logger.Info("Starting command", "step", step.Name, "command", path, "dir", step.Dir, "args", step.Args)

	if err := cmd.Start(); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !dirExists(step.Dir) {
			return -1, fmt.Errorf("failed to start %s: working directory %s: %w", cmdDesc, step.Dir, err)
		}
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return -1, fmt.Errorf("%w: %s", ErrExecutableNotFound, step.Command)
		}
		return -1, fmt.Errorf("failed to start %s: %w", cmdDesc, err)
	}

	if cmdErr := cmd.Wait(); cmdErr != nil {
		exitCode := exitCodeFromError(cmdErr)
		if exitCode != -1 {
			return exitCode, fmt.Errorf("%s exited with status %d: %w", cmdDesc, exitCode, ErrNonZeroExit)
		}
		return -1, fmt.Errorf("%s failed: %w", cmdDesc, cmdErr)
	}
	return 0, nil
}

// exitCodeFromError extracts the process exit status, or -1 if unavailable.
func exitCodeFromError(err error) int {
	var exitError *exec.ExitError
	if !errors.As(err, &exitError) {
		return -1
	}
	if status, ok := exitError.Sys().(syscall.WaitStatus); ok {
		return status.ExitStatus()
	}
	return exitError.ExitCode()
}

func dirExists(dir string) bool {
	if dir == "" {
		return true
	}
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}

// streamPipe reads raw chunks from the pipe and sends them over the outChan.
func streamPipe(pipe io.Reader, outChan chan<- OutputLine, doneChan chan<- struct{}, isError bool) {
	defer func() { doneChan <- struct{}{} }()
	buf := make([]byte, 1024) // Read in chunks
	for {
		n, err := pipe.Read(buf)
		if n > 0 {
			outChan <- OutputLine{Line: string(buf[:n]), IsError: isError}
		}
		if err != nil {
			if err != io.EOF {
				logger.Warn("Pipe read error", "error", err)
			}
			return
		}
	}
}

// syncWriter serialises writes so a Result buffer can be shared safely.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func logResult(step CommandStep, res Result) {
	if res.Success() {
		logger.Info("Command finished", "step", step.Name, "duration", res.Duration)
		return
	}
	logger.Error("Command failed", "step", step.Name, "exit_code", res.ExitCode, "error", res.Err)
}
