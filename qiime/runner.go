package qiime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
)

// Runner executes QIIME commands one at a time.
type Runner struct {
	// BinDir holds the QIIME executables; empty resolves through $PATH.
	BinDir string
	// Dir is the working directory of the tool; empty inherits ours.
	Dir    string
	Stdout io.Writer
	Stderr io.Writer
	// Env is appended to the current environment.
	Env []string
	// DryRun prints the command line instead of running it.
	DryRun bool
}

// Resolve returns the executable path for a tool name.
func (r *Runner) Resolve(name string) (string, error) {
	if r.BinDir != "" {
		path := filepath.Join(r.BinDir, name)
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("%w: %s", ErrToolNotFound, path)
		}
		return path, nil
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrToolNotFound, name, err)
	}
	return path, nil
}

// Result summarises a finished run.
type Result struct {
	CommandLine        string
	SuppressedWarnings int
}

// Run validates c, executes it and waits for it to exit. A non-zero exit is
// returned as *ToolError; there is no retry.
func (r *Runner) Run(ctx context.Context, c Command) (*Result, error) {
	args, err := c.Args()
	if err != nil {
		return nil, err
	}
	line, _ := CommandLine(c)
	res := &Result{CommandLine: line}

	stdout, stderr := r.Stdout, r.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	if r.DryRun {
		fmt.Fprintln(stdout, line)
		return res, nil
	}

	path, err := r.Resolve(c.Name())
	if err != nil {
		return nil, err
	}

	filter := NewWarningFilter(stderr)
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = r.Dir
	cmd.Stdout = stdout
	cmd.Stderr = filter
	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}

	log.Printf("running %s", line)
	err = cmd.Run()
	flushErr := filter.Flush()
	res.SuppressedWarnings = filter.Suppressed()
	if err != nil {
		te := &ToolError{Tool: c.Name(), Args: args, ExitCode: -1, Err: err}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			te.ExitCode = exitErr.ExitCode()
		}
		return res, te
	}
	return res, flushErr
}
