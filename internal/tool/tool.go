// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tool locates and runs the external bag conversion tool, either
// directly on the host or inside a docker/podman container.
package tool

import (
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/pdiddy/rosbag-converter/pkg/types"
)

// ErrNotFound reports that the conversion tool (or a container runtime able
// to run it) is not available.
var ErrNotFound = errors.New("conversion tool not found")

// ExitError reports that the tool ran and finished unsuccessfully.
type ExitError struct {
	Tool   string
	Code   int    // -1 when terminated by a signal
	Status string // as reported by the OS, e.g. "exit status 2"
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s failed with %s", e.Tool, e.Status)
}

// Runner executes the conversion tool and waits for it to finish.
type Runner interface {
	// Name describes where the tool runs, e.g. "ros2" or "docker ros:jazzy".
	Name() string

	// Run executes the tool with args, streaming its output to stdout and
	// stderr. paths lists host paths the tool must be able to reach.
	// A non-zero exit is returned as *ExitError.
	Run(args, paths []string, stdout, stderr io.Writer) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	RunAttached(name string, args []string, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (o *osExecutor) RunAttached(name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	err := cmd.Run()

	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return &ExitError{Tool: name, Code: ee.ExitCode(), Status: ee.ProcessState.String()}
	}
	if err != nil {
		return fmt.Errorf("starting %s: %w", name, err)
	}
	return nil
}

var defaultExec = &osExecutor{}

// New returns the runner selected by cfg.
func New(cfg types.ConverterConfig) (Runner, error) {
	return newRunner(cfg, defaultExec)
}

func newRunner(cfg types.ConverterConfig, exec executor) (Runner, error) {
	switch cfg.Runner {
	case types.RunnerHost, "":
		return &hostRunner{bin: cfg.Tool, exec: exec}, nil
	case types.RunnerContainer:
		return newContainerRunner(cfg.Image, cfg.Tool, exec)
	}
	return nil, fmt.Errorf("unknown runner %q: use %s or %s", cfg.Runner, types.RunnerHost, types.RunnerContainer)
}

// hostRunner runs the tool binary found on PATH.
type hostRunner struct {
	bin  string
	exec executor
}

func (h *hostRunner) Name() string { return h.bin }

func (h *hostRunner) Run(args, _ []string, stdout, stderr io.Writer) error {
	path, err := h.exec.LookPath(h.bin)
	if err != nil {
		return fmt.Errorf("%w: %s is not on PATH: %v", ErrNotFound, h.bin, err)
	}
	return h.exec.RunAttached(path, args, stdout, stderr)
}
