// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert converts bags between storage backends by generating a
// tool configuration and running the external conversion tool on it.
package convert

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pdiddy/rosbag-converter/internal/tool"
	"github.com/pdiddy/rosbag-converter/pkg/types"
)

// SetupError reports that the temporary config file could not be created
// or written. The tool is not started.
type SetupError struct {
	Err error
}

func (e *SetupError) Error() string { return "preparing conversion config: " + e.Err.Error() }
func (e *SetupError) Unwrap() error { return e.Err }

// SpawnError reports that the tool could not be located or started.
type SpawnError struct {
	Tool string
	Err  error
}

func (e *SpawnError) Error() string { return fmt.Sprintf("starting %s: %v", e.Tool, e.Err) }
func (e *SpawnError) Unwrap() error { return e.Err }

// ToolError reports that the tool ran and exited unsuccessfully.
type ToolError struct {
	Exit *tool.ExitError
}

func (e *ToolError) Error() string { return "conversion failed: " + e.Exit.Error() }
func (e *ToolError) Unwrap() error { return e.Exit }

// ExitCode returns the status the tool exited with.
func (e *ToolError) ExitCode() int { return e.Exit.Code }

// InterruptError reports that the process was interrupted while the tool
// ran. Err holds the tool's own result, if any.
type InterruptError struct {
	Signal os.Signal
	Err    error
}

func (e *InterruptError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("interrupted by %v: %v", e.Signal, e.Err)
	}
	return fmt.Sprintf("interrupted by %v", e.Signal)
}
func (e *InterruptError) Unwrap() error { return e.Err }

// Converter runs one conversion at a time through a tool.Runner.
type Converter struct {
	runner   tool.Runner
	toolArgs []string
	tempDir  string
	stdout   io.Writer
	stderr   io.Writer

	notify func(chan<- os.Signal, ...os.Signal)
	stop   func(chan<- os.Signal)
}

// New creates a Converter that invokes the tool through runner using the
// subcommand prefix and temporary directory from cfg. Status lines and the
// tool's own output go to stdout and stderr.
func New(runner tool.Runner, cfg types.ConverterConfig, stdout, stderr io.Writer) *Converter {
	return &Converter{
		runner:   runner,
		toolArgs: cfg.ToolArgs,
		tempDir:  cfg.TempDir,
		stdout:   stdout,
		stderr:   stderr,
		notify:   signal.Notify,
		stop:     signal.Stop,
	}
}

// Convert writes the config for req, runs the tool as
// "<tool> <tool args> -i <input> -o <config>" and waits for it to exit.
// The config file is removed before Convert returns, whatever the outcome.
// SIGINT and SIGTERM are held while the tool runs: the tool, which shares
// the terminal's process group, receives them directly, and Convert waits
// for it to exit, removes the config and returns an *InterruptError.
// Other errors are *SetupError, *SpawnError or *ToolError; none are retried.
func (c *Converter) Convert(req types.ConversionRequest) error {
	if _, err := types.ParseStorageBackend(string(req.Target)); err != nil {
		return err
	}

	fmt.Fprintf(c.stdout, "converting: %s -> %s (%s)\n", req.InputPath, req.OutputPath, req.Target)

	cfgPath, cleanup, err := writeConfigFile(c.tempDir, req)
	if err != nil {
		return &SetupError{Err: err}
	}
	defer cleanup()

	sigs := make(chan os.Signal, 1)
	c.notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer c.stop(sigs)

	args := make([]string, 0, len(c.toolArgs)+4)
	args = append(args, c.toolArgs...)
	args = append(args, "-i", req.InputPath, "-o", cfgPath)

	paths := []string{req.InputPath, req.OutputPath, cfgPath}
	err = c.runner.Run(args, paths, c.stdout, c.stderr)
	select {
	case sig := <-sigs:
		return &InterruptError{Signal: sig, Err: err}
	default:
	}
	if err != nil {
		var ee *tool.ExitError
		if errors.As(err, &ee) {
			return &ToolError{Exit: ee}
		}
		return &SpawnError{Tool: c.runner.Name(), Err: err}
	}

	fmt.Fprintf(c.stdout, "converted: %s\n", req.OutputPath)
	return nil
}
