// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/rosbag-converter/internal/cli"
)

// installROS2 puts a "ros2" shell script first on PATH that copies the
// config it receives into the returned directory and exits with
// $FAKE_ROS2_EXIT. It also writes a config file sending temporary configs
// to a fresh directory; both paths are returned.
func installROS2(t *testing.T) (captureDir, cfgFile, tempDir string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in requires a POSIX shell")
	}
	binDir := t.TempDir()
	captureDir = t.TempDir()
	script := `#!/bin/sh
cp "$6" "$FAKE_ROS2_CAPTURE/config.yaml"
exit "${FAKE_ROS2_EXIT:-0}"
`
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "ros2"), []byte(script), 0o755))
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	t.Setenv("FAKE_ROS2_CAPTURE", captureDir)

	tempDir = t.TempDir()
	cfgFile = filepath.Join(t.TempDir(), "rosbag-converter.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("temp_dir: "+tempDir+"\n"), 0o644))
	return captureDir, cfgFile, tempDir
}

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestWritesSQLite3Storage(t *testing.T) {
	capture, cfgFile, tempDir := installROS2(t)
	t.Setenv("FAKE_ROS2_EXIT", "0")

	stdout, _, err := run(t, "--config", cfgFile, "input.mcap", "output.db3")
	require.NoError(t, err)
	assert.Equal(t, 0, cli.ExitCode(err))
	assert.Contains(t, stdout, "converting: input.mcap -> output.db3 (sqlite3)")

	got, err := os.ReadFile(filepath.Join(capture, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "output_bags:\n  - uri: output.db3\n    storage_id: sqlite3\n    all: true\n", string(got))

	entries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temporary config should be removed")
}

func TestToolFailureExitsOne(t *testing.T) {
	_, cfgFile, tempDir := installROS2(t)
	t.Setenv("FAKE_ROS2_EXIT", "2")

	_, stderr, err := run(t, "--config", cfgFile, "input.mcap", "output.db3")
	require.Error(t, err)
	assert.Equal(t, 1, cli.ExitCode(err))
	assert.Contains(t, stderr, "exit status 2")

	entries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWrongArgumentCount(t *testing.T) {
	_, cfgFile, _ := installROS2(t)

	_, stderr, err := run(t, "--config", cfgFile, "input.mcap")
	require.Error(t, err)
	assert.Equal(t, 1, cli.ExitCode(err))
	assert.Contains(t, stderr, "accepts 2 arg(s)")
}
