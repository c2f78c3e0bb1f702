// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestDirectionSubcommandsRegistered(t *testing.T) {
	for _, name := range []string{"mcap-to-sqlite3", "sqlite3-to-mcap", "info", "version"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "rosbag-converter dev\n", out)
}

func TestInfoFormats(t *testing.T) {
	bag := filepath.Join(t.TempDir(), "run.mcap")
	require.NoError(t, os.WriteFile(bag, []byte("\x89MCAP0\r\n"), 0o644))

	out, err := run(t, "info", bag, "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "[mcap, 8 B]")

	out, err = run(t, "info", bag, "--format", "json")
	require.NoError(t, err)
	var fromJSON map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &fromJSON))
	assert.Equal(t, bag, fromJSON["path"])

	out, err = run(t, "info", bag, "--format", "yaml")
	require.NoError(t, err)
	var fromYAML map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &fromYAML))
	assert.Equal(t, bag, fromYAML["path"])

	_, err = run(t, "info", bag, "--format", "xml")
	require.Error(t, err)
}

func TestUnknownDirection(t *testing.T) {
	_, err := run(t, "mcap_to_sqlite3", "in", "out")
	require.Error(t, err)
}
