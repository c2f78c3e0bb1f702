// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/rosbag-converter/internal/baginfo"
)

var infoCmd = &cobra.Command{
	Use:   "info <bag>",
	Short: "Summarize a bag file or bag directory",
	Long: `Info detects the storage backend of each file in a bag and, for sqlite3
files, lists the recorded topics with their message counts and time range.
mcap files are identified and sized only.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	s, err := baginfo.Inspect(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case "text", "":
		baginfo.Write(out, s)
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q: use text, json or yaml", format)
	}
	return nil
}

func init() {
	infoCmd.Flags().String("format", "text", "output format: text, json or yaml")

	rootCmd.AddCommand(infoCmd)
}
