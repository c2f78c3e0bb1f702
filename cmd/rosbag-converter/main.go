// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the rosbag-converter CLI, which
// converts ROS 2 bags between sqlite3 and mcap storage in either direction.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/rosbag-converter/internal/cli"
	"github.com/pdiddy/rosbag-converter/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the rosbag-converter CLI.
var rootCmd = &cobra.Command{
	Use:   "rosbag-converter",
	Short: "Convert ROS 2 bags between sqlite3 and mcap storage",
	Long: `rosbag-converter converts ROS 2 bags between the sqlite3 and mcap storage
backends using the installed "ros2 bag convert" tool.

Pick the direction with a subcommand:

  rosbag-converter mcap-to-sqlite3 <input_bag> <output_bag>
  rosbag-converter sqlite3-to-mcap <input_bag> <output_bag>

The tool binary, its arguments and where it runs (host or container) are
read from rosbag-converter.yaml or ROSBAG_CONVERTER_* environment variables.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./rosbag-converter.yaml or ~/.config/rosbag-converter/rosbag-converter.yaml)")

	for _, d := range types.Directions() {
		rootCmd.AddCommand(cli.NewDirectionCommand(d, viper.GetViper()))
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	cli.InitConfig(viper.GetViper(), cfgFile, os.Stderr)
}

func main() {
	os.Exit(cli.ExitCode(rootCmd.Execute()))
}
