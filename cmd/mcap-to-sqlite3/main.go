// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for mcap-to-sqlite3, a fixed-direction
// converter that always writes sqlite3 storage:
//
//	mcap-to-sqlite3 <input_bag> <output_bag>
package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/rosbag-converter/internal/cli"
	"github.com/pdiddy/rosbag-converter/pkg/types"
)

var rootCmd = cli.NewDirectionCommand(types.MCAPToSQLite3, viper.GetViper())

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./rosbag-converter.yaml or ~/.config/rosbag-converter/rosbag-converter.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	cli.InitConfig(viper.GetViper(), cfgFile, os.Stderr)
}

func main() {
	os.Exit(cli.ExitCode(rootCmd.Execute()))
}
