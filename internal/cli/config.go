// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cli holds the cobra commands and viper configuration shared by the
// rosbag-converter and mcap-to-sqlite3 binaries.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/pdiddy/rosbag-converter/pkg/types"
)

const (
	configName = "rosbag-converter"
	envPrefix  = "ROSBAG_CONVERTER"
)

// InitConfig points v at cfgFile, or at rosbag-converter.yaml in the working
// directory or ~/.config/rosbag-converter/ when cfgFile is empty, and enables
// ROSBAG_CONVERTER_* environment overrides. A missing config file is not an
// error; the file used, if any, is reported on w.
func InitConfig(v *viper.Viper, cfgFile string, w io.Writer) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", configName))
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	def := types.DefaultConverterConfig()
	v.SetDefault("tool", def.Tool)
	v.SetDefault("tool_args", def.ToolArgs)
	v.SetDefault("temp_dir", def.TempDir)
	v.SetDefault("runner", string(def.Runner))
	v.SetDefault("image", def.Image)

	if err := v.ReadInConfig(); err == nil {
		fmt.Fprintln(w, "Using config file:", v.ConfigFileUsed())
	} else if cfgFile != "" {
		fmt.Fprintf(w, "warning: reading config file %s: %v\n", cfgFile, err)
	}
}

// LoadConfig decodes the converter settings held by v.
func LoadConfig(v *viper.Viper) (types.ConverterConfig, error) {
	var cfg types.ConverterConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	if cfg.Tool == "" {
		return cfg, fmt.Errorf("configuration: tool must not be empty")
	}
	return cfg, nil
}
