// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/rosbag-converter/pkg/types"
)

// configPattern names the temporary config file handed to the tool.
const configPattern = "rosbag-convert-*.yaml"

// outputBag is one entry of the tool's output_bags list.
type outputBag struct {
	URI       string `yaml:"uri"`
	StorageID string `yaml:"storage_id"`
	All       bool   `yaml:"all"`
}

// toolConfig is the document read by the conversion tool's -o option.
type toolConfig struct {
	OutputBags []outputBag `yaml:"output_bags"`
}

// WriteConfig writes the tool configuration for req to w. The single output
// bag names req.OutputPath and req.Target and includes all data:
//
//	output_bags:
//	  - uri: <output>
//	    storage_id: <backend>
//	    all: true
func WriteConfig(w io.Writer, req types.ConversionRequest) error {
	doc := toolConfig{
		OutputBags: []outputBag{{
			URI:       req.OutputPath,
			StorageID: string(req.Target),
			All:       true,
		}},
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}

// writeConfigFile creates a temporary config file for req in dir (the OS
// temp dir when empty). The returned cleanup removes it and must be called
// on every path once the file is no longer needed.
func writeConfigFile(dir string, req types.ConversionRequest) (path string, cleanup func(), err error) {
	f, err := os.CreateTemp(dir, configPattern)
	if err != nil {
		return "", nil, fmt.Errorf("creating temporary file: %w", err)
	}
	path = f.Name()
	cleanup = func() { os.Remove(path) }

	if err := WriteConfig(f, req); err != nil {
		f.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("closing %s: %w", path, err)
	}
	return path, cleanup, nil
}
