package types

import "fmt"

// StorageBackend identifies the on-disk storage representation of a bag.
// The string value is the storage_id understood by the conversion tool.
type StorageBackend string

const (
	BackendSQLite3 StorageBackend = "sqlite3"
	BackendMCAP    StorageBackend = "mcap"
)

// ParseStorageBackend returns the backend named by s.
func ParseStorageBackend(s string) (StorageBackend, error) {
	switch b := StorageBackend(s); b {
	case BackendSQLite3, BackendMCAP:
		return b, nil
	}
	return "", fmt.Errorf("unknown storage backend %q: use %s or %s", s, BackendSQLite3, BackendMCAP)
}

// Direction is a named conversion from one backend to another. The name is
// the CLI subcommand that selects it.
type Direction struct {
	Name   string
	Source StorageBackend
	Target StorageBackend
}

var (
	MCAPToSQLite3 = Direction{Name: "mcap-to-sqlite3", Source: BackendMCAP, Target: BackendSQLite3}
	SQLite3ToMCAP = Direction{Name: "sqlite3-to-mcap", Source: BackendSQLite3, Target: BackendMCAP}
)

// Directions lists every supported conversion direction.
func Directions() []Direction {
	return []Direction{MCAPToSQLite3, SQLite3ToMCAP}
}

// LookupDirection resolves a direction by its subcommand name.
func LookupDirection(name string) (Direction, bool) {
	for _, d := range Directions() {
		if d.Name == name {
			return d, true
		}
	}
	return Direction{}, false
}

// ConversionRequest describes a single conversion run. The input path is
// passed to the tool as-is and is not validated here.
type ConversionRequest struct {
	InputPath  string
	OutputPath string
	Target     StorageBackend
}

// RunnerKind selects where the conversion tool executes.
type RunnerKind string

const (
	RunnerHost      RunnerKind = "host"
	RunnerContainer RunnerKind = "container"
)

// ConverterConfig holds runtime settings for the converter, loaded from the
// config file and ROSBAG_CONVERTER_* environment variables.
type ConverterConfig struct {
	// Tool is the conversion tool binary (default "ros2").
	Tool string `json:"tool" yaml:"tool" mapstructure:"tool"`

	// ToolArgs is the subcommand prefix placed before -i/-o
	// (default ["bag", "convert"]).
	ToolArgs []string `json:"tool_args" yaml:"tool_args" mapstructure:"tool_args"`

	// TempDir is where the generated config file is created. Empty means the
	// OS default temporary directory.
	TempDir string `json:"temp_dir,omitempty" yaml:"temp_dir,omitempty" mapstructure:"temp_dir"`

	// Runner selects host or container execution (default host).
	Runner RunnerKind `json:"runner" yaml:"runner" mapstructure:"runner"`

	// Image is the container image used by the container runner.
	Image string `json:"image,omitempty" yaml:"image,omitempty" mapstructure:"image"`
}

// DefaultConverterConfig returns the settings used when nothing is configured.
func DefaultConverterConfig() ConverterConfig {
	return ConverterConfig{
		Tool:     "ros2",
		ToolArgs: []string{"bag", "convert"},
		Runner:   RunnerHost,
		Image:    "ros:jazzy",
	}
}
