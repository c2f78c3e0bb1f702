// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/rosbag-converter/internal/baginfo"
	"github.com/pdiddy/rosbag-converter/internal/convert"
	"github.com/pdiddy/rosbag-converter/internal/tool"
	"github.com/pdiddy/rosbag-converter/pkg/types"
)

// NewConvertCommand returns a command named name that converts
// <input_bag> into <output_bag> stored as target, using the settings in v.
func NewConvertCommand(name string, target types.StorageBackend, v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name + " <input_bag> <output_bag>",
		Short: fmt.Sprintf("Convert a bag into %s storage", target),
		Long: fmt.Sprintf(`Convert writes a temporary output configuration naming <output_bag> with
storage_id %s, runs "ros2 bag convert -i <input_bag> -o <config>" and waits
for it to finish. Any failure exits with status 1.`, target),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, v, types.ConversionRequest{
				InputPath:  args[0],
				OutputPath: args[1],
				Target:     target,
			})
		},
	}
	cmd.Flags().Bool("summary", false, "print a summary of the output bag after converting")
	return cmd
}

// NewDirectionCommand returns the convert command for direction d.
func NewDirectionCommand(d types.Direction, v *viper.Viper) *cobra.Command {
	cmd := NewConvertCommand(d.Name, d.Target, v)
	cmd.Short = fmt.Sprintf("Convert %s bags into %s storage", d.Source, d.Target)
	return cmd
}

func runConvert(cmd *cobra.Command, v *viper.Viper, req types.ConversionRequest) error {
	// Arguments are valid; failures from here on are not usage errors.
	cmd.SilenceUsage = true

	cfg, err := LoadConfig(v)
	if err != nil {
		return err
	}

	runner, err := tool.New(cfg)
	if errors.Is(err, tool.ErrNotFound) {
		return &convert.SpawnError{Tool: cfg.Tool, Err: err}
	}
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	c := convert.New(runner, cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err := c.Convert(req); err != nil {
		return err
	}

	summary, _ := cmd.Flags().GetBool("summary")
	if summary {
		s, err := baginfo.Inspect(cmd.Context(), req.OutputPath)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: summarizing %s: %v\n", req.OutputPath, err)
			return nil
		}
		baginfo.Write(cmd.OutOrStdout(), s)
	}
	return nil
}

// ExitCode maps the result of executing a command to the process exit
// status. Every failure, including a conversion tool exiting with its own
// non-zero status, maps to 1.
func ExitCode(err error) int {
	if err != nil {
		return 1
	}
	return 0
}
