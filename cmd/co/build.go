package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"co/internal/driver"
)

var buildCmd = &cobra.Command{
	Use:          "build [flags] <input.co>",
	Short:        "Compile a CO source file to C",
	Args:         cobra.ExactArgs(1),
	RunE:         buildExecution,
	SilenceUsage: true,
}

func init() {
	buildCmd.Flags().StringP("output", "o", "", "output C file (default: input with .c extension)")
}

func buildExecution(cmd *cobra.Command, args []string) error {
	input := args[0]
	opts, manifest, err := compileOptions(cmd, input)
	if err != nil {
		return err
	}
	opts.EmitC = true

	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	if output == "" && manifest != nil {
		output = manifest.Build.Output
	}
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".c"
	}

	res, err := driver.Compile(input, opts)
	if err != nil {
		return err
	}
	reportResult(cmd, res)

	if err := os.WriteFile(output, res.CSource, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	return nil
}
