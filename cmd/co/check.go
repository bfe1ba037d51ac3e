package main

import (
	"github.com/spf13/cobra"

	"co/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:          "check [flags] <input.co>",
	Short:        "Analyse a CO source file without emitting C",
	Args:         cobra.ExactArgs(1),
	RunE:         checkExecution,
	SilenceUsage: true,
}

func init() {
	checkCmd.Flags().Bool("no-cache", false, "skip the on-disk diagnostics cache")
}

func checkExecution(cmd *cobra.Command, args []string) error {
	input := args[0]
	opts, _, err := compileOptions(cmd, input)
	if err != nil {
		return err
	}

	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	var cache *driver.DiskCache
	if !noCache {
		// A cache failure degrades to an uncached check.
		cache, _ = driver.OpenDiskCache("co")
	}

	res, err := driver.Check(input, opts, cache)
	if err != nil {
		return err
	}
	reportResult(cmd, res)
	return nil
}
