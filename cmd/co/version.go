package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"co/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the compiler version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("co %s\n", version.Version)
		if version.GitCommit != "" {
			fmt.Printf("commit: %s\n", version.GitCommit)
		}
		if version.BuildDate != "" {
			fmt.Printf("built: %s\n", version.BuildDate)
		}
	},
}
