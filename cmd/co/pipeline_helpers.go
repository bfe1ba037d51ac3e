package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"co/internal/diagfmt"
	"co/internal/driver"
	"co/internal/locale"
	"co/internal/project"
)

// compileOptions folds flags, the optional co.toml manifest and the
// environment into driver options. Flags win over the manifest, the
// manifest over the environment.
func compileOptions(cmd *cobra.Command, inputPath string) (driver.Options, *project.Manifest, error) {
	manifest, _, err := project.LoadFor(inputPath)
	if err != nil {
		return driver.Options{}, nil, err
	}

	localeFlag, err := cmd.Flags().GetString("locale")
	if err != nil {
		return driver.Options{}, nil, err
	}
	if localeFlag == "" && manifest != nil {
		localeFlag = manifest.Build.Locale
	}

	maxDiag, err := cmd.Flags().GetInt("max-diagnostics")
	if err != nil {
		return driver.Options{}, nil, err
	}
	if !cmd.Flags().Changed("max-diagnostics") && manifest != nil && manifest.Build.MaxDiagnostics > 0 {
		maxDiag = manifest.Build.MaxDiagnostics
	}

	return driver.Options{
		Locale:         locale.Detect(localeFlag),
		MaxDiagnostics: maxDiag,
	}, manifest, nil
}

func colorEnabled(cmd *cobra.Command) bool {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return false
	}
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(os.Stderr)
	}
}

// reportResult prints the diagnostics and exits with the result's status
// when it is non-zero.
func reportResult(cmd *cobra.Command, res *driver.Result) {
	diagfmt.Pretty(os.Stderr, res.Bag, res.FileSet, diagfmt.Options{
		Color: colorEnabled(cmd),
	})
	if res.Internal != nil {
		fmt.Fprintf(os.Stderr, "internal compiler error: %v\n", res.Internal)
	}
	if code := res.ExitCode(); code != 0 {
		os.Exit(code)
	}
}
