// Package project loads the optional co.toml manifest that supplies
// defaults for the CLI: output path, diagnostic limits, message locale.
package project

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file the driver looks for next to the input.
const ManifestName = "co.toml"

// Manifest mirrors co.toml. Flags win over manifest values, manifest
// values win over environment defaults.
type Manifest struct {
	Package PackageSection `toml:"package"`
	Build   BuildSection   `toml:"build"`
}

type PackageSection struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

type BuildSection struct {
	Output         string `toml:"output"`
	MaxDiagnostics int    `toml:"max-diagnostics"`
	Locale         string `toml:"locale"`
}

// Load reads the manifest from dir. The boolean reports whether a
// manifest was present at all.
func Load(dir string) (*Manifest, bool, error) {
	path := filepath.Join(dir, ManifestName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, true, err
	}
	return &m, true, nil
}

// LoadFor finds the manifest next to an input file.
func LoadFor(inputPath string) (*Manifest, bool, error) {
	return Load(filepath.Dir(inputPath))
}
