package project

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	manifest := `
[package]
name = "demo"
version = "0.1.0"

[build]
output = "demo.c"
max-diagnostics = 25
locale = "ru"
`
	if err := os.WriteFile(filepath.Join(dir, ManifestName), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}
	m, found, err := Load(dir)
	if err != nil || !found {
		t.Fatalf("Load = %v, %v", found, err)
	}
	if m.Package.Name != "demo" || m.Build.Output != "demo.c" {
		t.Fatalf("manifest = %+v", m)
	}
	if m.Build.MaxDiagnostics != 25 || m.Build.Locale != "ru" {
		t.Fatalf("build section = %+v", m.Build)
	}
}

func TestLoadMissingManifest(t *testing.T) {
	m, found, err := Load(t.TempDir())
	if err != nil || found || m != nil {
		t.Fatalf("missing manifest must be a clean miss: %v %v %v", m, found, err)
	}
}

func TestLoadBrokenManifest(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ManifestName), []byte("[package"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, found, err := Load(dir)
	if err == nil || !found {
		t.Fatalf("broken manifest must report an error")
	}
}

func TestLoadForUsesInputDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ManifestName), []byte("[build]\noutput = \"x.c\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	m, found, err := LoadFor(filepath.Join(dir, "main.co"))
	if err != nil || !found || m.Build.Output != "x.c" {
		t.Fatalf("LoadFor = %+v, %v, %v", m, found, err)
	}
}
