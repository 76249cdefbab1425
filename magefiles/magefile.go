//go:build mage

// Package main contains Mage build targets for mermaid-render developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "mermaid-render"
	cmdPkg  = "./cmd/mermaid-render"
)

// Default is the target run by a bare `mage`.
var Default = Build

// Build compiles the CLI binary into bin/, stamping the version from git.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	ldflags := "-X main.version=" + gitVersion()
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet over every package.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Check runs vet and the tests.
func Check() {
	mg.SerialDeps(Vet, Test)
}

// Sample renders the Mermaid blocks in docs/ into docs/*_mermaid_images.
// It needs network access to the rendering service.
func Sample() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "-d", "docs", "--report", filepath.Join(binDir, "sample-report.yaml"))
}

// Clean removes build output and images produced by Sample.
func Clean() error {
	if err := sh.Rm(binDir); err != nil {
		return err
	}
	dirs, err := filepath.Glob(filepath.Join("docs", "*_mermaid_images"))
	if err != nil {
		return err
	}
	for _, d := range dirs {
		if err := sh.Rm(d); err != nil {
			return err
		}
	}
	return nil
}

// gitVersion returns `git describe` output, or "dev" outside a repository.
func gitVersion() string {
	v, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || strings.TrimSpace(v) == "" {
		return "dev"
	}
	return strings.TrimSpace(v)
}
