//go:build mage

// Package main provides build targets for the flex-schema project using Mage.
//
// Usage:
//
//	mage build          Compile flexschema binary to bin/
//	mage test           Run all tests
//	mage cover          Run tests with a coverage profile
//	mage lint           Run golangci-lint
//	mage check          Validate the sample schema documents with the built binary
//	mage clean          Remove build artifacts
//	mage install        Install flexschema to GOPATH/bin
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName = "flexschema"
	binaryDir  = "bin"
	cmdDir     = "./cmd/flexschema"
	coverFile  = "coverage.out"
)

// sampleSchemas are the valid documents used by Check.
var sampleSchemas = []string{
	"pkg/schemafile/testdata/users.yaml",
	"pkg/schemafile/testdata/posts.json",
}

// Build compiles the flexschema binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV("go", "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs all tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Cover runs all tests and writes coverage.out.
func Cover() error {
	if err := sh.RunV("go", "test", "-coverprofile="+coverFile, "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-func="+coverFile)
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Check builds the binary and validates the sample schemas with it.
func Check() error {
	mg.Deps(Build)
	args := append([]string{"validate"}, sampleSchemas...)
	return sh.RunV(filepath.Join(binaryDir, binaryName), args...)
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	if err := sh.Rm(coverFile); err != nil {
		return err
	}
	return sh.RunV("go", "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output("go", "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}
