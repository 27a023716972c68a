//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Builds the windowed viewer into bin/diorama.
func (Build) Viewer() error {
	fmt.Println("Building viewer...")
	_, err := executeCmd("go", withArgs("build", "-o", "bin/diorama", "."), withStream())
	return err
}

// Builds the headless trace tool into bin/scenetrace. It links neither
// OpenGL nor glfw, so it builds without cgo.
func (Build) Trace() error {
	fmt.Println("Building scenetrace...")
	_, err := executeCmd("go",
		withArgs("build", "-o", "../../bin/scenetrace", "."),
		withDir("cmd/scenetrace"),
		withEnv("CGO_ENABLED=0"),
		withStream())
	return err
}

// Runs every test of the module. RACE=1 enables the race detector.
func Test() error {
	args := []string{"test"}
	if os.Getenv("RACE") != "" {
		args = append(args, "-race")
	}
	args = append(args, "./...")
	_, err := executeCmd("go", withArgs(args...), withStream())
	return err
}
