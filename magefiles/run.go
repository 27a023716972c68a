//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the viewer on the bundled desk scene. SCENE overrides the scene file.
func (Run) Viewer() error {
	fmt.Println("Run viewer...")
	args := []string{"run", ".", "-watch"}
	if scene := os.Getenv("SCENE"); scene != "" {
		args = append(args, "-scene", scene)
	}
	_, err := executeCmd("go", withArgs(args...), withStream())
	return err
}

// Prints the call trace of the bundled desk scene. SCENE overrides the scene
// file and FORMAT picks text or json.
func (Run) Trace() error {
	mg.Deps(Build.Trace)
	scene := os.Getenv("SCENE")
	if scene == "" {
		scene = "assets/scenes/desk.toml"
	}
	format := os.Getenv("FORMAT")
	if format == "" {
		format = "text"
	}
	_, err := executeCmd("bin/scenetrace", withArgs("-scene", scene, "-assets", "assets", "-format", format), withStream())
	return err
}
