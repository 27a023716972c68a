/*
Diorama viewer: opens a window and renders the configured scene until the
window is closed.
*/
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/diorama/engine"
	"github.com/spaghettifunk/diorama/engine/core"
	"github.com/spaghettifunk/diorama/engine/platform"
	"github.com/spaghettifunk/diorama/engine/renderer/opengl"
)

var _ engine.Window = (*platform.Platform)(nil)

func main() {
	configPath := flag.String("config", "", "application config file (TOML)")
	scene := flag.String("scene", "", "scene file, relative to the assets directory")
	assetsDir := flag.String("assets", "", "assets directory")
	watch := flag.Bool("watch", false, "reload the scene when its files change")
	logLevel := flag.String("log-level", "", "debug, info, warn or error")
	flag.Parse()

	config := engine.DefaultApplicationConfig()
	if *configPath != "" {
		c, err := engine.LoadApplicationConfig(*configPath)
		if err != nil {
			core.LogFatal("could not load %s: %s", *configPath, err)
		}
		config = c
	}
	if *scene != "" {
		config.ScenePath = *scene
	}
	if *assetsDir != "" {
		config.AssetsDir = *assetsDir
	}
	if *watch {
		config.Watch = true
	}
	if *logLevel != "" {
		level, err := core.ParseLogLevel(*logLevel)
		if err != nil {
			core.LogFatal(err.Error())
		}
		config.LogLevel = level
	}

	e, err := engine.New(config, opengl.New(), platform.New())
	if err != nil {
		core.LogFatal("could not create engine: %s", err)
	}

	if err := e.Initialize(); err != nil {
		_ = e.Shutdown()
		core.LogFatal("could not initialize engine: %s", err)
	}

	// capture sigterm and other system calls, the loop exits on the next frame
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	runErr := e.Run(ctx)
	if err := e.Shutdown(); err != nil {
		core.LogError("shutdown: %s", err)
	}
	if runErr != nil {
		core.LogError(runErr.Error())
		os.Exit(1)
	}
}
