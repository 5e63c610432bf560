package main

import (
	"flag"
	"runtime"

	"github.com/oxwell/brdfview/engine"
	"github.com/oxwell/brdfview/engine/core"
	"github.com/oxwell/brdfview/engine/window"
)

func init() {
	// GLFW event processing and WebGPU surface creation must stay on the
	// thread that created the window.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "brdfview.toml", "path to the TOML config file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		core.LogFatal("config load failed", "error", err)
	}
	if *debug || cfg.Debug {
		core.SetDebug()
	}

	eng, err := engine.NewEngine(
		engine.WithWindowOptions(
			window.WithTitle(cfg.Title),
			window.WithWidth(cfg.Width),
			window.WithHeight(cfg.Height),
		),
		engine.WithVSync(cfg.VSync),
		engine.WithForceFallbackAdapter(cfg.ForceFallbackAdapter),
		engine.WithDrawables(
			&engine.Drawable{
				Name:     "Sphere",
				Position: [3]float32{0, 0, 0},
				Color:    [3]float32{1, 0, 0},
				Radius:   0.5,
			},
			&engine.Drawable{
				Name:     "Light",
				Position: [3]float32{2, 1, 2},
				Color:    [3]float32{1, 1, 1},
				Radius:   0.2,
			},
		),
	)
	if err != nil {
		core.LogFatal("engine initialization failed", "error", err)
	}
	defer eng.Release()

	if cfg.Profile {
		eng.EnableProfiler()
	}

	if err := eng.Run(); err != nil {
		core.LogFatal("frame loop aborted", "error", err)
	}
}
