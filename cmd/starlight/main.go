package main

import (
	"fmt"
	"os"

	"github.com/gekko3d/starlight"
)

func main() {
	cfg := starlight.DefaultConfig()
	if len(os.Args) > 1 {
		var err error
		if cfg, err = starlight.LoadConfig(os.Args[1]); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}
	if os.Getenv("DEBUG") != "" {
		cfg.Debug = true
	}
	if r := os.Getenv("RENDERER"); r != "" {
		cfg.Renderer = r
	}

	app, err := starlight.BuildApp(cfg)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	app.Run()
}
