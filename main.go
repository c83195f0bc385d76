package main

import (
	"flag"
	"log"
	"os"

	"promptscape/pkg/game/app"
	"promptscape/pkg/game/config"
	"promptscape/pkg/game/devtools"
	"promptscape/pkg/game/renderer"
	ebitenrenderer "promptscape/pkg/game/renderer/ebiten"
	"promptscape/pkg/game/renderer/tui"
	"promptscape/pkg/game/screen"
)

func main() {
	configPath := flag.String("config", "settings.ini", "path to the settings file")
	useTUI := flag.Bool("tui", false, "run in the terminal instead of a window")
	waitTitle := flag.Bool("wait-title", false, "start the countdown only once the title has settled")
	dump := flag.String("dump", "", "print the elements of a layout (e.g. level.ini) and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}
	if *waitTitle {
		cfg.Level.WaitForTitleAnimation = true
	}
	if cfg.Source != "" {
		log.Printf("Settings loaded from %s", cfg.Source)
	}

	if *dump != "" {
		if err := devtools.DumpLayout(os.Stdout, os.DirFS(cfg.Paths.Templates), *dump); err != nil {
			log.Fatalf("%v", err)
		}
		return
	}

	renderer.InitLocale(cfg.Paths.Locales, cfg.Paths.Language)

	var frontend interface {
		renderer.Frontend
		screen.Sounds
	}
	if *useTUI {
		frontend = tui.New(cfg)
	} else {
		frontend = ebitenrenderer.New(cfg, os.DirFS(cfg.Paths.Assets))
	}

	a := app.New(cfg, os.DirFS(cfg.Paths.Templates), frontend)
	renderer.SetFrontend(frontend)

	if err := renderer.Run(a); err != nil {
		log.Fatalf("%v", err)
	}
}
