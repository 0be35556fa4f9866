package main

import (
	"context"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/roadtrip/config"
	"github.com/milk9111/roadtrip/logging"
	"github.com/milk9111/roadtrip/session"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	location := flag.String("location", "", "location to start in (yard, map03, mapA, ...)")
	debug := flag.Bool("debug", false, "draw trigger zones and extra HUD")
	profile := flag.String("profile", "", "save profile to load and write")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *location != "" {
		cfg.StartLocation = *location
	}
	if *debug {
		cfg.Debug = true
	}
	if *profile != "" {
		cfg.Save.Profile = *profile
	}
	logger := logging.Setup(cfg)

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth*2, baseHeight*2)
	ebiten.SetWindowTitle("roadtrip")

	sess, err := session.Open(context.Background(), cfg, speakers, logger)
	if err != nil {
		log.Fatal(err)
	}

	game := NewGame(sess, cfg.Debug)
	runErr := ebiten.RunGame(game)
	if err := sess.Close(context.Background()); err != nil {
		logger.Error("shutdown", "err", err)
	}
	if runErr != nil && runErr != ebiten.Termination {
		log.Fatal(runErr)
	}
}
