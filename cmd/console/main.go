package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/milk9111/roadtrip/config"
	"github.com/milk9111/roadtrip/logging"
	"github.com/milk9111/roadtrip/session"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	location := flag.String("location", "", "location to start in")
	profile := flag.String("profile", "", "save profile to load and write")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *location != "" {
		cfg.StartLocation = *location
	}
	if *profile != "" {
		cfg.Save.Profile = *profile
	}

	ring := logging.NewRing(200)
	logger := logging.SetupTo(cfg, ring)

	sess, err := session.Open(context.Background(), cfg, session.Headless, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start session: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(NewConsoleUI(sess, ring), tea.WithAltScreen())
	_, runErr := p.Run()
	if err := sess.Close(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save: %v\n", err)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", runErr)
		os.Exit(1)
	}
}
