package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/dylan/trolleydash/api"
	"github.com/dylan/trolleydash/config"
	"github.com/dylan/trolleydash/logging"
	"github.com/dylan/trolleydash/tui"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: ~/.config/trolleydash/config.toml)")
	gameID := flag.String("game", "", "game id to open at startup")
	baseURL := flag.String("base-url", "", "game server root, e.g. http://localhost:8000")
	flag.Parse()

	// A missing .env is fine.
	_ = godotenv.Load()

	path := *configPath
	explicit := path != ""
	if !explicit {
		path = config.DefaultConfigPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		// If using default path and file doesn't exist, use empty config
		if !explicit && errors.Is(err, os.ErrNotExist) {
			cfg = config.Config{}
		} else {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *gameID != "" {
		cfg.GameID = *gameID
	}
	if *baseURL != "" {
		cfg.Server.BaseURL = *baseURL
	}

	closer, err := logging.Init(logging.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	client := api.NewClient(cfg.ResolvedBaseURL(), cfg.ResolvedAPIPrefix())
	client.SetTimeout(cfg.ResolvedTimeout())
	log.Info().Str("base_url", cfg.ResolvedBaseURL()).Str("game_id", cfg.GameID).Msg("starting")

	p := tea.NewProgram(tui.NewApp(cfg, client, nil), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("program exited")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
