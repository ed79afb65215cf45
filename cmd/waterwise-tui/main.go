package main

import (
	"flag"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/waterwise/internal/app"
	"github.com/nhle/waterwise/internal/client"
	"github.com/nhle/waterwise/internal/credential"
	"github.com/nhle/waterwise/internal/model"
)

func main() {
	configPath := flag.String("config", model.DefaultConfigPath(), "path to the config file")
	serverURL := flag.String("server", "", "server URL (overrides the config file)")
	flag.Parse()

	cfg, err := model.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	baseURL := cfg.Client.ServerURL
	if *serverURL != "" {
		baseURL = *serverURL
	}

	c := client.New(baseURL)

	// Restore the previous session if a token is stored.
	if token, err := credential.SessionToken(); err == nil && token != "" {
		c.SetToken(token)
	}

	p := tea.NewProgram(app.New(c), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("running ui: %v", err)
	}
}
