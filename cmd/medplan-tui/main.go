package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/medplan/internal/config"
	"github.com/rgehrsitz/medplan/internal/tui"
)

func main() {
	// Optional config file path; the built-in plans are used without one
	configPath := ""
	if len(os.Args) > 2 {
		fmt.Println("Usage: medplan-tui [config-file]")
		os.Exit(1)
	}
	if len(os.Args) == 2 {
		configPath = os.Args[1]
	}

	cfg, err := config.NewInputParser().LoadOrDefault(configPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	model, err := tui.NewModel(cfg, configPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
