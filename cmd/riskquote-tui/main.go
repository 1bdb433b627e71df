package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/assurelab/riskquote/internal/calculation"
	"github.com/assurelab/riskquote/internal/catalog"
	"github.com/assurelab/riskquote/internal/tui"
)

func main() {
	catalogFile := flag.String("catalog", "", "path to a factor catalog override file")
	serviceURL := flag.String("service", "", "quote service base URL for reconciliation, e.g. http://localhost:8080")
	flag.Parse()

	engine := calculation.NewEngine()
	if *catalogFile != "" {
		c, err := catalog.LoadFromFile(*catalogFile)
		if err != nil {
			fmt.Printf("Error loading catalog: %v\n", err)
			os.Exit(1)
		}
		engine = calculation.NewEngineWithCatalog(c)
	}

	var remote *tui.RemoteClient
	if *serviceURL != "" {
		remote = tui.NewRemoteClient(*serviceURL)
	}

	model := tui.NewModel(engine, remote)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
