package main

import (
	"flag"
	"fmt"
	"os"

	"social-server/client"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	apiURL := flag.String("api", envOr("SOCIAL_API_URL", "http://localhost:3536"), "social-server base URL")
	flag.Parse()

	p := tea.NewProgram(initialModel(client.New(*apiURL)))
	if _, err := p.Run(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
