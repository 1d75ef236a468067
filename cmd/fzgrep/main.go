package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/flavono123/fzgrep/internal/app"
	"github.com/flavono123/fzgrep/internal/cli"
	"github.com/flavono123/fzgrep/internal/config"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(os.Getenv("DEBUG")) > 0 {
		f, err := tea.LogToFile("debug.log", "debug")
		if err != nil {
			log.Fatalf("failed to log to file: %v", err)
		}
		defer f.Close()
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fzgrep: %v\n", err)
		return cli.ExitFailure
	}

	req, err := cli.Parse(args, cfg)
	if errors.Is(err, cli.ErrHelp) {
		return cli.ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "fzgrep: %v\n", err)
		return cli.ExitFailure
	}

	if err := app.New(req).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "fzgrep: %v\n", err)
		return cli.ExitFailure
	}
	return cli.ExitSuccess
}
