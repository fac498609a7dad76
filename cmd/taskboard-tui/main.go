// Package main runs the terminal Kanban board against a task board server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/lutfiEmre/todolist/internal/client"
	"github.com/lutfiEmre/todolist/internal/common/config"
	"github.com/lutfiEmre/todolist/internal/common/logger"
	"github.com/lutfiEmre/todolist/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "directory holding config.yaml")
	server := flag.String("server", "", "board server URL, overrides client.baseUrl")
	flag.Parse()

	cfg, err := config.LoadWithPath(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *server != "" {
		cfg.Client.BaseURL = *server
	}

	// The terminal belongs to the board, so logs go to a file.
	log, err := logger.NewLogger(logger.LoggingConfig{
		Level:      cfg.Logging.Level,
		Format:     "json",
		OutputPath: cfg.TUI.LogPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	c := client.New(cfg.Client, log)
	if _, err := c.Health(context.Background()); err != nil {
		log.Warn("Board server not reachable", zap.String("url", cfg.Client.BaseURL), zap.Error(err))
	}

	model := ui.New(c, log, cfg.TUI.Author)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		log.Error("Board exited with error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Let in-flight saves finish before exiting.
	model.Wait()
	log.Info("Board closed")
}
