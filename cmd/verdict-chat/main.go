package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/seqcls/verdict/internal/adapter/client"
	"github.com/seqcls/verdict/internal/adapter/storage/memory"
	"github.com/seqcls/verdict/internal/adapter/tui"
	"github.com/seqcls/verdict/internal/chat"
	"github.com/seqcls/verdict/internal/infrastructure/config"
	"github.com/seqcls/verdict/internal/infrastructure/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// The terminal belongs to the UI, so logs always go to a file
	logCfg := cfg.Log
	if logCfg.File == "" {
		logCfg.File = cfg.Client.LogFile
	}
	log, err := logger.NewLogger(&logCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	backend := client.NewInferenceClient(cfg.Client.BackendURL, cfg.Client.HealthTimeout, cfg.Client.PredictTimeout)
	session := chat.NewSession(memory.NewTurnStore(), backend, log)
	defer session.Close()

	log.Info("Starting chat client",
		zap.String("backend_url", backend.BaseURL()),
		zap.String("session_id", session.ID()),
	)

	// Detect the background before bubbletea takes over stdin
	style := tui.MarkdownStyle()

	p := tea.NewProgram(tui.New(session, backend.BaseURL(), style), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat ui failed: %w", err)
	}

	log.Info("Chat client exited")
	return nil
}
