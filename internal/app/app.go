// Package app wires configuration, content and the terminal UI together.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"pkt.systems/pslog"

	"github.com/kyaoi/folio/internal/config"
	"github.com/kyaoi/folio/internal/ui"
)

// Run shows the page in the terminal until the user quits or ctx ends.
// keys narrows the page to the given sections.
func Run(ctx context.Context, cfg config.Config, keys []string) error {
	state, err := LoadInitialState(cfg, keys)
	if err != nil {
		return err
	}
	logger, closeLog, err := OpenLogFile(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()
	state.Logger = logger

	return runProgram(pslog.ContextWithLogger(ctx, logger), state)
}

func runProgram(ctx context.Context, state ui.State) error {
	model := ui.NewModel(state)
	defer model.Close()
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	_, err := program.Run()
	return err
}

// DefaultLogFile is where the TUI logs when log.file is unset.
func DefaultLogFile() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locate cache dir: %w", err)
	}
	return filepath.Join(dir, "folio", "folio.log"), nil
}

// OpenLogFile opens the structured log the TUI writes to while it owns the
// terminal. The returned func closes the file.
func OpenLogFile(cfg config.LogConfig) (pslog.Logger, func() error, error) {
	path := cfg.File
	if path == "" {
		var err error
		if path, err = DefaultLogFile(); err != nil {
			return nil, nil, err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return newFileLogger(file, cfg.Level), file.Close, nil
}

func newFileLogger(w io.Writer, level string) pslog.Logger {
	opts := pslog.Options{Mode: pslog.ModeStructured, NoColor: true, MinLevel: pslog.InfoLevel}
	switch strings.ToLower(level) {
	case "trace":
		opts.MinLevel = pslog.TraceLevel
	case "debug":
		opts.MinLevel = pslog.DebugLevel
	case "error":
		opts.MinLevel = pslog.ErrorLevel
	}
	return pslog.NewWithOptions(w, opts)
}
