package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fentz26/tasker/internal/audit"
	"github.com/fentz26/tasker/internal/config"
	"github.com/fentz26/tasker/internal/menu"
	"github.com/fentz26/tasker/internal/tracker"
	"github.com/fentz26/tasker/internal/tui"
	"github.com/spf13/cobra"
)

var cfg *config.Config

func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
	} else {
		cfg, err = config.LoadConfigFromHome()
	}
	if err != nil {
		return err
	}
	return nil
}

// session is one run of the tracker with its journal and log output.
type session struct {
	tracker *tracker.Tracker
	journal *audit.Journal
	logFile *os.File
}

func openSession() (*session, error) {
	s := &session{}

	// Log output never goes to the terminal the surfaces draw on.
	log.SetOutput(io.Discard)
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		s.logFile = f
		log.SetOutput(f)
	}
	log.Println("Starting tasker session...")

	var recorder tracker.Recorder
	if cfg.Journal.Enabled {
		j, err := audit.Open(cfg.Journal.DSN)
		if err != nil {
			s.close()
			return nil, err
		}
		s.journal = j
		recorder = j
	}

	s.tracker = tracker.New(recorder)
	return s, nil
}

func (s *session) close() {
	if s.journal != nil {
		if err := s.journal.Close(); err != nil {
			log.Printf("Journal close error: %v", err)
		}
	}
	log.Println("Session closed")
	if s.logFile != nil {
		s.logFile.Close()
	}
}

func runMenu(cmd *cobra.Command, args []string) error {
	if cfg.Interface == config.InterfaceTUI {
		return runTUI(cmd, args)
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := menu.New(s.tracker, cmd.InOrStdin(), cmd.OutOrStdout(), menu.Options{
		DateLayout: cfg.DateLayout,
		Color:      cfg.Color,
	})
	if err := m.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	app := tui.New(s.tracker, cfg.DateLayout)
	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
