package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/threadnav/topic-browser/internal/backend"
	"github.com/threadnav/topic-browser/internal/forum"
	"github.com/threadnav/topic-browser/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	ForumURL     string
	CourseID     string
	UserID       string
	GroupID      string
	SortKey      string
	PageSize     int
	PollInterval time.Duration
	Width        int
	Height       int
	ShowFooter   bool
	Verbose      bool
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	baseURL := strings.TrimRight(cfg.ForumURL, "/")
	if baseURL == "" {
		return fmt.Errorf("forum URL is required")
	}
	client := forum.NewClient(baseURL, cfg.CourseID)
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	watcher := backend.NewWatcher(client, interval)
	defer watcher.Stop()
	model := ui.NewModel(ui.Options{
		Client:     client,
		Watcher:    watcher,
		UserID:     cfg.UserID,
		GroupID:    cfg.GroupID,
		SortKey:    cfg.SortKey,
		PageSize:   cfg.PageSize,
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Verbose:    cfg.Verbose,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
