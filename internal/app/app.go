package app

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tagsort/internal/backend"
	"github.com/atomicstack/tagsort/internal/logging"
	"github.com/atomicstack/tagsort/internal/logging/events"
	"github.com/atomicstack/tagsort/internal/settings"
	"github.com/atomicstack/tagsort/internal/ui"
	"github.com/atomicstack/tagsort/internal/vault"
)

// Config describes user-provided application options.
type Config struct {
	VaultPath    string
	SettingsPath string
	Width        int
	Height       int
	ShowFooter   bool
	Verbose      bool
	PanelRows    int
	Watch        bool
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	v, err := vault.Open(cfg.VaultPath)
	if err != nil {
		return err
	}
	rules, err := settings.Load(cfg.SettingsPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	watcher, err := startWatcher(v, cfg.Watch)
	if err != nil {
		return err
	}
	defer func() {
		watcher.Stop()
		watcher.Wait()
	}()

	model := ui.NewModel(ui.Options{
		Vault:        v,
		Settings:     rules,
		SettingsPath: cfg.SettingsPath,
		Watcher:      watcher,
		Width:        cfg.Width,
		Height:       cfg.Height,
		ShowFooter:   cfg.ShowFooter,
		Verbose:      cfg.Verbose,
		PanelRows:    cfg.PanelRows,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = program.Run()
	events.App.Exit(err)
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// startWatcher watches the vault when asked to, falling back to a single
// scan when filesystem notifications are unavailable.
func startWatcher(v *vault.Vault, watch bool) (*backend.Watcher, error) {
	opts := backend.DefaultOptions()
	opts.Watch = watch
	w, err := backend.NewWatcher(v, opts)
	if err == nil || !watch {
		return w, err
	}
	logging.Errorf("falling back to a single scan: %v", err)
	opts.Watch = false
	return backend.NewWatcher(v, opts)
}
