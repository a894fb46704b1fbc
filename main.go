package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/atomicstack/tagsort/internal/app"
	"github.com/atomicstack/tagsort/internal/config"
	"github.com/atomicstack/tagsort/internal/logging"
	"github.com/atomicstack/tagsort/internal/logging/events"
	"golang.org/x/term"
)

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	traceStartup(runtimeCfg)

	if err := app.Run(runtimeCfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v (see %s)\n", err, logging.Path())
		os.Exit(1)
	}
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["tty"] = collectTTYDetails()
	payload["vault"] = collectVaultDetails(cfg.App)
	return payload
}

type vaultDetails struct {
	Path           string `json:"path"`
	Abs            string `json:"abs,omitempty"`
	IsDir          bool   `json:"is_dir"`
	Settings       string `json:"settings"`
	SettingsExists bool   `json:"settings_exists"`
	Watch          bool   `json:"watch"`
	PanelRows      int    `json:"panel_rows"`
	Error          string `json:"error,omitempty"`
}

// collectVaultDetails records where the vault and rules file resolve to.
func collectVaultDetails(cfg app.Config) vaultDetails {
	details := vaultDetails{
		Path:      cfg.VaultPath,
		Settings:  cfg.SettingsPath,
		Watch:     cfg.Watch,
		PanelRows: cfg.PanelRows,
	}
	if abs, err := filepath.Abs(cfg.VaultPath); err == nil {
		details.Abs = abs
	}
	if info, err := os.Stat(cfg.VaultPath); err == nil {
		details.IsDir = info.IsDir()
	} else {
		details.Error = err.Error()
	}
	if _, err := os.Stat(cfg.SettingsPath); err == nil {
		details.SettingsExists = true
	}
	return details
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails inspects standard descriptors for terminal support and dimensions.
func collectTTYDetails() ttyDetails {
	probes := []struct {
		name string
		fd   uintptr
	}{
		{"stdin", os.Stdin.Fd()},
		{"stdout", os.Stdout.Fd()},
		{"stderr", os.Stderr.Fd()},
	}
	results := make([]ttyProbeResult, 0, len(probes))
	var detected *ttyDetected
	for _, probe := range probes {
		entry := ttyProbeResult{Name: probe.name}
		fd := int(probe.fd)
		if fd >= 0 && term.IsTerminal(fd) {
			entry.IsTerminal = true
			if width, height, err := term.GetSize(fd); err == nil {
				entry.Width = width
				entry.Height = height
				if detected == nil {
					detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
				}
			} else {
				entry.Error = err.Error()
			}
		} else {
			entry.IsTerminal = false
		}
		results = append(results, entry)
	}
	return ttyDetails{Detected: detected, Probes: results}
}
