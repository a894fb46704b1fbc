package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/atomicstack/tagsort/internal/app"
	"github.com/atomicstack/tagsort/internal/settings"
	"github.com/atomicstack/tagsort/internal/suggest"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

const (
	envVault     = "TAGSORT_VAULT"
	envSettings  = "TAGSORT_SETTINGS"
	envWidth     = "TAGSORT_WIDTH"
	envHeight    = "TAGSORT_HEIGHT"
	envFooter    = "TAGSORT_FOOTER"
	envPanelRows = "TAGSORT_PANEL_ROWS"
	envNoWatch   = "TAGSORT_NO_WATCH"
	envVerbose   = "TAGSORT_VERBOSE"
	envTrace     = "TAGSORT_TRACE"
	envLogFile   = "TAGSORT_LOG_FILE"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("tagsort", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	vaultPath := fs.String("vault", envOrDefault(env, envVault, "."), "path to the notes vault")
	settingsPath := fs.String("settings", envOrDefault(env, envSettings, settings.DefaultPath()), "path to the rules file")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envFooter, false), "enable footer hint row (disabled by default)")
	panelRows := fs.Int("panel-rows", envOrInt(env, envPanelRows, suggest.DefaultRows), "suggestions visible at once")
	noWatch := fs.Bool("no-watch", envOrBool(env, envNoWatch, false), "scan the vault once instead of watching it")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "list moved notes and confirm saves")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	cfg := Config{
		App: app.Config{
			VaultPath:    *vaultPath,
			SettingsPath: *settingsPath,
			Width:        *width,
			Height:       *height,
			ShowFooter:   *footer,
			Verbose:      *verbose,
			PanelRows:    *panelRows,
			Watch:        !*noWatch,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
		},
		Flags: map[string]string{
			"vault":     *vaultPath,
			"settings":  *settingsPath,
			"width":     strconv.Itoa(*width),
			"height":    strconv.Itoa(*height),
			"footer":    strconv.FormatBool(*footer),
			"panelRows": strconv.Itoa(*panelRows),
			"noWatch":   strconv.FormatBool(*noWatch),
			"trace":     strconv.FormatBool(*trace),
			"verbose":   strconv.FormatBool(*verbose),
			"logFile":   *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok && v != "" {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures the vault exists and the panel can show suggestions.
func Validate(cfg Config) error {
	if cfg.App.PanelRows <= 0 {
		return fmt.Errorf("panel-rows must be > 0 (got %d)", cfg.App.PanelRows)
	}
	info, err := os.Stat(cfg.App.VaultPath)
	if err != nil {
		return fmt.Errorf("vault: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("vault: %s is not a directory", cfg.App.VaultPath)
	}
	if strings.TrimSpace(cfg.App.SettingsPath) == "" {
		return fmt.Errorf("settings path is empty")
	}
	return nil
}
