// Package settings persists the organise rules.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/atomicstack/tagsort/internal/vault"
)

// Rule moves notes tagged Tag into Folder.
type Rule struct {
	Tag    string `toml:"tag"`
	Folder string `toml:"folder"`
}

// Settings is the on-disk document.
type Settings struct {
	Rules []Rule `toml:"rules"`
}

// Load reads path. A missing file yields empty settings.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Settings{}, nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	var s Settings
	if err := toml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse settings %s: %w", path, err)
	}
	s.Normalize()
	return s, nil
}

// Save writes s to path, creating its directory.
func Save(path string, s Settings) error {
	s.Normalize()
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace settings: %w", err)
	}
	return nil
}

// Normalize trims rule fields, strips a leading # from tags and drops rules
// with neither a tag nor a folder.
func (s *Settings) Normalize() {
	var rules []Rule
	for _, r := range s.Rules {
		r.Tag = strings.TrimPrefix(strings.TrimSpace(r.Tag), "#")
		r.Folder = strings.TrimSpace(r.Folder)
		if r.Tag == "" && r.Folder == "" {
			continue
		}
		rules = append(rules, r)
	}
	s.Rules = rules
}

// VaultRules converts the rules for vault.Organise.
func (s Settings) VaultRules() []vault.Rule {
	out := make([]vault.Rule, 0, len(s.Rules))
	for _, r := range s.Rules {
		out = append(out, r.Vault())
	}
	return out
}

// Vault converts r for vault.Organise.
func (r Rule) Vault() vault.Rule {
	return vault.Rule{Tag: r.Tag, Folder: r.Folder}
}

// DefaultPath returns the settings file under the user config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return filepath.Join(".", "tagsort", "settings.toml")
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "tagsort", "settings.toml")
}
