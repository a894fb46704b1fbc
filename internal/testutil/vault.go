// Package testutil builds throwaway vault trees for tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// VaultBuilder writes files beneath a temporary vault root.
type VaultBuilder struct {
	t    testing.TB
	root string
}

// NewVault creates an empty vault in a test temp dir.
func NewVault(t testing.TB) *VaultBuilder {
	t.Helper()
	return &VaultBuilder{t: t, root: t.TempDir()}
}

// Root returns the vault directory.
func (b *VaultBuilder) Root() string {
	return b.root
}

// Path converts a slash path inside the vault to a filesystem path.
func (b *VaultBuilder) Path(rel string) string {
	return filepath.Join(b.root, filepath.FromSlash(rel))
}

// Dir creates an empty folder.
func (b *VaultBuilder) Dir(rel string) *VaultBuilder {
	b.t.Helper()
	if err := os.MkdirAll(b.Path(rel), 0o755); err != nil {
		b.t.Fatalf("mkdir %s: %v", rel, err)
	}
	return b
}

// File writes content to rel, creating parent folders.
func (b *VaultBuilder) File(rel, content string) *VaultBuilder {
	b.t.Helper()
	p := b.Path(rel)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		b.t.Fatalf("mkdir for %s: %v", rel, err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		b.t.Fatalf("write %s: %v", rel, err)
	}
	return b
}

// Note writes a Markdown note whose frontmatter lists tags.
func (b *VaultBuilder) Note(rel string, tags ...string) *VaultBuilder {
	b.t.Helper()
	return b.File(rel, Frontmatter(tags...)+"\nbody of "+filepath.Base(rel)+"\n")
}

// Exists reports whether rel is present.
func (b *VaultBuilder) Exists(rel string) bool {
	_, err := os.Stat(b.Path(rel))
	return err == nil
}

// Read returns the content of rel.
func (b *VaultBuilder) Read(rel string) string {
	b.t.Helper()
	data, err := os.ReadFile(b.Path(rel))
	if err != nil {
		b.t.Fatalf("read %s: %v", rel, err)
	}
	return string(data)
}

// Frontmatter renders a YAML frontmatter block carrying tags.
func Frontmatter(tags ...string) string {
	var sb strings.Builder
	sb.WriteString("---\n")
	if len(tags) > 0 {
		sb.WriteString("tags:\n")
		for _, t := range tags {
			sb.WriteString("  - ")
			sb.WriteString(t)
			sb.WriteString("\n")
		}
	}
	sb.WriteString("---\n")
	return sb.String()
}
