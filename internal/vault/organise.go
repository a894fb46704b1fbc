package vault

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/atomicstack/tagsort/internal/logging/events"
)

// Rule moves notes tagged Tag into Folder.
type Rule struct {
	Tag    string
	Folder string
}

// Move records a note that was relocated.
type Move struct {
	From string
	To   string
	Rule Rule
}

// Failure records a note that could not be organised.
type Failure struct {
	Note string
	Rule Rule
	Err  error
}

// Report summarises an Organise run.
type Report struct {
	Moved    []Move
	Failures []Failure
	InPlace  int
}

// Summary is a one-line description suitable for a notice.
func (r Report) Summary() string {
	parts := []string{fmt.Sprintf("moved %d %s", len(r.Moved), plural(len(r.Moved), "note", "notes"))}
	if r.InPlace > 0 {
		parts = append(parts, fmt.Sprintf("%d already in place", r.InPlace))
	}
	if n := len(r.Failures); n > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", n))
	}
	return strings.Join(parts, ", ")
}

// String renders the full report, one line per move or failure.
func (r Report) String() string {
	var b strings.Builder
	b.WriteString(r.Summary())
	b.WriteString("\n")
	for _, m := range r.Moved {
		fmt.Fprintf(&b, "moved %s -> %s (#%s)\n", m.From, m.To, m.Rule.Tag)
	}
	for _, f := range r.Failures {
		fmt.Fprintf(&b, "failed %s: %v\n", f.Note, f.Err)
	}
	return b.String()
}

// Organise rescans the vault and moves every note carrying a rule's tag into
// the rule's folder, creating it when needed. Rules are tried in order and a
// note is moved by the first rule it matches. A note that cannot be moved is
// recorded in the report and skipped; the run only fails as a whole when the
// scan itself fails or ctx is cancelled.
func (v *Vault) Organise(ctx context.Context, rules []Rule) (Report, error) {
	var report Report
	snap, err := v.Scan(ctx)
	if err != nil {
		return report, err
	}

	type normalized struct {
		rule   Rule
		tag    string
		folder string
		err    error
	}
	active := make([]normalized, 0, len(rules))
	for _, r := range rules {
		tag := NormalizeTag(r.Tag)
		if tag == "" {
			continue
		}
		folder, err := NormalizeFolder(r.Folder)
		active = append(active, normalized{rule: r, tag: tag, folder: folder, err: err})
	}
	if len(active) == 0 {
		return report, nil
	}

	// notes below an unreadable entry were never seen
	for _, skipped := range snap.Skipped {
		report.Failures = append(report.Failures, Failure{Note: skipped.Path, Err: skipped.Err})
	}

	for _, note := range snap.Notes {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if note.Err != nil {
			report.fail(note.Path, Rule{}, note.Err)
			continue
		}
		for _, r := range active {
			if !note.HasTag(r.tag) {
				continue
			}
			switch {
			case r.err != nil:
				report.fail(note.Path, r.rule, r.err)
			case note.Folder == r.folder:
				report.InPlace++
			default:
				if to, err := v.move(note, r.folder); err != nil {
					report.fail(note.Path, r.rule, err)
				} else {
					events.Vault.Move(note.Path, to)
					report.Moved = append(report.Moved, Move{From: note.Path, To: to, Rule: r.rule})
				}
			}
			// first matching rule wins
			break
		}
	}
	return report, nil
}

func (r *Report) fail(note string, rule Rule, err error) {
	events.Vault.Failure(note, err)
	r.Failures = append(r.Failures, Failure{Note: note, Rule: rule, Err: err})
}

func (v *Vault) move(note Note, folder string) (string, error) {
	dir := v.abs(folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create folder %s: %w", folder, err)
	}
	to := note.Name()
	if folder != RootFolder {
		to = path.Join(folder, note.Name())
	}
	dest := filepath.Join(dir, note.Name())
	if _, err := os.Lstat(dest); err == nil {
		return "", fmt.Errorf("%s: %w", to, ErrDestinationExists)
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("stat %s: %w", to, err)
	}
	if err := os.Rename(v.abs(note.Path), dest); err != nil {
		return "", fmt.Errorf("move %s: %w", note.Path, err)
	}
	return to, nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
