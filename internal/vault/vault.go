// Package vault reads and reorganises a directory of Markdown notes.
//
// Paths handed out by the package are slash separated and relative to the
// vault root. The root folder itself is reported as "/".
package vault

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/atomicstack/tagsort/internal/logging/events"
)

// RootFolder is the path of the vault root.
const RootFolder = "/"

var (
	// ErrDestinationExists is returned when a note with the same name is
	// already present in the destination folder.
	ErrDestinationExists = errors.New("destination already exists")
	// ErrMetadata is returned when a note's frontmatter cannot be read.
	ErrMetadata = errors.New("metadata unreadable")
	// ErrInvalidFolder is returned for folder paths outside the vault.
	ErrInvalidFolder = errors.New("invalid folder")
)

// Folder is a directory inside the vault.
type Folder struct {
	Path  string
	Notes int
}

// Note is a Markdown file and the tags it carries.
type Note struct {
	Path   string
	Folder string
	Tags   []string
	Err    error
}

// HasTag reports whether the note carries tag, ignoring case and a leading #.
func (n Note) HasTag(tag string) bool {
	want := NormalizeTag(tag)
	if want == "" {
		return false
	}
	for _, t := range n.Tags {
		if t == want {
			return true
		}
	}
	return false
}

// Name returns the note's file name.
func (n Note) Name() string {
	return path.Base(n.Path)
}

// Tag is a tag and the number of notes carrying it.
type Tag struct {
	Name  string
	Notes int
}

// ScanError is an entry the scan could not read. Its subtree is skipped.
type ScanError struct {
	Path string
	Err  error
}

// Snapshot is the result of a vault scan.
type Snapshot struct {
	Root      string
	Folders   []Folder
	Notes     []Note
	Tags      []Tag
	Skipped   []ScanError
	ScannedAt time.Time
}

// TagCount returns how many notes carry tag.
func (s Snapshot) TagCount(tag string) int {
	want := NormalizeTag(tag)
	for _, t := range s.Tags {
		if t.Name == want {
			return t.Notes
		}
	}
	return 0
}

// Vault is a notes directory on disk.
type Vault struct {
	root string
	fsys fs.FS
}

// Open returns the vault rooted at root, which must be an existing directory.
func Open(root string) (*Vault, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve vault %s: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("open vault: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open vault: %s is not a directory", abs)
	}
	return &Vault{root: abs, fsys: os.DirFS(abs)}, nil
}

// Root returns the absolute vault directory.
func (v *Vault) Root() string {
	return v.root
}

// Scan walks the vault and collects its folders, notes and tags. Hidden
// directories are skipped. A note whose metadata cannot be parsed is still
// listed, with Err set. Entries that cannot be read are recorded in Skipped
// and the walk carries on; only an unreadable root fails the scan.
func (v *Vault) Scan(ctx context.Context) (Snapshot, error) {
	snap := Snapshot{Root: v.root}
	folderIndex := map[string]int{}
	tagCounts := map[string]int{}

	err := fs.WalkDir(v.fsys, ".", func(p string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		rel := v.rel(p)
		if walkErr != nil {
			if rel == RootFolder {
				return walkErr
			}
			events.Vault.Failure(rel, walkErr)
			snap.Skipped = append(snap.Skipped, ScanError{Path: rel, Err: walkErr})
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if rel != RootFolder && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			folderIndex[rel] = len(snap.Folders)
			snap.Folders = append(snap.Folders, Folder{Path: rel})
			return nil
		}
		if !isNote(d.Name()) {
			return nil
		}
		note := Note{Path: rel, Folder: parentFolder(rel)}
		data, err := fs.ReadFile(v.fsys, p)
		if err != nil {
			note.Err = fmt.Errorf("read %s: %w", rel, err)
		} else if tags, err := ParseTags(data); err != nil {
			note.Err = fmt.Errorf("%s: %w", rel, err)
		} else {
			note.Tags = tags
			for _, t := range tags {
				tagCounts[t]++
			}
		}
		if idx, ok := folderIndex[note.Folder]; ok {
			snap.Folders[idx].Notes++
		}
		snap.Notes = append(snap.Notes, note)
		return nil
	})
	if err != nil {
		return Snapshot{}, fmt.Errorf("scan vault: %w", err)
	}

	snap.Tags = make([]Tag, 0, len(tagCounts))
	for name, count := range tagCounts {
		snap.Tags = append(snap.Tags, Tag{Name: name, Notes: count})
	}
	sort.Slice(snap.Tags, func(i, j int) bool { return snap.Tags[i].Name < snap.Tags[j].Name })
	snap.ScannedAt = time.Now()
	events.Vault.Scan(v.root, len(snap.Folders), len(snap.Notes), len(snap.Tags))
	return snap, nil
}

// rel converts a walk path to a vault path.
func (v *Vault) rel(p string) string {
	if p == "." {
		return RootFolder
	}
	return p
}

// abs converts a vault path to a filesystem path.
func (v *Vault) abs(p string) string {
	if p == RootFolder {
		return v.root
	}
	return filepath.Join(v.root, filepath.FromSlash(p))
}

// NormalizeFolder cleans a folder path entered by the user. Empty input and
// "/" both name the root.
func NormalizeFolder(folder string) (string, error) {
	f := strings.TrimSpace(strings.ReplaceAll(folder, "\\", "/"))
	f = strings.Trim(f, "/")
	if f == "" {
		return RootFolder, nil
	}
	clean := path.Clean(f)
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%q: %w", folder, ErrInvalidFolder)
	}
	if clean == "." {
		return RootFolder, nil
	}
	return clean, nil
}

// NormalizeTag lower-cases tag and strips surrounding space and a leading #.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(tag), "#"))
}

func parentFolder(rel string) string {
	dir := path.Dir(rel)
	if dir == "." {
		return RootFolder
	}
	return dir
}

func isNote(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".md")
}
