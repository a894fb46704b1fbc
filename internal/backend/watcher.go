package backend

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/atomicstack/tagsort/internal/logging"
	"github.com/atomicstack/tagsort/internal/logging/events"
	"github.com/atomicstack/tagsort/internal/vault"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindSnapshot Kind = iota
)

// Event conveys updated data or an error from a vault scan.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// Scanner produces vault snapshots.
type Scanner interface {
	Root() string
	Scan(ctx context.Context) (vault.Snapshot, error)
}

// Options tunes the watcher.
type Options struct {
	// Watch enables filesystem notifications. Without it a single snapshot
	// is emitted and further scans only happen through Rescan.
	Watch    bool
	Debounce time.Duration
	Throttle time.Duration
}

// DefaultOptions watches the vault with the standard timings.
func DefaultOptions() Options {
	return Options{Watch: true, Debounce: 200 * time.Millisecond, Throttle: 250 * time.Millisecond}
}

// Watcher scans the vault on start and again whenever it changes, and
// publishes each snapshot as an event.
type Watcher struct {
	scanner Scanner
	opts    Options

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	rescan chan struct{}
	wg     sync.WaitGroup
}

// NewWatcher starts scanning. The first snapshot is emitted immediately.
func NewWatcher(scanner Scanner, opts Options) (*Watcher, error) {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		scanner: scanner,
		opts:    opts,
		ctx:     ctx,
		cancel:  cancel,
		events:  make(chan Event, 16),
		rescan:  make(chan struct{}, 1),
	}

	if opts.Watch {
		fsw, err := fsnotify.NewWatcher()
		if err != nil {
			cancel()
			return nil, fmt.Errorf("watch vault: %w", err)
		}
		if err := addWatchTree(fsw, scanner.Root()); err != nil {
			fsw.Close()
			cancel()
			return nil, fmt.Errorf("watch vault: %w", err)
		}
		w.wg.Add(1)
		go w.watch(fsw)
	}

	w.wg.Add(1)
	go w.scan()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w, nil
}

// Events returns a channel of backend events. It is closed once the watcher
// has stopped.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Rescan requests a fresh snapshot. Requests made while one is pending are
// merged.
func (w *Watcher) Rescan() {
	select {
	case w.rescan <- struct{}{}:
	default:
	}
}

// Stop cancels the watcher. A scan in progress is abandoned.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until all goroutines have exited and the events channel is
// closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) scan() {
	defer w.wg.Done()
	throttle := newThrottle(w.opts.Throttle)

	emit := func() bool {
		if !throttle.wait(w.ctx) {
			return false
		}
		snap, err := w.scanner.Scan(w.ctx)
		if w.ctx.Err() != nil {
			return false
		}
		evt := Event{Kind: KindSnapshot, Data: snap, Err: err}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if !emit() {
		return
	}
	for {
		select {
		case <-w.ctx.Done():
			return
		case <-w.rescan:
			if !emit() {
				return
			}
		}
	}
}

func (w *Watcher) watch(fsw *fsnotify.Watcher) {
	defer w.wg.Done()
	defer fsw.Close()

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-w.ctx.Done():
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if hidden(w.scanner.Root(), event.Name) {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				watchCreated(fsw, event.Name)
			}
			if event.Op&fsnotify.Chmod == event.Op {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(w.opts.Debounce, w.Rescan)
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logging.Error(fmt.Errorf("vault watcher: %w", err))
		}
	}
}

// watchCreated adds a newly created directory and everything below it.
func watchCreated(fsw *fsnotify.Watcher, name string) {
	info, err := os.Stat(name)
	if err != nil || !info.IsDir() {
		return
	}
	if err := addWatchTree(fsw, name); err != nil {
		logging.Error(fmt.Errorf("watch %s: %w", name, err))
	}
}

func addWatchTree(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := fsw.Add(p); err != nil {
			return err
		}
		events.Vault.Watch(p)
		return nil
	})
}

// hidden reports whether name lies under a dot-directory of root.
func hidden(root, name string) bool {
	rel, err := filepath.Rel(root, name)
	if err != nil {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if strings.HasPrefix(part, ".") && part != "." && part != ".." {
			return true
		}
	}
	return false
}
