// Package watch triggers rebuilds when files under watched directories
// change. Bursts of events are coalesced into one callback.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDelay is the quiet period before a batch of changes is reported.
const DefaultDelay = 300 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	Delay   time.Duration // 0 = DefaultDelay
	Ignore  []string      // directories whose events are discarded, e.g. the output dir
	OnError func(error)   // watcher errors; nil discards them
}

// Watcher monitors directories for file changes.
type Watcher struct {
	fs     *fsnotify.Watcher
	opts   Options
	ignore []string
}

// New watches every directory in dirs. Duplicate and empty entries are skipped.
func New(dirs []string, opts Options) (*Watcher, error) {
	if opts.Delay <= 0 {
		opts.Delay = DefaultDelay
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	w := &Watcher{fs: fsw, opts: opts}
	for _, d := range opts.Ignore {
		if abs, err := filepath.Abs(d); err == nil {
			w.ignore = append(w.ignore, abs)
		}
	}

	if err := w.Add(dirs...); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Add starts watching more directories. Directories already watched and
// empty entries are skipped.
func (w *Watcher) Add(dirs ...string) error {
	seen := make(map[string]bool)
	for _, d := range w.fs.WatchList() {
		seen[d] = true
	}
	for _, d := range dirs {
		if d == "" {
			continue
		}
		abs, err := filepath.Abs(d)
		if err != nil || seen[abs] {
			continue
		}
		seen[abs] = true
		if err := w.fs.Add(abs); err != nil {
			return fmt.Errorf("watch %s: %w", abs, err)
		}
	}
	return nil
}

// Dirs returns the watched directories.
func (w *Watcher) Dirs() []string { return w.fs.WatchList() }

// Close stops the watcher.
func (w *Watcher) Close() error { return w.fs.Close() }

// Run calls fn with the sorted set of changed paths once events settle for
// the configured delay. It returns when ctx is done or the watcher closes.
func (w *Watcher) Run(ctx context.Context, fn func(changed []string)) error {
	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending = make(map[string]bool)
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			pending[ev.Name] = true
			if timer == nil {
				timer = time.NewTimer(w.opts.Delay)
			} else {
				timer.Reset(w.opts.Delay)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			changed := make([]string, 0, len(pending))
			for name := range pending {
				changed = append(changed, name)
			}
			sort.Strings(changed)
			clear(pending)
			fn(changed)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			if w.opts.OnError != nil {
				w.opts.OnError(err)
			}
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	base := filepath.Base(ev.Name)
	// Skip editor temp files.
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") || strings.HasSuffix(base, ".swp") {
		return false
	}
	for _, dir := range w.ignore {
		if ev.Name == dir || strings.HasPrefix(ev.Name, dir+string(filepath.Separator)) {
			return false
		}
	}
	return true
}
