// Package watch reports edits to a fixed set of files, coalescing bursts of
// filesystem events into one callback.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/tliron/commonlog"
)

// DefaultDebounce is used when a non-positive debounce is given.
const DefaultDebounce = 250 * time.Millisecond

var log = commonlog.GetLogger("havoc.watch")

// Watcher watches the directories holding a set of files. Directories
// rather than files are watched so that editors which save by renaming a
// temporary file over the original keep being observed.
type Watcher struct {
	fs       *fsnotify.Watcher
	files    map[string]bool
	debounce time.Duration
}

// New starts watching paths. Events are only delivered once Run is called.
func New(paths []string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{fs: fsw, files: make(map[string]bool), debounce: debounce}
	dirs := make(map[string]bool)
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			fsw.Close()
			return nil, err
		}
		abs = filepath.Clean(abs)
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
		log.Debugf("watching %s", dir)
	}
	return w, nil
}

// Files lists the watched files as absolute paths.
func (w *Watcher) Files() []string {
	files := make([]string, 0, len(w.files))
	for f := range w.files {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

func (w *Watcher) Close() error {
	return w.fs.Close()
}

// Run delivers changes until ctx is done or the watcher fails. onChange
// receives the sorted absolute paths that changed since the last call and
// runs on the caller's goroutine; events arriving meanwhile are queued for
// the next call.
func (w *Watcher) Run(ctx context.Context, onChange func(changed []string)) error {
	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}
	pending := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			path := filepath.Clean(event.Name)
			if !w.files[path] {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if len(pending) > 0 && !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			pending[path] = true
			timer.Reset(w.debounce)
		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for path := range pending {
				changed = append(changed, path)
			}
			sort.Strings(changed)
			pending = make(map[string]bool)
			log.Infof("changed: %v", changed)
			onChange(changed)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}

// Run watches paths until ctx is done, calling onChange after each burst of
// edits.
func Run(ctx context.Context, paths []string, debounce time.Duration, onChange func(changed []string)) error {
	w, err := New(paths, debounce)
	if err != nil {
		return err
	}
	defer w.Close()
	return w.Run(ctx, onChange)
}
