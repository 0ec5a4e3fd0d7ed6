// Package watch re-runs schedule generation whenever the configuration,
// roster, or constraints files change on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"
)

const defaultDebounce = 500 * time.Millisecond

// Watcher debounces bursts of file events (editors write, rename, and chmod
// in quick succession) into a single regeneration.
type Watcher struct {
	paths    map[string]bool
	debounce time.Duration
	onChange func(context.Context) error
	logger   *log.Logger

	mu       sync.Mutex
	timer    *time.Timer
	triggers chan string
}

// New builds a watcher over the given files. onChange runs once per settled
// burst; a failed regeneration is logged, not fatal, so a half-saved config
// does not kill the daemon.
func New(paths []string, debounce time.Duration, onChange func(context.Context) error, logger *log.Logger) *Watcher {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	tracked := make(map[string]bool, len(paths))
	for _, p := range paths {
		tracked[filepath.Clean(p)] = true
	}
	return &Watcher{
		paths:    tracked,
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
		triggers: make(chan string, 1),
	}
}

// Run blocks until ctx is cancelled. The parent directories are watched
// rather than the files themselves: atomic save strategies replace the
// inode, which silently drops a per-file watch.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer fw.Close()

	dirs := make(map[string]bool)
	for p := range w.paths {
		dirs[filepath.Dir(p)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	w.log("INFO watching dirs=%d files=%d debounce=%s", len(dirs), len(w.paths), w.debounce)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case event, ok := <-fw.Events:
				if !ok {
					return nil
				}
				if !w.paths[filepath.Clean(event.Name)] {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
					w.log("DEBUG fsnotify event=%s file=%s", event.Op, event.Name)
					w.scheduleTrigger(filepath.Base(event.Name))
				}
			case err, ok := <-fw.Errors:
				if !ok {
					return nil
				}
				w.log("ERROR fsnotify error=%v", err)
			}
		}
	})

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case trigger := <-w.triggers:
				w.log("INFO regenerating trigger=%s", trigger)
				if err := w.onChange(ctx); err != nil {
					w.log("ERROR regeneration failed trigger=%s err=%v", trigger, err)
				}
			}
		}
	})

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// scheduleTrigger restarts the debounce timer; the trigger fires only after
// the burst settles.
func (w *Watcher) scheduleTrigger(trigger string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case w.triggers <- trigger:
		default:
		}
	})
}

func (w *Watcher) log(format string, args ...any) {
	if w.logger != nil {
		w.logger.Printf(format, args...)
	}
}
