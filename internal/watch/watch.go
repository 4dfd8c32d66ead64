// Package watch regenerates code when Go sources change. It watches package
// directories with fsnotify and batches bursts of events (editors often
// write a file several times) into one callback.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-askgen/pkg/logger"
)

// DefaultDebounce is the quiet period used when Options.Debounce is zero.
const DefaultDebounce = 200 * time.Millisecond

// Handler receives the sorted set of files changed during one burst.
type Handler func(ctx context.Context, changed []string) error

// Options configures Run.
type Options struct {
	Debounce time.Duration
	// Suffix identifies generated files, whose changes are ignored.
	Suffix string
	Logger logger.Logger
	// Ready, when set, is closed once every directory is watched.
	Ready chan<- struct{}
}

// Relevant reports whether a change to name should trigger generation.
func Relevant(name, suffix string) bool {
	base := filepath.Base(name)
	if filepath.Ext(base) != ".go" || strings.HasSuffix(base, "_test.go") {
		return false
	}
	return suffix == "" || !strings.HasSuffix(base, suffix)
}

// Run blocks until ctx is canceled. Handler errors are logged and do not stop
// the watch.
func Run(ctx context.Context, dirs []string, opts Options, fn Handler) error {
	if fn == nil {
		return errors.New("watch: handler is required")
	}
	if len(dirs) == 0 {
		return errors.New("watch: no directories to watch")
	}
	log := opts.Logger
	if log == nil {
		log = logger.FromContext(ctx)
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create watcher: %w", err)
	}
	defer w.Close()

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watch: add %s: %w", dir, err)
		}
	}
	log.Info("watching", "directories", len(dirs), "debounce", debounce)
	if opts.Ready != nil {
		close(opts.Ready)
	}

	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending = make(map[string]struct{})
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) || !Relevant(event.Name, opts.Suffix) {
				continue
			}
			log.Debug("change detected", "file", event.Name, "op", event.Op.String())
			pending[event.Name] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			changed := make([]string, 0, len(pending))
			for name := range pending {
				changed = append(changed, name)
			}
			clear(pending)
			slices.Sort(changed)
			if err := fn(ctx, changed); err != nil {
				log.Error("regeneration failed", "error", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", "error", err)
		}
	}
}
