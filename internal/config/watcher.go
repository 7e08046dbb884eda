package config

// #region imports
import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// #endregion imports

// #region watcher

// ReloadFunc is invoked with the watched file path after each debounced
// change. A returned error is logged; the watcher keeps running on the
// previous state.
type ReloadFunc func(path string) error

// RulesWatcher watches the retention rules file and triggers debounced
// reloads. Editor save sequences producing several events inside the debounce
// window collapse into one reload.
type RulesWatcher struct {
	path     string
	debounce time.Duration
	reload   ReloadFunc
	log      zerolog.Logger

	cancel  context.CancelFunc
	stopped chan struct{}

	mu    sync.Mutex
	timer *time.Timer
}

// NewRulesWatcher creates a watcher for the given rules file.
func NewRulesWatcher(path string, debounceMillis int, reload ReloadFunc, log zerolog.Logger) (*RulesWatcher, error) {
	if path == "" {
		return nil, fmt.Errorf("rules watcher: path cannot be empty")
	}
	if reload == nil {
		return nil, fmt.Errorf("rules watcher: reload func cannot be nil")
	}
	if debounceMillis <= 0 {
		debounceMillis = 500
	}
	return &RulesWatcher{
		path:     path,
		debounce: time.Duration(debounceMillis) * time.Millisecond,
		reload:   reload,
		log:      log,
		stopped:  make(chan struct{}),
	}, nil
}

// Start launches the watch loop. It returns once the underlying fsnotify
// watcher is registered, so changes after Start are never missed.
func (w *RulesWatcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("rules watcher: %w", err)
	}
	if err := watcher.Add(w.path); err != nil {
		watcher.Close()
		return fmt.Errorf("rules watcher: watch %q: %w", w.path, err)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	go w.loop(watchCtx, watcher)
	w.log.Info().Str("path", w.path).Dur("debounce", w.debounce).Msg("watching rules file")
	return nil
}

func (w *RulesWatcher) loop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer close(w.stopped)
	defer watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			// Atomic writes unlink the watched inode; re-add after the
			// replacement file lands.
			if event.Op&(fsnotify.Rename|fsnotify.Remove) != 0 {
				time.Sleep(50 * time.Millisecond)
				if err := watcher.Add(w.path); err != nil {
					w.log.Warn().Err(err).Str("path", w.path).Msg("re-add watch failed")
				}
			}
			w.scheduleReload()

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("rules watcher error")
		}
	}
}

// scheduleReload resets the debounce timer on each event.
func (w *RulesWatcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		if err := w.reload(w.path); err != nil {
			w.log.Warn().Err(err).Str("path", w.path).Msg("rules reload failed, keeping previous rules")
			return
		}
		w.log.Info().Str("path", w.path).Msg("rules reloaded")
	})
}

// Stop cancels the watch loop and waits for it to exit.
func (w *RulesWatcher) Stop() error {
	if w.cancel != nil {
		w.cancel()
	}
	select {
	case <-w.stopped:
		return nil
	case <-time.After(5 * time.Second):
		return fmt.Errorf("rules watcher: timeout waiting for stop")
	}
}

// #endregion watcher
