// Package watcher reloads the data files when they are edited by hand and
// resynchronizes online users afterwards.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bagdasarian/simpleprefix/internal/config"
	"github.com/bagdasarian/simpleprefix/internal/domain"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultPollInterval = 30 * time.Second

var (
	ErrAlreadyStarted = errors.New("watcher already started")
	ErrStopped        = errors.New("watcher stopped")
)

type GroupReloader interface {
	Reload(ctx context.Context) error
	CheckAndReload(ctx context.Context) (bool, error)
}

type SettingsReloader interface {
	Reload() (bool, error)
	Current() config.Settings
}

type Resyncer interface {
	SynchronizeAll(ctx context.Context, users []*domain.User) error
}

type OnlineUsers interface {
	Online() []*domain.User
}

// Submitter hands work to the executor that owns the board.
type Submitter interface {
	Submit(fn func()) bool
}

type Dependencies struct {
	Registry     GroupReloader
	Settings     SettingsReloader
	Synchronizer Resyncer
	Users        OnlineUsers
	Executor     Submitter
	Signal       *SelfWriteSignal

	// OnSettingsReload is called on the executor after config.yml was re-read.
	OnSettingsReload func(config.Settings)
}

type ConfigWatcher struct {
	dir          string
	groupsFile   string
	settingsFile string
	deps         Dependencies
	logger       *zap.Logger

	afterFunc func(time.Duration, func()) Timer

	mu      sync.Mutex
	pending map[string]Timer
	fsw     *fsnotify.Watcher
	cancel  context.CancelFunc
	done    chan struct{}
	stopped bool
}

// Timer is the part of *time.Timer the debounce needs.
type Timer interface {
	Stop() bool
}

type Option func(*ConfigWatcher)

// WithAfterFunc replaces time.AfterFunc for the debounce timers.
func WithAfterFunc(after func(time.Duration, func()) Timer) Option {
	return func(w *ConfigWatcher) {
		w.afterFunc = after
	}
}

// New watches groupsPath and settingsPath, which must share a directory.
func New(groupsPath, settingsPath string, deps Dependencies, logger *zap.Logger, opts ...Option) *ConfigWatcher {
	w := &ConfigWatcher{
		dir:          filepath.Dir(groupsPath),
		groupsFile:   filepath.Base(groupsPath),
		settingsFile: filepath.Base(settingsPath),
		deps:         deps,
		logger:       logger,
		afterFunc: func(d time.Duration, fn func()) Timer {
			return time.AfterFunc(d, fn)
		},
		pending: make(map[string]Timer),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *ConfigWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return ErrStopped
	}
	if w.fsw != nil {
		return ErrAlreadyStarted
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsw.Add(w.dir); err != nil {
		fsw.Close()
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}

	loopCtx, cancel := context.WithCancel(ctx)
	w.fsw = fsw
	w.cancel = cancel
	w.done = make(chan struct{})

	go w.loop(loopCtx, fsw, w.done)

	w.logger.Info("config watcher started", zap.String("dir", w.dir))
	return nil
}

// Stop may be called several times and without Start.
func (w *ConfigWatcher) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	cancel, done, fsw := w.cancel, w.done, w.fsw
	for name, t := range w.pending {
		t.Stop()
		delete(w.pending, name)
	}
	w.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	if err := fsw.Close(); err != nil {
		w.logger.Warn("failed to close file watcher", zap.Error(err))
	}
	w.logger.Info("config watcher stopped")
}

func (w *ConfigWatcher) loop(ctx context.Context, fsw *fsnotify.Watcher, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(w.pollInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(ctx, event)
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", zap.Error(err))
		case <-ticker.C:
			w.poll(ctx)
		}
	}
}

func (w *ConfigWatcher) pollInterval() time.Duration {
	interval := w.deps.Settings.Current().General.AutoReload.Interval
	if interval <= 0 {
		return defaultPollInterval
	}
	return interval
}

func (w *ConfigWatcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	name := filepath.Base(event.Name)
	if isTempFile(name) || (name != w.groupsFile && name != w.settingsFile) {
		return
	}

	if w.deps.Signal != nil && w.deps.Signal.Active() {
		w.logger.Debug("skipping self-written file", zap.String("file", name))
		return
	}

	if name == w.groupsFile {
		w.debounce(name, func() { w.reloadGroups(ctx) })
		return
	}
	w.debounce(name, func() { w.reloadSettings(ctx) })
}

// debounce re-arms the timer of the file on every event, so the reload runs
// once the file has been quiet for the whole window. An editor that truncates
// and then writes in place is read only after the last write.
func (w *ConfigWatcher) debounce(name string, reload func()) {
	window := w.deps.Settings.Current().General.Debounce

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}
	if t, ok := w.pending[name]; ok {
		t.Stop()
	}

	var t Timer
	t = w.afterFunc(window, func() {
		w.mu.Lock()
		if w.pending[name] != t {
			w.mu.Unlock()
			return
		}
		delete(w.pending, name)
		w.mu.Unlock()

		w.logger.Info("file changed on disk", zap.String("file", name))
		w.submit(reload)
	})
	w.pending[name] = t
}

// poll is the fallback for file systems that drop change events.
func (w *ConfigWatcher) poll(ctx context.Context) {
	if !w.deps.Settings.Current().General.AutoReload.Enabled {
		return
	}
	if w.deps.Signal != nil && w.deps.Signal.Active() {
		return
	}

	w.submit(func() {
		reloaded, err := w.deps.Registry.CheckAndReload(ctx)
		if err != nil {
			w.logger.Error("periodic reload failed", zap.Error(err))
			return
		}
		if reloaded {
			w.resync(ctx)
		}
	})
}

func (w *ConfigWatcher) reloadGroups(ctx context.Context) {
	if err := w.deps.Registry.Reload(ctx); err != nil {
		w.logger.Error("failed to reload groups", zap.Error(err))
		return
	}
	w.resync(ctx)
}

func (w *ConfigWatcher) reloadSettings(ctx context.Context) {
	changed, err := w.deps.Settings.Reload()
	if err != nil {
		w.logger.Error("failed to reload settings", zap.Error(err))
		return
	}
	if w.deps.OnSettingsReload != nil {
		w.deps.OnSettingsReload(w.deps.Settings.Current())
	}
	if changed {
		w.resync(ctx)
	}
}

func (w *ConfigWatcher) resync(ctx context.Context) {
	if err := w.deps.Synchronizer.SynchronizeAll(ctx, w.deps.Users.Online()); err != nil {
		w.logger.Warn("resync finished with errors", zap.Error(err))
	}
}

func (w *ConfigWatcher) submit(fn func()) {
	if !w.deps.Executor.Submit(fn) {
		w.logger.Warn("executor stopped, change ignored")
	}
}

func isTempFile(name string) bool {
	return strings.HasPrefix(name, ".") ||
		strings.HasSuffix(name, ".tmp") ||
		strings.HasSuffix(name, ".swp") ||
		strings.HasSuffix(name, "~")
}
