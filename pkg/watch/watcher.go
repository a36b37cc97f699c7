package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Config contains configuration for the watcher.
type Config struct {
	// Paths are the files and directories to watch. Directories are
	// watched recursively.
	Paths []string

	// ConfigFile, if set, is watched separately and reported through
	// Handler.OnConfigChange.
	ConfigFile string

	// Debounce is the quiet period before a change is reported.
	// Default: 100ms
	Debounce time.Duration

	// Extensions selects the files reported from watched directories.
	// Explicitly listed files are reported whatever their extension.
	// Default: [".json"]
	Extensions []string

	// SkipHidden skips files and directories whose name starts with ".".
	SkipHidden bool
}

// Handler receives debounced changes.
type Handler struct {
	// OnChange is called with the path of a written or created document.
	OnChange func(ctx context.Context, path string)

	// OnConfigChange is called when the configuration file changes.
	OnConfigChange func(ctx context.Context)
}

// Watcher reports changes to documents on disk. Single files are watched
// through their parent directory so that editors replacing a file by
// rename keep being followed.
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	config   *Config
	debounce *Debouncer

	files      map[string]bool // explicitly listed files
	roots      []string        // recursively watched directories
	configFile string

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// New creates a watcher for cfg.Paths. The paths must exist.
func New(cfg *Config, logger *slog.Logger) (*Watcher, error) {
	if cfg == nil || len(cfg.Paths) == 0 {
		return nil, errors.New("no paths to watch")
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = 100 * time.Millisecond
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = []string{".json"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		watcher:  fsw,
		logger:   logger.With("component", "watch"),
		config:   cfg,
		debounce: NewDebouncer(cfg.Debounce),
		files:    make(map[string]bool),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}

	for _, p := range cfg.Paths {
		if err := w.addPath(p); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", p, err)
		}
	}
	if cfg.ConfigFile != "" {
		abs, err := filepath.Abs(cfg.ConfigFile)
		if err != nil {
			fsw.Close()
			return nil, fmt.Errorf("failed to watch config %s: %w", cfg.ConfigFile, err)
		}
		if err := fsw.Add(filepath.Dir(abs)); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("failed to watch config %s: %w", cfg.ConfigFile, err)
		}
		w.configFile = abs
	}

	return w, nil
}

// Run reports changes to h until ctx is cancelled or Stop is called.
func (w *Watcher) Run(ctx context.Context, h Handler) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return errors.New("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		close(w.doneCh)
	}()

	w.logger.Info("file watcher started",
		"paths", w.config.Paths,
		"debounce_ms", w.config.Debounce.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("file watcher stopped (context cancelled)")
			return nil

		case <-w.stopCh:
			w.logger.Info("file watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			w.handleEvent(ctx, event, h)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

// Stop stops Run, cancels pending callbacks and releases the watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	running := w.running
	w.mu.Unlock()

	if running {
		close(w.stopCh)
		<-w.doneCh
	}
	w.debounce.Stop()

	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	return nil
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event, h Handler) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	path, err := filepath.Abs(event.Name)
	if err != nil {
		return
	}

	if path == w.configFile {
		if h.OnConfigChange != nil {
			w.debounce.Trigger(path, func() {
				w.logger.Info("configuration changed", "path", path)
				h.OnConfigChange(ctx)
			})
		}
		return
	}

	if event.Has(fsnotify.Create) && w.underRoot(path) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if err := w.addDirectory(path); err != nil {
				w.logger.Warn("failed to watch new directory", "path", path, "error", err)
			}
			return
		}
	}

	if !w.shouldReport(path) {
		return
	}

	w.logger.Debug("file event detected", "path", path, "op", event.Op.String())
	if h.OnChange != nil {
		w.debounce.Trigger(path, func() { h.OnChange(ctx, path) })
	}
}

// shouldReport decides whether a change to path is passed to the handler.
func (w *Watcher) shouldReport(path string) bool {
	if w.files[path] {
		return true
	}
	if !w.underRoot(path) {
		return false
	}
	if w.config.SkipHidden && strings.HasPrefix(filepath.Base(path), ".") {
		return false
	}
	return w.hasValidExtension(filepath.Ext(path))
}

func (w *Watcher) underRoot(path string) bool {
	for _, root := range w.roots {
		if path == root || strings.HasPrefix(path, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (w *Watcher) hasValidExtension(ext string) bool {
	for _, valid := range w.config.Extensions {
		if strings.EqualFold(ext, valid) {
			return true
		}
	}
	return false
}

func (w *Watcher) addPath(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return err
	}

	if info.IsDir() {
		w.roots = append(w.roots, abs)
		return w.addDirectory(abs)
	}

	w.files[abs] = true
	return w.watcher.Add(filepath.Dir(abs))
}

func (w *Watcher) addDirectory(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if w.config.SkipHidden && path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %q: %w", path, err)
		}
		w.logger.Debug("watching directory", "path", path)
		return nil
	})
}
