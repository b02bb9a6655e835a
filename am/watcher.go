package am

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/teranos/domgen/errors"
	"github.com/teranos/domgen/logger"
)

// InputWatcher watches the generator input files and triggers regeneration
// callbacks. The parent directories are watched so that editors replacing a
// file by rename are noticed too.
type InputWatcher struct {
	files          map[string]bool
	watcher        *fsnotify.Watcher
	callbacks      []ChangeCallback
	mu             sync.RWMutex
	notifyMu       sync.Mutex // one burst of callbacks at a time
	debounceTimer  *time.Timer
	debouncePeriod time.Duration
}

// ChangeCallback is called once per debounced burst of changes with the
// changed file paths
type ChangeCallback func(changed []string) error

// DefaultDebounce groups rapid successive writes into one change
const DefaultDebounce = 300 * time.Millisecond

// NewInputWatcher creates a watcher over the given files
func NewInputWatcher(paths ...string) (*InputWatcher, error) {
	if len(paths) == 0 {
		return nil, errors.New("no input files to watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	iw := &InputWatcher{
		files:          make(map[string]bool, len(paths)),
		watcher:        watcher,
		debouncePeriod: DefaultDebounce,
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			watcher.Close()
			return nil, errors.Wrapf(err, "failed to resolve %s", p)
		}
		iw.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, errors.Wrapf(err, "failed to watch directory %s", dir)
		}
	}

	return iw, nil
}

// SetDebounce changes the debounce period
func (iw *InputWatcher) SetDebounce(d time.Duration) {
	iw.mu.Lock()
	defer iw.mu.Unlock()
	iw.debouncePeriod = d
}

// OnChange registers a callback to be called when inputs change
func (iw *InputWatcher) OnChange(callback ChangeCallback) {
	iw.mu.Lock()
	defer iw.mu.Unlock()
	iw.callbacks = append(iw.callbacks, callback)
}

// Start begins watching for input changes
func (iw *InputWatcher) Start() {
	go iw.watchLoop()
}

// watchLoop monitors file system events
func (iw *InputWatcher) watchLoop() {
	var pending []string
	var pendingMu sync.Mutex

	for {
		select {
		case event, ok := <-iw.watcher.Events:
			if !ok {
				return
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !iw.files[abs] {
				continue
			}

			logger.Debugw("Input watcher detected change",
				logger.FieldFile, abs,
				"op", event.Op.String())

			pendingMu.Lock()
			pending = appendUnique(pending, abs)
			pendingMu.Unlock()

			iw.scheduleChange(func() []string {
				pendingMu.Lock()
				defer pendingMu.Unlock()
				changed := pending
				pending = nil
				return changed
			})

		case err, ok := <-iw.watcher.Errors:
			if !ok {
				return
			}
			logger.Warnw("Input watcher error", logger.FieldError, err)
		}
	}
}

// scheduleChange debounces rapid file changes and triggers the callbacks
func (iw *InputWatcher) scheduleChange(drain func() []string) {
	iw.mu.Lock()
	defer iw.mu.Unlock()

	if iw.debounceTimer != nil {
		iw.debounceTimer.Stop()
	}

	iw.debounceTimer = time.AfterFunc(iw.debouncePeriod, func() {
		changed := drain()
		if len(changed) == 0 {
			return
		}
		iw.notify(changed)
	})
}

// notify runs the callbacks for one burst. Timers from successive bursts may
// fire concurrently, so callbacks are serialized.
func (iw *InputWatcher) notify(changed []string) {
	iw.notifyMu.Lock()
	defer iw.notifyMu.Unlock()

	iw.mu.RLock()
	callbacks := make([]ChangeCallback, len(iw.callbacks))
	copy(callbacks, iw.callbacks)
	iw.mu.RUnlock()

	for _, callback := range callbacks {
		if err := callback(changed); err != nil {
			// Continue calling other callbacks even if one fails
			logger.Warnw("Input change callback error", logger.FieldError, err)
		}
	}
}

// Stop stops watching
func (iw *InputWatcher) Stop() error {
	iw.mu.Lock()
	if iw.debounceTimer != nil {
		iw.debounceTimer.Stop()
	}
	iw.mu.Unlock()
	return iw.watcher.Close()
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
