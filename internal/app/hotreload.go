package app

import (
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"hsv-colortest/internal/errors"
)

// HotReloader polls the running binary and reports when a rebuilt version
// replaces it. Each poll also runs the tick callback, which the viewer uses
// to persist slider positions.
type HotReloader struct {
	mu            sync.Mutex
	execPath      string
	baseline      time.Time
	checkInterval time.Duration
	stopCh        chan struct{}
	onNewBinary   func()
	onTick        func()
}

// NewHotReloader watches the current executable.
// Returns nil if the executable path cannot be determined.
func NewHotReloader(checkInterval time.Duration) *HotReloader {
	execPath, err := os.Executable()
	if err != nil {
		return nil
	}

	// go build replaces the file, so follow symlinks to the real target.
	if realPath, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = realPath
	}

	h, err := newHotReloader(execPath, checkInterval)
	if err != nil {
		return nil
	}
	return h
}

func newHotReloader(path string, checkInterval time.Duration) (*HotReloader, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "watching %s", path)
	}

	return &HotReloader{
		execPath:      path,
		baseline:      info.ModTime(),
		checkInterval: checkInterval,
	}, nil
}

// OnNewBinary sets the callback for a newer binary. It runs on the watcher
// goroutine, so UI work must be handed back to the UI thread.
func (h *HotReloader) OnNewBinary(callback func()) {
	h.mu.Lock()
	h.onNewBinary = callback
	h.mu.Unlock()
}

// OnTick sets a callback invoked on every poll, on the watcher goroutine.
func (h *HotReloader) OnTick(callback func()) {
	h.mu.Lock()
	h.onTick = callback
	h.mu.Unlock()
}

// Start begins watching in a background goroutine.
func (h *HotReloader) Start() {
	h.mu.Lock()
	h.stopCh = make(chan struct{})
	stop := h.stopCh
	h.mu.Unlock()

	go h.watchLoop(stop)
}

// Stop ends the watcher goroutine. It is safe to call more than once.
func (h *HotReloader) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopCh != nil {
		close(h.stopCh)
		h.stopCh = nil
	}
}

func (h *HotReloader) watchLoop(stop chan struct{}) {
	ticker := time.NewTicker(h.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			h.mu.Lock()
			tick, onNew := h.onTick, h.onNewBinary
			h.mu.Unlock()

			if tick != nil {
				tick()
			}
			if h.checkForUpdate() && onNew != nil {
				onNew()
				// Fire once; Start again after ResetBaseline to keep watching.
				return
			}
		}
	}
}

func (h *HotReloader) checkForUpdate() bool {
	info, err := os.Stat(h.execPath)
	if err != nil {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return info.ModTime().After(h.baseline)
}

// ExecPath returns the watched binary.
func (h *HotReloader) ExecPath() string {
	return h.execPath
}

// StartupTime returns the modification time the watcher compares against.
func (h *HotReloader) StartupTime() time.Time {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.baseline
}

// ResetBaseline adopts the binary's current modification time, so a
// declined restart is not offered again for the same build.
func (h *HotReloader) ResetBaseline() {
	if info, err := os.Stat(h.execPath); err == nil {
		h.mu.Lock()
		h.baseline = info.ModTime()
		h.mu.Unlock()
	}
}

// Restart replaces the current process with the watched binary, keeping
// arguments and environment. It does not return on success.
func (h *HotReloader) Restart() error {
	return errors.Wrap(syscall.Exec(h.execPath, os.Args, os.Environ()))
}
