// Package restart implements the restart sentinel contract: touching a
// well-known file asks the running server to shut down gracefully so
// the process supervisor starts a fresh one.
package restart

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches the sentinel file and fires a callback when it is
// created or touched.
type Watcher struct {
	sentinel string
	onTouch  func()
	watcher  *fsnotify.Watcher

	mu       sync.Mutex
	running  bool
	lastSeen time.Time
	debounce time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewWatcher creates a watcher for the sentinel path. onTouch runs at
// most once per debounce window.
func NewWatcher(sentinel string, onTouch func()) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		sentinel: sentinel,
		onTouch:  onTouch,
		watcher:  fw,
		debounce: 2 * time.Second,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. The sentinel's directory is created when
// missing so deploy scripts can touch the file without preparation.
// Non-blocking; the event loop runs in a goroutine.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	dir := filepath.Dir(w.sentinel)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	// Watch the directory, not the file: the sentinel usually does not
	// exist yet, and editors replace files on write.
	if err := w.watcher.Add(dir); err != nil {
		return err
	}

	logJSON("info", "restart_watcher_started", map[string]any{"sentinel": w.sentinel})
	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	w.watcher.Close()
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logJSON("error", "restart_watcher_error", map[string]any{"error": err.Error()})
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != filepath.Clean(w.sentinel) {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Chmod) {
		return
	}

	w.mu.Lock()
	now := time.Now()
	if now.Sub(w.lastSeen) < w.debounce {
		w.mu.Unlock()
		return
	}
	w.lastSeen = now
	w.mu.Unlock()

	logJSON("info", "restart_sentinel_touched", map[string]any{"sentinel": w.sentinel})
	w.onTouch()
}

func logJSON(level, msg string, fields map[string]any) {
	entry := map[string]any{
		"ts":    time.Now().UTC().Format(time.RFC3339Nano),
		"level": level,
		"msg":   msg,
	}
	for k, v := range fields {
		entry[k] = v
	}
	if b, err := json.Marshal(entry); err == nil {
		log.SetFlags(0)
		log.Println(string(b))
	}
}
