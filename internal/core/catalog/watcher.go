package catalog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const (
	watchDebounce   = 250 * time.Millisecond
	eventBufferSize = 16
)

// Event signals that catalog files changed on disk and a reload is due.
type Event struct {
	Path string
	At   time.Time
}

// Watcher raises a debounced Event whenever a YAML file under the watch
// roots changes. Bursts of writes collapse into a single event.
type Watcher struct {
	watcher *fsnotify.Watcher
	events  chan Event
	log     zerolog.Logger

	mu      sync.Mutex
	pending *time.Timer
	closed  bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWatcher watches the given directory roots recursively. Roots that do
// not exist yet are skipped; they are picked up on the next start.
func NewWatcher(roots []string, log zerolog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		watcher: fsw,
		events:  make(chan Event, eventBufferSize),
		log:     log,
		ctx:     ctx,
		cancel:  cancel,
	}

	for _, root := range roots {
		if _, err := os.Stat(root); err != nil {
			continue
		}
		if err := w.addRecursive(root); err != nil {
			cancel()
			_ = fsw.Close()
			return nil, err
		}
	}

	w.wg.Add(1)
	go w.run()

	return w, nil
}

// Events returns the debounced change channel. It is closed by Close.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Close stops watching and closes the event channel.
func (w *Watcher) Close() error {
	w.cancel()

	w.mu.Lock()
	if w.pending != nil {
		w.pending.Stop()
	}
	w.closed = true
	w.mu.Unlock()

	err := w.watcher.Close()
	w.wg.Wait()
	close(w.events)
	return err
}

// addRecursive adds a directory and all its subdirectories to the watcher.
func (w *Watcher) addRecursive(path string) error {
	return filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip directories we can't read
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && p != path {
				return filepath.SkipDir
			}
			return w.watcher.Add(p)
		}
		return nil
	})
}

// run processes filesystem events from fsnotify.
func (w *Watcher) run() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
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
			w.log.Warn().Err(err).Msg("catalog watcher error")
		}
	}
}

// handleEvent filters one filesystem event and arms the debounce timer.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return
	}

	// New subdirectories need watching before their files change.
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = w.addRecursive(event.Name)
			return
		}
	}

	if w.shouldIgnore(event.Name) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.pending != nil {
		w.pending.Stop()
	}
	path := event.Name
	w.pending = time.AfterFunc(watchDebounce, func() {
		w.notify(path)
	})
}

// shouldIgnore returns true for files that are not catalog documents.
func (w *Watcher) shouldIgnore(path string) bool {
	base := filepath.Base(path)

	if strings.HasPrefix(base, ".") {
		return true
	}
	for _, ext := range []string{".tmp", ".lock", ".swp", "~"} {
		if strings.HasSuffix(base, ext) {
			return true
		}
	}

	ext := filepath.Ext(base)
	return ext != ".yml" && ext != ".yaml"
}

// notify delivers the debounced event without blocking. If the consumer
// is behind, the event is dropped; the next change re-arms the timer.
func (w *Watcher) notify(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}

	select {
	case w.events <- Event{Path: path, At: time.Now()}:
	default:
	}
}
