package scan

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/standardbeagle/typofix/internal/debug"
)

// Batch is one debounced group of filesystem changes. Paths are absolute and
// sorted; a path appears in at most one slice, carrying its latest event.
type Batch struct {
	Created []string
	Changed []string
	Removed []string
}

// Watcher monitors the scan root and delivers debounced batches of changes
// to checkable files. Events for paths the scanner would not admit are
// dropped before they reach the debouncer.
type Watcher struct {
	scanner   *Scanner
	watcher   *fsnotify.Watcher
	debouncer *eventDebouncer
	onBatch   func(Batch)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	eventsProcessed int64
	errorCount      int64
	lastEventTime   time.Time
	statsMu         sync.RWMutex
}

type eventType int

const (
	eventCreate eventType = iota
	eventWrite
	eventRemove
	eventRename
)

// NewWatcher creates a watcher over the scanner's root. onBatch runs on the
// debounce timer's goroutine once per quiet period.
func NewWatcher(scanner *Scanner, debounce time.Duration, onBatch func(Batch)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	w := &Watcher{
		scanner: scanner,
		watcher: fsw,
		onBatch: onBatch,
		ctx:     ctx,
		cancel:  cancel,
	}
	w.debouncer = newEventDebouncer(debounce, w.deliver)
	return w, nil
}

// Start adds watches for the root's directory tree and begins processing
// events.
func (w *Watcher) Start() error {
	debug.LogScan("watcher: starting at %s\n", w.scanner.Root())

	if err := w.addWatches(w.scanner.Root()); err != nil {
		return fmt.Errorf("failed to add watches starting from %s: %w", w.scanner.Root(), err)
	}

	w.wg.Add(1)
	go w.processEvents()

	w.wg.Add(1)
	go w.debouncer.run(w.ctx, &w.wg)

	return nil
}

// Stop shuts the watcher down and waits for its goroutines to exit. Events
// still pending in the debouncer are dropped.
func (w *Watcher) Stop() error {
	w.cancel()
	w.debouncer.stop()

	if err := w.watcher.Close(); err != nil {
		log.Printf("Error closing fsnotify watcher: %v", err)
	}

	w.wg.Wait()
	return nil
}

// addWatches registers every non-excluded directory under root. Watches are
// per-directory, so new subdirectories are picked up by handleDirectoryEvent
// instead.
func (w *Watcher) addWatches(root string) error {
	// Track visited real paths so symlink cycles can't loop the walk.
	visitedDirs := make(map[string]bool)

	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors, continue walking
		}
		if !info.IsDir() {
			return nil
		}

		realPath, err := filepath.EvalSymlinks(path)
		if err != nil {
			return nil // Skip symlinks that can't be resolved
		}
		if visitedDirs[realPath] {
			return filepath.SkipDir
		}
		visitedDirs[realPath] = true

		if w.ignoredDir(path) {
			return filepath.SkipDir
		}

		if err := w.watcher.Add(path); err != nil {
			log.Printf("Warning: failed to add watch for %s: %v", path, err)
			return nil // Continue despite errors
		}
		return nil
	})
}

// ignoredDir reports whether a directory falls under the scanner's exclude
// patterns. The root itself is never ignored.
func (w *Watcher) ignoredDir(path string) bool {
	rel := w.scanner.rel(path)
	return rel != "." && w.scanner.excluded(rel)
}

// processEvents drains fsnotify until shutdown.
func (w *Watcher) processEvents() {
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
			w.incrementStats(0, 1)
			log.Printf("File watcher error: %v", err)
		}
	}
}

// handleEvent filters one raw event and feeds the debouncer.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name
	debug.LogScan("watcher: event %v for %s\n", event.Op, path)

	info, err := os.Stat(path)
	if err != nil {
		// The path is already gone. Admits works without the file existing:
		// it only consults the name and the glob filters.
		if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 && w.scanner.Admits(path) {
			w.debouncer.addEvent(path, eventRemove)
		}
		return
	}

	if info.IsDir() {
		w.handleDirectoryEvent(event, path)
		return
	}

	if info.Size() > maxFileBytes {
		debug.LogScan("watcher: skipping oversized file %s (%d bytes)\n", path, info.Size())
		return
	}
	if !w.scanner.Admits(path) {
		return
	}

	var typ eventType
	switch {
	case event.Op&fsnotify.Create != 0:
		typ = eventCreate
	case event.Op&fsnotify.Write != 0:
		typ = eventWrite
	case event.Op&fsnotify.Remove != 0:
		typ = eventRemove
	case event.Op&fsnotify.Rename != 0:
		typ = eventRename
	default:
		return // Ignore chmod and other events
	}

	w.debouncer.addEvent(path, typ)
}

// handleDirectoryEvent watches newly created directories, including anything
// already inside them by the time the event arrives.
func (w *Watcher) handleDirectoryEvent(event fsnotify.Event, path string) {
	if event.Op&fsnotify.Create != 0 && !w.ignoredDir(path) {
		if err := w.addWatches(path); err != nil {
			log.Printf("Warning: failed to watch new directory %s: %v", path, err)
		}
	}
}

// deliver groups one flushed event set into a Batch for the consumer.
func (w *Watcher) deliver(events map[string]eventType) {
	var batch Batch
	for path, typ := range events {
		switch typ {
		case eventCreate:
			batch.Created = append(batch.Created, path)
		case eventRemove:
			batch.Removed = append(batch.Removed, path)
		case eventWrite, eventRename:
			batch.Changed = append(batch.Changed, path)
		}
	}
	sort.Strings(batch.Created)
	sort.Strings(batch.Changed)
	sort.Strings(batch.Removed)

	w.incrementStats(int64(len(events)), 0)

	if w.onBatch != nil {
		w.onBatch(batch)
	}
}

// eventDebouncer coalesces bursts of file events. Editors save through
// temp-file renames and branch switches touch hundreds of files; one batch
// per quiet period keeps rechecks cheap.
type eventDebouncer struct {
	events   map[string]eventType
	mutex    sync.Mutex
	debounce time.Duration
	timer    *time.Timer
	onFlush  func(map[string]eventType)
}

func newEventDebouncer(debounce time.Duration, onFlush func(map[string]eventType)) *eventDebouncer {
	return &eventDebouncer{
		events:   make(map[string]eventType),
		debounce: debounce,
		onFlush:  onFlush,
	}
}

// addEvent records the latest event for a path and restarts the quiet-period
// timer.
func (d *eventDebouncer) addEvent(path string, typ eventType) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.events[path] = typ

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.debounce, d.flush)
}

func (d *eventDebouncer) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()
	<-ctx.Done()

	// DON'T flush on shutdown - the batch callback can block on consumers
	// that are themselves tearing down. Events pending at shutdown are
	// acceptable to lose since the watch session is over.
}

// stop cancels any pending flush so no batch fires after Stop returns.
func (d *eventDebouncer) stop() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// flush hands the accumulated events off and resets the set.
func (d *eventDebouncer) flush() {
	d.mutex.Lock()
	events := d.events
	d.events = make(map[string]eventType)
	d.mutex.Unlock()

	if len(events) == 0 {
		return
	}

	debug.LogScan("watcher: flushing %d debounced events\n", len(events))
	d.onFlush(events)
}

// WatchStats describes a watch session.
type WatchStats struct {
	EventsProcessed int64
	ErrorCount      int64
	LastEventTime   time.Time
	IsActive        bool
}

func (w *Watcher) incrementStats(events, errors int64) {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()

	w.eventsProcessed += events
	w.errorCount += errors
	w.lastEventTime = time.Now()
}

// Stats returns current watch statistics.
func (w *Watcher) Stats() WatchStats {
	w.statsMu.RLock()
	defer w.statsMu.RUnlock()

	return WatchStats{
		EventsProcessed: w.eventsProcessed,
		ErrorCount:      w.errorCount,
		LastEventTime:   w.lastEventTime,
		IsActive:        w.ctx.Err() == nil,
	}
}
