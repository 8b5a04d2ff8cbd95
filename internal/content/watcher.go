package content

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to the markdown files of a section directory.
// Bursts of events collapse into one pending change.
type Watcher struct {
	watcher *fsnotify.Watcher
	changes chan string
	errs    chan error
	done    chan struct{}

	closeOnce sync.Once
	closeErr  error
}

// Watch starts watching dir.
func Watch(dir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Clean(dir)); err != nil {
		_ = fw.Close()
		return nil, err
	}
	w := &Watcher{
		watcher: fw,
		changes: make(chan string, 1),
		errs:    make(chan error, 1),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Changes delivers the path of a changed file.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Errors delivers watch errors.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Close stops the watcher. Changes and Errors are closed afterwards.
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() {
		close(w.done)
		w.closeErr = w.watcher.Close()
	})
	return w.closeErr
}

func (w *Watcher) loop() {
	defer close(w.changes)
	defer close(w.errs)
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !isMarkdown(filepath.Base(event.Name)) {
				continue
			}
			select {
			case w.changes <- event.Name:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}
		}
	}
}
