package session

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// WatchFile starts a goroutine that watches the song file at path and
// posts a FileChanged message whenever another program writes it, so the
// session can offer to reload. Watching the directory instead of the file
// itself catches editors that save by replacing the file. Send to
// broker.CloseWatcher to stop the goroutine; it closes
// broker.FinishedWatcher when done.
func WatchFile(broker *Broker, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}
	go func() {
		defer close(broker.FinishedWatcher)
		defer watcher.Close()
		for {
			select {
			case <-broker.CloseWatcher:
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name == path && event.Op.Has(fsnotify.Write|fsnotify.Create) {
					TrySend(broker.ToUI, MsgToUI{Kind: FileChanged, Path: path})
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				TrySend(broker.ToUI, MsgToUI{Kind: Alert, Alert: err.Error()})
			}
		}
	}()
	return nil
}
