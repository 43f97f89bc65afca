package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ReloadDelay is how long Watch waits after the last change before
// reloading, so a save that arrives as several writes loads once.
var ReloadDelay = 100 * time.Millisecond

// Watch reloads path whenever it is written or replaced and passes the new
// config to fn. Errors from the watcher or from decoding go to onError and
// fn is not called, so the caller keeps its previous config. Watch blocks
// until ctx is done.
func Watch(ctx context.Context, path string, fn func(*Config), onError func(error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch config %s: %w", path, err)
	}
	defer w.Close()

	target := filepath.Clean(path)
	// Watch the directory: editors often save by renaming a temp file over
	// the target, which drops a watch held on the file itself.
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch config %s: %w", path, err)
	}
	if onError == nil {
		onError = func(error) {}
	}

	timer := time.NewTimer(ReloadDelay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			timer.Reset(ReloadDelay)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			onError(fmt.Errorf("watch config %s: %w", path, err))
		case <-timer.C:
			cfg, err := Load(path)
			if err != nil {
				onError(err)
				continue
			}
			fn(cfg)
		}
	}
}
