package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watchFiles validates files again on every write until ctx is done. Parent
// directories are watched so that editors replacing a file are still seen.
func (a *app) watchFiles(ctx context.Context, out io.Writer, files []string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return systemError(fmt.Errorf("create watcher: %w", err))
	}
	defer func() { _ = w.Close() }()

	targets := make(map[string]string, len(files))
	dirs := make(map[string]bool)
	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return systemError(fmt.Errorf("resolve %s: %w", file, err))
		}
		targets[abs] = file
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			return systemError(fmt.Errorf("watch %s: %w", dir, err))
		}
		dirs[dir] = true
	}
	a.logger.InfoContext(ctx, "watching schema files", "files", len(targets))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			file, ok := targets[filepath.Clean(event.Name)]
			if !ok {
				continue
			}
			a.logger.DebugContext(ctx, "schema file changed", "file", file, "op", event.Op.String())
			if err := a.writeResults(out, []validateResult{a.validateFile(file)}); err != nil {
				return err
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			a.logger.WarnContext(ctx, "error watching schema files", "error", err)
		}
	}
}
