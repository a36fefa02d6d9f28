package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"faq-bot/internal/domain"
)

// Watch reloads the catalog file whenever it is written or replaced and
// passes the new entries to onChange. A reload that fails is logged and the
// previous catalog stays in effect. Watching stops when ctx is done.
func Watch(ctx context.Context, logger *slog.Logger, path string, onChange func([]domain.FAQ)) error {
	if logger == nil {
		logger = slog.Default()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("catalog: resolve path: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("catalog: create watcher: %w", err)
	}
	// Watch the directory: editors often replace the file via rename.
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return fmt.Errorf("catalog: watch %q: %w", filepath.Dir(abs), err)
	}

	go func() {
		defer func() { _ = w.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
					continue
				}
				faqs, err := ReadFile(abs)
				if err != nil {
					logger.Error("catalog reload failed, keeping previous catalog", "path", abs, "err", err)
					continue
				}
				logger.Info("reloaded FAQ catalog", "path", abs, "items", len(faqs))
				onChange(faqs)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("catalog watcher error", "path", abs, "err", err)
			}
		}
	}()
	return nil
}
